package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/mbes-planner/internal/application/planning"
	"github.com/andrescamacho/mbes-planner/internal/domain/catalogue"
)

// NewHistoryCommand creates the history command with subcommands
func NewHistoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Review saved survey plans",
		Long: `Review survey plans saved with 'mbesplan plan --save'.

Examples:
  mbesplan history list --limit 10
  mbesplan history show 3f1c2a4e-8d8b-4c55-9a57-1f7d3b8e2c10`,
	}

	cmd.AddCommand(newHistoryListCommand())
	cmd.AddCommand(newHistoryShowCommand())

	return cmd
}

func newHistoryListCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved plans, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(appOptions{history: true})
			if err != nil {
				return err
			}
			defer a.Close()

			result, err := a.mediator.Send(a.withLogger(context.Background()), &planning.ListPlansQuery{Limit: limit})
			if err != nil {
				return fmt.Errorf("failed to list plans: %w", err)
			}

			displayPlanList(cmd.OutOrStdout(), result.(*planning.ListPlansResponse))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", planning.DefaultListLimit, "Maximum number of plans to return")

	return cmd
}

func newHistoryShowCommand() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show <plan-id>",
		Short: "Show a saved plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(appOptions{history: true})
			if err != nil {
				return err
			}
			defer a.Close()

			result, err := a.mediator.Send(a.withLogger(context.Background()), &planning.GetPlanQuery{ID: args[0]})
			if err != nil {
				return err
			}
			detail := result.(*planning.PlanDetailDTO)

			if jsonOutput {
				return printJSON(cmd.OutOrStdout(), detail)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Plan %s", detail.ID)
			if detail.Label != "" {
				fmt.Fprintf(out, " (%s)", detail.Label)
			}
			fmt.Fprintf(out, ", saved %s\n\n", detail.CreatedAt.Format("2006-01-02 15:04:05"))

			writeSurveyReport(out, &planning.SurveyPlanResponse{
				Plan:       detail.Plan,
				DeadTime:   detail.DeadTime,
				BottomType: catalogue.BottomType{
					Name:   detail.BottomType,
					Factor: detail.Plan.SpeedPlan.Detection.BottomFactor,
				},
			})
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the stored plan as JSON")

	return cmd
}

func displayPlanList(out io.Writer, resp *planning.ListPlansResponse) {
	if len(resp.Plans) == 0 {
		fmt.Fprintln(out, "No saved plans.")
		return
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSAVED\tLABEL\tORDER\tDEPTH M\tCOVERAGE\tMAX KN\tLINES\tDAYS\tFUEL COST")
	for _, p := range resp.Plans {
		cost := "-"
		if c, ok := p.FuelCost.Get(); ok {
			cost = fmt.Sprintf("%.2f", c)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.1f\t%.0f%%\t%.2f\t%d\t%.2f\t%s\n",
			p.ID, p.CreatedAt.Format("2006-01-02 15:04"), orNone(p.Label), p.Order,
			p.Depth, p.Coverage, p.MaxKnots, p.LineCount, p.Days, cost)
	}
	w.Flush()
}
