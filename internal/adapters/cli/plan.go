package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/mbes-planner/internal/application/planning"
)

// NewPlanCommand creates the plan command
func NewPlanCommand() *cobra.Command {
	var (
		speed      speedFlags
		area       areaFlags
		save       bool
		label      string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Plan a survey area",
		Long: `Calculate the survey speed and estimate lines, track length, time,
days and fuel for a rectangular area surveyed with parallel lines.

Weather and line-change overheads default to the planner section of the
configuration. Use --save to keep the plan in the history database.

Examples:
  mbesplan plan --depth 40 --swath 130 --beam 1 --length 5000 --width 2000
  mbesplan plan --depth 100 --order "Order 1a" --length 8000 --width 3000 --tier max --fuel-burn 45 --fuel-price 1.2 --save --label "north block"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			command := &planning.PlanSurveyCommand{
				Request: speed.request(cmd.Flags()),
				Area:    area.request(cmd.Flags()),
				Save:    save,
				Label:   label,
			}
			return runPlan(cmd.OutOrStdout(), command, jsonOutput)
		},
	}

	speed.register(cmd)
	area.register(cmd)
	cmd.Flags().BoolVar(&save, "save", false, "Save the plan to the history database")
	cmd.Flags().StringVar(&label, "label", "", "Label stored with a saved plan")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the raw plan as JSON")

	return cmd
}

func runPlan(out io.Writer, command *planning.PlanSurveyCommand, jsonOutput bool) error {
	a, err := newApp(appOptions{history: command.Save})
	if err != nil {
		return err
	}
	defer a.Close()

	result, err := a.mediator.Send(a.withLogger(context.Background()), command)
	if err != nil {
		return fmt.Errorf("planning failed: %w", err)
	}
	resp := result.(*planning.SurveyPlanResponse)

	if jsonOutput {
		return printJSON(out, resp)
	}
	writeSurveyReport(out, resp)
	return nil
}
