package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/mbes-planner/internal/application/planning"
)

// NewSpeedCommand creates the speed command
func NewSpeedCommand() *cobra.Command {
	var (
		flags      speedFlags
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "speed",
		Short: "Calculate the maximum survey speed",
		Long: `Calculate the maximum, optimum and minimum vessel speed for a
multibeam survey, with the step-by-step derivation and the survey order
quality check.

The dead time comes from the sonar preset unless --dead-time is given.
Coverage defaults to the survey order's coverage; values below 100% are
rejected unless --relaxed is set.

Examples:
  mbesplan speed --depth 100 --swath 120 --beam 1.5 --sonar "Teledyne/Simrad Shelf MBES" --order "Order 1a" --coverage 200
  mbesplan speed --depth 25 --sonar "Custom / Other Sonar" --dead-time 0.03 --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSpeed(cmd.OutOrStdout(), flags.request(cmd.Flags()), jsonOutput)
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the raw plan as JSON")

	return cmd
}

func runSpeed(out io.Writer, req planning.PlanRequest, jsonOutput bool) error {
	a, err := newApp(appOptions{})
	if err != nil {
		return err
	}
	defer a.Close()

	result, err := a.mediator.Send(a.withLogger(context.Background()), &planning.CalculateSpeedPlanCommand{Request: req})
	if err != nil {
		return fmt.Errorf("calculation failed: %w", err)
	}
	resp := result.(*planning.SpeedPlanResponse)

	if jsonOutput {
		return printJSON(out, resp)
	}
	writeSpeedReport(out, resp)
	return nil
}

func printJSON(out io.Writer, v interface{}) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
