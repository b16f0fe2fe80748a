package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/andrescamacho/mbes-planner/internal/application/planning"
	"github.com/andrescamacho/mbes-planner/internal/domain/shared"
)

// SweepFile is the YAML layout of a what-if sweep. Every scenario starts from
// Base and overrides the fields it sets.
type SweepFile struct {
	Base      RequestEntry    `yaml:"base"`
	Scenarios []ScenarioEntry `yaml:"scenarios"`
}

// ScenarioEntry is one named scenario of a sweep file
type ScenarioEntry struct {
	Name         string `yaml:"name"`
	RequestEntry `yaml:",inline"`
}

// RequestEntry mirrors planning.PlanRequest with every field optional
type RequestEntry struct {
	Depth         *float64 `yaml:"depth_m"`
	SwathAngle    *float64 `yaml:"swath_angle_deg"`
	BeamWidth     *float64 `yaml:"beam_width_deg"`
	SoundSpeed    *float64 `yaml:"sound_speed_m_s"`
	Sonar         *string  `yaml:"sonar"`
	DeadTime      *float64 `yaml:"dead_time_s"`
	Order         *string  `yaml:"order"`
	Coverage      *float64 `yaml:"coverage_pct"`
	TurningMargin *float64 `yaml:"turning_margin_pct"`
	Enforce       *bool    `yaml:"enforce_minimum_full_coverage"`
	BottomType    *string  `yaml:"bottom_type"`
	SafetyFactor  *float64 `yaml:"safety_factor"`
}

func pick[T any](over, base *T) *T {
	if over != nil {
		return over
	}
	return base
}

// merge returns e with every unset field taken from base
func (e RequestEntry) merge(base RequestEntry) RequestEntry {
	return RequestEntry{
		Depth:         pick(e.Depth, base.Depth),
		SwathAngle:    pick(e.SwathAngle, base.SwathAngle),
		BeamWidth:     pick(e.BeamWidth, base.BeamWidth),
		SoundSpeed:    pick(e.SoundSpeed, base.SoundSpeed),
		Sonar:         pick(e.Sonar, base.Sonar),
		DeadTime:      pick(e.DeadTime, base.DeadTime),
		Order:         pick(e.Order, base.Order),
		Coverage:      pick(e.Coverage, base.Coverage),
		TurningMargin: pick(e.TurningMargin, base.TurningMargin),
		Enforce:       pick(e.Enforce, base.Enforce),
		BottomType:    pick(e.BottomType, base.BottomType),
		SafetyFactor:  pick(e.SafetyFactor, base.SafetyFactor),
	}
}

func value[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

// toRequest converts the entry. Missing required inputs stay zero and are
// reported by the engine as range errors.
func (e RequestEntry) toRequest() planning.PlanRequest {
	return planning.PlanRequest{
		Depth:                      value(e.Depth),
		SwathAngle:                 value(e.SwathAngle),
		BeamWidth:                  value(e.BeamWidth),
		SoundSpeed:                 value(e.SoundSpeed),
		Sonar:                      value(e.Sonar),
		DeadTime:                   shared.FromPtr(e.DeadTime),
		Order:                      value(e.Order),
		Coverage:                   shared.FromPtr(e.Coverage),
		TurningMargin:              shared.FromPtr(e.TurningMargin),
		EnforceMinimumFullCoverage: shared.FromPtr(e.Enforce),
		BottomType:                 value(e.BottomType),
		SafetyFactor:               shared.FromPtr(e.SafetyFactor),
	}
}

// loadSweepFile reads the scenarios of a sweep file
func loadSweepFile(r io.Reader) ([]planning.Scenario, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var file SweepFile
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to parse sweep file: %w", err)
	}
	if len(file.Scenarios) == 0 {
		return nil, fmt.Errorf("sweep file has no scenarios")
	}

	scenarios := make([]planning.Scenario, len(file.Scenarios))
	for i, s := range file.Scenarios {
		scenarios[i] = planning.Scenario{
			Name:    s.Name,
			Request: s.RequestEntry.merge(file.Base).toRequest(),
		}
	}
	return scenarios, nil
}

// NewSweepCommand creates the sweep command
func NewSweepCommand() *cobra.Command {
	var (
		file       string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Evaluate many what-if scenarios at once",
		Long: `Evaluate the scenarios of a YAML file concurrently and print one row
per scenario. A failing scenario is reported in its row and does not stop
the others.

File layout:
  base:
    swath_angle_deg: 120
    beam_width_deg: 1
    sound_speed_m_s: 1500
    sonar: Kongsberg EM2040 (Shallow)
    order: Order 1a
  scenarios:
    - name: 20 m
      depth_m: 20
    - name: 60 m at 200%
      depth_m: 60
      coverage_pct: 200

Example:
  mbesplan sweep --file scenarios.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSweep(cmd.OutOrStdout(), file, jsonOutput)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Scenario file (YAML) [required]")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the raw results as JSON")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func runSweep(out io.Writer, path string, jsonOutput bool) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open sweep file: %w", err)
	}
	defer f.Close()

	scenarios, err := loadSweepFile(f)
	if err != nil {
		return err
	}

	a, err := newApp(appOptions{})
	if err != nil {
		return err
	}
	defer a.Close()

	result, err := a.mediator.Send(a.withLogger(context.Background()), &planning.RunSweepCommand{Scenarios: scenarios})
	if err != nil {
		return err
	}
	resp := result.(*planning.SweepResponse)

	if jsonOutput {
		return printJSON(out, resp)
	}
	displaySweep(out, resp)
	return nil
}

func displaySweep(out io.Writer, resp *planning.SweepResponse) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SCENARIO\tMAX KN\tOPT KN\tMIN KN\tSPACING M\tDETECTION\tERROR")
	for _, r := range resp.Results {
		if r.Error != nil {
			fmt.Fprintf(w, "%s\t-\t-\t-\t-\t-\t%s: %s\n", r.Name, r.Error.Kind, r.Error.Message)
			continue
		}
		s := r.Plan.Speeds
		fmt.Fprintf(w, "%s\t%.2f\t%.2f\t%.2f\t%.1f\t%s\t\n",
			r.Name, s.Max.Knots, s.Optimum.Knots, s.Minimum.Knots, r.Plan.Coverage.LineSpacing, r.Plan.Detection.Status)
	}
	w.Flush()

	fmt.Fprintf(out, "\n%d succeeded, %d failed\n", resp.Succeeded, resp.Failed)
}
