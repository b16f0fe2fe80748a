package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/mbes-planner/internal/application/planning"
)

// NewCatalogueCommand creates the catalogue command
func NewCatalogueCommand() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "catalogue",
		Short: "List sonar, survey order and bottom type presets",
		Long: `List the presets requests can refer to by name.

The built-in catalogue is used unless engine.catalogue_path points to a
YAML catalogue file.

Example:
  mbesplan catalogue`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(appOptions{})
			if err != nil {
				return err
			}
			defer a.Close()

			result, err := a.mediator.Send(a.withLogger(context.Background()), &planning.ListCatalogueQuery{})
			if err != nil {
				return err
			}
			resp := result.(*planning.CatalogueResponse)

			if jsonOutput {
				return printJSON(cmd.OutOrStdout(), resp)
			}
			displayCatalogue(cmd.OutOrStdout(), resp)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the catalogue as JSON")

	return cmd
}

func displayCatalogue(out io.Writer, resp *planning.CatalogueResponse) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, "SONAR\tDEAD TIME")
	for _, s := range resp.Sonars {
		if dt, ok := s.DeadTime.Get(); ok {
			fmt.Fprintf(w, "%s\t%.3f s\n", s.Name, dt)
		} else {
			fmt.Fprintf(w, "%s\t(enter manually)\n", s.Name)
		}
	}

	fmt.Fprintln(w, "\nORDER\tCOVERAGE\tTVU a / b\tDETECTION")
	for _, o := range resp.Orders {
		tvu := "-"
		if c, ok := o.TVU.Get(); ok {
			tvu = fmt.Sprintf("%.3f / %.4f", c.A, c.B)
		}
		detection := "-"
		if r, ok := o.Detection.Get(); ok {
			detection = fmt.Sprintf("%.1f m", r.Minimum)
			if r.DepthLimit > 0 {
				detection = fmt.Sprintf("%.1f m to %.0f m, then %.0f%% of depth", r.Minimum, r.DepthLimit, r.DepthFraction*100)
			}
		}
		fmt.Fprintf(w, "%s\t%.0f%%\t%s\t%s\n", o.Name, o.DefaultCoverage, tvu, detection)
	}

	fmt.Fprintln(w, "\nBOTTOM TYPE\tFACTOR")
	for _, b := range resp.BottomTypes {
		fmt.Fprintf(w, "%s\t%.2f\n", b.Name, b.Factor)
	}

	w.Flush()
}
