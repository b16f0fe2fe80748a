package cli

import (
	"fmt"
	"io"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/mbes-planner/internal/infrastructure/config"
)

// NewConfigCommand creates the config command with subcommands
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration settings",
		Long: `Inspect mbesplan configuration settings.

Configuration is loaded from multiple sources with priority:
1. Environment variables (MBES_* prefix, DATABASE_URL)
2. Config file (config.yaml)
3. Default values

Example:
  mbesplan config show`,
	}

	cmd.AddCommand(newConfigShowCommand())

	return cmd
}

// newConfigShowCommand creates the config show subcommand
func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				fmt.Fprintf(out, "Warning: Failed to load config: %v\n", err)
				fmt.Fprintln(out, "Using default configuration.")
				cfg = config.LoadConfigOrDefault("")
			}

			displayConfig(out, cfg)
			return nil
		},
	}
}

func displayConfig(out io.Writer, cfg *config.Config) {
	fmt.Fprintln(out, "mbesplan Configuration")
	fmt.Fprintln(out, "======================")

	fmt.Fprintln(out, "Engine:")
	fmt.Fprintf(out, "  Safety Factor:    %.2f\n", cfg.Engine.SafetyFactor)
	fmt.Fprintf(out, "  Min 100%% Cover:   %t\n", cfg.Engine.EnforceMinimumFullCoverage)
	fmt.Fprintf(out, "  Turning Margin:   %.1f%%\n", cfg.Engine.TurningMargin)
	fmt.Fprintf(out, "  Sweep Workers:    %d\n", cfg.Engine.SweepWorkers)
	if cfg.Engine.CataloguePath != "" {
		fmt.Fprintf(out, "  Catalogue:        %s\n", cfg.Engine.CataloguePath)
	} else {
		fmt.Fprintf(out, "  Catalogue:        (built-in)\n")
	}

	fmt.Fprintln(out, "\nPlanner:")
	fmt.Fprintf(out, "  Daily Hours:      %.1f\n", cfg.Planner.DailyHours)
	fmt.Fprintf(out, "  Weather:          %.0f%%\n", cfg.Planner.WeatherPct)
	fmt.Fprintf(out, "  Line Overhead:    %.0f%%\n", cfg.Planner.OverheadPct)
	fmt.Fprintf(out, "  Fuel Price:       %.2f\n", cfg.Planner.FuelPrice)

	fmt.Fprintln(out, "\nDatabase:")
	fmt.Fprintf(out, "  Type:             %s\n", cfg.Database.Type)
	switch {
	case cfg.Database.URL != "":
		fmt.Fprintf(out, "  URL:              %s\n", maskPassword(cfg.Database.URL))
	case cfg.Database.Type == "sqlite":
		fmt.Fprintf(out, "  Path:             %s\n", cfg.Database.Path)
	default:
		fmt.Fprintf(out, "  Host:             %s\n", cfg.Database.Host)
		fmt.Fprintf(out, "  Port:             %d\n", cfg.Database.Port)
		fmt.Fprintf(out, "  Database:         %s\n", cfg.Database.Name)
		fmt.Fprintf(out, "  User:             %s\n", cfg.Database.User)
		fmt.Fprintf(out, "  Max Connections:  %d\n", cfg.Database.Pool.MaxOpen)
	}

	fmt.Fprintln(out, "\nServer:")
	fmt.Fprintf(out, "  Address:          %s\n", cfg.Server.Address())
	fmt.Fprintf(out, "  Rate Limit:       %d req/s (burst: %d)\n", cfg.Server.RateLimit.Requests, cfg.Server.RateLimit.Burst)
	fmt.Fprintf(out, "  Max Scenarios:    %d\n", cfg.Server.MaxSweepScenarios)

	fmt.Fprintln(out, "\nMetrics:")
	fmt.Fprintf(out, "  Enabled:          %t\n", cfg.Metrics.Enabled)
	fmt.Fprintf(out, "  Path:             %s\n", cfg.Metrics.Path)

	fmt.Fprintln(out, "\nLogging:")
	fmt.Fprintf(out, "  Level:            %s\n", cfg.Logging.Level)
	fmt.Fprintf(out, "  Format:           %s\n", cfg.Logging.Format)
	fmt.Fprintf(out, "  Output:           %s\n", cfg.Logging.Output)
}

// maskPassword hides the password of a connection URL for display
func maskPassword(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return raw
	}
	if _, ok := u.User.Password(); ok {
		u.User = url.UserPassword(u.User.Username(), "xxxxx")
	}
	return u.String()
}
