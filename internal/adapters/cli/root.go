package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	verbose    bool
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "mbesplan",
		Short: "Multibeam survey speed and coverage planner",
		Long: `mbesplan computes the maximum, optimum and minimum vessel speed for a
multibeam echosounder survey from depth, swath geometry, beam width, sound
speed, sonar dead time and the requested bathymetric coverage, and checks
the result against IHO S-44 style survey orders.

Configuration is loaded from multiple sources with priority:
1. Environment variables (MBES_* prefix)
2. Config file (config.yaml)
3. Default values

Examples:
  mbesplan speed --depth 100 --swath 120 --beam 1.5 --sonar "Kongsberg EM2040 (Shallow)"
  mbesplan plan --depth 40 --swath 130 --beam 1 --dead-time 0.05 --length 5000 --width 2000
  mbesplan sweep --file scenarios.yaml
  mbesplan catalogue
  mbesplan history list
  mbesplan serve`,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config file (default: ./config.yaml, ./configs/config.yaml or /etc/mbesplan/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable verbose output")

	// Add command groups
	rootCmd.AddCommand(NewSpeedCommand())
	rootCmd.AddCommand(NewPlanCommand())
	rootCmd.AddCommand(NewSweepCommand())
	rootCmd.AddCommand(NewCatalogueCommand())
	rootCmd.AddCommand(NewHistoryCommand())
	rootCmd.AddCommand(NewServeCommand())
	rootCmd.AddCommand(NewConfigCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
