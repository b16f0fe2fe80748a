package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/mbes-planner/internal/adapters/api"
)

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	var noHistory bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the planner over HTTP",
		Long: `Start the HTTP API. The server listens on server.host:server.port
and stops gracefully on SIGINT or SIGTERM.

Endpoints:
  GET  /healthz
  GET  /api/v1/catalogue
  POST /api/v1/speed-plan
  POST /api/v1/survey-plan
  POST /api/v1/sweep
  GET  /api/v1/plans
  GET  /api/v1/plans/{id}
  GET  /metrics (when metrics.enabled)

Example:
  MBES_SERVER_PORT=9090 mbesplan serve`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(appOptions{history: !noHistory, metrics: true})
			if err != nil {
				return err
			}
			defer a.Close()

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			handler := api.NewRouter(a.cfg.Server, a.cfg.Metrics, api.Dependencies{
				Mediator:   a.mediator,
				Logger:     a.logger,
				APIMetrics: a.apiMetrics,
				History:    !noHistory,
			})
			return api.Serve(ctx, a.cfg.Server, handler, a.logger)
		},
	}

	cmd.Flags().BoolVar(&noHistory, "no-history", false, "Serve without the plan history database")

	return cmd
}
