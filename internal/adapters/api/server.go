// Package api exposes the planner over HTTP
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/andrescamacho/mbes-planner/internal/adapters/metrics"
	"github.com/andrescamacho/mbes-planner/internal/application/mediator"
	"github.com/andrescamacho/mbes-planner/internal/infrastructure/config"
)

const apiPrefix = "/api/v1"

// Dependencies are the collaborators the API is served from
type Dependencies struct {
	Mediator mediator.Mediator
	Logger   *log.Logger

	// APIMetrics may be nil when metrics are disabled
	APIMetrics *metrics.APIMetricsCollector

	// History mounts the stored plan endpoints
	History bool
}

type server struct {
	mediator     mediator.Mediator
	logger       *log.Logger
	validator    *config.Validator
	apiMetrics   *metrics.APIMetricsCollector
	limiter      *rate.Limiter
	maxScenarios int
	history      bool
}

// NewRouter builds the API router. The metrics endpoint is only mounted
// while the metrics registry exists.
func NewRouter(cfg config.ServerConfig, metricsCfg config.MetricsConfig, deps Dependencies) http.Handler {
	logger := deps.Logger
	if logger == nil {
		logger = log.StandardLogger()
	}

	s := &server{
		mediator:     deps.Mediator,
		logger:       logger,
		validator:    config.NewValidator("json"),
		apiMetrics:   deps.APIMetrics,
		limiter:      rate.NewLimiter(rate.Limit(cfg.RateLimit.Requests), cfg.RateLimit.Burst),
		maxScenarios: cfg.MaxSweepScenarios,
		history:      deps.History,
	}

	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/healthz", s.healthz).Methods(http.MethodGet)

	if metricsCfg.Enabled && metrics.IsEnabled() {
		router.Handle(metricsCfg.Path, promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{})).
			Methods(http.MethodGet)
	}

	apiV1 := router.PathPrefix(apiPrefix).Subrouter()
	apiV1.Use(s.instrument, s.rateLimit)
	apiV1.HandleFunc("/catalogue", s.catalogue).Methods(http.MethodGet)
	apiV1.HandleFunc("/speed-plan", s.speedPlan).Methods(http.MethodPost)
	apiV1.HandleFunc("/survey-plan", s.surveyPlan).Methods(http.MethodPost)
	apiV1.HandleFunc("/sweep", s.sweep).Methods(http.MethodPost)
	if s.history {
		apiV1.HandleFunc("/plans", s.listPlans).Methods(http.MethodGet)
		apiV1.HandleFunc("/plans/{id}", s.getPlan).Methods(http.MethodGet)
	}

	var handler http.Handler = router
	if len(cfg.CORSOrigins) > 0 {
		handler = handlers.CORS(
			handlers.AllowedOrigins(cfg.CORSOrigins),
			handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
			handlers.AllowedHeaders([]string{"Content-Type"}),
		)(handler)
	}

	return handlers.RecoveryHandler(
		handlers.RecoveryLogger(logger),
		handlers.PrintRecoveryStack(logger.IsLevelEnabled(log.DebugLevel)),
	)(handler)
}

// Serve runs the API until ctx is cancelled, then shuts down gracefully
func Serve(ctx context.Context, cfg config.ServerConfig, handler http.Handler, logger *log.Logger) error {
	srv := &http.Server{
		Addr:         cfg.Address(),
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("Listening on %s", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server stopped: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	logger.Info("Shutting down server")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
