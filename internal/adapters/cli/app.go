package cli

import (
	"context"
	"fmt"
	"io"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	cataloguefile "github.com/andrescamacho/mbes-planner/internal/adapters/catalogue"
	"github.com/andrescamacho/mbes-planner/internal/adapters/metrics"
	"github.com/andrescamacho/mbes-planner/internal/adapters/persistence"
	"github.com/andrescamacho/mbes-planner/internal/application/common"
	"github.com/andrescamacho/mbes-planner/internal/application/mediator"
	"github.com/andrescamacho/mbes-planner/internal/application/planning"
	"github.com/andrescamacho/mbes-planner/internal/application/setup"
	"github.com/andrescamacho/mbes-planner/internal/domain/catalogue"
	"github.com/andrescamacho/mbes-planner/internal/domain/history"
	"github.com/andrescamacho/mbes-planner/internal/infrastructure/config"
	"github.com/andrescamacho/mbes-planner/internal/infrastructure/database"
	"github.com/andrescamacho/mbes-planner/internal/infrastructure/logging"
)

// appOptions selects the optional parts of the application a command needs
type appOptions struct {
	history bool
	metrics bool
}

// app is the wired application behind one CLI invocation
type app struct {
	cfg      *config.Config
	logger   *log.Logger
	mediator mediator.Mediator
	db       *gorm.DB

	// apiMetrics is set when metrics are enabled
	apiMetrics *metrics.APIMetricsCollector

	closers []io.Closer
}

// newApp loads configuration and wires the mediator for a command
func newApp(opts appOptions) (*app, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}

	logger, logCloser, err := logging.New(cfg.Logging)
	if err != nil {
		return nil, err
	}
	a := &app{cfg: cfg, logger: logger, closers: []io.Closer{logCloser}}

	cat, err := loadCatalogue(cfg.Engine.CataloguePath)
	if err != nil {
		a.Close()
		return nil, err
	}

	var planRepo history.PlanRepository
	if opts.history {
		a.db, err = database.Open(&cfg.Database)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		planRepo = persistence.NewGormPlanRepository(a.db)
	}

	middlewares := []mediator.Middleware{common.LoggingMiddleware()}
	var observer planning.PlanObserver
	if opts.metrics && cfg.Metrics.Enabled {
		if observer, err = a.initMetrics(&middlewares); err != nil {
			a.Close()
			return nil, err
		}
	}

	registry := setup.NewHandlerRegistry(
		cat,
		engineDefaults(cfg.Engine),
		plannerDefaults(cfg.Planner),
		cfg.Engine.SweepWorkers,
		planRepo,
		nil,
		observer,
	)
	a.mediator, err = registry.CreateConfiguredMediator(middlewares...)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to configure mediator: %w", err)
	}

	return a, nil
}

func (a *app) initMetrics(middlewares *[]mediator.Middleware) (planning.PlanObserver, error) {
	metrics.InitRegistry()

	commandMetrics := metrics.NewCommandMetricsCollector()
	planMetrics := metrics.NewPlanMetricsCollector()
	a.apiMetrics = metrics.NewAPIMetricsCollector()

	for _, c := range []interface{ Register() error }{commandMetrics, planMetrics, a.apiMetrics} {
		if err := c.Register(); err != nil {
			return nil, fmt.Errorf("failed to register metrics: %w", err)
		}
	}

	*middlewares = append(*middlewares, metrics.PrometheusMiddleware(commandMetrics))
	return planMetrics, nil
}

// withLogger returns a context carrying the application logger
func (a *app) withLogger(parent context.Context) context.Context {
	return common.WithLogger(parent, logging.NewAdapter(a.logger, log.Fields{"component": "cli"}))
}

// Close releases the database and log file
func (a *app) Close() {
	if a.db != nil {
		if err := database.Close(a.db); err != nil {
			a.logger.WithError(err).Warn("failed to close database")
		}
	}
	for _, c := range a.closers {
		_ = c.Close()
	}
}

func loadCatalogue(path string) (*catalogue.Catalogue, error) {
	if path == "" {
		return catalogue.Default(), nil
	}
	cat, err := cataloguefile.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalogue: %w", err)
	}
	return cat, nil
}

func engineDefaults(cfg config.EngineConfig) planning.EngineDefaults {
	return planning.EngineDefaults{
		SafetyFactor:               cfg.SafetyFactor,
		EnforceMinimumFullCoverage: cfg.EnforceMinimumFullCoverage,
		TurningMargin:              cfg.TurningMargin,
	}
}

func plannerDefaults(cfg config.PlannerConfig) planning.PlannerDefaults {
	return planning.PlannerDefaults{
		DailyHours:  cfg.DailyHours,
		WeatherPct:  cfg.WeatherPct,
		OverheadPct: cfg.OverheadPct,
		FuelPrice:   cfg.FuelPrice,
	}
}
