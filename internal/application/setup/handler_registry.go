package setup

import (
	"fmt"

	"github.com/andrescamacho/mbes-planner/internal/application/mediator"
	"github.com/andrescamacho/mbes-planner/internal/application/planning"
	"github.com/andrescamacho/mbes-planner/internal/domain/catalogue"
	"github.com/andrescamacho/mbes-planner/internal/domain/history"
	"github.com/andrescamacho/mbes-planner/internal/domain/shared"
)

// HandlerRegistry holds all application dependencies for handler creation
type HandlerRegistry struct {
	catalogue       *catalogue.Catalogue
	engineDefaults  planning.EngineDefaults
	plannerDefaults planning.PlannerDefaults
	sweepWorkers    int
	planRepo        history.PlanRepository
	clock           shared.Clock
	observer        planning.PlanObserver
}

// NewHandlerRegistry creates a new handler registry. planRepo and observer
// may be nil: history handlers are then skipped and no plan metrics recorded.
func NewHandlerRegistry(
	cat *catalogue.Catalogue,
	engineDefaults planning.EngineDefaults,
	plannerDefaults planning.PlannerDefaults,
	sweepWorkers int,
	planRepo history.PlanRepository,
	clock shared.Clock,
	observer planning.PlanObserver,
) *HandlerRegistry {
	// Default to real clock if not provided
	if clock == nil {
		clock = shared.NewRealClock()
	}
	if cat == nil {
		cat = catalogue.Default()
	}

	return &HandlerRegistry{
		catalogue:       cat,
		engineDefaults:  engineDefaults,
		plannerDefaults: plannerDefaults,
		sweepWorkers:    sweepWorkers,
		planRepo:        planRepo,
		clock:           clock,
		observer:        observer,
	}
}

// RegisterPlanningHandlers registers the calculator, planner, sweep and
// catalogue handlers with the mediator
func (r *HandlerRegistry) RegisterPlanningHandlers(m mediator.Mediator) error {
	calculator := planning.NewCalculator(r.catalogue, r.engineDefaults, r.observer)

	if err := mediator.RegisterHandler[*planning.CalculateSpeedPlanCommand](m,
		planning.NewCalculateSpeedPlanHandler(calculator)); err != nil {
		return fmt.Errorf("failed to register CalculateSpeedPlan handler: %w", err)
	}

	if err := mediator.RegisterHandler[*planning.PlanSurveyCommand](m,
		planning.NewPlanSurveyHandler(calculator, r.plannerDefaults, r.planRepo, r.clock)); err != nil {
		return fmt.Errorf("failed to register PlanSurvey handler: %w", err)
	}

	if err := mediator.RegisterHandler[*planning.RunSweepCommand](m,
		planning.NewRunSweepHandler(calculator, r.sweepWorkers)); err != nil {
		return fmt.Errorf("failed to register RunSweep handler: %w", err)
	}

	if err := mediator.RegisterHandler[*planning.ListCatalogueQuery](m,
		planning.NewListCatalogueHandler(r.catalogue)); err != nil {
		return fmt.Errorf("failed to register ListCatalogue handler: %w", err)
	}

	return nil
}

// RegisterHistoryHandlers registers the stored plan queries
func (r *HandlerRegistry) RegisterHistoryHandlers(m mediator.Mediator) error {
	if err := mediator.RegisterHandler[*planning.GetPlanQuery](m,
		planning.NewGetPlanHandler(r.planRepo)); err != nil {
		return fmt.Errorf("failed to register GetPlan handler: %w", err)
	}

	if err := mediator.RegisterHandler[*planning.ListPlansQuery](m,
		planning.NewListPlansHandler(r.planRepo)); err != nil {
		return fmt.Errorf("failed to register ListPlans handler: %w", err)
	}

	return nil
}

// CreateConfiguredMediator creates a mediator with the given middleware and
// every handler whose dependencies are available
func (r *HandlerRegistry) CreateConfiguredMediator(middlewares ...mediator.Middleware) (mediator.Mediator, error) {
	m := mediator.NewMediator()

	// Middleware must be registered before handlers are used
	for _, mw := range middlewares {
		m.RegisterMiddleware(mw)
	}

	if err := r.RegisterPlanningHandlers(m); err != nil {
		return nil, err
	}

	if r.planRepo != nil {
		if err := r.RegisterHistoryHandlers(m); err != nil {
			return nil, err
		}
	}

	return m, nil
}
