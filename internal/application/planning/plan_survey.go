package planning

import (
	"context"
	"fmt"

	"github.com/andrescamacho/mbes-planner/internal/application/common"
	"github.com/andrescamacho/mbes-planner/internal/application/mediator"
	"github.com/andrescamacho/mbes-planner/internal/domain/history"
	"github.com/andrescamacho/mbes-planner/internal/domain/shared"
	"github.com/andrescamacho/mbes-planner/internal/domain/survey"
)

// PlanSurveyCommand runs the speed calculator followed by the area planner.
// With Save set the resulting plan is stored under a new ID.
type PlanSurveyCommand struct {
	Request PlanRequest
	Area    AreaRequest
	Save    bool
	Label   string
}

// PlanSurveyHandler handles PlanSurveyCommand
type PlanSurveyHandler struct {
	calculator *Calculator
	defaults   PlannerDefaults
	planRepo   history.PlanRepository
	clock      shared.Clock
}

// NewPlanSurveyHandler creates a new PlanSurveyHandler. planRepo may be nil
// when plans are never saved.
func NewPlanSurveyHandler(
	calculator *Calculator,
	defaults PlannerDefaults,
	planRepo history.PlanRepository,
	clock shared.Clock,
) *PlanSurveyHandler {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &PlanSurveyHandler{
		calculator: calculator,
		defaults:   defaults,
		planRepo:   planRepo,
		clock:      clock,
	}
}

// Handle executes the command
func (h *PlanSurveyHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*PlanSurveyCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *PlanSurveyCommand")
	}

	speed, err := h.calculator.Calculate(cmd.Request)
	if err != nil {
		return nil, err
	}

	plan, err := survey.PlanSurvey(speed.Plan, h.defaults.Area(cmd.Area))
	if err != nil {
		return nil, err
	}

	resp := &SurveyPlanResponse{
		Plan:       plan,
		DeadTime:   speed.DeadTime,
		BottomType: speed.BottomType,
		Warnings:   speed.Warnings,
	}

	if cmd.Save {
		id, err := h.save(ctx, cmd.Label, resp)
		if err != nil {
			return nil, err
		}
		resp.PlanID = id
	}

	common.LoggerFromContext(ctx).Log(common.LevelInfo, "survey plan calculated", map[string]interface{}{
		"order":      plan.SpeedPlan.Order,
		"line_count": plan.Estimate.LineCount,
		"days":       plan.Estimate.Days,
		"plan_id":    resp.PlanID,
	})

	return resp, nil
}

func (h *PlanSurveyHandler) save(ctx context.Context, label string, resp *SurveyPlanResponse) (string, error) {
	if h.planRepo == nil {
		return "", fmt.Errorf("plan history is not configured")
	}

	record, err := history.NewPlanRecord(h.clock.Now(), label, resp.DeadTime, resp.BottomType.Name, resp.Plan)
	if err != nil {
		return "", err
	}
	if err := h.planRepo.Save(ctx, record); err != nil {
		return "", fmt.Errorf("failed to save plan: %w", err)
	}
	return record.ID().String(), nil
}
