package planning

import (
	"context"
	"fmt"
	"time"

	"github.com/andrescamacho/mbes-planner/internal/application/mediator"
	"github.com/andrescamacho/mbes-planner/internal/domain/catalogue"
	"github.com/andrescamacho/mbes-planner/internal/domain/history"
	"github.com/andrescamacho/mbes-planner/internal/domain/shared"
	"github.com/andrescamacho/mbes-planner/internal/domain/survey"
)

// DefaultListLimit caps ListPlansQuery when no limit is given
const DefaultListLimit = 20

// PlanSummaryDTO is the list view of a stored plan
type PlanSummaryDTO struct {
	ID           string                   `json:"id"`
	CreatedAt    time.Time                `json:"created_at"`
	Label        string                   `json:"label,omitempty"`
	Order        string                   `json:"order"`
	Depth        float64                  `json:"depth_m"`
	Coverage     float64                  `json:"coverage_pct"`
	MaxKnots     float64                  `json:"max_knots"`
	OptimumKnots float64                  `json:"optimum_knots"`
	LineCount    int                      `json:"line_count"`
	Days         float64                  `json:"days"`
	FuelCost     shared.Optional[float64] `json:"fuel_cost"`
}

// PlanDetailDTO is a stored plan with everything it was computed from
type PlanDetailDTO struct {
	PlanSummaryDTO
	DeadTime   catalogue.ResolvedDeadTime `json:"dead_time"`
	BottomType string                     `json:"bottom_type"`
	Plan       *survey.SurveyPlan         `json:"plan"`
}

func toSummary(r *history.PlanRecord) PlanSummaryDTO {
	p := r.Plan()
	return PlanSummaryDTO{
		ID:           r.ID().String(),
		CreatedAt:    r.CreatedAt(),
		Label:        r.Label(),
		Order:        r.Order(),
		Depth:        p.SpeedPlan.Inputs.Depth,
		Coverage:     p.SpeedPlan.Coverage.Effective,
		MaxKnots:     p.SpeedPlan.Speeds.Max.Knots,
		OptimumKnots: p.SpeedPlan.Speeds.Optimum.Knots,
		LineCount:    p.Estimate.LineCount,
		Days:         p.Estimate.Days,
		FuelCost:     p.Estimate.FuelCost,
	}
}

// GetPlanQuery retrieves one stored plan
type GetPlanQuery struct {
	ID string
}

// GetPlanHandler handles GetPlanQuery
type GetPlanHandler struct {
	planRepo history.PlanRepository
}

// NewGetPlanHandler creates a new GetPlanHandler
func NewGetPlanHandler(planRepo history.PlanRepository) *GetPlanHandler {
	return &GetPlanHandler{planRepo: planRepo}
}

// Handle executes the query
func (h *GetPlanHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*GetPlanQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetPlanQuery")
	}

	id, err := history.ParsePlanID(query.ID)
	if err != nil {
		return nil, err
	}

	record, err := h.planRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return &PlanDetailDTO{
		PlanSummaryDTO: toSummary(record),
		DeadTime:       record.DeadTime(),
		BottomType:     record.BottomType(),
		Plan:           record.Plan(),
	}, nil
}

// ListPlansQuery lists the most recent stored plans
type ListPlansQuery struct {
	Limit int
}

// ListPlansResponse is the result of ListPlansQuery
type ListPlansResponse struct {
	Plans []PlanSummaryDTO `json:"plans"`
}

// ListPlansHandler handles ListPlansQuery
type ListPlansHandler struct {
	planRepo history.PlanRepository
}

// NewListPlansHandler creates a new ListPlansHandler
func NewListPlansHandler(planRepo history.PlanRepository) *ListPlansHandler {
	return &ListPlansHandler{planRepo: planRepo}
}

// Handle executes the query
func (h *ListPlansHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*ListPlansQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ListPlansQuery")
	}

	limit := query.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}

	records, err := h.planRepo.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}

	plans := make([]PlanSummaryDTO, len(records))
	for i, r := range records {
		plans[i] = toSummary(r)
	}
	return &ListPlansResponse{Plans: plans}, nil
}
