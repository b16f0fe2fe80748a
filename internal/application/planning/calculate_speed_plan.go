package planning

import (
	"context"
	"fmt"

	"github.com/andrescamacho/mbes-planner/internal/application/common"
	"github.com/andrescamacho/mbes-planner/internal/application/mediator"
)

// CalculateSpeedPlanCommand runs the speed calculator for one request
type CalculateSpeedPlanCommand struct {
	Request PlanRequest
}

// CalculateSpeedPlanHandler handles CalculateSpeedPlanCommand
type CalculateSpeedPlanHandler struct {
	calculator *Calculator
}

// NewCalculateSpeedPlanHandler creates a new CalculateSpeedPlanHandler
func NewCalculateSpeedPlanHandler(calculator *Calculator) *CalculateSpeedPlanHandler {
	return &CalculateSpeedPlanHandler{calculator: calculator}
}

// Handle executes the command
func (h *CalculateSpeedPlanHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*CalculateSpeedPlanCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *CalculateSpeedPlanCommand")
	}

	resp, err := h.calculator.Calculate(cmd.Request)
	if err != nil {
		return nil, err
	}

	common.LoggerFromContext(ctx).Log(common.LevelInfo, "speed plan calculated", map[string]interface{}{
		"order":        resp.Plan.Order,
		"depth_m":      resp.Plan.Inputs.Depth,
		"max_knots":    resp.Plan.Speeds.Max.Knots,
		"dead_time_by": string(resp.DeadTime.Source),
		"detection":    string(resp.Plan.Detection.Status),
	})

	return resp, nil
}
