package planning

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/andrescamacho/mbes-planner/internal/application/common"
	"github.com/andrescamacho/mbes-planner/internal/application/mediator"
	"github.com/andrescamacho/mbes-planner/internal/domain/survey"
)

// DefaultSweepWorkers bounds concurrent scenario evaluations when none is configured
const DefaultSweepWorkers = 4

// Scenario is one named what-if case of a sweep
type Scenario struct {
	Name    string      `json:"name"`
	Request PlanRequest `json:"request"`
}

// RunSweepCommand evaluates independent scenarios concurrently
type RunSweepCommand struct {
	Scenarios []Scenario
}

// SweepResult holds either the plan or the error of one scenario
type SweepResult struct {
	Name     string            `json:"name"`
	Plan     *survey.SpeedPlan `json:"plan,omitempty"`
	Warnings []string          `json:"warnings,omitempty"`
	Error    *ErrorInfo        `json:"error,omitempty"`
}

// SweepResponse lists results in scenario order
type SweepResponse struct {
	Results   []SweepResult `json:"results"`
	Succeeded int           `json:"succeeded"`
	Failed    int           `json:"failed"`
}

// RunSweepHandler handles RunSweepCommand
type RunSweepHandler struct {
	calculator *Calculator
	workers    int
}

// NewRunSweepHandler creates a new RunSweepHandler
func NewRunSweepHandler(calculator *Calculator, workers int) *RunSweepHandler {
	if workers <= 0 {
		workers = DefaultSweepWorkers
	}
	return &RunSweepHandler{calculator: calculator, workers: workers}
}

// Handle executes the command. A failing scenario is reported in its result
// and never aborts the others; only cancellation of ctx fails the sweep.
func (h *RunSweepHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*RunSweepCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *RunSweepCommand")
	}

	results := make([]SweepResult, len(cmd.Scenarios))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(h.workers)

	for i, sc := range cmd.Scenarios {
		i, sc := i, sc
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			name := sc.Name
			if name == "" {
				name = fmt.Sprintf("scenario-%d", i+1)
			}
			results[i].Name = name

			resp, err := h.calculator.Calculate(sc.Request)
			if err != nil {
				results[i].Error = NewErrorInfo(err)
				return nil
			}
			results[i].Plan = resp.Plan
			results[i].Warnings = resp.Warnings
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("sweep cancelled: %w", err)
	}

	resp := &SweepResponse{Results: results}
	for _, r := range results {
		if r.Error != nil {
			resp.Failed++
		} else {
			resp.Succeeded++
		}
	}

	common.LoggerFromContext(ctx).Log(common.LevelInfo, "sweep completed", map[string]interface{}{
		"scenarios": len(results),
		"succeeded": resp.Succeeded,
		"failed":    resp.Failed,
		"workers":   h.workers,
	})

	return resp, nil
}
