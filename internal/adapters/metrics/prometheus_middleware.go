package metrics

import (
	"context"
	"time"

	"github.com/andrescamacho/mbes-planner/internal/application/common"
	"github.com/andrescamacho/mbes-planner/internal/application/mediator"
	"github.com/andrescamacho/mbes-planner/internal/domain/shared"
)

// PrometheusMiddleware creates a middleware that records command execution metrics
//
// Command names drop the package prefix, so "*planning.RunSweepCommand"
// is recorded as "RunSweepCommand".
func PrometheusMiddleware(collector *CommandMetricsCollector) mediator.Middleware {
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		// Skip metrics if collector is nil (metrics disabled)
		if collector == nil {
			return next(ctx, request)
		}

		start := time.Now()
		response, err := next(ctx, request)

		collector.RecordCommandExecution(common.RequestName(request), time.Since(start).Seconds(), commandStatus(err))

		return response, err
	}
}

func commandStatus(err error) string {
	switch {
	case err == nil:
		return "success"
	case shared.KindOf(err) != shared.KindUnknown:
		return "rejected"
	default:
		return "error"
	}
}
