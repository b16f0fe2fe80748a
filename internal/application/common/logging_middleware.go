package common

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/andrescamacho/mbes-planner/internal/application/mediator"
	"github.com/andrescamacho/mbes-planner/internal/domain/shared"
)

// LoggingMiddleware logs every request with its outcome and duration. Engine
// errors are expected outcomes of bad input and are logged as warnings.
func LoggingMiddleware() mediator.Middleware {
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		logger := LoggerFromContext(ctx)
		name := RequestName(request)

		start := time.Now()
		response, err := next(ctx, request)
		elapsed := time.Since(start)

		fields := map[string]interface{}{
			"request":     name,
			"duration_ms": float64(elapsed.Microseconds()) / 1000,
		}

		switch {
		case err == nil:
			logger.Log(LevelDebug, "request handled", fields)
		case shared.IsEngineError(err):
			fields["kind"] = string(shared.KindOf(err))
			fields["error"] = err.Error()
			logger.Log(LevelWarn, "request rejected", fields)
		default:
			fields["error"] = err.Error()
			logger.Log(LevelError, "request failed", fields)
		}

		return response, err
	}
}

// RequestName returns the bare type name of a request, e.g. "CalculateSpeedPlanCommand"
func RequestName(request mediator.Request) string {
	if request == nil {
		return "UnknownRequest"
	}
	name := strings.TrimPrefix(fmt.Sprintf("%T", request), "*")
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	return name
}
