package metrics

import (
	"context"
	"time"

	"github.com/andrescamacho/chainplanner/internal/application/logging"
	"github.com/andrescamacho/chainplanner/internal/application/mediator"
)

// PrometheusMiddleware creates a middleware that records command execution metrics:
// execution duration (histogram) and success/failure counts (counter).
// Request names drop their package prefix, so "*commands.BuildPlanCommand" becomes "BuildPlanCommand".
func PrometheusMiddleware(collector *CommandMetricsCollector) mediator.Middleware {
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		// Skip metrics if collector is nil (metrics disabled)
		if collector == nil {
			return next(ctx, request)
		}

		start := time.Now()
		response, err := next(ctx, request)

		collector.RecordCommandExecution(logging.RequestName(request), time.Since(start).Seconds(), err == nil)
		return response, err
	}
}
