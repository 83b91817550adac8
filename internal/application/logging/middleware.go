package logging

import (
	"context"
	"reflect"
	"strings"
	"time"

	"github.com/andrescamacho/chainplanner/internal/application/mediator"
)

// Middleware logs every request dispatched through the mediator with its duration and outcome.
// The logger is taken from the request context.
func Middleware() mediator.Middleware {
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		logger := LoggerFromContext(ctx)
		name := RequestName(request)
		start := time.Now()

		response, err := next(ctx, request)

		metadata := map[string]interface{}{
			"request":     name,
			"duration_ms": time.Since(start).Milliseconds(),
		}
		if err != nil {
			metadata["error"] = err.Error()
			logger.Log(LevelError, "request failed", metadata)
			return response, err
		}

		logger.Log(LevelDebug, "request handled", metadata)
		return response, nil
	}
}

// RequestName returns the bare type name of a request.
// Examples:
//   - "*planning.BuildPlanCommand" → "BuildPlanCommand"
//   - "planning.ListFacilitiesQuery" → "ListFacilitiesQuery"
func RequestName(request mediator.Request) string {
	if request == nil {
		return "UnknownRequest"
	}

	fullName := strings.TrimPrefix(reflect.TypeOf(request).String(), "*")
	if idx := strings.LastIndex(fullName, "."); idx >= 0 {
		return fullName[idx+1:]
	}
	return fullName
}
