package mediator_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/chainplanner/internal/application/mediator"
)

type pingQuery struct {
	Value string
}

type otherQuery struct{}

func echoHandler() mediator.HandlerFunc {
	return func(ctx context.Context, request mediator.Request) (mediator.Response, error) {
		return "pong:" + request.(*pingQuery).Value, nil
	}
}

func TestMediator_SendDispatchesByType(t *testing.T) {
	// Arrange
	med := mediator.NewMediator()
	require.NoError(t, mediator.RegisterHandler[*pingQuery](med, echoHandler()))

	// Act
	response, err := med.Send(context.Background(), &pingQuery{Value: "x"})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "pong:x", response)
}

func TestMediator_RegisterRejectsDuplicates(t *testing.T) {
	// Arrange
	med := mediator.NewMediator()
	require.NoError(t, mediator.RegisterHandler[*pingQuery](med, echoHandler()))

	// Act
	err := mediator.RegisterHandler[*pingQuery](med, echoHandler())

	// Assert
	assert.ErrorContains(t, err, "handler already registered")
}

func TestMediator_SendErrors(t *testing.T) {
	med := mediator.NewMediator()

	_, err := med.Send(context.Background(), nil)
	assert.ErrorContains(t, err, "request cannot be nil")

	_, err = med.Send(context.Background(), &otherQuery{})
	assert.ErrorContains(t, err, "no handler registered")

	assert.Error(t, med.Register(nil, echoHandler()))
}

func TestMediator_MiddlewareOrder(t *testing.T) {
	// Arrange
	med := mediator.NewMediator()
	require.NoError(t, mediator.RegisterHandler[*pingQuery](med, echoHandler()))

	var calls []string
	trace := func(name string) mediator.Middleware {
		return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
			calls = append(calls, name+":before")
			response, err := next(ctx, request)
			calls = append(calls, name+":after")
			return response, err
		}
	}
	med.RegisterMiddleware(trace("outer"))
	med.RegisterMiddleware(trace("inner"))

	// Act
	_, err := med.Send(context.Background(), &pingQuery{})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []string{"outer:before", "inner:before", "inner:after", "outer:after"}, calls)
}

func TestMediator_MiddlewareSeesHandlerError(t *testing.T) {
	// Arrange
	med := mediator.NewMediator()
	failure := errors.New("boom")
	require.NoError(t, mediator.RegisterHandler[*otherQuery](med, mediator.HandlerFunc(
		func(ctx context.Context, request mediator.Request) (mediator.Response, error) {
			return nil, failure
		})))

	var seen error
	med.RegisterMiddleware(func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		response, err := next(ctx, request)
		seen = err
		return response, err
	})

	// Act
	_, err := med.Send(context.Background(), &otherQuery{})

	// Assert
	assert.ErrorIs(t, err, failure)
	assert.ErrorIs(t, seen, failure)
}
