package mediator_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/mbes-planner/internal/application/mediator"
)

type pingQuery struct{ Value int }

type pongResponse struct{ Value int }

func pingHandler() mediator.HandlerFunc {
	return func(ctx context.Context, request mediator.Request) (mediator.Response, error) {
		q := request.(*pingQuery)
		if q.Value < 0 {
			return nil, errors.New("negative")
		}
		return &pongResponse{Value: q.Value * 2}, nil
	}
}

func TestMediator_DispatchesByRequestType(t *testing.T) {
	m := mediator.NewMediator()
	require.NoError(t, mediator.RegisterHandler[*pingQuery](m, pingHandler()))

	resp, err := m.Send(context.Background(), &pingQuery{Value: 21})

	require.NoError(t, err)
	assert.Equal(t, 42, resp.(*pongResponse).Value)
}

func TestMediator_RejectsDuplicateAndUnknown(t *testing.T) {
	m := mediator.NewMediator()
	require.NoError(t, mediator.RegisterHandler[*pingQuery](m, pingHandler()))

	err := mediator.RegisterHandler[*pingQuery](m, pingHandler())
	assert.ErrorContains(t, err, "already registered")

	_, err = m.Send(context.Background(), &pongResponse{})
	assert.ErrorContains(t, err, "no handler registered")

	_, err = m.Send(context.Background(), nil)
	assert.Error(t, err)
}

func TestMediator_MiddlewareOrder(t *testing.T) {
	m := mediator.NewMediator()
	require.NoError(t, mediator.RegisterHandler[*pingQuery](m, pingHandler()))

	var calls []string
	trace := func(name string) mediator.Middleware {
		return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
			calls = append(calls, name+":before")
			resp, err := next(ctx, request)
			calls = append(calls, name+":after")
			return resp, err
		}
	}
	m.RegisterMiddleware(trace("outer"))
	m.RegisterMiddleware(trace("inner"))

	_, err := m.Send(context.Background(), &pingQuery{Value: -1})

	assert.EqualError(t, err, "negative")
	assert.Equal(t, []string{"outer:before", "inner:before", "inner:after", "outer:after"}, calls)
}
