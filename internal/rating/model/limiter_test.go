package model_test

import (
	"context"
	"testing"
	"time"

	"github.com/resumerater/resumerater-backend/internal/rating/domain"
	"github.com/resumerater/resumerater-backend/internal/rating/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

type stubClient struct {
	calls int
}

func (s *stubClient) Name() string { return "stub" }

func (s *stubClient) Generate(_ context.Context, _ *domain.RenderedPage) (*domain.ModelReply, error) {
	s.calls++
	return &domain.ModelReply{Text: "5", Model: "stub"}, nil
}

func TestLimited_PassesThrough(t *testing.T) {
	stub := &stubClient{}
	c := model.NewLimited(rate.NewLimiter(rate.Inf, 1), stub)

	reply, err := c.Generate(context.Background(), &domain.RenderedPage{})
	require.NoError(t, err)
	assert.Equal(t, "5", reply.Text)
	assert.Equal(t, "stub", c.Name())
	assert.Equal(t, 1, stub.calls)
}

func TestLimited_NilLimiter(t *testing.T) {
	stub := &stubClient{}
	c := model.NewLimited(nil, stub)

	_, err := c.Generate(context.Background(), &domain.RenderedPage{})
	require.NoError(t, err)
	assert.Equal(t, 1, stub.calls)
}

func TestLimited_WaitHonorsContext(t *testing.T) {
	stub := &stubClient{}
	l := rate.NewLimiter(rate.Every(time.Hour), 1)
	c := model.NewLimited(l, stub)

	_, err := c.Generate(context.Background(), &domain.RenderedPage{})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err = c.Generate(ctx, &domain.RenderedPage{})
	assert.Error(t, err)
	assert.Equal(t, 1, stub.calls, "second call must not reach the model")
}
