package model

import (
	"context"

	"github.com/resumerater/resumerater-backend/internal/rating/domain"
	"golang.org/x/time/rate"
)

type limitedClient struct {
	limiter *rate.Limiter
	client  Client
}

// NewLimited wraps c so that calls wait for a token from l.
// A nil limiter disables limiting.
func NewLimited(l *rate.Limiter, c Client) Client {
	return &limitedClient{
		limiter: l,
		client:  c,
	}
}

func (c *limitedClient) Name() string { return c.client.Name() }

func (c *limitedClient) Generate(ctx context.Context, page *domain.RenderedPage) (*domain.ModelReply, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	return c.client.Generate(ctx, page)
}
