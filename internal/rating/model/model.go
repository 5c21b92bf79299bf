package model

import (
	"context"

	"github.com/resumerater/resumerater-backend/internal/rating/domain"
)

// Prompt is the fixed instruction sent with every resume image.
const Prompt = "Rate this resume from 1 to 10. Start with the number only. Then give suggestions to improve this resume."

// Client sends a rendered page to a multimodal model and returns its reply.
type Client interface {
	Name() string
	Generate(ctx context.Context, page *domain.RenderedPage) (*domain.ModelReply, error)
}
