package events

import (
	"context"

	"github.com/resumerater/resumerater-backend/internal/rating/domain"
	"github.com/resumerater/resumerater-backend/pkg/logger"
	"github.com/resumerater/resumerater-backend/pkg/messaging"
)

// Source identifies this service in published events.
const Source = "resume-service"

// RatingEventPublisher publishes rating-related events.
// A nil *RatingEventPublisher is valid and publishes nothing.
type RatingEventPublisher struct {
	publisher *messaging.Publisher
	logger    *logger.Logger
}

// NewRatingEventPublisher creates a new rating event publisher
func NewRatingEventPublisher(rmq *messaging.RabbitMQ, exchange string, log *logger.Logger) (*RatingEventPublisher, error) {
	if exchange == "" {
		exchange = messaging.ExchangeRatingEvents
	}

	publisher, err := messaging.NewPublisher(rmq, exchange, Source, log)
	if err != nil {
		return nil, err
	}

	return &RatingEventPublisher{
		publisher: publisher,
		logger:    log,
	}, nil
}

// PublishResumeRated publishes a resume rated event. Failures are logged, not returned.
func (p *RatingEventPublisher) PublishResumeRated(ctx context.Context, rating *domain.Rating) {
	if p == nil {
		return
	}

	if err := p.publisher.Publish(ctx, messaging.EventResumeRated, ResumeRated(rating)); err != nil {
		p.logger.Error().Err(err).Str("rating_id", rating.ID).Msg("failed to publish resume rated event")
	}
}

// ResumeRated builds the event payload for a rating. Suggestions stay out of the event.
func ResumeRated(rating *domain.Rating) messaging.ResumeRatedEvent {
	return messaging.ResumeRatedEvent{
		RatingID:   rating.ID,
		Filename:   rating.Filename,
		Score:      rating.Score,
		MaxScore:   rating.MaxScore,
		Model:      rating.Model,
		PageCount:  rating.PageCount,
		DurationMs: rating.DurationMs,
	}
}
