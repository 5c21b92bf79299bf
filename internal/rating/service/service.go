package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/resumerater/resumerater-backend/internal/rating/domain"
	"github.com/resumerater/resumerater-backend/internal/rating/model"
	"github.com/resumerater/resumerater-backend/internal/rating/parser"
	apperrors "github.com/resumerater/resumerater-backend/pkg/errors"
	"github.com/resumerater/resumerater-backend/pkg/logger"
	"golang.org/x/sync/semaphore"
)

// publishTimeout bounds the background event publish after a rating.
const publishTimeout = 10 * time.Second

// Renderer turns an uploaded PDF into an image of its first page.
type Renderer interface {
	Render(ctx context.Context, doc *domain.UploadedDocument) (*domain.RenderedPage, error)
}

// EventPublisher is notified about every successful rating.
type EventPublisher interface {
	PublishResumeRated(ctx context.Context, rating *domain.Rating)
}

// Service orchestrates a rating: render page one → ask the model → parse the reply.
type Service struct {
	renderer  Renderer
	model     model.Client
	publisher EventPublisher
	sem       *semaphore.Weighted
	log       *logger.Logger

	now func() time.Time
}

// NewService creates a new rating service. At most maxConcurrent ratings run
// at once; further callers wait until a slot frees or their context ends.
// publisher may be nil.
func NewService(renderer Renderer, client model.Client, publisher EventPublisher, maxConcurrent int, log *logger.Logger) *Service {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}

	return &Service{
		renderer:  renderer,
		model:     client,
		publisher: publisher,
		sem:       semaphore.NewWeighted(int64(maxConcurrent)),
		log:       log.WithComponent("rating"),
		now:       time.Now,
	}
}

// Rate scores one uploaded resume. doc.Data is zeroed before the model is
// called, whatever the outcome. All returned errors are *apperrors.AppError.
func (s *Service) Rate(ctx context.Context, doc *domain.UploadedDocument) (*domain.Rating, error) {
	start := s.now()
	id := uuid.NewString()
	log := s.log.With().Str("rating_id", id).Str("filename", doc.Filename).Logger()

	if err := s.sem.Acquire(ctx, 1); err != nil {
		clear(doc.Data)
		log.Warn().Err(err).Msg("gave up waiting for a free slot")
		return nil, apperrors.ServiceBusy(err)
	}
	defer s.sem.Release(1)

	page, err := s.renderer.Render(ctx, doc)
	// the PDF is not needed past this point
	clear(doc.Data)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidDocument) {
			log.Info().Err(err).Msg("rejected document")
			return nil, apperrors.InvalidDocument(err)
		}
		log.Error().Err(err).Msg("rendering failed")
		return nil, apperrors.InternalWithCause("failed to render document", err)
	}

	log.Debug().Int("page_count", page.PageCount).Int("png_bytes", len(page.Data)).Msg("page rendered")

	reply, err := s.model.Generate(ctx, page)
	clear(page.Data)
	if err != nil {
		log.Error().Err(err).Str("model", s.model.Name()).Msg("model call failed")
		return nil, apperrors.ModelUnavailable(err)
	}

	parsed, err := parser.Parse(reply.Text)
	if err != nil {
		log.Warn().Err(err).Int("reply_len", len(reply.Text)).Msg("no rating in model reply")
		return nil, apperrors.RatingNotFound(err)
	}

	rating := &domain.Rating{
		ID:          id,
		Filename:    doc.Filename,
		Score:       parsed.Score,
		MaxScore:    domain.MaxScore,
		Suggestions: parsed.Suggestions,
		Model:       reply.Model,
		PageCount:   page.PageCount,
		DurationMs:  s.now().Sub(start).Milliseconds(),
		CreatedAt:   start.UTC(),
	}

	log.Info().
		Int("score", rating.Score).
		Str("model", rating.Model).
		Int64("duration_ms", rating.DurationMs).
		Msg("resume rated")

	if s.publisher != nil {
		// detached so a closed request does not drop the event
		pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
		go func() {
			defer cancel()
			s.publisher.PublishResumeRated(pubCtx, rating)
		}()
	}

	return rating, nil
}
