package handler

import (
	"bytes"
	"context"
	"net/http"

	"github.com/resumerater/resumerater-backend/internal/rating/domain"
	"github.com/resumerater/resumerater-backend/internal/rating/presenter"
	"github.com/resumerater/resumerater-backend/internal/rating/service"
	apperrors "github.com/resumerater/resumerater-backend/pkg/errors"
	"github.com/resumerater/resumerater-backend/pkg/httputil"
	"github.com/resumerater/resumerater-backend/pkg/i18n"
	"github.com/resumerater/resumerater-backend/pkg/logger"
)

var _ Rater = (*service.Service)(nil)

// Rater scores an uploaded resume.
type Rater interface {
	Rate(ctx context.Context, doc *domain.UploadedDocument) (*domain.Rating, error)
}

// Handler handles HTTP requests for resume rating
type Handler struct {
	rater     Rater
	presenter *presenter.Presenter
	maxSize   int64
	log       *logger.Logger
}

// NewHandler creates a new rating handler
func NewHandler(rater Rater, p *presenter.Presenter, maxSize int64, log *logger.Logger) *Handler {
	registerValidations()

	return &Handler{
		rater:     rater,
		presenter: p,
		maxSize:   maxSize,
		log:       log,
	}
}

// Index handles GET /
// Renders the upload form.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := h.presenter.RenderIndex(&buf, i18n.GetLocaleFromContext(r.Context()), h.maxSize); err != nil {
		h.log.Error().Err(err).Msg("failed to render index")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	writeHTML(w, http.StatusOK, buf.Bytes())
}

// Rate handles POST /rate
// Accepts multipart form with:
// - resume: the PDF file
// Responds with an HTML page showing the gauge and suggestions.
func (h *Handler) Rate(w http.ResponseWriter, r *http.Request) {
	locale := i18n.GetLocaleFromContext(r.Context())

	doc, err := readUpload(w, r, h.maxSize)
	if err != nil {
		h.renderError(w, r, "", err)
		return
	}

	rating, err := h.rater.Rate(r.Context(), doc)
	if err != nil {
		h.renderError(w, r, doc.Filename, err)
		return
	}

	var buf bytes.Buffer
	if err := h.presenter.RenderResult(&buf, locale, rating); err != nil {
		h.renderError(w, r, doc.Filename, apperrors.InternalWithCause("failed to render result", err))
		return
	}

	writeHTML(w, http.StatusOK, buf.Bytes())
}

// APIRate handles POST /api/v1/ratings
// Same input as Rate; responds with the rating as JSON.
func (h *Handler) APIRate(w http.ResponseWriter, r *http.Request) {
	doc, err := readUpload(w, r, h.maxSize)
	if err != nil {
		h.logFailure(r, err)
		httputil.ErrorLocalized(w, r, err)
		return
	}

	rating, err := h.rater.Rate(r.Context(), doc)
	if err != nil {
		h.logFailure(r, err)
		httputil.ErrorLocalized(w, r, err)
		return
	}

	httputil.JSON(w, http.StatusOK, rating)
}

func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, filename string, err error) {
	h.logFailure(r, err)

	status := httputil.StatusCode(err)
	message := i18n.TFromContext(r.Context(), "errors.internal")
	var appErr *apperrors.AppError
	if apperrors.As(err, &appErr) {
		message = appErr.Localize(r.Context())
	}

	var buf bytes.Buffer
	if rerr := h.presenter.RenderError(&buf, i18n.GetLocaleFromContext(r.Context()), filename, message); rerr != nil {
		h.log.Error().Err(rerr).Msg("failed to render error page")
		http.Error(w, message, status)
		return
	}

	writeHTML(w, status, buf.Bytes())
}

func (h *Handler) logFailure(r *http.Request, err error) {
	evt := h.log.Warn()
	if httputil.StatusCode(err) >= http.StatusInternalServerError {
		evt = h.log.Error()
	}
	evt.Err(err).
		Str("request_id", httputil.GetRequestID(r.Context())).
		Int("status", httputil.StatusCode(err)).
		Msg("rating request failed")
}

func writeHTML(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
