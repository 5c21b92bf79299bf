package httputil

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	apperrors "github.com/resumerater/resumerater-backend/pkg/errors"
	"github.com/resumerater/resumerater-backend/pkg/i18n"
	"github.com/resumerater/resumerater-backend/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	JSON(rec, http.StatusOK, map[string]int{"score": 7})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	resp := decode(t, rec)
	assert.True(t, resp.Success)
	assert.Equal(t, map[string]interface{}{"score": float64(7)}, resp.Data)
}

func TestError(t *testing.T) {
	t.Run("app error", func(t *testing.T) {
		rec := httptest.NewRecorder()
		Error(rec, apperrors.RatingNotFound(errors.New("no digits")))

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		resp := decode(t, rec)
		assert.False(t, resp.Success)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "RATING_NOT_FOUND", resp.Error.Code)
	})

	t.Run("plain error becomes internal", func(t *testing.T) {
		rec := httptest.NewRecorder()
		Error(rec, errors.New("secret detail"))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "secret detail")
		assert.Equal(t, "INTERNAL_ERROR", decode(t, rec).Error.Code)
	})
}

func TestErrorLocalized(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req = req.WithContext(i18n.WithLocale(req.Context(), i18n.LocaleGerman))
	rec := httptest.NewRecorder()

	ErrorLocalized(rec, req, apperrors.ModelUnavailable(errors.New("quota")))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, i18n.NewLocalizer(i18n.LocaleGerman).T("errors.model_unavailable"), decode(t, rec).Error.Message)
}

func TestStatusCode(t *testing.T) {
	assert.Equal(t, http.StatusServiceUnavailable, StatusCode(apperrors.ServiceBusy(errors.New("x"))))
	assert.Equal(t, http.StatusInternalServerError, StatusCode(errors.New("x")))
}

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	t.Run("generated", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.NotEmpty(t, seen)
		assert.Equal(t, seen, rec.Header().Get("X-Request-ID"))
	})

	t.Run("propagated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", "abc")
		h.ServeHTTP(httptest.NewRecorder(), req)
		assert.Equal(t, "abc", seen)
	})
}

func TestRecoverer(t *testing.T) {
	h := Recoverer(logger.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("kaboom")
	}))

	rec := httptest.NewRecorder()
	require.NotPanics(t, func() {
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

type upload struct {
	Filename string `validate:"required,txtfile"`
	Size     int64  `validate:"gt=0"`
}

func TestValidate(t *testing.T) {
	require.NoError(t, RegisterCustomValidation("txtfile", func(fl validator.FieldLevel) bool {
		return strings.HasSuffix(fl.Field().String(), ".txt")
	}))

	assert.NoError(t, Validate(upload{Filename: "a.txt", Size: 1}))

	err := Validate(upload{Filename: "a.doc", Size: 0})
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	assert.Equal(t, "invalid value", appErr.Details["Filename"])
	assert.Equal(t, "must be greater than 0", appErr.Details["Size"])
}
