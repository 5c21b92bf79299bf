package errors

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/resumerater/resumerater-backend/pkg/i18n"
)

// Standard error types
var (
	ErrBadRequest    = errors.New("bad request")
	ErrTooLarge      = errors.New("payload too large")
	ErrUnprocessable = errors.New("unprocessable entity")
	ErrBadGateway    = errors.New("upstream failure")
	ErrUnavailable   = errors.New("service unavailable")
	ErrInternal      = errors.New("internal server error")
	ErrValidation    = errors.New("validation error")
)

// AppError represents an application error with context
type AppError struct {
	Err        error             `json:"-"`
	Message    string            `json:"message"`
	MessageKey string            `json:"-"` // i18n key for localization
	Params     map[string]string `json:"-"` // Parameters for i18n interpolation
	Code       string            `json:"code"`
	StatusCode int               `json:"status_code"`
	Details    map[string]string `json:"details,omitempty"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *AppError) Unwrap() error {
	return e.Err
}

// Localize returns a localized version of the error message
func (e *AppError) Localize(ctx context.Context) string {
	if e.MessageKey == "" {
		return e.Message
	}
	return i18n.TFromContext(ctx, e.MessageKey, e.Params)
}

// New creates a new AppError
func New(code string, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

// Wrap wraps an error with additional context
func Wrap(err error, code string, message string, statusCode int) *AppError {
	return &AppError{
		Err:        err,
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

// WithDetails adds details to an AppError
func (e *AppError) WithDetails(details map[string]string) *AppError {
	e.Details = details
	return e
}

// Common error constructors

func BadRequest(message string) *AppError {
	return &AppError{
		Err:        ErrBadRequest,
		Code:       "BAD_REQUEST",
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

// BadRequestWithKey creates a bad request error whose message is looked up in the catalog.
func BadRequestWithKey(messageKey string) *AppError {
	return &AppError{
		Err:        ErrBadRequest,
		Code:       "BAD_REQUEST",
		Message:    i18n.T(messageKey),
		MessageKey: messageKey,
		StatusCode: http.StatusBadRequest,
	}
}

func FileTooLarge(limit int64) *AppError {
	params := map[string]string{"limit": fmt.Sprintf("%d MB", limit>>20)}
	return &AppError{
		Err:        ErrTooLarge,
		Code:       "FILE_TOO_LARGE",
		Message:    i18n.T("errors.file_too_large", params),
		MessageKey: "errors.file_too_large",
		Params:     params,
		StatusCode: http.StatusRequestEntityTooLarge,
	}
}

func InvalidDocument(err error) *AppError {
	return &AppError{
		Err:        fmt.Errorf("%w: %w", ErrUnprocessable, err),
		Code:       "INVALID_DOCUMENT",
		Message:    i18n.T("errors.invalid_document"),
		MessageKey: "errors.invalid_document",
		StatusCode: http.StatusUnprocessableEntity,
	}
}

func RatingNotFound(err error) *AppError {
	return &AppError{
		Err:        fmt.Errorf("%w: %w", ErrUnprocessable, err),
		Code:       "RATING_NOT_FOUND",
		Message:    i18n.T("errors.rating_not_found"),
		MessageKey: "errors.rating_not_found",
		StatusCode: http.StatusUnprocessableEntity,
	}
}

func ModelUnavailable(err error) *AppError {
	return &AppError{
		Err:        fmt.Errorf("%w: %w", ErrBadGateway, err),
		Code:       "MODEL_UNAVAILABLE",
		Message:    i18n.T("errors.model_unavailable"),
		MessageKey: "errors.model_unavailable",
		StatusCode: http.StatusBadGateway,
	}
}

func ServiceBusy(err error) *AppError {
	return &AppError{
		Err:        fmt.Errorf("%w: %w", ErrUnavailable, err),
		Code:       "SERVICE_BUSY",
		Message:    i18n.T("errors.service_busy"),
		MessageKey: "errors.service_busy",
		StatusCode: http.StatusServiceUnavailable,
	}
}

func Internal(message string) *AppError {
	return &AppError{
		Err:        ErrInternal,
		Code:       "INTERNAL_ERROR",
		Message:    message,
		MessageKey: "errors.internal",
		StatusCode: http.StatusInternalServerError,
	}
}

// InternalWithCause keeps err reachable for logging while clients only see
// the generic message.
func InternalWithCause(message string, err error) *AppError {
	return &AppError{
		Err:        fmt.Errorf("%w: %w", ErrInternal, err),
		Code:       "INTERNAL_ERROR",
		Message:    message,
		MessageKey: "errors.internal",
		StatusCode: http.StatusInternalServerError,
	}
}

func Validation(details map[string]string) *AppError {
	return &AppError{
		Err:        ErrValidation,
		Code:       "VALIDATION_ERROR",
		Message:    "validation failed",
		MessageKey: "errors.validation_failed",
		StatusCode: http.StatusBadRequest,
		Details:    details,
	}
}

// Is checks if the error matches a target error
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As attempts to convert an error to a specific type
func As(err error, target any) bool {
	return errors.As(err, target)
}
