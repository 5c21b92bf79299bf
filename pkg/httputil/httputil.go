package httputil

import (
	"encoding/json"
	"net/http"

	"github.com/resumerater/resumerater-backend/pkg/errors"
	"github.com/resumerater/resumerater-backend/pkg/i18n"
)

// Response is a standard API response
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorBody  `json:"error,omitempty"`
}

// ErrorBody represents an error in the response
type ErrorBody struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// JSON sends a JSON response
func JSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	response := Response{
		Success: statusCode >= 200 && statusCode < 300,
		Data:    data,
	}

	json.NewEncoder(w).Encode(response)
}

// Error sends an error response (uses default locale)
func Error(w http.ResponseWriter, err error) {
	writeError(w, err, func(appErr *errors.AppError) string { return appErr.Message }, i18n.T("errors.internal"))
}

// ErrorLocalized sends a localized error response using request context
func ErrorLocalized(w http.ResponseWriter, r *http.Request, err error) {
	localize := func(appErr *errors.AppError) string { return appErr.Localize(r.Context()) }
	writeError(w, err, localize, i18n.TFromContext(r.Context(), "errors.internal"))
}

func writeError(w http.ResponseWriter, err error, message func(*errors.AppError) string, fallback string) {
	w.Header().Set("Content-Type", "application/json")

	var appErr *errors.AppError
	if errors.As(err, &appErr) {
		w.WriteHeader(appErr.StatusCode)
		json.NewEncoder(w).Encode(Response{
			Success: false,
			Error: &ErrorBody{
				Code:    appErr.Code,
				Message: message(appErr),
				Details: appErr.Details,
			},
		})
		return
	}

	// Default to internal server error
	w.WriteHeader(http.StatusInternalServerError)
	json.NewEncoder(w).Encode(Response{
		Success: false,
		Error: &ErrorBody{
			Code:    "INTERNAL_ERROR",
			Message: fallback,
		},
	})
}

// StatusCode returns the HTTP status an error maps to.
func StatusCode(err error) int {
	var appErr *errors.AppError
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}
