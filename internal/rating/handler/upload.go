package handler

import (
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/resumerater/resumerater-backend/internal/rating/domain"
	apperrors "github.com/resumerater/resumerater-backend/pkg/errors"
	"github.com/resumerater/resumerater-backend/pkg/httputil"
)

// FormField is the multipart field carrying the PDF.
const FormField = "resume"

// multipartOverhead leaves room for boundaries and headers around the file.
const multipartOverhead = 1 << 20

var registerOnce sync.Once

func registerValidations() {
	registerOnce.Do(func() {
		_ = httputil.RegisterCustomValidation("pdffile", func(fl validator.FieldLevel) bool {
			return strings.EqualFold(filepath.Ext(fl.Field().String()), ".pdf")
		})
	})
}

// uploadRequest is what we know about an upload before reading it.
type uploadRequest struct {
	Filename string `validate:"required,pdffile"`
	Size     int64  `validate:"gt=0"`
}

// readUpload pulls the PDF out of a multipart request. The file is held in
// memory only; multipart temp files are removed before returning.
func readUpload(w http.ResponseWriter, r *http.Request, maxSize int64) (*domain.UploadedDocument, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxSize+multipartOverhead)

	if err := r.ParseMultipartForm(maxSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, apperrors.FileTooLarge(maxSize)
		}
		return nil, apperrors.BadRequestWithKey("errors.bad_request")
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile(FormField)
	if err != nil {
		return nil, apperrors.BadRequestWithKey("errors.missing_file")
	}
	defer file.Close()

	if err := validateUpload(uploadRequest{Filename: header.Filename, Size: header.Size}); err != nil {
		return nil, err
	}
	if header.Size > maxSize {
		return nil, apperrors.FileTooLarge(maxSize)
	}

	data, err := io.ReadAll(io.LimitReader(file, maxSize+1))
	if err != nil {
		return nil, apperrors.InternalWithCause("failed to read upload", err)
	}
	if int64(len(data)) > maxSize {
		clear(data)
		return nil, apperrors.FileTooLarge(maxSize)
	}

	return &domain.UploadedDocument{Filename: header.Filename, Data: data}, nil
}

// validateUpload runs struct validation and picks a message matching the first problem.
func validateUpload(req uploadRequest) error {
	err := httputil.Validate(req)
	if err == nil {
		return nil
	}

	var appErr *apperrors.AppError
	if !apperrors.As(err, &appErr) {
		return err
	}

	switch {
	case appErr.Details["Filename"] != "":
		appErr.MessageKey = "errors.not_pdf"
	case appErr.Details["Size"] != "":
		appErr.MessageKey = "errors.empty_file"
	}
	return appErr
}
