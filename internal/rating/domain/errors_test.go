package domain_test

import (
	"context"
	"errors"
	"testing"

	"github.com/resumerater/resumerater-backend/internal/rating/domain"
	"github.com/stretchr/testify/assert"
)

func TestDocumentError(t *testing.T) {
	cause := errors.New("xref table broken")
	err := error(&domain.DocumentError{Reason: "cannot open", Err: cause})

	assert.True(t, errors.Is(err, domain.ErrInvalidDocument))
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, "invalid document: cannot open: xref table broken", err.Error())

	noCause := &domain.DocumentError{Reason: "no pages"}
	assert.True(t, errors.Is(noCause, domain.ErrInvalidDocument))
	assert.Equal(t, "invalid document: no pages", noCause.Error())
}

func TestModelError(t *testing.T) {
	err := error(&domain.ModelError{Model: "gemini-2.5-flash", Err: context.DeadlineExceeded})

	assert.True(t, errors.Is(err, domain.ErrModel))
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.Contains(t, err.Error(), "gemini-2.5-flash")
}
