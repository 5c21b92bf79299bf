package domain

import (
	"errors"
	"time"
)

const (
	// MaxScore is the top of the fixed rating scale.
	MaxScore = 10

	// PNGMIMEType is the content type of every rendered page.
	PNGMIMEType = "image/png"

	// NoSuggestions is shown when the reply carries nothing after the score line.
	NoSuggestions = "No suggestions found."
)

var (
	// ErrInvalidDocument marks uploads that cannot be opened or have no pages.
	ErrInvalidDocument = errors.New("invalid document")

	// ErrModel marks failures talking to the remote model.
	ErrModel = errors.New("model request failed")
)

// UploadedDocument is the raw PDF of one request.
// Data is zeroed once the page has been rendered.
type UploadedDocument struct {
	Filename string
	Data     []byte
}

// RenderedPage is page one of an UploadedDocument as a PNG.
type RenderedPage struct {
	Data      []byte
	MIMEType  string
	DPI       int
	PageCount int
}

// ModelReply is the untouched text the model returned.
type ModelReply struct {
	Text  string
	Model string
}

// ParsedResult is the score and suggestions read from a ModelReply.
type ParsedResult struct {
	Score       int    `json:"score"`
	Suggestions string `json:"suggestions"`
}

// Rating is what a caller receives for one uploaded resume.
type Rating struct {
	ID          string    `json:"id"`
	Filename    string    `json:"filename"`
	Score       int       `json:"score"`
	MaxScore    int       `json:"max_score"`
	Suggestions string    `json:"suggestions"`
	Model       string    `json:"model"`
	PageCount   int       `json:"page_count"`
	DurationMs  int64     `json:"duration_ms"`
	CreatedAt   time.Time `json:"created_at"`
}
