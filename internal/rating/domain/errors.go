package domain

import "fmt"

// DocumentError reports why a PDF could not be rendered.
type DocumentError struct {
	Reason string
	Err    error
}

func (e *DocumentError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", ErrInvalidDocument, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", ErrInvalidDocument, e.Reason)
}

// Unwrap exposes both the sentinel and the cause to errors.Is.
func (e *DocumentError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrInvalidDocument, e.Err}
	}
	return []error{ErrInvalidDocument}
}

// ModelError wraps a failed model call.
type ModelError struct {
	Model string
	Err   error
}

func (e *ModelError) Error() string {
	return fmt.Sprintf("%s (%s): %v", ErrModel, e.Model, e.Err)
}

func (e *ModelError) Unwrap() []error {
	return []error{ErrModel, e.Err}
}
