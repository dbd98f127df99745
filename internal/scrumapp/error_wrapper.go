package scrumapp

import (
	"github.com/google/uuid"
)

// Guidance shown with the error view.
const (
	GuidanceLoadFailed = "Scrumdinger will load sample data and continue."
	GuidanceSaveFailed = "Try again later."
)

// ErrorWrapper pairs a caught failure with recovery guidance. It is immutable;
// ID is unique per instance and keys the error view.
type ErrorWrapper struct {
	id       string
	err      error
	guidance string
}

// NewErrorWrapper wraps err with a fresh ID.
func NewErrorWrapper(err error, guidance string) *ErrorWrapper {
	return &ErrorWrapper{id: uuid.NewString(), err: err, guidance: guidance}
}

func (w *ErrorWrapper) ID() string       { return w.id }
func (w *ErrorWrapper) Err() error       { return w.err }
func (w *ErrorWrapper) Guidance() string { return w.guidance }

// Message is the failure text shown to the user.
func (w *ErrorWrapper) Message() string {
	if w.err == nil {
		return "unknown error"
	}
	return w.err.Error()
}
