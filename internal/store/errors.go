package store

import (
	"errors"

	"github.com/dotcommander/scrumdinger/internal/models"
)

// RecoverableError is an alias for models.RecoverableError so callers can
// match store failures without importing models.
type RecoverableError = models.RecoverableError

// Op names the persistence operation that failed.
type Op string

// Persistence operations.
const (
	OpLoad Op = "load"
	OpSave Op = "save"
)

// ErrClosed is returned by a backend used after Close.
var ErrClosed = errors.New("store is closed")

// PersistenceError is the only failure the application root sees from the
// store. The cause is opaque; only Op is interpreted.
type PersistenceError struct {
	Op      Op
	Backend string
	Path    string
	Err     error
}

func (e *PersistenceError) Error() string {
	if e.Err == nil {
		return string(e.Op) + " scrums failed"
	}
	return string(e.Op) + " scrums: " + e.Err.Error()
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func (e *PersistenceError) ErrorCode() string {
	if e.Op == OpLoad {
		return "LOAD_FAILED"
	}
	return "SAVE_FAILED"
}

func (e *PersistenceError) Context() map[string]string {
	return map[string]string{
		"op":      string(e.Op),
		"backend": e.Backend,
		"path":    e.Path,
	}
}

func (e *PersistenceError) SuggestedAction() string {
	if e.Op == OpLoad {
		return "check that " + e.Path + " is readable, or run: scrumdinger reset"
	}
	return "try again later"
}

// IsPersistenceError reports whether err wraps a PersistenceError for op.
// An empty op matches either operation.
func IsPersistenceError(err error, op Op) bool {
	var pe *PersistenceError
	if !errors.As(err, &pe) {
		return false
	}
	return op == "" || pe.Op == op
}
