package store

import (
	"context"
	"fmt"

	"github.com/dotcommander/scrumdinger/internal/app"
	"github.com/dotcommander/scrumdinger/internal/models"
)

// Backend persists the whole scrum sequence. Load and Save are all-or-nothing:
// a failed Load returns no records and a failed Save leaves previously saved
// data intact.
type Backend interface {
	Load(ctx context.Context) ([]models.DailyScrum, error)
	Save(ctx context.Context, scrums []models.DailyScrum) error
	Close() error
}

// Describer is implemented by backends that can name themselves for logs and errors.
type Describer interface {
	Kind() string
	Path() string
}

// Open returns the backend of the given kind rooted at path.
func Open(kind, path string) (Backend, error) {
	switch kind {
	case app.BackendSQLite:
		return OpenSQLite(path)
	case app.BackendFile:
		return NewFileBackend(path), nil
	default:
		return nil, fmt.Errorf("unknown backend %q", kind)
	}
}
