package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/dotcommander/scrumdinger/internal/app"
	"github.com/dotcommander/scrumdinger/internal/models"
)

// FileBackend stores scrums as a JSON array in a single file.
type FileBackend struct {
	path   string
	mu     sync.Mutex
	closed bool
}

// NewFileBackend returns a backend for the JSON file at path. The file is
// created by the first Save.
func NewFileBackend(path string) *FileBackend {
	return &FileBackend{path: path}
}

func (b *FileBackend) Kind() string { return app.BackendFile }
func (b *FileBackend) Path() string { return b.path }

// Close marks the backend unusable.
func (b *FileBackend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	return nil
}

// Load decodes the file. A missing file is an empty sequence.
func (b *FileBackend) Load(ctx context.Context) ([]models.DailyScrum, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil, ErrClosed
	}

	data, err := os.ReadFile(b.path)
	if errors.Is(err, os.ErrNotExist) {
		return []models.DailyScrum{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", b.path, err)
	}

	var scrums []models.DailyScrum
	if err := json.Unmarshal(data, &scrums); err != nil {
		return nil, fmt.Errorf("decode %s: %w", b.path, err)
	}
	if scrums == nil {
		scrums = []models.DailyScrum{}
	}
	return scrums, nil
}

// Save writes the sequence to a temp file next to the target and renames it
// into place, so readers see either the old or the new content.
func (b *FileBackend) Save(ctx context.Context, scrums []models.DailyScrum) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if scrums == nil {
		scrums = []models.DailyScrum{}
	}
	data, err := json.MarshalIndent(scrums, "", "  ")
	if err != nil {
		return fmt.Errorf("encode scrums: %w", err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return ErrClosed
	}

	dir := filepath.Dir(b.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("create dir %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".scrums-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.Rename(tmpName, b.path); err != nil {
		return fmt.Errorf("replace %s: %w", b.path, err)
	}
	return nil
}
