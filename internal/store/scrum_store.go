package store

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/dotcommander/scrumdinger/internal/models"
)

// ScrumStore owns the in-memory scrum sequence and persists it through a
// Backend. Records handed in or out are deep copies.
type ScrumStore struct {
	backend Backend
	mu      sync.RWMutex
	records []models.DailyScrum
	log     zerolog.Logger
}

// NewScrumStore wraps backend with an empty record sequence.
func NewScrumStore(backend Backend, log zerolog.Logger) *ScrumStore {
	return &ScrumStore{
		backend: backend,
		log:     log,
		records: []models.DailyScrum{},
	}
}

// Fetch reads the persisted sequence without touching the in-memory records.
// Failures are returned as *PersistenceError.
func (s *ScrumStore) Fetch(ctx context.Context) ([]models.DailyScrum, error) {
	scrums, err := s.backend.Load(ctx)
	if err != nil {
		return nil, s.wrap(OpLoad, err)
	}
	s.log.Debug().Int("count", len(scrums)).Msg("scrums fetched")
	return models.CloneScrums(scrums), nil
}

// Save persists scrums. Failures are returned as *PersistenceError.
func (s *ScrumStore) Save(ctx context.Context, scrums []models.DailyScrum) error {
	if err := s.backend.Save(ctx, models.CloneScrums(scrums)); err != nil {
		return s.wrap(OpSave, err)
	}
	s.log.Debug().Int("count", len(scrums)).Msg("scrums saved")
	return nil
}

// Records returns a copy of the in-memory sequence.
func (s *ScrumStore) Records() []models.DailyScrum {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return models.CloneScrums(s.records)
}

// SetRecords replaces the in-memory sequence. A fetched sequence becomes the
// records only through SetRecords, so a failed load never touches them.
func (s *ScrumStore) SetRecords(scrums []models.DailyScrum) {
	next := models.CloneScrums(scrums)
	s.mu.Lock()
	s.records = next
	s.mu.Unlock()
}

// Close closes the backend.
func (s *ScrumStore) Close() error {
	return s.backend.Close()
}

func (s *ScrumStore) wrap(op Op, err error) error {
	pe := &PersistenceError{Op: op, Err: err}
	if d, ok := s.backend.(Describer); ok {
		pe.Backend = d.Kind()
		pe.Path = d.Path()
	}
	return pe
}
