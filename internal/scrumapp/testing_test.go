package scrumapp

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/dotcommander/scrumdinger/internal/models"
	"github.com/dotcommander/scrumdinger/internal/store"
)

var errDisk = errors.New("disk unavailable")

// memBackend is an in-memory store.Backend. A non-nil gate makes Load and
// Save block until the gate is closed or the context is cancelled.
type memBackend struct {
	mu        sync.Mutex
	scrums    []models.DailyScrum
	loadErr   error
	saveErr   error
	loadGate  chan struct{}
	saveGate  chan struct{}
	loads     int
	saves     int
	cancelled int
}

func (b *memBackend) Load(ctx context.Context) ([]models.DailyScrum, error) {
	b.mu.Lock()
	b.loads++
	gate := b.loadGate
	b.mu.Unlock()

	if err := b.wait(ctx, gate); err != nil {
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.loadErr != nil {
		return nil, b.loadErr
	}
	return models.CloneScrums(b.scrums), nil
}

func (b *memBackend) Save(ctx context.Context, scrums []models.DailyScrum) error {
	b.mu.Lock()
	b.saves++
	gate := b.saveGate
	b.mu.Unlock()

	if err := b.wait(ctx, gate); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.saveErr != nil {
		return b.saveErr
	}
	b.scrums = models.CloneScrums(scrums)
	return nil
}

func (b *memBackend) Close() error { return nil }

func (b *memBackend) wait(ctx context.Context, gate chan struct{}) error {
	if gate == nil {
		return nil
	}
	select {
	case <-gate:
		return nil
	case <-ctx.Done():
		b.mu.Lock()
		b.cancelled++
		b.mu.Unlock()
		return ctx.Err()
	}
}

func (b *memBackend) snapshot() (scrums []models.DailyScrum, loads, saves int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return models.CloneScrums(b.scrums), b.loads, b.saves
}

func (b *memBackend) setSaveErr(err error) {
	b.mu.Lock()
	b.saveErr = err
	b.mu.Unlock()
}

// startRoot runs a root over backend until the test ends.
func startRoot(t *testing.T, backend store.Backend, opts ...Option) *Root {
	t.Helper()
	r := New(store.NewScrumStore(backend, zerolog.Nop()), opts...)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- r.Run(ctx) }()

	t.Cleanup(func() {
		shutdownCtx, done := context.WithTimeout(context.Background(), time.Second)
		defer done()
		_ = r.Shutdown(shutdownCtx)
		cancel()
		<-errCh
	})
	return r
}

func waitIdle(t *testing.T, r *Root) State {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, r.WaitIdle(ctx))
	return r.State()
}

func scrum(title string) models.DailyScrum {
	return models.DailyScrum{
		ID:              "id-" + title,
		Title:           title,
		LengthInMinutes: 5,
		Theme:           models.ThemeTeal,
		Attendees:       []models.Attendee{{ID: title + "-1", Name: "Pat"}},
	}
}

func appendScrum(s models.DailyScrum) func([]models.DailyScrum) ([]models.DailyScrum, error) {
	return func(cur []models.DailyScrum) ([]models.DailyScrum, error) {
		return append(cur, s), nil
	}
}
