package tui

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/dotcommander/scrumdinger/internal/models"
	"github.com/dotcommander/scrumdinger/internal/scrumapp"
	"github.com/dotcommander/scrumdinger/internal/store"
)

// countingBackend records saves and can fail loads.
type countingBackend struct {
	mu      sync.Mutex
	scrums  []models.DailyScrum
	loadErr error
	saves   int
}

func (b *countingBackend) Load(context.Context) ([]models.DailyScrum, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.loadErr != nil {
		return nil, b.loadErr
	}
	return models.CloneScrums(b.scrums), nil
}

func (b *countingBackend) Save(_ context.Context, scrums []models.DailyScrum) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.saves++
	b.scrums = models.CloneScrums(scrums)
	return nil
}

func (b *countingBackend) Close() error { return nil }

func (b *countingBackend) saveCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.saves
}

// runWindow runs the window over a real root until ready reports true, then
// types q and waits for the window and the root to finish.
func runWindow(t *testing.T, backend store.Backend, ready func(scrumapp.State) bool) *scrumapp.Root {
	t.Helper()
	r := scrumapp.New(store.NewScrumStore(backend, zerolog.Nop()))
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go func() { _ = r.Run(ctx) }()

	in, typed := io.Pipe()
	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, r, tea.WithInput(in), tea.WithOutput(io.Discard))
	}()

	require.Eventually(t, func() bool { return ready(r.State()) }, 2*time.Second, 5*time.Millisecond)
	_, err := typed.Write([]byte("q"))
	require.NoError(t, err)

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("window did not quit")
	}
	_ = typed.Close()

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancelShutdown()
	require.NoError(t, r.Shutdown(shutdownCtx))
	return r
}

func TestRun_QuitSavesLoadedRecords(t *testing.T) {
	backend := &countingBackend{scrums: models.SampleData()[:1]}

	runWindow(t, backend, func(s scrumapp.State) bool { return s.Ready })

	require.Equal(t, 1, backend.saveCount())
}

func TestRun_QuitFromErrorModalDoesNotSave(t *testing.T) {
	backend := &countingBackend{loadErr: errors.New("disk gone")}

	r := runWindow(t, backend, func(s scrumapp.State) bool { return s.Phase == scrumapp.PhaseErrorShown })

	require.Zero(t, backend.saveCount())
	require.Equal(t, scrumapp.PhaseErrorShown, r.State().Phase)
}
