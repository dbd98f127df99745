package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dotcommander/scrumdinger/internal/models"
)

// fakeBackend is an in-memory Backend with injectable failures.
type fakeBackend struct {
	mu      sync.Mutex
	scrums  []models.DailyScrum
	loadErr error
	saveErr error
	saves   int
}

func (f *fakeBackend) Load(ctx context.Context) ([]models.DailyScrum, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return models.CloneScrums(f.scrums), nil
}

func (f *fakeBackend) Save(ctx context.Context, scrums []models.DailyScrum) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saves++
	if f.saveErr != nil {
		return f.saveErr
	}
	f.scrums = models.CloneScrums(scrums)
	return nil
}

func (f *fakeBackend) Close() error { return nil }

var errInjected = errors.New("injected")

func testScrum(title string) models.DailyScrum {
	return models.DailyScrum{
		ID:              "id-" + title,
		Title:           title,
		LengthInMinutes: 5,
		Theme:           models.ThemeSky,
		Attendees:       []models.Attendee{{ID: title + "-a", Name: "Ann"}, {ID: title + "-b", Name: "Bo"}},
	}
}

func testScrumWithHistory(title string) models.DailyScrum {
	s := testScrum(title)
	s.History = []models.History{{
		ID:              title + "-h1",
		Date:            time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC),
		Attendees:       []models.Attendee{{ID: title + "-a", Name: "Ann"}},
		LengthInMinutes: 5,
		Transcript:      "we shipped it",
	}}
	return s
}
