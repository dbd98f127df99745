package scrumapp

import (
	"errors"
	"fmt"

	"github.com/dotcommander/scrumdinger/internal/models"
)

// ErrScrumNotFound is returned by edits that target a missing scrum.
var ErrScrumNotFound = errors.New("scrum not found")

// EditFunc transforms the record sequence. Returning an error leaves the
// records untouched.
type EditFunc = func([]models.DailyScrum) ([]models.DailyScrum, error)

// AddScrum appends s after validating it.
func AddScrum(s models.DailyScrum) EditFunc {
	return func(cur []models.DailyScrum) ([]models.DailyScrum, error) {
		if err := s.Validate(); err != nil {
			return nil, err
		}
		if indexOf(cur, s.ID) >= 0 {
			return nil, fmt.Errorf("scrum %s already exists", s.ID)
		}
		return append(cur, s), nil
	}
}

// ReplaceScrum swaps the scrum with s.ID for s, keeping its position.
func ReplaceScrum(s models.DailyScrum) EditFunc {
	return func(cur []models.DailyScrum) ([]models.DailyScrum, error) {
		if err := s.Validate(); err != nil {
			return nil, err
		}
		i := indexOf(cur, s.ID)
		if i < 0 {
			return nil, fmt.Errorf("%w: %s", ErrScrumNotFound, s.ID)
		}
		cur[i] = s
		return cur, nil
	}
}

// DeleteScrum removes the scrum with the given ID.
func DeleteScrum(id string) EditFunc {
	return func(cur []models.DailyScrum) ([]models.DailyScrum, error) {
		i := indexOf(cur, id)
		if i < 0 {
			return nil, fmt.Errorf("%w: %s", ErrScrumNotFound, id)
		}
		return append(cur[:i], cur[i+1:]...), nil
	}
}

// RecordMeeting prepends h to the history of the scrum with the given ID,
// newest first.
func RecordMeeting(id string, h models.History) EditFunc {
	return func(cur []models.DailyScrum) ([]models.DailyScrum, error) {
		i := indexOf(cur, id)
		if i < 0 {
			return nil, fmt.Errorf("%w: %s", ErrScrumNotFound, id)
		}
		cur[i].History = append([]models.History{h}, cur[i].History...)
		return cur, nil
	}
}

// ReplaceAll swaps in an entirely new sequence.
func ReplaceAll(scrums []models.DailyScrum) EditFunc {
	return func([]models.DailyScrum) ([]models.DailyScrum, error) {
		return models.CloneScrums(scrums), nil
	}
}

// FindScrum returns the scrum with the given ID.
func FindScrum(scrums []models.DailyScrum, id string) (models.DailyScrum, bool) {
	i := indexOf(scrums, id)
	if i < 0 {
		return models.DailyScrum{}, false
	}
	return scrums[i], true
}

func indexOf(scrums []models.DailyScrum, id string) int {
	for i, s := range scrums {
		if s.ID == id {
			return i
		}
	}
	return -1
}
