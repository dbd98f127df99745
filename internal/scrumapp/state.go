package scrumapp

import "github.com/dotcommander/scrumdinger/internal/models"

// Phase is the top-level state of the root.
type Phase int

// Phases.
const (
	PhaseNoError Phase = iota
	PhaseErrorShown
)

func (p Phase) String() string {
	if p == PhaseErrorShown {
		return "error-shown"
	}
	return "no-error"
}

// State is a snapshot of the root published to views. Records is a copy.
type State struct {
	Phase   Phase
	Records []models.DailyScrum
	Error   *ErrorWrapper
	// Ready is true once the records came from a successful load or a sample
	// reset. Saving before that would overwrite data that was never read.
	Ready bool
	// Pending counts load/save tasks still in flight.
	Pending int
}

// ShowsMain reports whether the main content view should be rendered.
func (s State) ShowsMain() bool { return s.Phase == PhaseNoError }
