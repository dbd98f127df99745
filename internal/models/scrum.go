package models

import (
	"strings"
	"time"
)

// Length bounds for a daily scrum, in minutes.
const (
	MinLengthInMinutes = 1
	MaxLengthInMinutes = 30
)

// DailyScrum is a recurring stand-up meeting and its recorded history.
type DailyScrum struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Attendees       []Attendee `json:"attendees"`
	LengthInMinutes int        `json:"length_in_minutes"`
	Theme           Theme      `json:"theme"`
	History         []History  `json:"history"`
}

// Attendee is a person who takes part in a scrum.
type Attendee struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// History is one finished meeting of a scrum.
type History struct {
	ID              string     `json:"id"`
	Date            time.Time  `json:"date"`
	Attendees       []Attendee `json:"attendees"`
	LengthInMinutes int        `json:"length_in_minutes"`
	Transcript      string     `json:"transcript,omitempty"`
}

// AttendeeNames returns attendee names in order.
func (s DailyScrum) AttendeeNames() []string {
	names := make([]string, 0, len(s.Attendees))
	for _, a := range s.Attendees {
		names = append(names, a.Name)
	}
	return names
}

// Clone returns a deep copy so callers can mutate it freely.
func (s DailyScrum) Clone() DailyScrum {
	out := s
	out.Attendees = cloneAttendees(s.Attendees)
	if s.History != nil {
		out.History = make([]History, len(s.History))
		for i, h := range s.History {
			h.Attendees = cloneAttendees(h.Attendees)
			out.History[i] = h
		}
	}
	return out
}

func cloneAttendees(in []Attendee) []Attendee {
	if in == nil {
		return nil
	}
	out := make([]Attendee, len(in))
	copy(out, in)
	return out
}

// CloneScrums deep-copies a record sequence, preserving order. A nil input
// yields an empty, non-nil slice.
func CloneScrums(in []DailyScrum) []DailyScrum {
	out := make([]DailyScrum, len(in))
	for i, s := range in {
		out[i] = s.Clone()
	}
	return out
}

// Validate checks the fields a user can edit.
func (s DailyScrum) Validate() error {
	if strings.TrimSpace(s.Title) == "" {
		return &ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if s.LengthInMinutes < MinLengthInMinutes || s.LengthInMinutes > MaxLengthInMinutes {
		return &ValidationError{Field: "length_in_minutes", Reason: "must be between 1 and 30"}
	}
	if !s.Theme.Valid() {
		return &ValidationError{Field: "theme", Reason: "unknown theme " + string(s.Theme)}
	}
	for _, a := range s.Attendees {
		if strings.TrimSpace(a.Name) == "" {
			return &ValidationError{Field: "attendees", Reason: "attendee name must not be empty"}
		}
	}
	return nil
}
