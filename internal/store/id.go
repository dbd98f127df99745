package store

import "github.com/google/uuid"

// NewID returns a random identifier for scrums, attendees and history entries.
func NewID() string {
	return uuid.NewString()
}
