package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dotcommander/scrumdinger/internal/app"
	"github.com/dotcommander/scrumdinger/internal/models"
)

// SQLiteBackend stores scrums in a SQLite database managed by goose migrations.
type SQLiteBackend struct {
	db   *sql.DB
	path string
}

// OpenSQLite opens (creating and migrating if needed) the database at path.
func OpenSQLite(path string) (*SQLiteBackend, error) {
	db, err := InitDBWithPath(path)
	if err != nil {
		return nil, err
	}
	return &SQLiteBackend{db: db, path: path}, nil
}

func (b *SQLiteBackend) Kind() string { return app.BackendSQLite }
func (b *SQLiteBackend) Path() string { return b.path }

// Close closes the database.
func (b *SQLiteBackend) Close() error {
	return b.db.Close()
}

// Load reads every scrum in saved order.
func (b *SQLiteBackend) Load(ctx context.Context) ([]models.DailyScrum, error) {
	var scrums []models.DailyScrum

	err := TransactContext(ctx, b.db, func(tx *sql.Tx) error {
		loaded, index, err := loadScrumRows(ctx, tx)
		if err != nil {
			return err
		}
		if err := loadAttendeeRows(ctx, tx, loaded, index); err != nil {
			return err
		}
		if err := loadHistoryRows(ctx, tx, loaded, index); err != nil {
			return err
		}
		scrums = loaded
		return nil
	})
	if err != nil {
		return nil, err
	}
	return scrums, nil
}

func loadScrumRows(ctx context.Context, tx *sql.Tx) ([]models.DailyScrum, map[string]int, error) {
	rows, err := tx.QueryContext(ctx, `
		SELECT id, title, length_in_minutes, theme
		FROM scrums
		ORDER BY position
	`)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query scrums: %w", err)
	}
	defer func() { _ = rows.Close() }()

	scrums := make([]models.DailyScrum, 0)
	index := make(map[string]int)
	for rows.Next() {
		var s models.DailyScrum
		var theme string
		if err := rows.Scan(&s.ID, &s.Title, &s.LengthInMinutes, &theme); err != nil {
			return nil, nil, fmt.Errorf("failed to scan scrum row: %w", err)
		}
		s.Theme = models.Theme(theme)
		index[s.ID] = len(scrums)
		scrums = append(scrums, s)
	}
	return scrums, index, rows.Err()
}

func loadAttendeeRows(ctx context.Context, tx *sql.Tx, scrums []models.DailyScrum, index map[string]int) error {
	rows, err := tx.QueryContext(ctx, `
		SELECT scrum_id, id, name
		FROM attendees
		ORDER BY scrum_id, position
	`)
	if err != nil {
		return fmt.Errorf("failed to query attendees: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var scrumID string
		var a models.Attendee
		if err := rows.Scan(&scrumID, &a.ID, &a.Name); err != nil {
			return fmt.Errorf("failed to scan attendee row: %w", err)
		}
		i, ok := index[scrumID]
		if !ok {
			continue
		}
		scrums[i].Attendees = append(scrums[i].Attendees, a)
	}
	return rows.Err()
}

func loadHistoryRows(ctx context.Context, tx *sql.Tx, scrums []models.DailyScrum, index map[string]int) error {
	rows, err := tx.QueryContext(ctx, `
		SELECT scrum_id, id, date, length_in_minutes, transcript, attendees
		FROM history
		ORDER BY scrum_id, position
	`)
	if err != nil {
		return fmt.Errorf("failed to query history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var scrumID, date, attendees string
		var transcript sql.NullString
		var h models.History
		if err := rows.Scan(&scrumID, &h.ID, &date, &h.LengthInMinutes, &transcript, &attendees); err != nil {
			return fmt.Errorf("failed to scan history row: %w", err)
		}
		h.Date, err = time.Parse(time.RFC3339Nano, date)
		if err != nil {
			return fmt.Errorf("history %s has invalid date %q: %w", h.ID, date, err)
		}
		if transcript.Valid {
			h.Transcript = transcript.String
		}
		if err := json.Unmarshal([]byte(attendees), &h.Attendees); err != nil {
			return fmt.Errorf("history %s has invalid attendees: %w", h.ID, err)
		}
		i, ok := index[scrumID]
		if !ok {
			continue
		}
		scrums[i].History = append(scrums[i].History, h)
	}
	return rows.Err()
}

// Save replaces the stored scrums with the given sequence in one transaction.
func (b *SQLiteBackend) Save(ctx context.Context, scrums []models.DailyScrum) error {
	return TransactContext(ctx, b.db, func(tx *sql.Tx) error {
		// attendees and history cascade
		if _, err := tx.ExecContext(ctx, `DELETE FROM scrums`); err != nil {
			return fmt.Errorf("failed to clear scrums: %w", err)
		}

		for pos, s := range scrums {
			if err := insertScrumTx(ctx, tx, pos, s); err != nil {
				return err
			}
		}
		return nil
	})
}

func insertScrumTx(ctx context.Context, tx *sql.Tx, pos int, s models.DailyScrum) error {
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO scrums (id, position, title, length_in_minutes, theme)
		VALUES (?, ?, ?, ?, ?)
	`, s.ID, pos, s.Title, s.LengthInMinutes, string(s.Theme)); err != nil {
		return fmt.Errorf("failed to insert scrum %s: %w", s.ID, err)
	}

	for i, a := range s.Attendees {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO attendees (scrum_id, position, id, name)
			VALUES (?, ?, ?, ?)
		`, s.ID, i, a.ID, a.Name); err != nil {
			return fmt.Errorf("failed to insert attendee %s: %w", a.ID, err)
		}
	}

	for i, h := range s.History {
		attendees := h.Attendees
		if attendees == nil {
			attendees = []models.Attendee{}
		}
		encoded, err := json.Marshal(attendees)
		if err != nil {
			return fmt.Errorf("failed to encode history attendees: %w", err)
		}
		var transcript any
		if h.Transcript != "" {
			transcript = h.Transcript
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO history (scrum_id, position, id, date, length_in_minutes, transcript, attendees)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, s.ID, i, h.ID, h.Date.UTC().Format(time.RFC3339Nano), h.LengthInMinutes, transcript, string(encoded)); err != nil {
			return fmt.Errorf("failed to insert history %s: %w", h.ID, err)
		}
	}
	return nil
}
