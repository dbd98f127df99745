package tui

import (
	"strconv"
	"strings"
	"time"

	"github.com/dotcommander/scrumdinger/internal/models"
	"github.com/dotcommander/scrumdinger/internal/store"
)

type field int

const (
	fieldTitle field = iota
	fieldLength
	fieldTheme
	fieldAttendees
	fieldCount
)

var fieldLabels = [fieldCount]string{"Title", "Length", "Theme", "Attendees"}

// scrumForm edits a copy of one scrum. Attendees are typed as a
// comma-separated list.
type scrumForm struct {
	isNew     bool
	scrum     models.DailyScrum
	attendees string
	focus     field
	err       string
	// retypeLength makes the next digit replace the length instead of
	// extending it. Set whenever the length field gains focus.
	retypeLength bool
}

func newScrumForm() *scrumForm {
	return &scrumForm{
		isNew: true,
		scrum: models.DailyScrum{
			ID:              store.NewID(),
			LengthInMinutes: 5,
			Theme:           models.ThemeSeafoam,
		},
	}
}

func editScrumForm(s models.DailyScrum) *scrumForm {
	return &scrumForm{
		scrum:     s.Clone(),
		attendees: strings.Join(s.AttendeeNames(), ", "),
	}
}

func (f *scrumForm) next() { f.setFocus((f.focus + 1) % fieldCount) }
func (f *scrumForm) prev() { f.setFocus((f.focus + fieldCount - 1) % fieldCount) }

func (f *scrumForm) setFocus(fl field) {
	f.focus = fl
	f.retypeLength = fl == fieldLength
}

func (f *scrumForm) typeRunes(r []rune) {
	switch f.focus {
	case fieldTitle:
		f.scrum.Title += string(r)
	case fieldAttendees:
		f.attendees += string(r)
	case fieldLength:
		n, err := strconv.Atoi(string(r))
		if err != nil {
			return
		}
		if !f.retypeLength {
			n += f.scrum.LengthInMinutes * 10
		}
		// a leading zero keeps the field open for the next digit
		f.retypeLength = n < models.MinLengthInMinutes
		f.setLength(n)
	}
}

func (f *scrumForm) backspace() {
	switch f.focus {
	case fieldTitle:
		f.scrum.Title = dropLastRune(f.scrum.Title)
	case fieldAttendees:
		f.attendees = dropLastRune(f.attendees)
	case fieldLength:
		n := f.scrum.LengthInMinutes / 10
		f.retypeLength = n < models.MinLengthInMinutes
		f.setLength(n)
	}
}

// adjust handles left/right on the length and theme fields.
func (f *scrumForm) adjust(delta int) {
	switch f.focus {
	case fieldLength:
		f.retypeLength = false
		f.setLength(f.scrum.LengthInMinutes + delta)
	case fieldTheme:
		if delta > 0 {
			f.scrum.Theme = f.scrum.Theme.Next()
			return
		}
		all := models.AllThemes()
		for i, t := range all {
			if t == f.scrum.Theme {
				f.scrum.Theme = all[(i+len(all)-1)%len(all)]
				return
			}
		}
		f.scrum.Theme = all[0]
	}
}

func (f *scrumForm) setLength(n int) {
	if n > models.MaxLengthInMinutes {
		n = models.MaxLengthInMinutes
	}
	if n < models.MinLengthInMinutes {
		n = models.MinLengthInMinutes
	}
	f.scrum.LengthInMinutes = n
}

// result builds the edited scrum, keeping attendee IDs for names that
// survived the edit.
func (f *scrumForm) result() (models.DailyScrum, error) {
	out := f.scrum.Clone()
	out.Title = strings.TrimSpace(out.Title)

	existing := make(map[string]string, len(f.scrum.Attendees))
	for _, a := range f.scrum.Attendees {
		existing[a.Name] = a.ID
	}
	out.Attendees = nil
	for _, name := range strings.Split(f.attendees, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		id, ok := existing[name]
		if !ok {
			id = store.NewID()
		}
		out.Attendees = append(out.Attendees, models.Attendee{ID: id, Name: name})
	}
	if err := out.Validate(); err != nil {
		return models.DailyScrum{}, err
	}
	return out, nil
}

func dropLastRune(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	return string(r[:len(r)-1])
}

// finishedMeeting is the history entry recorded when a meeting is marked done.
func finishedMeeting(s models.DailyScrum, at time.Time) models.History {
	return models.History{
		ID:              store.NewID(),
		Date:            at,
		Attendees:       append([]models.Attendee(nil), s.Attendees...),
		LengthInMinutes: s.LengthInMinutes,
	}
}
