package models

// SampleData returns a fresh copy of the built-in sample scrums. IDs are fixed
// so two calls compare equal.
func SampleData() []DailyScrum {
	return []DailyScrum{
		{
			ID:              "5d5a8c1e-6b5e-4c6f-9d2a-0a9c7e1f3b01",
			Title:           "Design",
			Attendees:       sampleAttendees("design", "Cathy", "Daisy", "Simon", "Jonathan"),
			LengthInMinutes: 10,
			Theme:           ThemeYellow,
		},
		{
			ID:              "5d5a8c1e-6b5e-4c6f-9d2a-0a9c7e1f3b02",
			Title:           "App Dev",
			Attendees:       sampleAttendees("appdev", "Katie", "Gray", "Euna", "Luis", "Darla"),
			LengthInMinutes: 5,
			Theme:           ThemeOrange,
		},
		{
			ID:    "5d5a8c1e-6b5e-4c6f-9d2a-0a9c7e1f3b03",
			Title: "Web Dev",
			Attendees: sampleAttendees("webdev",
				"Chella", "Chris", "Christina", "Eden", "Karla",
				"Lindsey", "Aga", "Chad", "Jenn", "Sarah"),
			LengthInMinutes: 5,
			Theme:           ThemePoppy,
		},
	}
}

func sampleAttendees(prefix string, names ...string) []Attendee {
	out := make([]Attendee, len(names))
	for i, n := range names {
		out[i] = Attendee{ID: prefix + "-" + n, Name: n}
	}
	return out
}
