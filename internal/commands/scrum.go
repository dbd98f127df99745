package commands

import (
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/dotcommander/scrumdinger/internal/models"
	"github.com/dotcommander/scrumdinger/internal/output"
	"github.com/dotcommander/scrumdinger/internal/scrumapp"
	"github.com/dotcommander/scrumdinger/internal/store"
)

// NewScrumCmd creates the scrum command group.
func NewScrumCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scrum",
		Short: "Manage daily scrums",
		Long:  "List, inspect and edit daily scrums. Every change is saved before the command returns.",
		Args:  cobra.NoArgs,
	}

	cmd.AddCommand(newScrumListCmd())
	cmd.AddCommand(newScrumGetCmd())
	cmd.AddCommand(newScrumAddCmd())
	cmd.AddCommand(newScrumEditCmd())
	cmd.AddCommand(newScrumDeleteCmd())
	cmd.AddCommand(newScrumRecordCmd())

	namespaceIndex(cmd)
	return cmd
}

func newScrumListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List scrums in display order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRoot(cmd.Context(), func(_ *scrumapp.Root, st scrumapp.State) error {
				type resp struct {
					Scrums []models.DailyScrum `json:"scrums"`
					Count  int                 `json:"count"`
				}
				return output.PrintSuccess(resp{Scrums: st.Records, Count: len(st.Records)})
			})
		},
	}
}

func newScrumGetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get",
		Short: "Show one scrum with its history",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveID(cmd, args)
			if err != nil {
				return cmdErr(err)
			}
			return withRoot(cmd.Context(), func(_ *scrumapp.Root, st scrumapp.State) error {
				s, ok := scrumapp.FindScrum(st.Records, id)
				if !ok {
					return notFound(id)
				}
				type resp struct {
					Scrum models.DailyScrum `json:"scrum"`
				}
				return output.PrintSuccess(resp{Scrum: s})
			})
		},
	}
	cmd.Flags().String("id", "", "Scrum ID")
	return cmd
}

func newScrumAddCmd() *cobra.Command {
	theme := themeFlag(models.ThemeSeafoam)
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a scrum",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			title, _ := cmd.Flags().GetString("title")
			length, _ := cmd.Flags().GetInt("length")
			names, _ := cmd.Flags().GetStringSlice("attendee")

			s := models.DailyScrum{
				ID:              store.NewID(),
				Title:           strings.TrimSpace(title),
				Attendees:       newAttendees(names),
				LengthInMinutes: length,
				Theme:           models.Theme(theme),
			}
			if err := s.Validate(); err != nil {
				return cmdErr(err)
			}

			return withRoot(cmd.Context(), func(r *scrumapp.Root, _ scrumapp.State) error {
				if _, err := applyAndSave(cmd.Context(), r, scrumapp.AddScrum(s)); err != nil {
					return err
				}
				type resp struct {
					Scrum models.DailyScrum `json:"scrum"`
				}
				return output.PrintSuccess(resp{Scrum: s})
			})
		},
	}
	cmd.Flags().String("title", "", "Scrum title (required)")
	cmd.Flags().Int("length", 5, "Meeting length in minutes (1-30)")
	cmd.Flags().Var(&theme, "theme", "Colour theme")
	cmd.Flags().StringSlice("attendee", nil, "Attendee name (repeatable or comma-separated)")
	cmd.Annotations = map[string]string{annotationSaves: "true"}
	return cmd
}

//nolint:gochecknoglobals // fixed flag set
var editableFlags = []string{"title", "length", "theme", "attendee"}

func newScrumEditCmd() *cobra.Command {
	var theme themeFlag
	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Change a scrum's title, length, theme or attendees",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveID(cmd, args)
			if err != nil {
				return cmdErr(err)
			}
			changed := slices.DeleteFunc(changedFlags(cmd.Flags()), func(n string) bool {
				return !slices.Contains(editableFlags, n)
			})
			if len(changed) == 0 {
				return cmdErr(errors.New("nothing to change: pass --title, --length, --theme or --attendee"))
			}

			title, _ := cmd.Flags().GetString("title")
			length, _ := cmd.Flags().GetInt("length")
			names, _ := cmd.Flags().GetStringSlice("attendee")

			return withRoot(cmd.Context(), func(r *scrumapp.Root, st scrumapp.State) error {
				cur, ok := scrumapp.FindScrum(st.Records, id)
				if !ok {
					return notFound(id)
				}
				next := cur.Clone()
				for _, name := range changed {
					switch name {
					case "title":
						next.Title = strings.TrimSpace(title)
					case "length":
						next.LengthInMinutes = length
					case "theme":
						next.Theme = models.Theme(theme)
					case "attendee":
						next.Attendees = mergeAttendees(cur.Attendees, names)
					}
				}
				if _, err := applyAndSave(cmd.Context(), r, scrumapp.ReplaceScrum(next)); err != nil {
					return err
				}
				type resp struct {
					Scrum   models.DailyScrum `json:"scrum"`
					Changed []string          `json:"changed"`
				}
				return output.PrintSuccess(resp{Scrum: next, Changed: changed})
			})
		},
	}
	cmd.Flags().String("id", "", "Scrum ID")
	cmd.Flags().String("title", "", "New title")
	cmd.Flags().Int("length", 0, "New length in minutes (1-30)")
	cmd.Flags().Var(&theme, "theme", "New colour theme")
	cmd.Flags().StringSlice("attendee", nil, "Replacement attendee list")
	cmd.Annotations = map[string]string{annotationSaves: "true"}
	return cmd
}

func newScrumDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a scrum",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveID(cmd, args)
			if err != nil {
				return cmdErr(err)
			}
			return withRoot(cmd.Context(), func(r *scrumapp.Root, _ scrumapp.State) error {
				st, err := applyAndSave(cmd.Context(), r, scrumapp.DeleteScrum(id))
				if err != nil {
					return err
				}
				type resp struct {
					Deleted   string `json:"deleted"`
					Remaining int    `json:"remaining"`
				}
				return output.PrintSuccess(resp{Deleted: id, Remaining: len(st.Records)})
			})
		},
	}
	cmd.Flags().String("id", "", "Scrum ID")
	cmd.Annotations = map[string]string{annotationSaves: "true"}
	return cmd
}

func newScrumRecordCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "record",
		Short: "Record a finished meeting in a scrum's history",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveID(cmd, args)
			if err != nil {
				return cmdErr(err)
			}
			length, _ := cmd.Flags().GetInt("length")
			transcript, _ := cmd.Flags().GetString("transcript")
			names, _ := cmd.Flags().GetStringSlice("attendee")
			if length < 0 {
				return cmdErr(errors.New("--length must not be negative"))
			}

			return withRoot(cmd.Context(), func(r *scrumapp.Root, st scrumapp.State) error {
				cur, ok := scrumapp.FindScrum(st.Records, id)
				if !ok {
					return notFound(id)
				}
				h := models.History{
					ID:              store.NewID(),
					Date:            time.Now().UTC(),
					Attendees:       cur.Clone().Attendees,
					LengthInMinutes: cur.LengthInMinutes,
					Transcript:      transcript,
				}
				if cmd.Flags().Changed("length") {
					h.LengthInMinutes = length
				}
				if cmd.Flags().Changed("attendee") {
					h.Attendees = mergeAttendees(cur.Attendees, names)
				}
				if _, err := applyAndSave(cmd.Context(), r, scrumapp.RecordMeeting(id, h)); err != nil {
					return err
				}
				type resp struct {
					ScrumID string         `json:"scrum_id"`
					History models.History `json:"history"`
				}
				return output.PrintSuccess(resp{ScrumID: id, History: h})
			})
		},
	}
	cmd.Flags().String("id", "", "Scrum ID")
	cmd.Flags().Int("length", 0, "Actual meeting length in minutes (default: the scrum's length)")
	cmd.Flags().String("transcript", "", "Meeting transcript")
	cmd.Flags().StringSlice("attendee", nil, "Who attended (default: all attendees)")
	cmd.Annotations = map[string]string{annotationSaves: "true"}
	return cmd
}

// resolveID accepts the scrum ID as --id or a single positional argument.
func resolveID(cmd *cobra.Command, args []string) (string, error) {
	id, _ := cmd.Flags().GetString("id")
	switch {
	case len(args) > 1:
		return "", errors.New("expected at most one scrum ID")
	case len(args) == 1 && id != "" && args[0] != id:
		return "", errors.New("conflicting IDs: --id and positional argument differ")
	case len(args) == 1:
		id = args[0]
	}
	if strings.TrimSpace(id) == "" {
		return "", errors.New("--id is required")
	}
	return id, nil
}

func notFound(id string) error {
	return &scrumNotFoundError{id: id}
}

type scrumNotFoundError struct {
	id string
}

func (e *scrumNotFoundError) Error() string              { return "scrum not found: " + e.id }
func (e *scrumNotFoundError) Unwrap() error              { return scrumapp.ErrScrumNotFound }
func (e *scrumNotFoundError) ErrorCode() string          { return "SCRUM_NOT_FOUND" }
func (e *scrumNotFoundError) Context() map[string]string { return map[string]string{"scrum_id": e.id} }
func (e *scrumNotFoundError) SuggestedAction() string    { return "scrumdinger scrum list" }

func newAttendees(names []string) []models.Attendee {
	return mergeAttendees(nil, names)
}

// mergeAttendees builds an attendee list from names, reusing the IDs of
// attendees already in cur.
func mergeAttendees(cur []models.Attendee, names []string) []models.Attendee {
	ids := make(map[string]string, len(cur))
	for _, a := range cur {
		ids[a.Name] = a.ID
	}
	out := make([]models.Attendee, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		id, ok := ids[n]
		if !ok {
			id = store.NewID()
		}
		out = append(out, models.Attendee{ID: id, Name: n})
	}
	return out
}
