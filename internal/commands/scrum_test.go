package commands

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dotcommander/scrumdinger/internal/scrumapp"
)

func TestNewScrumCmd_HasExpectedSubcommands(t *testing.T) {
	cmd := NewScrumCmd()
	require.Equal(t, "scrum", cmd.Use)

	for _, name := range []string{"list", "get", "add", "edit", "delete", "record"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err)
		require.NotNil(t, sub)
		require.Equal(t, name, sub.Name())
	}
}

func TestScrumGetCmd_ValidationErrorsBeforeStore(t *testing.T) {
	t.Setenv("SCRUMDINGER_PRETTY_JSON", "")
	cmd := newScrumGetCmd()

	captureStdout(t, func() {
		err := cmd.RunE(cmd, nil)
		require.Error(t, err)
		require.IsType(t, printedError{}, err)

		require.NoError(t, cmd.Flags().Set("id", "a"))
		err = cmd.RunE(cmd, []string{"b"})
		require.Error(t, err)
		require.IsType(t, printedError{}, err)
	})
}

func TestScrumAddCmd_RequiresTitle(t *testing.T) {
	t.Setenv("SCRUMDINGER_PRETTY_JSON", "")
	cmd := newScrumAddCmd()

	out := captureStdout(t, func() {
		err := cmd.RunE(cmd, nil)
		require.IsType(t, printedError{}, err)
	})
	require.Contains(t, out, `"error_code":"INVALID_SCRUM"`)
}

func TestScrumAddCmd_RejectsUnknownTheme(t *testing.T) {
	cmd := newScrumAddCmd()
	require.Error(t, cmd.Flags().Set("theme", "chartreuse"))
	require.NoError(t, cmd.Flags().Set("theme", "Poppy"))
	require.Equal(t, "poppy", cmd.Flags().Lookup("theme").Value.String())
}

func TestScrumEditCmd_RequiresAChange(t *testing.T) {
	t.Setenv("SCRUMDINGER_PRETTY_JSON", "")
	cmd := newScrumEditCmd()
	require.NoError(t, cmd.Flags().Set("id", "abc"))

	out := captureStdout(t, func() {
		err := cmd.RunE(cmd, nil)
		require.IsType(t, printedError{}, err)
	})
	require.Contains(t, out, "nothing to change")
}

func TestScrum_AddListEditRecordDelete(t *testing.T) {
	path := useFileBackend(t)

	env, err := run(t, "scrum", "add", "--title", "Standup", "--length", "12", "--theme", "navy", "--attendee", "Ann,Bo")
	require.NoError(t, err)
	added := dataOf(t, env)["scrum"].(map[string]any)
	id := added["id"].(string)
	require.NotEmpty(t, id)
	_, statErr := os.Stat(path)
	require.NoError(t, statErr)

	env, err = run(t, "scrum", "list")
	require.NoError(t, err)
	require.Equal(t, []string{"Standup"}, titlesOf(t, dataOf(t, env)))

	env, err = run(t, "scrum", "edit", id, "--title", "Daily Standup", "--attendee", "Ann,Cy")
	require.NoError(t, err)
	data := dataOf(t, env)
	require.Equal(t, []any{"attendee", "title"}, data["changed"])
	edited := data["scrum"].(map[string]any)
	require.Equal(t, "Daily Standup", edited["title"])
	require.InDelta(t, 12, edited["length_in_minutes"], 0)

	env, err = run(t, "scrum", "record", "--id", id, "--transcript", "all good", "--length", "9")
	require.NoError(t, err)
	hist := dataOf(t, env)["history"].(map[string]any)
	require.Equal(t, "all good", hist["transcript"])
	require.InDelta(t, 9, hist["length_in_minutes"], 0)

	env, err = run(t, "scrum", "get", id)
	require.NoError(t, err)
	got := dataOf(t, env)["scrum"].(map[string]any)
	require.Len(t, got["history"], 1)
	require.Len(t, got["attendees"], 2)

	env, err = run(t, "scrum", "delete", "--id", id)
	require.NoError(t, err)
	require.InDelta(t, 0, dataOf(t, env)["remaining"], 0)
}

func TestScrum_GetUnknownID(t *testing.T) {
	useFileBackend(t)

	env, err := run(t, "scrum", "get", "missing")
	require.ErrorIs(t, err, scrumapp.ErrScrumNotFound)
	require.Equal(t, false, env["success"])
	require.Equal(t, "SCRUM_NOT_FOUND", env["error_code"])
}

func TestScrum_LoadFailureReportsGuidance(t *testing.T) {
	path := useFileBackend(t)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	env, err := run(t, "scrum", "list")
	require.Error(t, err)
	require.IsType(t, printedError{}, err)
	require.Equal(t, false, env["success"])
	require.Equal(t, "LOAD_FAILED", env["error_code"])
	require.Equal(t, scrumapp.GuidanceLoadFailed, env["suggested_action"])

	// the unreadable file is left alone
	b, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	require.Equal(t, "{not json", string(b))
}
