package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	require.Equal(t, zerolog.DebugLevel, ParseLevel("DEBUG"))
	require.Equal(t, zerolog.WarnLevel, ParseLevel("warning"))
	require.Equal(t, zerolog.ErrorLevel, ParseLevel("error"))
	require.Equal(t, zerolog.Disabled, ParseLevel("off"))
	require.Equal(t, zerolog.InfoLevel, ParseLevel("nonsense"))
}

func TestComponent_AddsField(t *testing.T) {
	var buf bytes.Buffer
	l := Component(New(&buf, "info"), "root")
	l.Info().Str("op", "load").Msg("done")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "root", entry["component"])
	require.Equal(t, "load", entry["op"])
	require.Equal(t, "done", entry["message"])
	require.Contains(t, entry, "time")
}

func TestNew_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "warn")
	l.Info().Msg("hidden")
	require.Zero(t, buf.Len())
	l.Warn().Msg("shown")
	require.NotZero(t, buf.Len())
}

func TestOpenFile_Appends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	l, closer, err := OpenFile(path, "info")
	require.NoError(t, err)
	l.Info().Msg("first")
	require.NoError(t, closer.Close())

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(b), `"message":"first"`)
}
