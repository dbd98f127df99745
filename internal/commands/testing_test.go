package commands

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()

	original := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w
	defer func() { os.Stdout = original }()

	fn()

	require.NoError(t, w.Close())

	b, err := io.ReadAll(r)
	require.NoError(t, err)
	require.NoError(t, r.Close())
	return string(b)
}

// useFileBackend points the CLI at a JSON data file in a temp dir and returns
// its path.
func useFileBackend(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("SCRUMDINGER_PRETTY_JSON", "")
	path := filepath.Join(t.TempDir(), "scrums.json")
	t.Setenv("SCRUMDINGER_BACKEND", "file")
	t.Setenv("SCRUMDINGER_DATA_PATH", path)
	return path
}

// run executes the root command with args and returns its error and the
// decoded JSON envelope.
func run(t *testing.T, args ...string) (map[string]any, error) {
	t.Helper()
	var err error
	out := captureStdout(t, func() {
		root := newRootCmd("test")
		root.SetArgs(args)
		err = root.Execute()
	})
	var env map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &env), out)
	return env, err
}

func dataOf(t *testing.T, env map[string]any) map[string]any {
	t.Helper()
	require.Equal(t, true, env["success"], env)
	data, ok := env["data"].(map[string]any)
	require.True(t, ok, env)
	return data
}

func titlesOf(t *testing.T, data map[string]any) []string {
	t.Helper()
	raw, ok := data["scrums"].([]any)
	require.True(t, ok, data)
	out := make([]string, 0, len(raw))
	for _, s := range raw {
		out = append(out, s.(map[string]any)["title"].(string))
	}
	return out
}
