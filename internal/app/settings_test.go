package app

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func resetSettingsStateForTest() {
	settingsOnce = sync.Once{}
	settings = Settings{}
	settingsErr = nil
	SetDataPathOverride("")
	SetBackendOverride("")
}

// isolate points HOME and the working directory at fresh temp dirs.
func isolate(t *testing.T) (home, workdir string) {
	t.Helper()
	resetSettingsStateForTest()
	t.Cleanup(resetSettingsStateForTest)

	home = t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("SCRUMDINGER_DATA_PATH", "")
	t.Setenv("SCRUMDINGER_BACKEND", "")
	t.Setenv("SCRUMDINGER_LOG_LEVEL", "")

	workdir = t.TempDir()
	oldwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(workdir))
	t.Cleanup(func() { _ = os.Chdir(oldwd) })
	return home, workdir
}

func writeUserConfig(t *testing.T, home, content string) {
	t.Helper()
	p := filepath.Join(home, ".config", "scrumdinger", "config.yaml")
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
}

func TestLoadSettings_PrefersUserConfigOverLocal(t *testing.T) {
	home, workdir := isolate(t)

	writeUserConfig(t, home, "data_path: /tmp/from-user.db\n")
	require.NoError(t, os.WriteFile(filepath.Join(workdir, "config.yaml"), []byte("data_path: /tmp/from-local.db\n"), 0o600))

	s, err := LoadSettings()
	require.NoError(t, err)
	require.Equal(t, "/tmp/from-user.db", s.DataPath)
}

func TestLoadSettings_FallsBackToLocalConfig(t *testing.T) {
	_, workdir := isolate(t)

	require.NoError(t, os.WriteFile(filepath.Join(workdir, "config.yaml"), []byte("backend: file\n"), 0o600))

	s, err := LoadSettings()
	require.NoError(t, err)
	require.Equal(t, "file", s.Backend)
}

func TestLoadSettings_InvalidYAMLReturnsError(t *testing.T) {
	home, _ := isolate(t)
	writeUserConfig(t, home, "data_path: [")

	_, err := LoadSettings()
	require.Error(t, err)
}

func TestLoadSettingsFile_ReadsAllFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "data_path: /tmp/read.db\nbackend: sqlite\nlog_level: debug\nsave_grace_ms: 1500\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	s, err := loadSettingsFile(path)
	require.NoError(t, err)
	require.Equal(t, Settings{DataPath: "/tmp/read.db", Backend: "sqlite", LogLevel: "debug", SaveGraceMS: 1500}, s)
}

func TestLogLevel_EnvWinsOverConfig(t *testing.T) {
	home, _ := isolate(t)
	require.Equal(t, "info", LogLevel())

	writeUserConfig(t, home, "log_level: WARN\n")
	resetSettingsStateForTest()
	require.Equal(t, "warn", LogLevel())

	t.Setenv("SCRUMDINGER_LOG_LEVEL", "debug")
	require.Equal(t, "debug", LogLevel())
}

func TestSaveGrace_DefaultsAndClamp(t *testing.T) {
	home, _ := isolate(t)
	require.Equal(t, 3*time.Second, SaveGrace())

	writeUserConfig(t, home, "save_grace_ms: 999999\n")
	resetSettingsStateForTest()
	require.Equal(t, time.Minute, SaveGrace())
}
