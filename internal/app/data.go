package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Supported storage backends.
const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
)

// GetBackend resolves the storage backend.
// Order of precedence:
// 1) CLI override (--backend)
// 2) Environment variable: SCRUMDINGER_BACKEND
// 3) config.yaml: backend
// 4) Default: sqlite
func GetBackend() (string, error) {
	kind, _, err := resolveBackend()
	return kind, err
}

func resolveBackend() (kind string, source string, err error) {
	if v := getBackendOverride(); v != "" {
		return normalizeBackend(v, "cli(--backend)")
	}
	if v := os.Getenv("SCRUMDINGER_BACKEND"); v != "" {
		return normalizeBackend(v, "env(SCRUMDINGER_BACKEND)")
	}
	cfg, err := LoadSettings()
	if err != nil {
		return "", "", fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.Backend != "" {
		return normalizeBackend(cfg.Backend, "config")
	}
	return BackendSQLite, "default", nil
}

func normalizeBackend(v, source string) (string, string, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case BackendSQLite:
		return BackendSQLite, source, nil
	case BackendFile, "json":
		return BackendFile, source, nil
	default:
		return "", source, fmt.Errorf("unknown backend %q (want %q or %q)", v, BackendSQLite, BackendFile)
	}
}

// GetDataPath resolves the data path for the given backend.
// Order of precedence:
// 1) CLI override (e.g. --data-path)
// 2) Environment variable: SCRUMDINGER_DATA_PATH
// 3) config.yaml: data_path
// 4) Default: ~/.config/scrumdinger/scrums.db (scrums.json for the file backend)
// Returns the path and ensures the parent directory exists.
func GetDataPath(backend string) (string, error) {
	path, _, err := ResolveDataPathDetailed(backend)
	return path, err
}

// ResolveDataPathDetailed returns the resolved data path along with the source of that decision.
func ResolveDataPathDetailed(backend string) (path string, source string, err error) {
	if override := getDataPathOverride(); override != "" {
		resolved, ensureErr := EnsureDataDir(override)
		return resolved, "cli(--data-path)", ensureErr
	}

	if envPath := os.Getenv("SCRUMDINGER_DATA_PATH"); envPath != "" {
		resolved, ensureErr := EnsureDataDir(envPath)
		return resolved, "env(SCRUMDINGER_DATA_PATH)", ensureErr
	}

	cfg, err := LoadSettings()
	if err != nil {
		return "", "", fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.DataPath != "" {
		resolved, ensureErr := EnsureDataDir(expandTilde(cfg.DataPath))
		return resolved, "config", ensureErr
	}

	configDir, err := ConfigDir()
	if err != nil {
		return "", "", fmt.Errorf("failed to determine config directory: %w", err)
	}
	name := "scrums.db"
	if backend == BackendFile {
		name = "scrums.json"
	}
	resolved, err := EnsureDataDir(filepath.Join(configDir, name))
	return resolved, "default(~/.config/scrumdinger/" + name + ")", err
}

// EnsureDataDir creates the parent directory of dataPath.
func EnsureDataDir(dataPath string) (string, error) {
	dir := filepath.Dir(dataPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create data directory: %w", err)
	}
	return dataPath, nil
}

func expandTilde(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

// ResolveBackendDetailed reports the backend and the source that chose it.
func ResolveBackendDetailed() (kind string, source string, err error) {
	return resolveBackend()
}
