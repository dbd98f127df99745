package app

import (
	"os"
	"path/filepath"
)

// ConfigDir returns ~/.config/scrumdinger/ on all platforms.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "scrumdinger"), nil
}

// EnsureConfigDir creates the config directory and default config.yaml if missing.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	configFile := filepath.Join(dir, "config.yaml")
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		return os.WriteFile(configFile, []byte(defaultConfig), 0600)
	}
	return nil
}

// LogFilePath is where the terminal window writes its log.
func LogFilePath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "scrumdinger.log"), nil
}

const defaultConfig = `# scrumdinger configuration
# Run: scrumdinger --help

# Optional: storage backend, "sqlite" (default) or "file".
# Can also be set via SCRUMDINGER_BACKEND or --backend.
# backend: sqlite

# Optional: override the data file location.
# Can also be set via SCRUMDINGER_DATA_PATH or --data-path.
# data_path: ~/.config/scrumdinger/scrums.db

# Optional: debug, info, warn, error.
# log_level: info

# Optional: how long quitting waits for a pending save, in milliseconds.
# save_grace_ms: 3000
`
