package app

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// Settings represents configuration loaded from config.yaml.
// Field names match snake_case YAML keys.
type Settings struct {
	DataPath    string `yaml:"data_path"`
	Backend     string `yaml:"backend"`
	LogLevel    string `yaml:"log_level"`
	SaveGraceMS int    `yaml:"save_grace_ms"`
}

const (
	defaultLogLevel    = "info"
	defaultSaveGraceMS = 3000
	maxSaveGraceMS     = 60000
)

// settingsOnce, settings, settingsErr implement the sync.Once lazy-load singleton for config.
// overrideMu guards the process-wide CLI overrides for --data-path and --backend.
//
//nolint:gochecknoglobals // sync.Once singleton + RWMutex override are intentional process-wide state
var (
	settingsOnce sync.Once
	settings     Settings
	settingsErr  error

	overrideMu       sync.RWMutex
	dataPathOverride string
	backendOverride  string
)

// SetDataPathOverride sets a process-wide data path override.
// Intended for CLI flag support (e.g. --data-path).
func SetDataPathOverride(path string) {
	overrideMu.Lock()
	dataPathOverride = path
	overrideMu.Unlock()
}

// SetBackendOverride sets a process-wide backend override (--backend).
func SetBackendOverride(kind string) {
	overrideMu.Lock()
	backendOverride = kind
	overrideMu.Unlock()
}

func getDataPathOverride() string {
	overrideMu.RLock()
	v := dataPathOverride
	overrideMu.RUnlock()
	return v
}

func getBackendOverride() string {
	overrideMu.RLock()
	v := backendOverride
	overrideMu.RUnlock()
	return v
}

// LoadSettings loads configuration once using the documented lookup order.
// Lookup order (first found wins):
// 1) ~/.config/scrumdinger/config.yaml
// 2) /etc/scrumdinger/config.yaml
// 3) ./config.yaml (lowest priority; allows repo-local overrides if desired)
// Environment variables are handled separately.
func LoadSettings() (Settings, error) {
	settingsOnce.Do(func() {
		settings = Settings{}

		for _, p := range settingsPaths() {
			s, err := loadSettingsFile(p)
			if err == nil {
				settings = s
				return
			}
			if !errors.Is(err, os.ErrNotExist) {
				settingsErr = err
				return
			}
		}
	})

	return settings, settingsErr
}

func settingsPaths() []string {
	var paths []string
	if dir, err := ConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, "config.yaml"))
	}
	return append(paths,
		filepath.Join(string(os.PathSeparator), "etc", "scrumdinger", "config.yaml"),
		"config.yaml",
	)
}

func loadSettingsFile(path string) (Settings, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, err
	}

	var s Settings
	if err := yaml.Unmarshal(b, &s); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// LogLevel returns the effective log level name.
// SCRUMDINGER_LOG_LEVEL wins over config.yaml.
func LogLevel() string {
	if v := os.Getenv("SCRUMDINGER_LOG_LEVEL"); v != "" {
		return strings.ToLower(v)
	}
	if s, err := LoadSettings(); err == nil && s.LogLevel != "" {
		return strings.ToLower(s.LogLevel)
	}
	return defaultLogLevel
}

// SaveGrace is how long shutdown waits for an in-flight save.
// Invalid or missing config values fall back to the default.
func SaveGrace() time.Duration {
	ms := defaultSaveGraceMS
	if s, err := LoadSettings(); err == nil && s.SaveGraceMS > 0 {
		ms = s.SaveGraceMS
	}
	if ms > maxSaveGraceMS {
		ms = maxSaveGraceMS
	}
	return time.Duration(ms) * time.Millisecond
}
