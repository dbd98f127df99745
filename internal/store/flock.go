package store

import (
	"fmt"
	"os"
	"path/filepath"
	"syscall"
)

// withMigrationLock runs fn while holding an exclusive flock on a sidecar
// file next to the database, so a window and a CLI command started together
// never migrate the same file twice.
func withMigrationLock(dbPath string, fn func() error) error {
	lock := dbPath + ".migrate.lock"
	if err := os.MkdirAll(filepath.Dir(lock), 0o755); err != nil {
		return fmt.Errorf("lock dir: %w", err)
	}
	f, err := os.OpenFile(lock, os.O_CREATE|os.O_RDWR, 0o600) //nolint:gosec // G304: derived from the resolved data path
	if err != nil {
		return fmt.Errorf("open %s: %w", lock, err)
	}
	defer func() { _ = f.Close() }()

	fd := int(f.Fd())
	if err := syscall.Flock(fd, syscall.LOCK_EX); err != nil {
		return fmt.Errorf("flock %s: %w", lock, err)
	}
	defer func() { _ = syscall.Flock(fd, syscall.LOCK_UN) }()

	return fn()
}
