package store

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"strconv"
	"strings"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// MigrateDB brings db up to the latest embedded migration. File databases
// are migrated under withMigrationLock; in-memory ones have nobody to race.
func MigrateDB(db *sql.DB, dbPath string) error {
	if strings.Contains(dbPath, ":memory:") {
		return RunMigrations(db)
	}
	return withMigrationLock(dbPath, func() error { return RunMigrations(db) })
}

// SchemaVersion returns the current and latest migration versions.
// current is the highest applied version in goose_db_version; latest is the
// highest version in the embedded migration files. A database that was never
// migrated reports current 0.
func SchemaVersion(db *sql.DB) (current int64, latest int64, err error) {
	err = db.QueryRowContext(context.Background(),
		`SELECT COALESCE(MAX(version_id), 0) FROM goose_db_version WHERE is_applied`).Scan(&current)
	if err != nil {
		if !strings.Contains(err.Error(), "no such table") {
			return 0, 0, fmt.Errorf("read schema version: %w", err)
		}
		current = 0
	}

	latest, err = latestMigrationVersion()
	if err != nil {
		return current, 0, fmt.Errorf("determine latest version: %w", err)
	}
	return current, latest, nil
}

// SchemaStatus is the migration state of a database file.
type SchemaStatus struct {
	Current int64 `json:"current"`
	Latest  int64 `json:"latest"`
}

// Behind reports whether migrations are pending.
func (s SchemaStatus) Behind() bool { return s.Current < s.Latest }

// ReadSchemaStatus reports the schema version of the existing database at
// path without migrating it. mode=rw rather than ro so a WAL database whose
// -shm file is gone can still be read; nothing is written.
func ReadSchemaStatus(path string) (SchemaStatus, error) {
	db, err := sql.Open("sqlite", "file:"+path+"?mode=rw")
	if err != nil {
		return SchemaStatus{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = db.Close() }()

	current, latest, err := SchemaVersion(db)
	if err != nil {
		return SchemaStatus{}, err
	}
	return SchemaStatus{Current: current, Latest: latest}, nil
}

// latestMigrationVersion reads the embedded migrations directory and returns
// the highest version number found.
func latestMigrationVersion() (int64, error) {
	entries, err := embedMigrations.ReadDir("migrations")
	if err != nil {
		return 0, fmt.Errorf("read migrations dir: %w", err)
	}
	var max int64
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		// Parse version from filename prefix "00002_name.sql" -> 2
		idx := strings.IndexByte(name, '_')
		if idx <= 0 {
			continue
		}
		v, err := strconv.ParseInt(name[:idx], 10, 64)
		if err != nil {
			continue
		}
		if v > max {
			max = v
		}
	}
	return max, nil
}

// RunMigrations runs all pending migrations using goose.
func RunMigrations(db *sql.DB) error {
	if err := configureGoose(); err != nil {
		return err
	}
	return goose.Up(db, "migrations")
}

func configureGoose() error {
	goose.SetBaseFS(embedMigrations)
	goose.SetVerbose(false)
	goose.SetLogger(goose.NopLogger())

	// goose uses "sqlite3" as its dialect name regardless of the underlying driver.
	// We use modernc.org/sqlite (registered as "sqlite"), but goose's dialect
	// controls SQL generation, not the driver name.
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}
	return nil
}
