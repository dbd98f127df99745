package store

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/require"

	"github.com/dotcommander/scrumdinger/internal/models"
)

func TestRunDiagnostics_CleanData(t *testing.T) {
	require.Empty(t, RunDiagnostics(models.SampleData(), nil))
}

func TestRunDiagnostics_FindsInvalidAndDuplicates(t *testing.T) {
	scrums := models.SampleData()
	scrums[1].LengthInMinutes = 90
	scrums[2].ID = scrums[0].ID

	diags := RunDiagnostics(scrums, nil)
	require.Len(t, diags, 2)

	require.Equal(t, "INVALID_SCRUM", diags[0].Code)
	require.Equal(t, scrums[1].ID, diags[0].ScrumID)
	require.Equal(t, "DUPLICATE_SCRUM_ID", diags[1].Code)
	require.Equal(t, "error", diags[1].Level)
}

// migratedTo creates a database file at path migrated up to version v only.
func migratedTo(t *testing.T, path string, v int64) {
	t.Helper()
	db, err := sql.Open("sqlite", normalizeSQLiteDSN(path))
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	require.NoError(t, configureGoose())
	require.NoError(t, goose.UpTo(db, "migrations", v))
}

func TestReadSchemaStatus_ReportsPendingMigrations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scrums.db")
	migratedTo(t, path, 1)

	st, err := ReadSchemaStatus(path)
	require.NoError(t, err)
	require.Equal(t, int64(1), st.Current)
	require.Equal(t, int64(2), st.Latest)
	require.True(t, st.Behind())

	diags := RunDiagnostics(nil, &st)
	require.Len(t, diags, 1)
	require.Equal(t, "SCHEMA_BEHIND", diags[0].Code)
}

func TestReadSchemaStatus_DoesNotMigrate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scrums.db")
	migratedTo(t, path, 1)

	_, err := ReadSchemaStatus(path)
	require.NoError(t, err)
	st, err := ReadSchemaStatus(path)
	require.NoError(t, err)
	require.Equal(t, int64(1), st.Current)

	// opening the backend migrates it
	b, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, b.Close())
	st, err = ReadSchemaStatus(path)
	require.NoError(t, err)
	require.False(t, st.Behind())
}

func TestReadSchemaStatus_MigratedDatabaseHasNoSchemaFinding(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scrums.db")
	b, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, b.Close())

	st, err := ReadSchemaStatus(path)
	require.NoError(t, err)
	require.Empty(t, RunDiagnostics(nil, &st))
}
