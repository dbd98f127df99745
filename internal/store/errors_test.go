package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPersistenceError_Wraps(t *testing.T) {
	cause := errors.New("disk full")
	err := fmt.Errorf("outer: %w", &PersistenceError{Op: OpSave, Backend: "file", Path: "/x.json", Err: cause})

	require.ErrorIs(t, err, cause)
	require.True(t, IsPersistenceError(err, OpSave))
	require.True(t, IsPersistenceError(err, ""))
	require.False(t, IsPersistenceError(err, OpLoad))
	require.False(t, IsPersistenceError(cause, ""))

	var rec RecoverableError
	require.True(t, errors.As(err, &rec))
	require.Equal(t, "SAVE_FAILED", rec.ErrorCode())
	require.Equal(t, "try again later", rec.SuggestedAction())
	require.Equal(t, "/x.json", rec.Context()["path"])
	require.Equal(t, "outer: save scrums: disk full", err.Error())
}

func TestPersistenceError_LoadCode(t *testing.T) {
	pe := &PersistenceError{Op: OpLoad, Path: "/db"}
	require.Equal(t, "LOAD_FAILED", pe.ErrorCode())
	require.Equal(t, "load scrums failed", pe.Error())
	require.Contains(t, pe.SuggestedAction(), "scrumdinger reset")
}
