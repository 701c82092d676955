package sqlite

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bootcamp-landing/registrations-api/internal/storage"
	"github.com/bootcamp-landing/registrations-api/internal/storage/storagetest"
)

func TestSQLite(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) storage.Storage {
		s, err := New(filepath.Join(t.TempDir(), "registrations.db"))
		require.NoError(t, err)
		t.Cleanup(func() { _ = s.Close() })
		return s
	})
}

func TestNew_ReopenKeepsRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registrations.db")

	s, err := New(path)
	require.NoError(t, err)
	_, err = s.CreateRegistration(t.Context(), storagetest.Input("a"))
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = New(path)
	require.NoError(t, err)
	defer s.Close()

	count, err := s.CountRegistrations(t.Context())
	require.NoError(t, err)
	require.Equal(t, int64(1), count)
}

func TestNew_BadPath(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing-dir", "registrations.db"))
	require.Error(t, err)
}
