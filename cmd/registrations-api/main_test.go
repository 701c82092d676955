package main

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bootcamp-landing/registrations-api/internal/config"
	"github.com/bootcamp-landing/registrations-api/internal/storage/memory"
	"github.com/bootcamp-landing/registrations-api/internal/storage/sqlite"
)

func TestOpenStorage(t *testing.T) {
	ctx := context.Background()

	s, err := openStorage(ctx, config.Storage{Driver: config.DriverMemory})
	require.NoError(t, err)
	assert.IsType(t, &memory.Store{}, s)

	path := filepath.Join(t.TempDir(), "nested", "registrations.db")
	s, err = openStorage(ctx, config.Storage{Driver: config.DriverSQLite, Path: path})
	require.NoError(t, err)
	defer s.Close()
	assert.IsType(t, &sqlite.SQLite{}, s)

	_, err = openStorage(ctx, config.Storage{Driver: "mongo"})
	assert.Error(t, err)
}

func TestSetupLogger(t *testing.T) {
	ctx := context.Background()

	assert.True(t, setupLogger("dev").Enabled(ctx, slog.LevelDebug))
	assert.True(t, setupLogger("staging").Enabled(ctx, slog.LevelDebug))
	assert.False(t, setupLogger("prod").Enabled(ctx, slog.LevelDebug))
	assert.True(t, setupLogger("prod").Enabled(ctx, slog.LevelInfo))
}
