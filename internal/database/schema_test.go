package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/fyyur/internal/config"
)

func TestCreateSchema_SQLiteIsIdempotent(t *testing.T) {
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "schema.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	require.NoError(t, CreateSchema(ctx, db, config.DriverSQLite))
	require.NoError(t, CreateSchema(ctx, db, config.DriverSQLite))

	var n int
	require.NoError(t, db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name IN ('venues', 'artists', 'shows')`).Scan(&n))
	assert.Equal(t, 3, n)
}

func TestCreateSchema_UnknownDriver(t *testing.T) {
	assert.Error(t, CreateSchema(context.Background(), nil, "oracle"))
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open(config.Config{DBDriver: "oracle"})
	assert.Error(t, err)
}
