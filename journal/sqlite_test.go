package journal

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteSchemaCreated(t *testing.T) {
	t.Parallel()

	j, path := newTestSQLite(t)
	require.NoError(t, j.Close())

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	var name string
	err = db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name='trades'`).Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "trades", name)
}

func TestSQLiteReopenKeepsTrades(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	j, path := newTestSQLite(t)
	require.NoError(t, j.Insert(ctx, eurusd("T1", "2024-01-02", "", "1.1", "1.1025")))
	require.NoError(t, j.Close())

	j2, err := NewSQLite(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = j2.Close() })

	got, err := j2.Get(ctx, "T1")
	require.NoError(t, err)
	assert.Equal(t, "", got.Time)
	assert.False(t, got.StopLoss.Valid)
	assert.True(t, d("250").Equal(got.Profit()))
}

func TestSQLiteInMemory(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	j, err := NewSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = j.Close() })

	require.NoError(t, j.Insert(ctx, eurusd("T1", "2024-01-02", "", "1.1", "1.2")))
	got, err := j.List(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
