package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"persona-tracker/internal/pkg/db"
)

func setupSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	ctx := context.Background()

	sqlDB, err := db.OpenSQLite(ctx, filepath.Join(t.TempDir(), "persona.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	store := NewSQLiteStore(sqlDB, clockwork.NewFakeClock())
	require.NoError(t, store.Migrate(ctx))
	return store
}

func TestSQLiteStore_Contract(t *testing.T) {
	runStoreContract(t, setupSQLiteStore(t))
}

func TestSQLiteStore_MigrateIsIdempotent(t *testing.T) {
	store := setupSQLiteStore(t)
	assert.NoError(t, store.Migrate(context.Background()))
}

func TestSQLiteStore_DocumentsRoundTrip(t *testing.T) {
	store := setupSQLiteStore(t)
	docs := NewDocuments(store, "persona_")
	ctx := context.Background()

	_, err := docs.Money.Update(ctx, func(b int64) (int64, error) { return b - 1000, nil })
	require.NoError(t, err)

	got, err := docs.Money.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(-1000), got)

	raw, found, err := store.Get(ctx, "persona_money")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "-1000", string(raw))
}
