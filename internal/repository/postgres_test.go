package repository

import (
	"context"
	"os/exec"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"persona-tracker/internal/model"
)

// checkDockerAvailable checks if Docker is available and running
func checkDockerAvailable() bool {
	cmd := exec.Command("docker", "info")
	return cmd.Run() == nil
}

// setupPostgresStore starts a PostgreSQL container and returns a migrated store.
// Skips the test if Docker is not available.
func setupPostgresStore(t *testing.T) *PostgresStore {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	if !checkDockerAvailable() {
		t.Skip("Docker is not available, skipping integration test")
	}

	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)

	t.Cleanup(func() {
		pool.Close()
		_ = pgContainer.Terminate(ctx)
	})

	store := NewPostgresStore(pool)
	require.NoError(t, store.Migrate(ctx))
	return store
}

func TestPostgresStore_Contract(t *testing.T) {
	runStoreContract(t, setupPostgresStore(t))
}

func TestPostgresStore_HistoryDocument(t *testing.T) {
	store := setupPostgresStore(t)
	docs := NewDocuments(store, "persona_")
	ctx := context.Background()

	entry := model.NewMoneyEntry(-500)
	entry.ID = 1700000000000
	entry.Timestamp = time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	require.NoError(t, docs.History.Save(ctx, []model.HistoryEntry{entry}))

	got, err := docs.History.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, model.KindMoney, got[0].Kind)
	assert.Equal(t, int64(-500), got[0].Money.Amount)
	assert.True(t, entry.Timestamp.Equal(got[0].Timestamp))
}
