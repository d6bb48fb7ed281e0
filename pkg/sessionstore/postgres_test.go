//go:build integration

package sessionstore_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/dmitrymomot/nsession/pkg/pg"
	"github.com/dmitrymomot/nsession/pkg/sessionstore"
)

func TestPostgresBackend(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()

	container, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("sessions"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	cfg := pg.Config{
		ConnectionString: connStr,
		MaxConns:         4,
		RetryAttempts:    5,
		RetryInterval:    time.Second,
		MigrationsTable:  "session_migrations",
	}
	pool, err := pg.Connect(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, pg.Migrate(ctx, pool, sessionstore.Migrations, sessionstore.MigrationsDir, cfg, nil))
	require.NoError(t, pg.Healthcheck(pool)(ctx))

	b := sessionstore.NewPostgresBackend(pool)

	t.Run("save load delete", func(t *testing.T) {
		_, err := b.Load(ctx, "missing")
		assert.ErrorIs(t, err, sessionstore.ErrSessionNotFound)

		require.NoError(t, b.Save(ctx, "tok", map[string]any{"app": map[string]any{"user": "alice"}}, time.Hour))
		require.NoError(t, b.Save(ctx, "tok", map[string]any{"app": map[string]any{"user": "bob"}}, time.Hour))

		data, err := b.Load(ctx, "tok")
		require.NoError(t, err)
		assert.Equal(t, "bob", data["app"].(map[string]any)["user"])

		require.NoError(t, b.Delete(ctx, "tok"))
		_, err = b.Load(ctx, "tok")
		assert.ErrorIs(t, err, sessionstore.ErrSessionNotFound)
	})

	t.Run("expired rows", func(t *testing.T) {
		require.NoError(t, b.Save(ctx, "old", map[string]any{}, time.Millisecond))
		time.Sleep(20 * time.Millisecond)

		_, err := b.Load(ctx, "old")
		assert.ErrorIs(t, err, sessionstore.ErrSessionNotFound)

		require.NoError(t, b.DeleteExpired(ctx))

		var n int
		require.NoError(t, pool.QueryRow(ctx, `SELECT count(*) FROM sessions WHERE token = 'old'`).Scan(&n))
		assert.Zero(t, n)
	})
}
