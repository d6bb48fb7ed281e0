package sessionstore

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Migrations holds the goose migrations for PostgresBackend.
//
//go:embed migrations/*.sql
var Migrations embed.FS

// MigrationsDir is the directory of Migrations.
const MigrationsDir = "migrations"

const (
	loadQuery = `SELECT data FROM sessions
WHERE token = $1 AND (expires_at IS NULL OR expires_at > now())`

	saveQuery = `INSERT INTO sessions (token, data, expires_at, updated_at)
VALUES ($1, $2, $3, now())
ON CONFLICT (token) DO UPDATE
SET data = EXCLUDED.data, expires_at = EXCLUDED.expires_at, updated_at = now()`

	deleteQuery = `DELETE FROM sessions WHERE token = $1`

	deleteExpiredQuery = `DELETE FROM sessions WHERE expires_at IS NOT NULL AND expires_at <= now()`
)

// PostgresBackend stores sessions as JSONB rows. Expired rows are ignored on
// load and removed by DeleteExpired.
type PostgresBackend struct {
	pool *pgxpool.Pool
}

func NewPostgresBackend(pool *pgxpool.Pool) *PostgresBackend {
	return &PostgresBackend{pool: pool}
}

func (b *PostgresBackend) Load(ctx context.Context, token string) (map[string]any, error) {
	var raw []byte
	if err := b.pool.QueryRow(ctx, loadQuery, token).Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	data := make(map[string]any)
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, errors.Join(ErrCorruptRecord, err)
	}
	return data, nil
}

func (b *PostgresBackend) Save(ctx context.Context, token string, data map[string]any, ttl time.Duration) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}

	var expiresAt *time.Time
	if ttl > 0 {
		t := time.Now().Add(ttl)
		expiresAt = &t
	}

	_, err = b.pool.Exec(ctx, saveQuery, token, raw, expiresAt)
	return err
}

func (b *PostgresBackend) Delete(ctx context.Context, token string) error {
	_, err := b.pool.Exec(ctx, deleteQuery, token)
	return err
}

// DeleteExpired removes expired rows
func (b *PostgresBackend) DeleteExpired(ctx context.Context) error {
	_, err := b.pool.Exec(ctx, deleteExpiredQuery)
	return err
}
