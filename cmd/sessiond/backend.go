package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/nsession/pkg/config"
	"github.com/dmitrymomot/nsession/pkg/pg"
	"github.com/dmitrymomot/nsession/pkg/redis"
	"github.com/dmitrymomot/nsession/pkg/sessionstore"
)

var errUnknownBackend = errors.New("sessiond.unknown_backend")

// backend bundles the selected session backend with its probes and cleanup.
type backend struct {
	name    string
	backend sessionstore.Backend
	gc      sessionstore.Collector
	probes  []func(context.Context) error
	close   func()
}

func openBackend(ctx context.Context, cfg sessionstore.Config, log *slog.Logger) (backend, error) {
	switch cfg.Backend {
	case "", "memory":
		// the memory backend sweeps itself
		mem := sessionstore.NewMemoryBackend(cfg.GCInterval)
		return backend{
			name:    "memory",
			backend: mem,
			close:   func() { _ = mem.Close() },
		}, nil

	case "redis":
		var rc redis.Config
		if err := config.Load(&rc); err != nil {
			return backend{}, err
		}
		client, err := redis.Connect(ctx, rc)
		if err != nil {
			return backend{}, err
		}
		return backend{
			name:    "redis",
			backend: sessionstore.NewRedisBackend(client, cfg.RedisKeyPrefix),
			probes:  []func(context.Context) error{redis.Healthcheck(client)},
			close:   func() { _ = client.Close() },
		}, nil

	case "postgres":
		var pc pg.Config
		if err := config.Load(&pc); err != nil {
			return backend{}, err
		}
		pool, err := pg.Connect(ctx, pc)
		if err != nil {
			return backend{}, err
		}
		if err := pg.Migrate(ctx, pool, sessionstore.Migrations, sessionstore.MigrationsDir, pc, log); err != nil {
			pool.Close()
			return backend{}, err
		}
		pb := sessionstore.NewPostgresBackend(pool)
		return backend{
			name:    "postgres",
			backend: pb,
			gc:      pb,
			probes:  []func(context.Context) error{pg.Healthcheck(pool)},
			close:   pool.Close,
		}, nil
	}

	return backend{}, fmt.Errorf("%w: %q", errUnknownBackend, cfg.Backend)
}
