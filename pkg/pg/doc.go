// Package pg connects the PostgreSQL session backend. It opens a pgx pool
// with retries, applies embedded goose migrations and exposes a health probe.
//
//	var cfg pg.Config
//	config.MustLoad(&cfg)
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer pool.Close()
//
//	err = pg.Migrate(ctx, pool, sessionstore.Migrations, sessionstore.MigrationsDir, cfg, log)
package pg
