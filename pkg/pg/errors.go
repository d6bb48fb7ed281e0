package pg

import (
	"errors"

	"github.com/jackc/pgx/v5"
)

var (
	ErrEmptyConnectionString   = errors.New("pg.empty_connection_string")
	ErrFailedToParseConfig     = errors.New("pg.parse_config_failed")
	ErrFailedToOpenConnection  = errors.New("pg.connection_failed")
	ErrHealthcheckFailed       = errors.New("pg.healthcheck_failed")
	ErrFailedToApplyMigrations = errors.New("pg.migrations_failed")
	ErrNoMigrations            = errors.New("pg.no_migrations")
)

// IsNotFoundError reports whether err is pgx.ErrNoRows.
func IsNotFoundError(err error) bool {
	return err != nil && errors.Is(err, pgx.ErrNoRows)
}
