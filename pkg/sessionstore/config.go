package sessionstore

import (
	"time"

	"github.com/dmitrymomot/nsession/pkg/cookie"
	"github.com/dmitrymomot/nsession/pkg/session"
)

// Config holds the host runtime configuration
type Config struct {
	// Backend selects the storage: memory, redis or postgres
	Backend string `env:"SESSION_BACKEND" envDefault:"memory"`

	CookieName     string `env:"SESSION_DEFAULT_COOKIE_NAME" envDefault:"sid"`
	CookieLifetime int    `env:"SESSION_DEFAULT_COOKIE_LIFETIME" envDefault:"0"`
	CookiePath     string `env:"SESSION_DEFAULT_COOKIE_PATH" envDefault:"/"`
	CookieDomain   string `env:"SESSION_DEFAULT_COOKIE_DOMAIN"`

	CacheLimiter session.CacheLimiter `env:"SESSION_DEFAULT_CACHE_LIMITER" envDefault:"nocache"`
	CacheExpire  time.Duration        `env:"SESSION_CACHE_EXPIRE" envDefault:"180m"`

	// GCMaxLifetime is the minimum time a record survives without writes
	GCMaxLifetime time.Duration `env:"SESSION_GC_MAX_LIFETIME" envDefault:"24m"`
	GCInterval    time.Duration `env:"SESSION_GC_INTERVAL" envDefault:"5m"`

	RedisKeyPrefix string `env:"SESSION_REDIS_PREFIX" envDefault:"sess:"`

	// TrustedIPHeaders are proxy headers trusted for the client IP (comma-separated)
	TrustedIPHeaders []string `env:"SESSION_TRUSTED_IP_HEADERS" envSeparator:","`
}

// DefaultConfig returns default runtime configuration
func DefaultConfig() Config {
	return Config{
		Backend:        "memory",
		CookieName:     DefaultCookieName,
		CookiePath:     DefaultCookiePath,
		CacheLimiter:   session.CacheNoCache,
		CacheExpire:    DefaultCacheExpire,
		GCMaxLifetime:  DefaultGCMaxLifetime,
		GCInterval:     5 * time.Minute,
		RedisKeyPrefix: DefaultRedisKeyPrefix,
	}
}

// NewFromConfig creates a Runtime from the provided Config. Options are
// applied after the configuration.
func NewFromConfig(backend Backend, cookies *cookie.Manager, cfg Config, opts ...Option) (*Runtime, error) {
	options := []Option{
		WithCookieName(cfg.CookieName),
		WithCookieDefaults(session.CookieDefaults{
			Lifetime: cfg.CookieLifetime,
			Path:     cfg.CookiePath,
			Domain:   cfg.CookieDomain,
		}),
		WithCacheLimiter(cfg.CacheLimiter),
		WithCacheExpire(cfg.CacheExpire),
		WithGCMaxLifetime(cfg.GCMaxLifetime),
		WithTrustedIPHeaders(cfg.TrustedIPHeaders...),
	}
	return NewRuntime(backend, cookies, append(options, opts...)...)
}
