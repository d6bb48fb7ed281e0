package sessionstore

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/nsession/pkg/clientip"
	"github.com/dmitrymomot/nsession/pkg/cookie"
	"github.com/dmitrymomot/nsession/pkg/logger"
	"github.com/dmitrymomot/nsession/pkg/session"
)

const (
	DefaultCookieName    = "sid"
	DefaultCookiePath    = "/"
	DefaultCacheExpire   = 180 * time.Minute
	DefaultGCMaxLifetime = 1440 * time.Second
)

// Runtime is the host session runtime shared by all requests. It opens a
// Handle per request and persists it once the request is served.
type Runtime struct {
	backend       Backend
	cookies       *cookie.Manager
	defaults      session.CookieDefaults
	cookieName    string
	cacheLimiter  session.CacheLimiter
	cacheExpire   time.Duration
	gcMaxLifetime time.Duration
	ip            *clientip.Resolver
	log           *slog.Logger
	now           func() time.Time
}

// Option configures a Runtime.
type Option func(*Runtime)

// WithCookieDefaults sets the cookie attributes handles start with.
func WithCookieDefaults(d session.CookieDefaults) Option {
	return func(rt *Runtime) {
		rt.defaults = d
	}
}

// WithCookieName sets the default session cookie name.
func WithCookieName(name string) Option {
	return func(rt *Runtime) {
		if name != "" {
			rt.cookieName = name
		}
	}
}

// WithCacheLimiter sets the default cache limiter.
func WithCacheLimiter(l session.CacheLimiter) Option {
	return func(rt *Runtime) {
		rt.cacheLimiter = l
	}
}

// WithCacheExpire sets the max-age used by the public and private limiters.
func WithCacheExpire(d time.Duration) Option {
	return func(rt *Runtime) {
		rt.cacheExpire = d
	}
}

// WithGCMaxLifetime sets the minimum lifetime of a stored record.
func WithGCMaxLifetime(d time.Duration) Option {
	return func(rt *Runtime) {
		rt.gcMaxLifetime = d
	}
}

// WithTrustedIPHeaders sets the proxy headers used to resolve client IPs.
// By default only the connection address is used.
func WithTrustedIPHeaders(headers ...string) Option {
	return func(rt *Runtime) {
		rt.ip = clientip.New(headers...)
	}
}

func WithLogger(log *slog.Logger) Option {
	return func(rt *Runtime) {
		if log != nil {
			rt.log = log
		}
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(rt *Runtime) {
		if now != nil {
			rt.now = now
		}
	}
}

// NewRuntime creates a runtime over a backend and a cookie manager.
func NewRuntime(backend Backend, cookies *cookie.Manager, opts ...Option) (*Runtime, error) {
	if backend == nil {
		return nil, ErrNoBackend
	}
	if cookies == nil {
		return nil, ErrNoCookieManager
	}

	rt := &Runtime{
		backend:       backend,
		cookies:       cookies,
		defaults:      session.CookieDefaults{Path: DefaultCookiePath},
		cookieName:    DefaultCookieName,
		cacheLimiter:  session.CacheNoCache,
		cacheExpire:   DefaultCacheExpire,
		gcMaxLifetime: DefaultGCMaxLifetime,
		ip:            clientip.New(),
		log:           slog.New(slog.DiscardHandler),
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(rt)
	}

	return rt, nil
}

// Open creates an inactive Handle for a request.
func (rt *Runtime) Open(w http.ResponseWriter, r *http.Request) *Handle {
	return &Handle{
		rt:   rt,
		w:    w,
		r:    r,
		name: rt.cookieName,
		params: session.CookieParams{
			Lifetime: rt.defaults.Lifetime,
			Path:     rt.defaults.Path,
			Domain:   rt.defaults.Domain,
			HTTPOnly: true,
		},
		limiter: rt.cacheLimiter,
	}
}

// Middleware puts a Handle into the request context and commits it after the
// handler returns. Commit failures are logged; the response is already gone.
func (rt *Runtime) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := rt.Open(w, r)
		ctx := session.WithStore(r.Context(), h)

		next.ServeHTTP(w, r.WithContext(ctx))

		if err := h.Commit(context.WithoutCancel(ctx)); err != nil {
			rt.log.ErrorContext(ctx, "failed to commit session",
				logger.Component("sessionstore"),
				logger.Event("session.commit"),
				logger.SessionID(h.ID()),
				logger.Error(err),
			)
		}
	})
}
