package session

import (
	"log/slog"
	"time"
)

// Options configures a namespaced session. The zero value of every field
// except Name and Namespace is meaningful: unset lifetime, path and domain
// fall back to the store defaults, unset flags are false.
type Options struct {
	// Name is the session cookie name
	Name string

	// Lifetime of the session cookie, seconds or a relative phrase
	Lifetime Lifetime

	Path   string
	Domain string

	Secure   bool
	HTTPOnly bool

	// CacheLimiter selects the cache headers sent when the session starts
	CacheLimiter CacheLimiter

	// Namespace isolates this consumer's keys inside the shared store
	Namespace string

	// AutoRefresh extends the cookie expiry on every start (sliding expiration)
	AutoRefresh bool

	// BindToIPAddress restarts the session when the client IP changes
	BindToIPAddress bool

	// BindToUserAgent restarts the session when the client user agent changes
	BindToUserAgent bool
}

// DefaultOptions returns the recommended options: a one hour HTTP-only
// cookie, no caching, sliding expiration and identity binding.
func DefaultOptions() Options {
	return Options{
		Name:            "sid",
		Lifetime:        Phrase("1 hour"),
		HTTPOnly:        true,
		CacheLimiter:    CacheNoCache,
		Namespace:       "app",
		AutoRefresh:     true,
		BindToIPAddress: true,
		BindToUserAgent: true,
	}
}

func (o Options) validate() error {
	if o.Name == "" {
		return ErrEmptyCookieName
	}
	if o.Namespace == "" {
		return ErrEmptyNamespace
	}
	if !o.CacheLimiter.Valid() {
		return ErrInvalidCacheLimiter
	}
	return nil
}

// Option is a functional option for configuring the Session
type Option func(*Session)

// WithLogger sets the logger used for recovered anomalies
func WithLogger(log *slog.Logger) Option {
	return func(s *Session) {
		if log != nil {
			s.log = log
		}
	}
}

// WithClock sets the time source used to resolve lifetimes
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		if now != nil {
			s.now = now
		}
	}
}
