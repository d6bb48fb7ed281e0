package session

import (
	"fmt"
	"time"
)

// CacheLimiter selects the cache-control headers the store sends when the
// session starts.
type CacheLimiter string

const (
	CacheNoCache         CacheLimiter = "nocache"
	CachePublic          CacheLimiter = "public"
	CachePrivate         CacheLimiter = "private"
	CachePrivateNoExpire CacheLimiter = "private_no_expire"
)

// Valid reports whether l is a known mode. The empty limiter is valid and
// means no cache headers are sent.
func (l CacheLimiter) Valid() bool {
	switch l {
	case "", CacheNoCache, CachePublic, CachePrivate, CachePrivateNoExpire:
		return true
	}
	return false
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *CacheLimiter) UnmarshalText(text []byte) error {
	v := CacheLimiter(text)
	if !v.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidCacheLimiter, string(text))
	}
	*l = v
	return nil
}

// CookieDefaults are the store's current cookie attributes, used for any
// attribute the options leave unset.
type CookieDefaults struct {
	Lifetime int
	Path     string
	Domain   string
}

// CookieParams are the cookie attributes applied to the store.
// Lifetime is in seconds; zero means a browser-session cookie.
type CookieParams struct {
	Lifetime int
	Path     string
	Domain   string
	Secure   bool
	HTTPOnly bool
}

// ResolvedCookie is the effective cookie configuration of a session.
type ResolvedCookie struct {
	CookieParams
	Name         string
	CacheLimiter CacheLimiter
}

// Cookie is a fully specified cookie the store re-sends to the client.
type Cookie struct {
	CookieParams
	Name      string
	Value     string
	ExpiresAt time.Time
}

// ResolveCookie merges explicit options with the store defaults.
//
// Lifetime, path and domain fall back to the defaults when unset. Secure and
// HTTPOnly are taken from the options as is. Name and cache limiter are
// always explicit.
func ResolveCookie(opts Options, defaults CookieDefaults, now time.Time) (ResolvedCookie, error) {
	lifetime := defaults.Lifetime
	if !opts.Lifetime.IsZero() {
		seconds, err := ResolveLifetime(opts.Lifetime, now)
		if err != nil {
			return ResolvedCookie{}, err
		}
		lifetime = seconds
	}

	path := opts.Path
	if path == "" {
		path = defaults.Path
	}

	domain := opts.Domain
	if domain == "" {
		domain = defaults.Domain
	}

	return ResolvedCookie{
		CookieParams: CookieParams{
			Lifetime: lifetime,
			Path:     path,
			Domain:   domain,
			Secure:   opts.Secure,
			HTTPOnly: opts.HTTPOnly,
		},
		Name:         opts.Name,
		CacheLimiter: opts.CacheLimiter,
	}, nil
}
