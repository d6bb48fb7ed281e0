package session

import "context"

// Identity is the client fingerprint a session can be bound to.
type Identity struct {
	IP        string
	UserAgent string
}

// Store is the shared session store of the host runtime. One Store value
// serves a single request and may be shared by any number of namespaced
// sessions.
type Store interface {
	// CookieDefaults returns the store's current cookie attributes
	CookieDefaults() CookieDefaults

	// SetCookieParams configures the session cookie attributes
	SetCookieParams(params CookieParams)

	// SetCookieName configures the session cookie name
	SetCookieName(name string)

	// SetCacheLimiter configures the cache headers sent on start
	SetCacheLimiter(limiter CacheLimiter)

	// IncomingCookie returns the inbound cookie value of the started
	// session. It reports false when the store did not accept the request
	// cookie or has already sent a cookie for this session in the response.
	IncomingCookie(name string) (string, bool)

	// ReissueCookie sends a cookie to the client again
	ReissueCookie(cookie Cookie) error

	// Start activates the underlying session
	Start(ctx context.Context) error

	// IsActive reports whether the underlying session is active
	IsActive() bool

	// Destroy terminates the underlying session, for every namespace
	Destroy(ctx context.Context) error

	// Data returns the live shared data of the active session.
	// It is nil while the session is inactive.
	Data() map[string]any

	// ClientIdentity returns the fingerprint of the current client
	ClientIdentity() Identity
}
