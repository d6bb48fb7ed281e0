package session

import "errors"

var (
	// ErrInvalidDuration indicates a lifetime phrase that cannot be parsed
	ErrInvalidDuration = errors.New("session.invalid_duration")

	// ErrNamespaceCollision indicates the namespace slot held a non-map value and was reset
	ErrNamespaceCollision = errors.New("session.namespace_collision")

	// ErrIdentityMismatch indicates the client identity differs from the one bound to the session
	ErrIdentityMismatch = errors.New("session.identity_mismatch")

	// ErrEmptyCookieName indicates the options carry no cookie name
	ErrEmptyCookieName = errors.New("session.empty_cookie_name")

	// ErrEmptyNamespace indicates the options carry no namespace
	ErrEmptyNamespace = errors.New("session.empty_namespace")

	// ErrInactive indicates an operation that needs an active underlying session
	ErrInactive = errors.New("session.inactive")

	// ErrInvalidCacheLimiter indicates an unknown cache limiter mode
	ErrInvalidCacheLimiter = errors.New("session.invalid_cache_limiter")

	// ErrNoStore indicates no store is attached to the request context
	ErrNoStore = errors.New("session.no_store")
)
