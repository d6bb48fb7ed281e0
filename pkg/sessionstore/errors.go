package sessionstore

import "errors"

var (
	// ErrSessionNotFound indicates the backend holds no live record for the token
	ErrSessionNotFound = errors.New("sessionstore.not_found")

	// ErrTokenGeneration indicates session id generation failed
	ErrTokenGeneration = errors.New("sessionstore.token_generation_failed")

	// ErrNoBackend indicates no backend is configured
	ErrNoBackend = errors.New("sessionstore.no_backend")

	// ErrNoCookieManager indicates no cookie manager is configured
	ErrNoCookieManager = errors.New("sessionstore.no_cookie_manager")

	// ErrCorruptRecord indicates a stored payload that cannot be decoded
	ErrCorruptRecord = errors.New("sessionstore.corrupt_record")
)
