// Package cookie writes and reads HTTP cookies with shared defaults and
// optional HMAC-SHA256 signatures.
//
// A Manager is created with one or more secrets of at least 32 characters.
// The first secret signs new cookies; all of them are tried on verification,
// so a new secret can be prepended while cookies signed with the old one stay
// valid until they expire.
//
//	m, err := cookie.New([]string{os.Getenv("COOKIE_SECRET")})
//	m.SetSigned(w, "sid", token, cookie.WithMaxAge(3600))
//	token, err := m.GetSigned(r, "sid")
//
// Errors: ErrNoSecret, ErrSecretTooShort, ErrCookieNotFound, ErrInvalidFormat,
// ErrInvalidSignature.
package cookie
