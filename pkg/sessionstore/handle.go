package sessionstore

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrymomot/nsession/pkg/cookie"
	"github.com/dmitrymomot/nsession/pkg/session"
)

// Handle is the session store of a single request. It implements
// session.Store on top of the runtime's backend and cookie manager.
// A Handle is not safe for concurrent use.
type Handle struct {
	rt *Runtime
	w  http.ResponseWriter
	r  *http.Request

	name    string
	params  session.CookieParams
	limiter session.CacheLimiter

	token      string
	data       map[string]any
	active     bool
	destroyed  bool
	resumed    bool
	cookieSent bool
}

var _ session.Store = (*Handle)(nil)

func (h *Handle) CookieDefaults() session.CookieDefaults {
	return session.CookieDefaults{
		Lifetime: h.params.Lifetime,
		Path:     h.params.Path,
		Domain:   h.params.Domain,
	}
}

func (h *Handle) SetCookieParams(params session.CookieParams) {
	h.params = params
}

func (h *Handle) SetCookieName(name string) {
	h.name = name
}

func (h *Handle) SetCacheLimiter(limiter session.CacheLimiter) {
	h.limiter = limiter
}

// IncomingCookie returns the raw request cookie only when Start resumed the
// session it names and no session cookie has been written in this response
// yet. Rejected, minted and destroyed sessions report false.
func (h *Handle) IncomingCookie(name string) (string, bool) {
	if !h.active || !h.resumed || h.cookieSent || name != h.name {
		return "", false
	}
	c, err := h.r.Cookie(name)
	if err != nil || c.Value == "" {
		return "", false
	}
	return c.Value, true
}

// ReissueCookie writes the cookie back unchanged except for its expiry.
func (h *Handle) ReissueCookie(c session.Cookie) error {
	opts := []cookie.Option{
		cookie.WithPath(c.Path),
		cookie.WithDomain(c.Domain),
		cookie.WithSecure(c.Secure),
		cookie.WithHTTPOnly(c.HTTPOnly),
		cookie.WithExpires(c.ExpiresAt),
	}
	if c.Lifetime != 0 {
		opts = append(opts, cookie.WithMaxAge(c.Lifetime))
	}
	h.rt.cookies.Set(h.w, c.Name, c.Value, opts...)
	h.cookieSent = true
	return nil
}

// Start loads the session named by the request cookie or mints a new one.
// An unknown, expired or tampered id is never adopted. After Destroy a new
// id is always minted.
func (h *Handle) Start(ctx context.Context) error {
	if h.active {
		return nil
	}

	var (
		token string
		data  map[string]any
	)

	if !h.destroyed {
		if tok, err := h.rt.cookies.GetSigned(h.r, h.name); err == nil && tok != "" {
			loaded, err := h.rt.backend.Load(ctx, tok)
			switch {
			case err == nil:
				token, data = tok, loaded
				h.resumed = true
			case errors.Is(err, ErrSessionNotFound):
			default:
				return err
			}
		}
	}

	if token == "" {
		tok, err := generateToken()
		if err != nil {
			return err
		}
		token = tok
		h.issueCookie(token)
	}
	if data == nil {
		data = make(map[string]any)
	}

	h.token, h.data, h.active = token, data, true
	applyCacheLimiter(h.w.Header(), h.limiter, h.rt.cacheExpire, h.rt.now())
	return nil
}

func (h *Handle) IsActive() bool {
	return h.active
}

// Destroy deletes the backend record and expires the session cookie.
func (h *Handle) Destroy(ctx context.Context) error {
	if !h.active {
		return nil
	}

	if err := h.rt.backend.Delete(ctx, h.token); err != nil {
		return err
	}
	h.rt.cookies.Delete(h.w, h.name,
		cookie.WithPath(h.params.Path),
		cookie.WithDomain(h.params.Domain),
	)

	h.token = ""
	h.data = nil
	h.active = false
	h.destroyed = true
	h.resumed = false
	return nil
}

func (h *Handle) Data() map[string]any {
	if !h.active {
		return nil
	}
	return h.data
}

func (h *Handle) ClientIdentity() session.Identity {
	return session.Identity{
		IP:        h.rt.ip.IP(h.r),
		UserAgent: h.r.UserAgent(),
	}
}

// ID returns the current session id, empty while inactive.
func (h *Handle) ID() string {
	return h.token
}

// Commit persists the session data. Records outlive the cookie by at least
// the garbage collection window so browser-session cookies keep working.
func (h *Handle) Commit(ctx context.Context) error {
	if !h.active {
		return nil
	}
	return h.rt.backend.Save(ctx, h.token, h.data, h.ttl())
}

func (h *Handle) ttl() time.Duration {
	return max(session.LifetimeDuration(h.params.Lifetime), h.rt.gcMaxLifetime)
}

func (h *Handle) issueCookie(token string) {
	opts := []cookie.Option{
		cookie.WithPath(h.params.Path),
		cookie.WithDomain(h.params.Domain),
		cookie.WithSecure(h.params.Secure),
		cookie.WithHTTPOnly(h.params.HTTPOnly),
	}
	if h.params.Lifetime != 0 {
		opts = append(opts,
			cookie.WithMaxAge(h.params.Lifetime),
			cookie.WithExpires(h.rt.now().Add(session.LifetimeDuration(h.params.Lifetime))),
		)
	}
	h.rt.cookies.SetSigned(h.w, h.name, token, opts...)
	h.cookieSent = true
}
