package sessionstore

import (
	"net/http"
	"strconv"
	"time"

	"github.com/dmitrymomot/nsession/pkg/session"
)

// pastExpires is sent for modes that must never be served from a cache.
const pastExpires = "Thu, 19 Nov 1981 08:52:00 GMT"

// applyCacheLimiter writes the cache-control headers of a limiter mode.
// The empty limiter leaves the headers untouched.
func applyCacheLimiter(h http.Header, limiter session.CacheLimiter, expire time.Duration, now time.Time) {
	maxAge := strconv.Itoa(int(expire / time.Second))

	switch limiter {
	case session.CacheNoCache:
		h.Set("Expires", pastExpires)
		h.Set("Cache-Control", "no-store, no-cache, must-revalidate")
		h.Set("Pragma", "no-cache")
	case session.CachePublic:
		h.Set("Expires", now.Add(expire).UTC().Format(http.TimeFormat))
		h.Set("Cache-Control", "public, max-age="+maxAge)
	case session.CachePrivate:
		h.Set("Expires", pastExpires)
		h.Set("Cache-Control", "private, max-age="+maxAge)
	case session.CachePrivateNoExpire:
		h.Set("Cache-Control", "private, max-age="+maxAge)
	}
}
