package clientip

import (
	"net"
	"net/http"
	"strings"
)

// DefaultHeaders are the proxy headers GetIP trusts, in priority order.
var DefaultHeaders = []string{
	"CF-Connecting-IP",
	"DO-Connecting-IP",
	"X-Forwarded-For",
	"X-Real-IP",
}

// Resolver extracts the client IP from a request, trusting only the
// configured proxy headers before falling back to RemoteAddr.
type Resolver struct {
	headers []string
}

// New creates a resolver trusting the given headers in order. With no
// headers only RemoteAddr is used, which is the right choice when the
// service is not behind a proxy that overwrites them.
func New(headers ...string) *Resolver {
	return &Resolver{headers: headers}
}

// GetIP returns the client IP using DefaultHeaders.
func GetIP(r *http.Request) string {
	return New(DefaultHeaders...).IP(r)
}

// IP returns the normalized client IP or an empty string.
func (res *Resolver) IP(r *http.Request) string {
	for _, name := range res.headers {
		value := r.Header.Get(name)
		if value == "" {
			continue
		}
		// list headers carry the original client first
		for candidate := range strings.SplitSeq(value, ",") {
			if ip := parseIP(candidate); ip != "" {
				return ip
			}
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return parseIP(r.RemoteAddr)
	}
	return parseIP(host)
}

func parseIP(s string) string {
	ip := net.ParseIP(strings.TrimSpace(s))
	if ip == nil {
		return ""
	}
	return ip.String()
}
