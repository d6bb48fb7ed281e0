package clientip_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/nsession/pkg/clientip"
)

func TestResolver_IP(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		trusted    []string
		headers    map[string]string
		remoteAddr string
		expected   string
	}{
		{
			name:       "remote addr without trusted headers",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.9"},
			remoteAddr: "192.0.2.1:5000",
			expected:   "192.0.2.1",
		},
		{
			name:       "first forwarded address",
			trusted:    []string{"X-Forwarded-For"},
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.9, 10.0.0.1"},
			remoteAddr: "192.0.2.1:5000",
			expected:   "203.0.113.9",
		},
		{
			name:       "invalid entries are skipped",
			trusted:    []string{"X-Forwarded-For"},
			headers:    map[string]string{"X-Forwarded-For": "garbage, 203.0.113.9"},
			remoteAddr: "192.0.2.1:5000",
			expected:   "203.0.113.9",
		},
		{
			name:    "header priority",
			trusted: []string{"CF-Connecting-IP", "X-Real-IP"},
			headers: map[string]string{
				"X-Real-IP":        "10.0.0.1",
				"CF-Connecting-IP": "198.51.100.7",
			},
			remoteAddr: "192.0.2.1:5000",
			expected:   "198.51.100.7",
		},
		{
			name:       "ipv6 remote addr",
			remoteAddr: "[2001:db8::1]:443",
			expected:   "2001:db8::1",
		},
		{
			name:       "remote addr without port",
			remoteAddr: "192.0.2.44",
			expected:   "192.0.2.44",
		},
		{
			name:       "unparseable remote addr",
			remoteAddr: "not-an-ip",
			expected:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			assert.Equal(t, tt.expected, clientip.New(tt.trusted...).IP(r))
		})
	}
}

func TestGetIP_DefaultHeaders(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("DO-Connecting-IP", "198.51.100.178")
	r.Header.Set("X-Forwarded-For", "192.0.2.10")

	assert.Equal(t, "198.51.100.178", clientip.GetIP(r))
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	var got string
	h := clientip.New().Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = clientip.GetIPFromContext(r.Context())
	}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "192.0.2.5:1234"
	h.ServeHTTP(httptest.NewRecorder(), r)

	assert.Equal(t, "192.0.2.5", got)
}
