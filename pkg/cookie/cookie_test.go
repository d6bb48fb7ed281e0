package cookie_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/nsession/pkg/cookie"
)

const (
	secret    = "this-is-a-very-long-secret-key-32-chars-long"
	oldSecret = "this-is-old-very-long-secret-key-32-chars-ok"
)

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		secrets []string
		wantErr error
	}{
		{name: "no secrets", secrets: nil, wantErr: cookie.ErrNoSecret},
		{name: "empty secrets", secrets: []string{"", ""}, wantErr: cookie.ErrNoSecret},
		{name: "secret too short", secrets: []string{"short"}, wantErr: cookie.ErrSecretTooShort},
		{name: "valid secret", secrets: []string{secret}},
		{name: "rotation", secrets: []string{secret, oldSecret}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := cookie.New(tt.secrets)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestManager_SetAndGet(t *testing.T) {
	t.Parallel()

	m, err := cookie.New([]string{secret})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	expires := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	m.Set(w, "plain", "value",
		cookie.WithMaxAge(60),
		cookie.WithExpires(expires),
		cookie.WithDomain("example.com"),
		cookie.WithSecure(true),
	)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	c := cookies[0]
	assert.Equal(t, "plain", c.Name)
	assert.Equal(t, "value", c.Value)
	assert.Equal(t, "/", c.Path)
	assert.Equal(t, "example.com", c.Domain)
	assert.Equal(t, 60, c.MaxAge)
	assert.True(t, c.Expires.Equal(expires))
	assert.True(t, c.Secure)
	assert.True(t, c.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(c)
	got, err := m.Get(r, "plain")
	require.NoError(t, err)
	assert.Equal(t, "value", got)

	_, err = m.Get(r, "missing")
	assert.ErrorIs(t, err, cookie.ErrCookieNotFound)
}

func TestManager_Delete(t *testing.T) {
	t.Parallel()

	m, err := cookie.New([]string{secret})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	m.Delete(w, "sid", cookie.WithPath("/app"))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "sid", cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.Equal(t, "/app", cookies[0].Path)
	assert.Equal(t, -1, cookies[0].MaxAge)
}

func TestManager_Signed(t *testing.T) {
	t.Parallel()

	m, err := cookie.New([]string{secret})
	require.NoError(t, err)

	roundTrip := func(t *testing.T, value string) *http.Request {
		t.Helper()
		w := httptest.NewRecorder()
		m.SetSigned(w, "sid", value)
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		for _, c := range w.Result().Cookies() {
			r.AddCookie(c)
		}
		return r
	}

	t.Run("valid signature", func(t *testing.T) {
		got, err := m.GetSigned(roundTrip(t, "token-123"), "sid")
		require.NoError(t, err)
		assert.Equal(t, "token-123", got)
	})

	t.Run("tampered value", func(t *testing.T) {
		signed := m.Sign("token-123")
		_, sig, _ := strings.Cut(signed, "|")
		forged := m.Sign("token-456")
		forgedValue, _, _ := strings.Cut(forged, "|")

		_, err := m.Verify(forgedValue + "|" + sig)
		assert.ErrorIs(t, err, cookie.ErrInvalidSignature)
	})

	t.Run("missing separator", func(t *testing.T) {
		_, err := m.Verify("no-separator")
		assert.ErrorIs(t, err, cookie.ErrInvalidFormat)
	})

	t.Run("bad encoding", func(t *testing.T) {
		_, err := m.Verify("***|sig")
		assert.ErrorIs(t, err, cookie.ErrInvalidFormat)
	})
}

func TestManager_KeyRotation(t *testing.T) {
	t.Parallel()

	old, err := cookie.New([]string{oldSecret})
	require.NoError(t, err)
	rotated, err := cookie.New([]string{secret, oldSecret})
	require.NoError(t, err)
	fresh, err := cookie.New([]string{secret})
	require.NoError(t, err)

	signed := old.Sign("value")

	got, err := rotated.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, "value", got)

	_, err = fresh.Verify(signed)
	assert.ErrorIs(t, err, cookie.ErrInvalidSignature)
}

func TestNewFromConfig(t *testing.T) {
	t.Parallel()

	m, err := cookie.NewFromConfig(cookie.Config{
		Secrets:  " " + secret + " , " + oldSecret,
		SameSite: http.SameSiteStrictMode,
	})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	m.Set(w, "a", "b")
	assert.Equal(t, http.SameSiteStrictMode, w.Result().Cookies()[0].SameSite)

	_, err = cookie.NewFromConfig(cookie.Config{Secrets: " , "})
	assert.ErrorIs(t, err, cookie.ErrNoSecret)
}
