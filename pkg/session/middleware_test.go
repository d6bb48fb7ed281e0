package session_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/nsession/pkg/session"
)

func TestMiddleware(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	var got *session.Session

	handler := session.Middleware(basicOptions())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = session.MustFromContext(r.Context(), "ns1")
		got.Set("seen", true)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(session.WithStore(req.Context(), store))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, got)
	assert.True(t, got.IsActive())
	assert.Equal(t, true, store.slot("ns1")["seen"])
}

func TestMiddleware_Errors(t *testing.T) {
	t.Parallel()

	failing := newFakeStore()
	failing.startErr = errors.New("backend down")

	tests := []struct {
		name  string
		store session.Store
	}{
		{name: "no store in context"},
		{name: "store fails to start", store: failing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			handler := session.Middleware(basicOptions())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
				t.Error("handler must not run")
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.store != nil {
				req = req.WithContext(session.WithStore(req.Context(), tt.store))
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusInternalServerError, rec.Code)
		})
	}
}

func TestMiddleware_InvalidOptionsPanic(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		session.Middleware(session.Options{Name: "sid"})
	})
}

func TestContext(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	_, ok := session.StoreFromContext(ctx)
	assert.False(t, ok)
	_, ok = session.FromContext(ctx, "ns1")
	assert.False(t, ok)
	assert.Panics(t, func() { session.MustFromContext(ctx, "ns1") })

	store := newFakeStore()
	s, err := session.New(store, basicOptions())
	require.NoError(t, err)

	ctx = session.WithSession(session.WithStore(ctx, store), s)

	gotStore, ok := session.StoreFromContext(ctx)
	assert.True(t, ok)
	assert.Same(t, store, gotStore)

	gotSession, ok := session.FromContext(ctx, "ns1")
	assert.True(t, ok)
	assert.Same(t, s, gotSession)

	_, ok = session.FromContext(ctx, "other")
	assert.False(t, ok)
}
