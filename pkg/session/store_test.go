package session_test

import (
	"context"

	"github.com/dmitrymomot/nsession/pkg/session"
)

// fakeStore is an in-memory session.Store. saved plays the role of the
// persisted record picked up by Start.
type fakeStore struct {
	defaults session.CookieDefaults
	params   session.CookieParams
	name     string
	limiter  session.CacheLimiter
	incoming map[string]string
	reissued []session.Cookie
	identity session.Identity

	saved        map[string]any
	data         map[string]any
	active       bool
	startErr     error
	startCalls   int
	destroyCalls int
}

var _ session.Store = (*fakeStore)(nil)

func newFakeStore() *fakeStore {
	return &fakeStore{
		defaults: session.CookieDefaults{Path: "/"},
		incoming: make(map[string]string),
		identity: session.Identity{IP: "192.0.2.1", UserAgent: "test-agent"},
	}
}

func (f *fakeStore) CookieDefaults() session.CookieDefaults { return f.defaults }

func (f *fakeStore) SetCookieParams(p session.CookieParams) {
	f.params = p
	f.defaults = session.CookieDefaults{Lifetime: p.Lifetime, Path: p.Path, Domain: p.Domain}
}

func (f *fakeStore) SetCookieName(name string) { f.name = name }

func (f *fakeStore) SetCacheLimiter(l session.CacheLimiter) { f.limiter = l }

func (f *fakeStore) ClientIdentity() session.Identity { return f.identity }

func (f *fakeStore) IsActive() bool { return f.active }

func (f *fakeStore) IncomingCookie(name string) (string, bool) {
	if !f.active {
		return "", false
	}
	v, ok := f.incoming[name]
	return v, ok
}

func (f *fakeStore) ReissueCookie(c session.Cookie) error {
	f.reissued = append(f.reissued, c)
	return nil
}

func (f *fakeStore) Start(context.Context) error {
	if f.startErr != nil {
		return f.startErr
	}
	if f.active {
		return nil
	}
	f.startCalls++
	if f.saved == nil {
		f.saved = make(map[string]any)
	}
	f.data = f.saved
	f.active = true
	return nil
}

func (f *fakeStore) Destroy(context.Context) error {
	f.destroyCalls++
	f.active = false
	f.data = nil
	f.saved = nil
	return nil
}

func (f *fakeStore) Data() map[string]any {
	if !f.active {
		return nil
	}
	return f.data
}

// slot returns the namespace map stored in the shared data.
func (f *fakeStore) slot(ns string) map[string]any {
	m, _ := f.Data()[ns].(map[string]any)
	return m
}
