package session

import "context"

type storeContextKey struct{}

type sessionContextKey struct {
	namespace string
}

// WithStore adds the request's session store to the context
func WithStore(ctx context.Context, store Store) context.Context {
	return context.WithValue(ctx, storeContextKey{}, store)
}

// StoreFromContext retrieves the session store from the context
func StoreFromContext(ctx context.Context) (Store, bool) {
	store, ok := ctx.Value(storeContextKey{}).(Store)
	return store, ok
}

// WithSession adds a session to the context under its namespace
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionContextKey{namespace: s.Namespace()}, s)
}

// FromContext retrieves the session of a namespace from the context
func FromContext(ctx context.Context, namespace string) (*Session, bool) {
	s, ok := ctx.Value(sessionContextKey{namespace: namespace}).(*Session)
	return s, ok
}

// MustFromContext retrieves the session of a namespace or panics
func MustFromContext(ctx context.Context, namespace string) *Session {
	s, ok := FromContext(ctx, namespace)
	if !ok {
		panic("session: namespace " + namespace + " not found in context")
	}
	return s
}
