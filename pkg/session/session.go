package session

import (
	"context"
	"log/slog"
	"time"

	"github.com/dmitrymomot/nsession/pkg/logger"
)

// State is the activation state of a Session.
type State int

const (
	StateInactive State = iota
	StateActive
	StateDestroyed
)

func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateDestroyed:
		return "destroyed"
	default:
		return "inactive"
	}
}

// IdentityKey holds the bound client identity inside the namespace. Clear
// keeps it and HasAny and Values ignore it.
const IdentityKey = "_identity"

// Session is a namespaced view over the shared session store of a request.
// It is not safe for concurrent use; create one per request.
type Session struct {
	store     Store
	opts      Options
	namespace string
	view      *view
	state     State
	log       *slog.Logger
	now       func() time.Time
}

// New creates an inactive session. Values set before Start are buffered and
// merged into the store on activation.
func New(store Store, opts Options, options ...Option) (*Session, error) {
	if store == nil {
		return nil, ErrNoStore
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}

	s := &Session{
		store:     store,
		opts:      opts,
		namespace: opts.Namespace,
		view:      newView(),
		log:       slog.New(slog.DiscardHandler),
		now:       time.Now,
	}
	for _, opt := range options {
		opt(s)
	}

	return s, nil
}

// Open creates a session and starts it right away.
func Open(ctx context.Context, store Store, opts Options, options ...Option) (*Session, error) {
	s, err := New(store, opts, options...)
	if err != nil {
		return nil, err
	}
	if err := s.Start(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Start activates the session: it configures the session cookie on the
// store, starts the underlying session and binds the namespace. Calling Start
// on an active session does nothing.
func (s *Session) Start(ctx context.Context) error {
	return s.start(ctx, true)
}

func (s *Session) start(ctx context.Context, allowRestart bool) error {
	if s.IsActive() {
		return nil
	}
	if s.view.bound {
		// the underlying session ended behind our back
		s.view.unbind()
	}

	now := s.now()
	cookie, err := ResolveCookie(s.opts, s.store.CookieDefaults(), now)
	if err != nil {
		return err
	}

	s.store.SetCookieParams(cookie.CookieParams)
	s.store.SetCookieName(cookie.Name)
	s.store.SetCacheLimiter(cookie.CacheLimiter)

	if err := s.store.Start(ctx); err != nil {
		return err
	}

	// a browser-session cookie (lifetime 0) has no expiry to slide
	if s.opts.AutoRefresh && cookie.Lifetime != 0 {
		if value, ok := s.store.IncomingCookie(cookie.Name); ok {
			refreshed := Cookie{
				CookieParams: cookie.CookieParams,
				Name:         cookie.Name,
				Value:        value,
				ExpiresAt:    now.Add(LifetimeDuration(cookie.Lifetime)),
			}
			if err := s.store.ReissueCookie(refreshed); err != nil {
				return err
			}
		}
	}

	if err := s.RegisterNamespace(); err != nil {
		return err
	}
	if err := s.ReferenceNamespace(); err != nil {
		return err
	}
	s.state = StateActive

	if s.opts.BindToIPAddress || s.opts.BindToUserAgent {
		return s.verifyIdentity(ctx, allowRestart)
	}
	return nil
}

// Destroy clears the namespace and terminates the underlying session.
// This ends the session for every namespace sharing the store. Destroying an
// inactive session does nothing.
func (s *Session) Destroy(ctx context.Context) error {
	if !s.IsActive() {
		return nil
	}

	clear(s.view.data())
	if err := s.store.Destroy(ctx); err != nil {
		return err
	}

	s.view.unbind()
	s.state = StateDestroyed
	return nil
}

// IsActive reports whether the session is started and the underlying
// session is still alive.
func (s *Session) IsActive() bool {
	return s.state == StateActive && s.store.IsActive()
}

// State returns the activation state.
func (s *Session) State() State {
	return s.state
}

// RegisterNamespace creates the namespace slot in the shared data if it is
// missing or holds something other than a map.
func (s *Session) RegisterNamespace() error {
	global := s.store.Data()
	if global == nil {
		return ErrInactive
	}

	if _, err := Register(global, s.namespace); err != nil {
		s.log.Warn("session namespace slot reset",
			logger.Namespace(s.namespace),
			logger.Error(err),
		)
	}
	return nil
}

// ReferenceNamespace merges values buffered before activation into the
// namespace slot and binds the session to the slot. From then on every read
// and write goes straight to the shared data.
func (s *Session) ReferenceNamespace() error {
	global := s.store.Data()
	if global == nil {
		return ErrInactive
	}

	live, ok := global[s.namespace].(map[string]any)
	if !ok || live == nil {
		var err error
		if live, err = Register(global, s.namespace); err != nil {
			s.log.Warn("session namespace slot reset",
				logger.Namespace(s.namespace),
				logger.Error(err),
			)
		}
	}

	s.view.bind(live)
	return nil
}

// SetNamespace changes the namespace. An active session stays bound to the
// previous slot until it is started again.
func (s *Session) SetNamespace(namespace string) {
	s.namespace = namespace
}

// Namespace returns the namespace.
func (s *Session) Namespace() string {
	return s.namespace
}

// Options returns the options the session was created with.
func (s *Session) Options() Options {
	return s.opts
}

// Get retrieves a value. Keys may be dot paths into nested maps.
func (s *Session) Get(key string) (any, bool) {
	return lookup(s.view.data(), key)
}

// Value retrieves a value or def when the key is missing.
func (s *Session) Value(key string, def any) any {
	if val, ok := s.Get(key); ok {
		return val
	}
	return def
}

// GetString retrieves a string value
func (s *Session) GetString(key string) (string, bool) {
	val, ok := s.Get(key)
	if !ok {
		return "", false
	}
	str, ok := val.(string)
	return str, ok
}

// GetInt retrieves an int value. Numbers decoded from JSON are accepted.
func (s *Session) GetInt(key string) (int, bool) {
	val, ok := s.Get(key)
	if !ok {
		return 0, false
	}
	switch v := val.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

// GetBool retrieves a bool value
func (s *Session) GetBool(key string) (bool, bool) {
	val, ok := s.Get(key)
	if !ok {
		return false, false
	}
	b, ok := val.(bool)
	return b, ok
}

// All returns the namespace data. Once active, the returned map is the
// shared slot itself, IdentityKey included.
func (s *Session) All() map[string]any {
	return s.view.data()
}

// Values returns a copy of the namespace data without IdentityKey.
func (s *Session) Values() map[string]any {
	data := s.view.data()
	out := make(map[string]any, len(data))
	for k, v := range data {
		if k != IdentityKey {
			out[k] = v
		}
	}
	return out
}

// Set stores a value. Dot paths create intermediate maps as needed.
func (s *Session) Set(key string, value any) {
	assign(s.view.data(), key, value)
}

// SetMany stores several values at once.
func (s *Session) SetMany(values map[string]any) {
	data := s.view.data()
	for k, v := range values {
		assign(data, k, v)
	}
}

// Has reports whether a key is present.
func (s *Session) Has(key string) bool {
	_, ok := lookup(s.view.data(), key)
	return ok
}

// HasAny reports whether the namespace holds any value besides the bound
// identity.
func (s *Session) HasAny() bool {
	for k := range s.view.data() {
		if k != IdentityKey {
			return true
		}
	}
	return false
}

// Remove deletes a value.
func (s *Session) Remove(key string) {
	unset(s.view.data(), key)
}

// Clear removes every value of the namespace except the bound identity, so
// clearing never lets another client take the session over. The slot itself
// stays.
func (s *Session) Clear() {
	data := s.view.data()
	for k := range data {
		if k != IdentityKey {
			delete(data, k)
		}
	}
}

func (s *Session) verifyIdentity(ctx context.Context, allowRestart bool) error {
	current := s.store.ClientIdentity()

	stored, ok := s.boundIdentity()
	if !ok {
		s.bindIdentity(current)
		return nil
	}
	if s.identityMatches(stored, current) {
		return nil
	}
	if !allowRestart {
		s.bindIdentity(current)
		return nil
	}

	s.log.WarnContext(ctx, "session identity changed, starting a new session",
		logger.Event("session.identity_restart"),
		logger.Namespace(s.namespace),
		logger.ClientIP(current.IP),
		logger.Group("bound",
			slog.String("ip", stored.IP),
			slog.String("user_agent", stored.UserAgent),
		),
		logger.Error(ErrIdentityMismatch),
	)

	if err := s.Destroy(ctx); err != nil {
		return err
	}
	return s.start(ctx, false)
}

func (s *Session) identityMatches(stored, current Identity) bool {
	if s.opts.BindToIPAddress && stored.IP != current.IP {
		return false
	}
	if s.opts.BindToUserAgent && stored.UserAgent != current.UserAgent {
		return false
	}
	return true
}

func (s *Session) boundIdentity() (Identity, bool) {
	raw, ok := s.view.data()[IdentityKey].(map[string]any)
	if !ok {
		return Identity{}, false
	}
	ip, _ := raw["ip"].(string)
	ua, _ := raw["user_agent"].(string)
	return Identity{IP: ip, UserAgent: ua}, true
}

func (s *Session) bindIdentity(id Identity) {
	s.view.data()[IdentityKey] = map[string]any{
		"ip":         id.IP,
		"user_agent": id.UserAgent,
	}
}
