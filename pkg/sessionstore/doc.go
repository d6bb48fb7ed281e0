// Package sessionstore is the host session runtime behind package session.
// A Runtime is shared by the whole service; for every request it opens a
// Handle, which implements session.Store: it owns the signed session-id
// cookie, loads the shared data from a Backend on Start, sends cache-limiter
// headers and persists the data on Commit.
//
//	backend := sessionstore.NewMemoryBackend(time.Minute)
//	rt, err := sessionstore.NewFromConfig(backend, cookies, cfg, sessionstore.WithLogger(log))
//	if err != nil {
//	    return err
//	}
//
//	r := chi.NewRouter()
//	r.Use(rt.Middleware)                                    // Handle in context, commit after
//	r.Use(session.Middleware(session.DefaultOptions()))     // namespace "app"
//
// # Backends
//
//   - MemoryBackend   – process memory, deep-copied records, optional sweeper
//   - RedisBackend    – JSON values with native key expiry
//   - PostgresBackend – JSONB rows; apply Migrations with goose and run RunGC
//
// # Lifetimes
//
// A record lives for max(cookie lifetime, GC max lifetime) after its last
// commit, so browser-session cookies (lifetime 0) keep their data for the
// GC window. Unknown or tampered ids are never adopted; a new id is minted
// and a fresh cookie is sent instead.
//
// # Cache limiter
//
//   - nocache            – Expires in the past, no-store/no-cache, Pragma no-cache
//   - public             – Expires now+cache expire, public max-age
//   - private            – Expires in the past, private max-age
//   - private_no_expire  – private max-age, no Expires
package sessionstore
