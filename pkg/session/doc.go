// Package session provides namespaced sessions on top of a shared,
// cookie-bound session store. Any number of independent consumers can work
// with the same underlying session: each one reads and writes inside its own
// namespace, a private key of the shared data, so keys never collide.
//
// The package does not persist anything itself. The host runtime supplies a
// Store (see package sessionstore for the bundled implementation) that owns
// the session cookie, the session id and the backing storage. The session
// only resolves cookie attributes, drives the store's life-cycle and works on
// its slice of the data.
//
// # Architecture
//
//	┌──────────┐  options   ┌──────────────┐  defaults  ┌────────┐
//	│ Consumer │ ─────────► │   Session    │ ◄───────── │ Store  │
//	└──────────┘            └──────────────┘            └────────┘
//	                          │ ResolveCookie              ▲
//	                          │ Start / Destroy            │ Data()[namespace]
//	                          └────────────────────────────┘
//
// A Session starts inactive. Values set before Start are buffered; Start
// resolves the effective cookie (ResolveCookie), applies it to the store,
// starts the store, registers the namespace slot and merges the buffer into
// it recursively (buffer wins, nested maps are merged key by key). From then
// on the session works directly on the slot: writes are visible to anything
// else holding the same map.
//
// # Usage
//
//	sess, err := session.Open(ctx, store, session.Options{
//	    Name:      "sid",
//	    Lifetime:  session.Phrase("1 hour"),
//	    Namespace: "cart",
//	})
//	if err != nil {
//	    return err
//	}
//	sess.Set("items.sku-42", 2)
//	n, _ := sess.GetInt("items.sku-42")
//
// Middleware:
//
//	r.Use(runtime.Middleware)                        // puts the Store in the context
//	r.Use(session.Middleware(session.DefaultOptions())) // one per namespace
//
//	func handler(w http.ResponseWriter, r *http.Request) {
//	    sess := session.MustFromContext(r.Context(), "app")
//	    sess.Set("user", "alice")
//	}
//
// # Lifetimes
//
// Lifetime accepts seconds (Seconds(3600)) or a relative phrase
// (Phrase("2 days"), Phrase("tomorrow")) resolved against the clock on every
// Start. See ParseRelative for the accepted grammar.
//
// # Identity binding
//
// With BindToIPAddress or BindToUserAgent the client identity is recorded in
// the namespace under IdentityKey on first activation. When a later request
// presents a different identity the session is destroyed and a fresh one is
// started transparently; the caller never sees an error. Clear keeps the
// bound identity; use Values rather than All to read user data only.
//
// # Sliding expiration
//
// With AutoRefresh the store re-sends the session cookie with a new expiry,
// but only after Start accepted the inbound cookie, and at most once per
// response however many namespaces share the store.
//
// # Error Handling
//
//   - ErrInvalidDuration     – lifetime phrase cannot be parsed (returned by Start)
//   - ErrEmptyCookieName     – options without a cookie name
//   - ErrEmptyNamespace      – options without a namespace
//   - ErrInactive            – namespace operations on an inactive store
//   - ErrNamespaceCollision  – slot held a non-map value; logged and recovered
//   - ErrIdentityMismatch    – identity changed; logged, session restarted
//
// Destroy terminates the underlying session, which ends every namespace
// sharing it.
package session
