// Package session provides tamper-evident cookie sessions for Go web
// applications: a signed session identifier travels in an HTTP cookie while
// the session payload lives in a pluggable backing store.
//
// The package is storage-agnostic: any backend satisfying the Store
// interface can be plugged in. In-memory, cookie-only, Redis, PostgreSQL
// and MongoDB implementations ship out of the box.
//
// # Architecture
//
// A Handler orchestrates the session life-cycle as net/http middleware. On
// the way in it extracts the configured cookie, verifies its HMAC signature
// against the keyset (primary plus rotation fallbacks) and asks the Store
// for the session; any failure along that path (missing cookie, forged or
// malformed signature, store error, expired session) degrades to a fresh
// anonymous session rather than an error response. On the way out it
// persists, destroys or skips, and issues a freshly signed cookie when the
// store hands back a token.
//
//	┌────────┐  signed cookie  ┌─────────────────┐
//	│ Client │ ──────────────► │     Handler     │
//	└────────┘                 │ (verify / sign) │
//	                           └─────────────────┘
//	                                   │ load / store / destroy
//	                                   ▼
//	                           ┌────────────────┐
//	                           │     Store      │ (memory, redis, pg, …)
//	                           └────────────────┘
//
// The cookie value is base64(HMAC-SHA256(token)) prepended to the raw
// token; see the cookie package for the wire format. The store keys
// sessions by a SHA-256 digest of the token, and the session's own expiry
// is enforced independently of the cookie's, so neither a leaked store nor
// a tampered cookie expiry extends a session.
//
// # Usage
//
//	handler, err := session.New(
//	    session.NewMemoryStore(5*time.Minute),
//	    os.Getenv("SESSION_SECRET"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	mux := http.NewServeMux()
//	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
//	    sess := session.MustFromContext(r.Context())
//	    sess.Set("visits", 1)
//	})
//
//	http.ListenAndServe(":8080", handler.Middleware(mux))
//
// Handlers read and mutate the session through the context accessors; a
// session can also be replaced wholesale with Replace or flagged for
// deletion with (*Session).Destroy. Destruction always wins over mutation
// within the same request.
//
// # Configuration
//
// Knobs are exposed as Option functions (WithTTL, WithSaveUnchanged, …) or
// by passing a Config struct to NewFromConfig. Twelve-factor applications
// can populate Config from the environment via the config package.
//
// With the default save-unchanged policy every request persists the session
// and new sessions always get a cookie. Disabling it persists only sessions
// whose data actually changed.
package session
