// Package cookie provides an HTTP cookie manager with HMAC-signed values.
//
// The Manager type is the entry point. It is initialised with one or more
// secret keys and a set of default cookie Options. Secrets feed a Keyset used
// for HMAC-SHA256 signatures so cookie values are tamper-evident. Values are
// authenticated, not encrypted: anyone can read them, nobody without a key
// can forge them.
//
// # Wire format
//
// A signed value is the base64-encoded HMAC-SHA256 digest of the raw value,
// prepended to the raw value itself:
//
//	base64(HMAC-SHA256(key, value)) || value
//
// The digest prefix is always exactly 44 characters (a 32-byte digest under
// standard base64), so no separator is needed; the split point is structural.
// Verification rejects anything shorter than the prefix before decoding.
//
// # Key rotation
//
// Multiple secrets are supported: the first signs every new cookie, the rest
// only verify. Rotating keys therefore keeps previously issued cookies valid
// until they expire, while removing a fallback invalidates everything signed
// only under it.
//
//	man, err := cookie.New([]string{newSecret, oldSecret})
//	if err != nil { log.Fatal(err) }
//
//	http.HandleFunc("/set", func(w http.ResponseWriter, r *http.Request) {
//	    _ = man.SetSigned(w, "session", "user-id")
//	})
//
//	http.HandleFunc("/get", func(w http.ResponseWriter, r *http.Request) {
//	    id, err := man.GetSigned(r, "session")
//	    _, _ = id, err
//	})
//
// # Configuration
//
// The Config struct allows the manager to be constructed from environment
// variables via github.com/caarlos0/env. Only non-zero fields are applied.
//
//	cfg := cookie.DefaultConfig()
//	_ = env.Parse(&cfg)
//	man, _ := cookie.NewFromConfig(cfg)
//
// # Error Handling
//
// Package-level sentinel errors are returned for common failure scenarios
// such as ErrCookieNotFound, ErrInvalidFormat and ErrInvalidSignature so
// callers can use errors.Is.
package cookie
