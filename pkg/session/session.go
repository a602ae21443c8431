package session

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"maps"
	"time"
)

// Session is the per-request unit of client-attached state. Exactly one
// instance exists per request; it is owned by that request and must not be
// shared across requests. Mutations are tracked so the lifecycle handler
// can decide whether the session needs persisting.
type Session struct {
	id        string
	token     string
	data      map[string]any
	expiresAt time.Time
	changed   bool
	destroyed bool
}

// New creates a fresh empty session. The cookie token is 32 bytes of
// cryptographically random data; the session id is a SHA-256 digest of the
// token, so backends key sessions by a value that cannot be replayed as a
// cookie if the backend leaks.
func New() *Session {
	token := generateToken()
	return &Session{
		id:    HashToken(token),
		token: token,
		data:  make(map[string]any),
	}
}

// ID returns the session identifier used as the storage key.
func (s *Session) ID() string {
	return s.id
}

// Get retrieves a value from session data
func (s *Session) Get(key string) (any, bool) {
	if s == nil || s.data == nil {
		return nil, false
	}
	val, ok := s.data[key]
	return val, ok
}

// GetString retrieves a string value from session data
func (s *Session) GetString(key string) (string, bool) {
	val, ok := s.Get(key)
	if !ok {
		return "", false
	}
	str, ok := val.(string)
	return str, ok
}

// GetInt retrieves an int value from session data
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
		// JSON numbers decode as float64
		return int(v), true
	default:
		return 0, false
	}
}

// GetBool retrieves a bool value from session data
func (s *Session) GetBool(key string) (bool, bool) {
	val, ok := s.Get(key)
	if !ok {
		return false, false
	}
	b, ok := val.(bool)
	return b, ok
}

// Set stores a value in session data and marks the session as changed.
func (s *Session) Set(key string, value any) {
	if s == nil {
		return
	}
	if s.data == nil {
		s.data = make(map[string]any)
	}
	s.data[key] = value
	s.changed = true
}

// Delete removes a value from session data.
func (s *Session) Delete(key string) {
	if s == nil || s.data == nil {
		return
	}
	if _, ok := s.data[key]; ok {
		delete(s.data, key)
		s.changed = true
	}
}

// Clear removes all data from the session.
func (s *Session) Clear() {
	if s == nil {
		return
	}
	s.data = make(map[string]any)
	s.changed = true
}

// Changed reports whether data or expiry was modified since the session was
// created or loaded.
func (s *Session) Changed() bool {
	return s != nil && s.changed
}

// Destroy marks the session for deletion. The flag is one-way: once set the
// session is removed from its store and the client cookie is cleared at the
// end of the request, even if data was also mutated.
func (s *Session) Destroy() {
	if s == nil {
		return
	}
	s.destroyed = true
}

// IsDestroyed reports whether Destroy was called.
func (s *Session) IsDestroyed() bool {
	return s != nil && s.destroyed
}

// Expiry returns the absolute expiry time, zero when the session never
// expires.
func (s *Session) Expiry() time.Time {
	if s == nil {
		return time.Time{}
	}
	return s.expiresAt
}

// SetExpiry sets an absolute expiry and marks the session as changed.
func (s *Session) SetExpiry(t time.Time) {
	if s == nil {
		return
	}
	s.expiresAt = t
	s.changed = true
}

// ExpireIn sets the expiry to now plus ttl and marks the session as changed.
func (s *Session) ExpireIn(ttl time.Duration) {
	s.SetExpiry(time.Now().Add(ttl))
}

// refreshExpiry re-derives the expiry without marking the session changed,
// so the handler's per-request TTL refresh does not force a store write
// when save-unchanged is disabled.
func (s *Session) refreshExpiry(ttl time.Duration) {
	s.expiresAt = time.Now().Add(ttl)
}

// IsExpired returns true if the session has an expiry in the past.
func (s *Session) IsExpired() bool {
	return s != nil && !s.expiresAt.IsZero() && time.Now().After(s.expiresAt)
}

// Validate returns the session if it is still live, nil otherwise. Stores
// call it after decoding so a tampered cookie expiry can never resurrect a
// session the serialized state says is dead.
func (s *Session) Validate() *Session {
	if s == nil || s.IsExpired() {
		return nil
	}
	return s
}

// TakeCookieToken returns the cookie token exactly once and only for newly
// created sessions; sessions loaded from a store have already had their
// token issued and yield "". Store implementations return its result from
// Store so the handler knows whether a new cookie must be set.
func (s *Session) TakeCookieToken() string {
	if s == nil {
		return ""
	}
	token := s.token
	s.token = ""
	return token
}

// clone returns a detached copy of the persistent state (id, data, expiry).
// The cookie token and the changed/destroyed flags belong to the request
// that owns the session and are not copied.
func (s *Session) clone() *Session {
	c := &Session{
		id:        s.id,
		expiresAt: s.expiresAt,
		data:      make(map[string]any, len(s.data)),
	}
	maps.Copy(c.data, s.data)
	return c
}

type sessionJSON struct {
	ID        string         `json:"id"`
	Data      map[string]any `json:"data,omitempty"`
	ExpiresAt *time.Time     `json:"expires_at,omitempty"`
}

// MarshalJSON serializes the persistent state only: the cookie token is a
// secret that never leaves the process, and the changed/destroyed flags are
// per-request bookkeeping.
func (s *Session) MarshalJSON() ([]byte, error) {
	v := sessionJSON{
		ID:   s.id,
		Data: s.data,
	}
	if !s.expiresAt.IsZero() {
		t := s.expiresAt
		v.ExpiresAt = &t
	}
	return json.Marshal(v)
}

func (s *Session) UnmarshalJSON(b []byte) error {
	var v sessionJSON
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	s.id = v.ID
	s.data = v.Data
	if s.data == nil {
		s.data = make(map[string]any)
	}
	if v.ExpiresAt != nil {
		s.expiresAt = *v.ExpiresAt
	} else {
		s.expiresAt = time.Time{}
	}
	s.token = ""
	s.changed = false
	s.destroyed = false
	return nil
}

// HashToken derives the storage key for a cookie token: a base64-encoded
// SHA-256 digest. Store implementations use it to look sessions up without
// persisting the raw token.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return base64.StdEncoding.EncodeToString(sum[:])
}

// generateToken creates a cryptographically secure token
func generateToken() string {
	b := make([]byte, 32)
	rand.Read(b)
	return base64.RawURLEncoding.EncodeToString(b)
}
