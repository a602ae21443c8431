package session

import (
	"context"
	"encoding/base64"
	"encoding/json"
)

// CookieStore keeps the whole session inside the cookie itself: Store
// serializes the session state and returns it as the cookie token, Load
// deserializes it back. Nothing is persisted server-side, so Destroy is a
// no-op (the lifecycle handler clears the client cookie).
//
// The serialized state is signed by the handler like any other token, so it
// is tamper-evident but not confidential; do not put secrets in session
// data when using this store.
type CookieStore struct{}

// NewCookieStore creates a stateless cookie-backed store.
func NewCookieStore() *CookieStore {
	return &CookieStore{}
}

// Load decodes the session out of the cookie token. Undecodable or expired
// payloads are treated as no session.
func (c *CookieStore) Load(ctx context.Context, token string) (*Session, error) {
	b, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, nil
	}

	sess := &Session{}
	if err := json.Unmarshal(b, sess); err != nil {
		return nil, nil
	}

	return sess.Validate(), nil
}

// Store returns the serialized session as the next cookie token. The token
// changes whenever the state does, so a cookie is issued on every save.
func (c *CookieStore) Store(ctx context.Context, sess *Session) (string, error) {
	if sess == nil || sess.ID() == "" {
		return "", ErrInvalidSession
	}

	b, err := json.Marshal(sess)
	if err != nil {
		return "", err
	}

	// The random creation token is superseded by the serialized state.
	sess.TakeCookieToken()

	return base64.RawURLEncoding.EncodeToString(b), nil
}

// Destroy is a no-op: there is no server-side state, and the handler
// removes the client cookie when a session is destroyed.
func (c *CookieStore) Destroy(ctx context.Context, sess *Session) error {
	return nil
}
