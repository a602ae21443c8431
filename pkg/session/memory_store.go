package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore implements Store using an in-process map. Sessions are keyed
// by their id (the SHA-256 digest of the cookie token) and deep-copied on
// the way in and out so no two requests ever share a live Session.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ticker   *time.Ticker
	done     chan struct{}
}

// NewMemoryStore creates an in-memory session store. A positive
// cleanupInterval starts a background goroutine that drops expired
// sessions; pass 0 to disable it.
func NewMemoryStore(cleanupInterval time.Duration) *MemoryStore {
	store := &MemoryStore{
		sessions: make(map[string]*Session),
		done:     make(chan struct{}),
	}

	if cleanupInterval > 0 {
		store.ticker = time.NewTicker(cleanupInterval)
		go store.cleanupLoop()
	}

	return store
}

// Load returns the session for the cookie token, or nil when it is absent
// or expired. Expired sessions are dropped eagerly.
func (m *MemoryStore) Load(ctx context.Context, token string) (*Session, error) {
	key := HashToken(token)

	m.mu.RLock()
	sess, exists := m.sessions[key]
	m.mu.RUnlock()

	if !exists {
		return nil, nil
	}

	if sess.IsExpired() {
		m.mu.Lock()
		delete(m.sessions, key)
		m.mu.Unlock()
		return nil, nil
	}

	return sess.clone(), nil
}

// Store persists the session and returns its cookie token for newly
// created sessions, "" otherwise.
func (m *MemoryStore) Store(ctx context.Context, sess *Session) (string, error) {
	if sess == nil || sess.ID() == "" {
		return "", ErrInvalidSession
	}

	m.mu.Lock()
	m.sessions[sess.ID()] = sess.clone()
	m.mu.Unlock()

	return sess.TakeCookieToken(), nil
}

// Destroy removes the session. Destroying an unknown session is a no-op.
func (m *MemoryStore) Destroy(ctx context.Context, sess *Session) error {
	if sess == nil {
		return nil
	}

	m.mu.Lock()
	delete(m.sessions, sess.ID())
	m.mu.Unlock()

	return nil
}

// DeleteExpired removes all expired sessions
func (m *MemoryStore) DeleteExpired(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for key, sess := range m.sessions {
		if sess.IsExpired() {
			delete(m.sessions, key)
		}
	}

	return nil
}

// Len returns the number of stored sessions, expired ones included.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Close stops the cleanup goroutine
func (m *MemoryStore) Close() error {
	if m.ticker != nil {
		m.ticker.Stop()
		close(m.done)
	}
	return nil
}

// cleanupLoop runs periodic cleanup of expired sessions
func (m *MemoryStore) cleanupLoop() {
	for {
		select {
		case <-m.ticker.C:
			_ = m.DeleteExpired(context.Background())
		case <-m.done:
			return
		}
	}
}
