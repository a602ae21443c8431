package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	redisconn "github.com/dmitrymomot/sessionkit/pkg/redis"
)

const redisKeyPrefix = "session:"

// RedisStore implements Store on top of a Redis server. Sessions are stored
// as JSON under "session:<id>" with a Redis TTL mirroring the session
// expiry, so Redis evicts stale sessions on its own.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a Redis-backed session store using the given client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// NewRedisStoreFromConfig connects to Redis using the shared connection
// helper and wraps the client in a RedisStore.
func NewRedisStoreFromConfig(ctx context.Context, cfg redisconn.Config) (*RedisStore, error) {
	client, err := redisconn.Connect(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return NewRedisStore(client), nil
}

// Load returns the session for the cookie token, or nil when it is absent,
// expired or undecodable. Backend failures are returned as errors.
func (s *RedisStore) Load(ctx context.Context, token string) (*Session, error) {
	b, err := s.client.Get(ctx, redisKeyPrefix+HashToken(token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	sess := &Session{}
	if err := json.Unmarshal(b, sess); err != nil {
		// Corrupted payloads are indistinguishable from absent sessions.
		return nil, nil
	}

	return sess.Validate(), nil
}

// Store persists the session with a TTL derived from its expiry and returns
// the cookie token for newly created sessions, "" otherwise.
func (s *RedisStore) Store(ctx context.Context, sess *Session) (string, error) {
	if sess == nil || sess.ID() == "" {
		return "", ErrInvalidSession
	}

	b, err := json.Marshal(sess)
	if err != nil {
		return "", err
	}

	var ttl time.Duration
	if expiry := sess.Expiry(); !expiry.IsZero() {
		ttl = time.Until(expiry)
		if ttl <= 0 {
			// Already expired, nothing worth persisting.
			return "", s.Destroy(ctx, sess)
		}
	}

	if err := s.client.Set(ctx, redisKeyPrefix+sess.ID(), b, ttl).Err(); err != nil {
		return "", err
	}

	return sess.TakeCookieToken(), nil
}

// Destroy removes the session. Deleting an unknown key is not an error.
func (s *RedisStore) Destroy(ctx context.Context, sess *Session) error {
	if sess == nil {
		return nil
	}
	return s.client.Del(ctx, redisKeyPrefix+sess.ID()).Err()
}

// Close releases the underlying Redis client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
