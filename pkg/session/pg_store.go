package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/sessionkit/pkg/pg"
)

// PGStore implements Store on top of PostgreSQL. Sessions live in the
// sessions table (see the migrations directory) as JSONB with a nullable
// expires_at column; expired rows are filtered on load and reaped by
// DeleteExpired.
type PGStore struct {
	db *pgxpool.Pool
}

// NewPGStore creates a PostgreSQL-backed session store using the given pool.
// The schema must already be in place; apply it with pg.Migrate.
func NewPGStore(db *pgxpool.Pool) *PGStore {
	return &PGStore{db: db}
}

// NewPGStoreFromConfig connects to PostgreSQL using the shared connection
// helper and wraps the pool in a PGStore.
func NewPGStoreFromConfig(ctx context.Context, cfg pg.Config) (*PGStore, error) {
	db, err := pg.Connect(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return NewPGStore(db), nil
}

// Load returns the session for the cookie token, or nil when it is absent,
// expired or undecodable. Backend failures are returned as errors.
func (s *PGStore) Load(ctx context.Context, token string) (*Session, error) {
	var b []byte
	err := s.db.QueryRow(ctx,
		`SELECT data FROM sessions WHERE id = $1 AND (expires_at IS NULL OR expires_at > now())`,
		HashToken(token),
	).Scan(&b)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	sess := &Session{}
	if err := json.Unmarshal(b, sess); err != nil {
		return nil, nil
	}

	return sess.Validate(), nil
}

// Store upserts the session and returns the cookie token for newly created
// sessions, "" otherwise.
func (s *PGStore) Store(ctx context.Context, sess *Session) (string, error) {
	if sess == nil || sess.ID() == "" {
		return "", ErrInvalidSession
	}

	b, err := json.Marshal(sess)
	if err != nil {
		return "", err
	}

	var expiresAt *time.Time
	if expiry := sess.Expiry(); !expiry.IsZero() {
		expiresAt = &expiry
	}

	_, err = s.db.Exec(ctx,
		`INSERT INTO sessions (id, data, expires_at) VALUES ($1, $2, $3)
		 ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data, expires_at = EXCLUDED.expires_at`,
		sess.ID(), b, expiresAt,
	)
	if err != nil {
		return "", err
	}

	return sess.TakeCookieToken(), nil
}

// Destroy removes the session row. Deleting a missing row is not an error.
func (s *PGStore) Destroy(ctx context.Context, sess *Session) error {
	if sess == nil {
		return nil
	}
	_, err := s.db.Exec(ctx, `DELETE FROM sessions WHERE id = $1`, sess.ID())
	return err
}

// DeleteExpired reaps rows whose expiry has passed. Call it periodically;
// PostgreSQL has no TTL of its own.
func (s *PGStore) DeleteExpired(ctx context.Context) error {
	_, err := s.db.Exec(ctx, `DELETE FROM sessions WHERE expires_at IS NOT NULL AND expires_at <= now()`)
	return err
}

// Close releases the underlying connection pool.
func (s *PGStore) Close() error {
	s.db.Close()
	return nil
}
