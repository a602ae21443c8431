package session

import (
	"context"
)

// Store defines the persistence contract consumed by the lifecycle handler.
// Implementations may be slow or fail independently of the cookie logic; the
// handler treats every failure as non-fatal to the request.
type Store interface {
	// Load returns the session for the given cookie token. Absent, expired
	// and undecodable sessions all yield (nil, nil); errors are reserved
	// for backend failures.
	Load(ctx context.Context, token string) (*Session, error)

	// Store persists the session and returns the cookie token the caller
	// should issue, or "" when no new cookie is needed (typically because
	// the client already holds one for this session).
	Store(ctx context.Context, sess *Session) (string, error)

	// Destroy removes the session from the backend. Destroying a session
	// that does not exist is not an error.
	Destroy(ctx context.Context, sess *Session) error
}
