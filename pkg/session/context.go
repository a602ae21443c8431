package session

import "context"

// sessionSlot is the request-scoped holder for the session. Keeping a
// mutable slot in the context (rather than the session itself) lets
// handlers replace the session wholesale and lets the middleware consume it
// exactly once at commit time.
type sessionSlot struct {
	sess *Session
}

// take removes the session from the slot so it cannot be used after the
// persistence decision has been made.
func (s *sessionSlot) take() *Session {
	sess := s.sess
	s.sess = nil
	return sess
}

type slotContextKey struct{}

func withSlot(ctx context.Context, slot *sessionSlot) context.Context {
	return context.WithValue(ctx, slotContextKey{}, slot)
}

// FromContext returns the request's session. The second return value is
// false when the request did not pass through the session middleware.
func FromContext(ctx context.Context) (*Session, bool) {
	slot, ok := ctx.Value(slotContextKey{}).(*sessionSlot)
	if !ok || slot.sess == nil {
		return nil, false
	}
	return slot.sess, true
}

// MustFromContext retrieves a session from the context or panics
func MustFromContext(ctx context.Context) *Session {
	sess, ok := FromContext(ctx)
	if !ok {
		panic("session: not found in context")
	}
	return sess
}

// Replace swaps the request's session for a new one; the replacement is
// what gets persisted at the end of the request. It returns false when the
// request has no session slot or the replacement is nil.
func Replace(ctx context.Context, sess *Session) bool {
	if sess == nil {
		return false
	}
	slot, ok := ctx.Value(slotContextKey{}).(*sessionSlot)
	if !ok {
		return false
	}
	slot.sess = sess
	return true
}
