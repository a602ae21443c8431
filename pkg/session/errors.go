package session

import "errors"

var (
	// ErrInvalidSession indicates a nil or uninitialized session was passed to a store
	ErrInvalidSession = errors.New("session.invalid")

	// ErrNoStore indicates no store was provided at construction
	ErrNoStore = errors.New("session.no_store")
)
