package session

import "errors"

// Errors returned by the session package.
var (
	// ErrNotFound is returned when a session does not exist or has expired.
	ErrNotFound = errors.New("session not found")

	// ErrInvalidConfig is returned when a store is created with missing or
	// invalid configuration.
	ErrInvalidConfig = errors.New("invalid session store configuration")

	// ErrInvalidStoreType is returned for an unrecognized store driver name.
	ErrInvalidStoreType = errors.New("invalid session store type")
)
