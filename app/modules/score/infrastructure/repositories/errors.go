package scoredb

import "errors"

// Sentinel errors for the repository layer. They describe database state;
// the service decides whether that is a business failure.
var (
	// ErrNotFound indicates the requested score does not exist.
	ErrNotFound = errors.New("score not found")

	// ErrNoRowsAffected indicates an UPDATE matched nothing.
	ErrNoRowsAffected = errors.New("no rows affected")
)
