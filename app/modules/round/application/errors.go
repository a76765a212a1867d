package roundservice

import "errors"

var (
	ErrSessionNotFound    = errors.New("session not found")
	ErrConventionNotFound = errors.New("convention not found")
	// ErrUnknownAction rejects a lifecycle action the target does not support.
	ErrUnknownAction = errors.New("unknown action")
)
