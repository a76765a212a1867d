package lifecycle

import (
	"errors"
	"fmt"
)

// ErrStateTransition matches every *StateTransitionError through errors.Is.
var ErrStateTransition = errors.New("state transition rejected")

// StateTransitionError reports an operation whose precondition is unmet. When
// a child record blocks the transition it is named so an operator can act on it.
type StateTransitionError struct {
	Entity string
	ID     string
	From   string
	To     string
	Reason string

	BlockingEntity string
	BlockingID     string
}

func (e *StateTransitionError) Error() string {
	msg := fmt.Sprintf("%s %s: cannot move from %q to %q: %s", e.Entity, e.ID, e.From, e.To, e.Reason)
	if e.BlockingID != "" {
		msg += fmt.Sprintf(" (blocked by %s %s)", e.BlockingEntity, e.BlockingID)
	}
	return msg
}

func (e *StateTransitionError) Is(target error) bool { return target == ErrStateTransition }

// Blocked builds an error naming the child record that prevents the transition.
func Blocked(entity string, id fmt.Stringer, from, to, reason, blockingEntity string, blockingID fmt.Stringer) *StateTransitionError {
	return &StateTransitionError{
		Entity:         entity,
		ID:             id.String(),
		From:           from,
		To:             to,
		Reason:         reason,
		BlockingEntity: blockingEntity,
		BlockingID:     blockingID.String(),
	}
}
