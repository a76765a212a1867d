package rounddomain

import "errors"

var (
	ErrRoundNotFound      = errors.New("round not found in session")
	ErrAppearanceNotFound = errors.New("appearance not found in session")
	ErrPanelistNotFound   = errors.New("panelist not found in round")
	ErrContestNotFound    = errors.New("contest not found in session")
	ErrScoreNotFound      = errors.New("score not found in session")

	// ErrInvalidInput wraps malformed commands such as an unknown enum value
	// or an empty name.
	ErrInvalidInput = errors.New("invalid input")
)
