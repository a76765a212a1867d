package leaderboardservice

import "errors"

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrContestNotFound = errors.New("contest not found")
	ErrRoundNotFound   = errors.New("round not found")
)
