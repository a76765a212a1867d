package scoreservice

import "errors"

// Business failures for the score service. Handlers publish them on the
// failure topic and ack the message instead of retrying.
var (
	ErrSongNotFound  = errors.New("song not found")
	ErrScoreNotFound = errors.New("score not found")

	// ErrPanelistNotOnPanel rejects a submission from a judge who is not on
	// the song's round panel or who does not score songs.
	ErrPanelistNotOnPanel = errors.New("panelist does not score this round")

	// ErrAppearanceNotScoring rejects a submission while the appearance is not on stage.
	ErrAppearanceNotScoring = errors.New("appearance is not accepting scores")

	// ErrScoreSettled rejects a submission that lost a race with verification
	// or with another submission for the same judge and song.
	ErrScoreSettled = errors.New("score is no longer open for submission")
)
