package scoredomain

import (
	"errors"
	"fmt"

	sharedtypes "github.com/Black-And-White-Club/barbershop-bot/app/shared/types"
)

var (
	// ErrIncompleteAggregate is advisory: an aggregate has no qualifying
	// official scores and must be treated as absent, not as zero.
	ErrIncompleteAggregate = errors.New("no qualifying official scores")

	// ErrScoreNotFound is returned when a score id is not part of the song.
	ErrScoreNotFound = errors.New("score not found on song")
)

// RangeError rejects points or penalty outside [0,100] before anything is persisted.
type RangeError struct {
	Field   string
	Value   int
	ScoreID sharedtypes.ScoreID
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("score %s: %s %d out of range [%d,%d]", e.ScoreID, e.Field, e.Value, MinPoints, MaxPoints)
}

// UnsupportedPanelSizeError is raised when Dixon's Q test has no critical
// value for the number of official scores on a song.
type UnsupportedPanelSizeError struct {
	Size   int
	SongID sharedtypes.SongID
}

func (e *UnsupportedPanelSizeError) Error() string {
	return fmt.Sprintf("song %s: unsupported official panel size %d (want one of 3, 6, 9, 12, 15)", e.SongID, e.Size)
}

// IncompleteAggregateError names the record whose aggregate is absent.
type IncompleteAggregateError struct {
	Level string
	ID    string
}

func (e *IncompleteAggregateError) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Level, e.ID, ErrIncompleteAggregate)
}

func (e *IncompleteAggregateError) Is(target error) bool { return target == ErrIncompleteAggregate }
