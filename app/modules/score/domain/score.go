package scoredomain

import (
	"fmt"

	"github.com/Black-And-White-Club/barbershop-bot/app/shared/lifecycle"
	sharedtypes "github.com/Black-And-White-Club/barbershop-bot/app/shared/types"
)

const (
	MinPoints = 0
	MaxPoints = 100
)

// Scores move New -> Verified -> Cleared|Flagged, and a flagged score needs a
// human revision before it is Confirmed.
var ScoreMachine = lifecycle.NewMachine("score",
	[]sharedtypes.ScoreStatus{
		sharedtypes.ScoreStatusNew,
		sharedtypes.ScoreStatusVerified,
		sharedtypes.ScoreStatusCleared,
		sharedtypes.ScoreStatusFlagged,
		sharedtypes.ScoreStatusRevised,
		sharedtypes.ScoreStatusConfirmed,
	},
	map[sharedtypes.ScoreStatus][]sharedtypes.ScoreStatus{
		sharedtypes.ScoreStatusNew:      {sharedtypes.ScoreStatusVerified},
		sharedtypes.ScoreStatusVerified: {sharedtypes.ScoreStatusCleared, sharedtypes.ScoreStatusFlagged},
		sharedtypes.ScoreStatusFlagged:  {sharedtypes.ScoreStatusRevised},
		sharedtypes.ScoreStatusRevised:  {sharedtypes.ScoreStatusConfirmed},
	},
)

// ValidatePoints checks a points or penalty value.
func ValidatePoints(id sharedtypes.ScoreID, field string, v int) error {
	if v < MinPoints || v > MaxPoints {
		return &RangeError{Field: field, Value: v, ScoreID: id}
	}
	return nil
}

// NewScoreParams describes a judge's submission for one song.
type NewScoreParams struct {
	SongID     sharedtypes.SongID
	PanelistID sharedtypes.PanelistID
	Category   sharedtypes.Category
	Kind       sharedtypes.ScoreKind
	Points     int
	Penalty    int
}

// NewScore validates a submission and returns a score in the New state.
func NewScore(p NewScoreParams) (sharedtypes.Score, error) {
	id := sharedtypes.NewScoreID()
	if err := ValidatePoints(id, "points", p.Points); err != nil {
		return sharedtypes.Score{}, err
	}
	if err := ValidatePoints(id, "penalty", p.Penalty); err != nil {
		return sharedtypes.Score{}, err
	}
	if !p.Category.Valid() {
		return sharedtypes.Score{}, fmt.Errorf("score %s: invalid category %q", id, p.Category)
	}
	if !p.Kind.Valid() {
		return sharedtypes.Score{}, fmt.Errorf("score %s: invalid kind %q", id, p.Kind)
	}
	return sharedtypes.Score{
		ID:         id,
		SongID:     p.SongID,
		PanelistID: p.PanelistID,
		Category:   p.Category,
		Kind:       p.Kind,
		Points:     p.Points,
		Penalty:    p.Penalty,
		Status:     sharedtypes.ScoreStatusNew,
	}, nil
}

// Resubmit replaces the points of a score that has not been verified yet.
func Resubmit(score *sharedtypes.Score, points, penalty int) error {
	if score.Status != sharedtypes.ScoreStatusNew {
		return &lifecycle.StateTransitionError{
			Entity: "score",
			ID:     score.ID.String(),
			From:   string(score.Status),
			To:     string(sharedtypes.ScoreStatusNew),
			Reason: "only unverified scores can be resubmitted",
		}
	}
	if err := ValidatePoints(score.ID, "points", points); err != nil {
		return err
	}
	if err := ValidatePoints(score.ID, "penalty", penalty); err != nil {
		return err
	}
	score.Points = points
	score.Penalty = penalty
	return nil
}

// Revise records a human correction of a flagged score. The pre-revision
// value stays in Original.
func Revise(score *sharedtypes.Score, points int) error {
	if err := ValidatePoints(score.ID, "points", points); err != nil {
		return err
	}
	status, err := ScoreMachine.Transition(score.ID, score.Status, sharedtypes.ScoreStatusRevised)
	if err != nil {
		return err
	}
	if score.Original == nil {
		original := score.Points
		score.Original = &original
	}
	score.Points = points
	score.Status = status
	return nil
}

// VerifyScore compares one score with the official average of its category
// on the song. A deviation above the limit flags the score, keeps its value in
// Original and reports variance. Re-running it on unchanged input is a no-op.
func VerifyScore(song *sharedtypes.Song, id sharedtypes.ScoreID) (bool, error) {
	var target *sharedtypes.Score
	for i := range song.Scores {
		if song.Scores[i].ID == id {
			target = &song.Scores[i]
			break
		}
	}
	if target == nil {
		return false, fmt.Errorf("%w: %s", ErrScoreNotFound, id)
	}

	avg, ok := categoryAverage(song.Scores, target.Category)
	if !ok || !deviates(target.Points, avg) {
		return false, nil
	}
	target.IsFlagged = true
	if target.Original == nil {
		original := target.Points
		target.Original = &original
	}
	return true, nil
}
