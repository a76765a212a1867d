package rounddomain

import (
	"fmt"

	scoredomain "github.com/Black-And-White-Club/barbershop-bot/app/modules/score/domain"
	"github.com/Black-And-White-Club/barbershop-bot/app/shared/lifecycle"
	sharedtypes "github.com/Black-And-White-Club/barbershop-bot/app/shared/types"
)

func findAppearance(s *sharedtypes.Session, id sharedtypes.AppearanceID) (*sharedtypes.Round, *sharedtypes.Appearance, error) {
	r, a := s.Appearance(id)
	if a == nil {
		return nil, nil, fmt.Errorf("%w: %s", ErrAppearanceNotFound, id)
	}
	return r, a, nil
}

// StartAppearance puts a competitor on stage. Its round must be started.
func StartAppearance(s *sharedtypes.Session, id sharedtypes.AppearanceID) (*sharedtypes.Appearance, error) {
	r, a, err := findAppearance(s, id)
	if err != nil {
		return nil, err
	}
	if r.Status != sharedtypes.RoundStatusStarted {
		return nil, lifecycle.Blocked("appearance", a.ID, string(a.Status), string(sharedtypes.AppearanceStatusStarted),
			"round not started", "round", r.ID)
	}
	return a, transitionAppearance(a, sharedtypes.AppearanceStatusStarted)
}

// FinishAppearance closes scoring. Every song must hold one score from each
// official scoring panelist; the first song missing one blocks the move.
func FinishAppearance(s *sharedtypes.Session, id sharedtypes.AppearanceID) (*sharedtypes.Appearance, error) {
	r, a, err := findAppearance(s, id)
	if err != nil {
		return nil, err
	}
	if !AppearanceMachine.Allowed(a.Status, sharedtypes.AppearanceStatusFinished) {
		return nil, transitionAppearance(a, sharedtypes.AppearanceStatusFinished)
	}
	for _, song := range a.Songs {
		if missing, ok := missingPanelist(*r, song); ok {
			return nil, lifecycle.Blocked("appearance", a.ID, string(a.Status), string(sharedtypes.AppearanceStatusFinished),
				fmt.Sprintf("song %d has no score from panelist %d", song.Num, missing.Num), "song", song.ID)
		}
	}
	if err := transitionAppearance(a, sharedtypes.AppearanceStatusFinished); err != nil {
		return nil, err
	}
	scoredomain.AggregateAppearance(a)
	return a, nil
}

func missingPanelist(r sharedtypes.Round, song sharedtypes.Song) (sharedtypes.Panelist, bool) {
	for _, p := range r.Panelists {
		if p.Kind != sharedtypes.PanelistKindOfficial || !p.Scores() {
			continue
		}
		found := false
		for _, sc := range song.Scores {
			if sc.PanelistID == p.ID {
				found = true
				break
			}
		}
		if !found {
			return p, true
		}
	}
	return sharedtypes.Panelist{}, false
}

// VerifyAppearance runs variance detection over a finished appearance. The
// appearance lands in variance while any official score is flagged and in
// verified otherwise. Re-running it after revisions settles the variance.
func VerifyAppearance(s *sharedtypes.Session, id sharedtypes.AppearanceID) (*sharedtypes.Appearance, scoredomain.VerificationResult, error) {
	_, a, err := findAppearance(s, id)
	if err != nil {
		return nil, scoredomain.VerificationResult{}, err
	}
	res, err := verifyAppearance(a)
	if err != nil {
		return nil, res, err
	}
	return a, res, nil
}

func verifyAppearance(a *sharedtypes.Appearance) (scoredomain.VerificationResult, error) {
	if a.Status != sharedtypes.AppearanceStatusFinished && a.Status != sharedtypes.AppearanceStatusVariance {
		return scoredomain.VerificationResult{}, &lifecycle.StateTransitionError{
			Entity: "appearance", ID: a.ID.String(),
			From: string(a.Status), To: string(sharedtypes.AppearanceStatusVerified),
			Reason: "appearance not finished",
		}
	}
	res, err := scoredomain.ApplyVerification(a)
	if err != nil {
		return res, err
	}
	switch {
	case res.Variance && a.Status == sharedtypes.AppearanceStatusVariance:
	case res.Variance:
		err = transitionAppearance(a, sharedtypes.AppearanceStatusVariance)
	default:
		err = transitionAppearance(a, sharedtypes.AppearanceStatusVerified)
	}
	return res, err
}
