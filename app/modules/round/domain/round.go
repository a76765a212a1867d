package rounddomain

import (
	"fmt"
	"math/rand/v2"

	scoredomain "github.com/Black-And-White-Club/barbershop-bot/app/modules/score/domain"
	"github.com/Black-And-White-Club/barbershop-bot/app/shared/lifecycle"
	sharedtypes "github.com/Black-And-White-Club/barbershop-bot/app/shared/types"
)

func transitionRound(r *sharedtypes.Round, to sharedtypes.RoundStatus) error {
	status, err := RoundMachine.Transition(r.ID, r.Status, to)
	if err != nil {
		return err
	}
	r.Status = status
	return nil
}

func transitionAppearance(a *sharedtypes.Appearance, to sharedtypes.AppearanceStatus) error {
	status, err := AppearanceMachine.Transition(a.ID, a.Status, to)
	if err != nil {
		return err
	}
	a.Status = status
	return nil
}

// DrawRound randomizes the order of appearance for every new appearance,
// builds its songs and moves the round to drawn.
func DrawRound(s *sharedtypes.Session, r *sharedtypes.Round, rng *rand.Rand) error {
	if s.Status != sharedtypes.SessionStatusValidated && s.Status != sharedtypes.SessionStatusStarted {
		return lifecycle.Blocked("round", r.ID, string(r.Status), string(sharedtypes.RoundStatusDrawn),
			"session is not validated", "session", s.ID)
	}
	if !RoundMachine.Allowed(r.Status, sharedtypes.RoundStatusDrawn) {
		return transitionRound(r, sharedtypes.RoundStatusDrawn)
	}

	var pending []int
	for i, a := range r.Appearances {
		if a.Status == sharedtypes.AppearanceStatusNew {
			pending = append(pending, i)
		}
	}
	if len(pending) == 0 {
		return &lifecycle.StateTransitionError{
			Entity: "round", ID: r.ID.String(),
			From: string(r.Status), To: string(sharedtypes.RoundStatusDrawn),
			Reason: "no appearances to draw",
		}
	}
	rng.Shuffle(len(pending), func(i, j int) { pending[i], pending[j] = pending[j], pending[i] })

	for slot, idx := range pending {
		a := &r.Appearances[idx]
		a.Num = slot + 1
		buildSongs(a, r.NumSongs)
		if err := transitionAppearance(a, sharedtypes.AppearanceStatusBuilt); err != nil {
			return err
		}
	}
	return transitionRound(r, sharedtypes.RoundStatusDrawn)
}

func buildSongs(a *sharedtypes.Appearance, n int) {
	if len(a.Songs) > 0 {
		return
	}
	if n < 1 {
		n = DefaultNumSongs
	}
	for i := 1; i <= n; i++ {
		a.Songs = append(a.Songs, sharedtypes.Song{
			ID:           sharedtypes.NewSongID(),
			AppearanceID: a.ID,
			Num:          i,
		})
	}
}

// ValidateRound checks the panel and the draw before a round can start.
func ValidateRound(r *sharedtypes.Round) error {
	if !RoundMachine.Allowed(r.Status, sharedtypes.RoundStatusValidated) {
		return transitionRound(r, sharedtypes.RoundStatusValidated)
	}
	if n := r.OfficialPanelSize(); !scoredomain.SupportedPanelSize(n) {
		return &lifecycle.StateTransitionError{
			Entity: "round", ID: r.ID.String(),
			From: string(r.Status), To: string(sharedtypes.RoundStatusValidated),
			Reason: fmt.Sprintf("official panel size %d is not one of 3, 6, 9, 12, 15", n),
		}
	}
	for _, a := range r.Appearances {
		if a.Status.Withdrawn() {
			continue
		}
		if a.Status != sharedtypes.AppearanceStatusBuilt {
			return lifecycle.Blocked("round", r.ID, string(r.Status), string(sharedtypes.RoundStatusValidated),
				"appearance not built", "appearance", a.ID)
		}
	}
	return transitionRound(r, sharedtypes.RoundStatusValidated)
}

// StartRound opens the round for scoring. The session must already be started.
func StartRound(s *sharedtypes.Session, r *sharedtypes.Round) error {
	if s.Status != sharedtypes.SessionStatusStarted {
		return lifecycle.Blocked("round", r.ID, string(r.Status), string(sharedtypes.RoundStatusStarted),
			"session not started", "session", s.ID)
	}
	if prev := s.RoundByNum(r.Num - 1); prev != nil && prev.Status != sharedtypes.RoundStatusPublished {
		return lifecycle.Blocked("round", r.ID, string(r.Status), string(sharedtypes.RoundStatusStarted),
			"previous round not published", "round", prev.ID)
	}
	return transitionRound(r, sharedtypes.RoundStatusStarted)
}

// ReleasePanelist marks a judge as done once their round has finished.
func ReleasePanelist(s *sharedtypes.Session, id sharedtypes.PanelistID) (*sharedtypes.Panelist, error) {
	r, p := s.Panelist(id)
	if p == nil {
		return nil, fmt.Errorf("%w: %s", ErrPanelistNotFound, id)
	}
	if r.Status != sharedtypes.RoundStatusFinished && r.Status != sharedtypes.RoundStatusPublished {
		return nil, lifecycle.Blocked("panelist", p.ID, "assigned", "released", "round still open", "round", r.ID)
	}
	if p.Released {
		return nil, &lifecycle.StateTransitionError{
			Entity: "panelist", ID: p.ID.String(), From: "released", To: "released",
			Reason: "already released",
		}
	}
	p.Released = true
	return p, nil
}
