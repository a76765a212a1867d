package rounddomain

import (
	"fmt"

	scoredomain "github.com/Black-And-White-Club/barbershop-bot/app/modules/score/domain"
	sharedtypes "github.com/Black-And-White-Club/barbershop-bot/app/shared/types"
)

// Override is an administrative status correction. Overrides bypass the
// normal transition table but still reject unknown states, and every one
// is audited by the caller.
type Override struct {
	Entity string
	ID     string
	From   string
	To     string
}

// ForceRoundStatus sets a round's status regardless of workflow order.
func ForceRoundStatus(s *sharedtypes.Session, id sharedtypes.RoundID, to sharedtypes.RoundStatus) (Override, error) {
	r := s.Round(id)
	if r == nil {
		return Override{}, fmt.Errorf("%w: %s", ErrRoundNotFound, id)
	}
	status, err := RoundMachine.Force(r.ID, r.Status, to)
	if err != nil {
		return Override{}, err
	}
	o := Override{Entity: RoundMachine.Entity(), ID: id.String(), From: string(r.Status), To: string(status)}
	r.Status = status
	return o, nil
}

// ForceAppearanceStatus is the only way to scratch or disqualify an
// appearance. Withdrawing an appearance withdraws the competitor's live
// entries too and recomputes the session so totals and ranks drop it.
func ForceAppearanceStatus(s *sharedtypes.Session, id sharedtypes.AppearanceID, to sharedtypes.AppearanceStatus) (Override, error) {
	_, a, err := findAppearance(s, id)
	if err != nil {
		return Override{}, err
	}
	status, err := AppearanceMachine.Force(a.ID, a.Status, to)
	if err != nil {
		return Override{}, err
	}
	o := Override{Entity: AppearanceMachine.Entity(), ID: id.String(), From: string(a.Status), To: string(status)}
	a.Status = status

	if status.Withdrawn() {
		entryStatus := sharedtypes.EntryStatusScratched
		if status == sharedtypes.AppearanceStatusDisqualified {
			entryStatus = sharedtypes.EntryStatusDisqualified
		}
		for i := range s.Contests {
			if e := s.Contests[i].EntryFor(a.CompetitorID); e != nil && e.Status != sharedtypes.EntryStatusPublished {
				e.Status = entryStatus
			}
		}
	}
	RecomputeSession(s)
	return o, nil
}

func ForceSessionStatus(s *sharedtypes.Session, to sharedtypes.SessionStatus) (Override, error) {
	status, err := SessionMachine.Force(s.ID, s.Status, to)
	if err != nil {
		return Override{}, err
	}
	o := Override{Entity: SessionMachine.Entity(), ID: s.ID.String(), From: string(s.Status), To: string(status)}
	s.Status = status
	return o, nil
}

func ForceEntryStatus(s *sharedtypes.Session, contestID sharedtypes.ContestID, competitorID sharedtypes.CompetitorID, to sharedtypes.EntryStatus) (Override, error) {
	c := s.Contest(contestID)
	if c == nil {
		return Override{}, fmt.Errorf("%w: %s", ErrContestNotFound, contestID)
	}
	e := c.EntryFor(competitorID)
	if e == nil {
		return Override{}, fmt.Errorf("%w: competitor %s has no entry in contest %s", ErrInvalidInput, competitorID, contestID)
	}
	status, err := EntryMachine.Force(e.ID, e.Status, to)
	if err != nil {
		return Override{}, err
	}
	o := Override{Entity: EntryMachine.Entity(), ID: e.ID.String(), From: string(e.Status), To: string(status)}
	e.Status = status
	RecomputeSession(s)
	return o, nil
}

// ForceScoreStatus moves a score anywhere in the session, for example back to
// new so the next verification looks at it again.
func ForceScoreStatus(s *sharedtypes.Session, id sharedtypes.ScoreID, to sharedtypes.ScoreStatus) (Override, error) {
	for i := range s.Rounds {
		for j := range s.Rounds[i].Appearances {
			a := &s.Rounds[i].Appearances[j]
			for k := range a.Songs {
				for m := range a.Songs[k].Scores {
					sc := &a.Songs[k].Scores[m]
					if sc.ID != id {
						continue
					}
					status, err := scoredomain.ScoreMachine.Force(sc.ID, sc.Status, to)
					if err != nil {
						return Override{}, err
					}
					o := Override{Entity: scoredomain.ScoreMachine.Entity(), ID: id.String(), From: string(sc.Status), To: string(status)}
					sc.Status = status
					return o, nil
				}
			}
		}
	}
	return Override{}, fmt.Errorf("%w: %s", ErrScoreNotFound, id)
}
