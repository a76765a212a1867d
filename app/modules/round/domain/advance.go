package rounddomain

import (
	"cmp"
	"fmt"
	"math/rand/v2"
	"slices"

	leaderboarddomain "github.com/Black-And-White-Club/barbershop-bot/app/modules/leaderboard/domain"
	scoredomain "github.com/Black-And-White-Club/barbershop-bot/app/modules/score/domain"
	"github.com/Black-And-White-Club/barbershop-bot/app/shared/lifecycle"
	sharedtypes "github.com/Black-And-White-Club/barbershop-bot/app/shared/types"
)

// ChampionshipBand is how far below the leader's total score a championship
// entry may fall and still advance.
const ChampionshipBand = 4.0

// International quartet rounds advance a fixed number of groups by rank in
// the primary contest.
var internationalQuartetSpots = map[sharedtypes.RoundKind]int{
	sharedtypes.RoundKindQuarterfinal: 20,
	sharedtypes.RoundKindSemifinal:    10,
}

// FinishResult describes what finishing a round did.
type FinishResult struct {
	Final     bool
	Advanced  []sharedtypes.CompetitorID
	NextRound *sharedtypes.RoundID
	Verified  []sharedtypes.AppearanceID
	Flagged   map[sharedtypes.Category]int
}

// FinishRound closes a started round. Finished appearances are verified on
// the way; any appearance still on stage or in variance blocks the move and
// is named in the error. The caller is expected to work on a clone and drop
// it on error. The final round finalizes the session; earlier rounds advance.
func FinishRound(s *sharedtypes.Session, roundID sharedtypes.RoundID, rng *rand.Rand, defaultSpots int) (FinishResult, error) {
	var res FinishResult
	r := s.Round(roundID)
	if r == nil {
		return res, fmt.Errorf("%w: %s", ErrRoundNotFound, roundID)
	}
	if !RoundMachine.Allowed(r.Status, sharedtypes.RoundStatusFinished) {
		return res, transitionRound(r, sharedtypes.RoundStatusFinished)
	}

	from, to := string(r.Status), string(sharedtypes.RoundStatusFinished)
	res.Flagged = make(map[sharedtypes.Category]int)
	for i := range r.Appearances {
		a := &r.Appearances[i]
		switch a.Status {
		case sharedtypes.AppearanceStatusVerified, sharedtypes.AppearanceStatusAdvanced,
			sharedtypes.AppearanceStatusScratched, sharedtypes.AppearanceStatusDisqualified:
			continue
		case sharedtypes.AppearanceStatusVariance:
			return res, lifecycle.Blocked("round", r.ID, from, to, "appearance has unresolved variance", "appearance", a.ID)
		case sharedtypes.AppearanceStatusFinished:
			v, err := verifyAppearance(a)
			if err != nil {
				return res, err
			}
			for c, n := range v.FlaggedByCategory(*a) {
				res.Flagged[c] += n
			}
			if v.Variance {
				return res, lifecycle.Blocked("round", r.ID, from, to, "variance requires review", "appearance", a.ID)
			}
			res.Verified = append(res.Verified, a.ID)
		default:
			return res, lifecycle.Blocked("round", r.ID, from, to, "appearance not finished", "appearance", a.ID)
		}
	}

	RecomputeSession(s)
	if err := transitionRound(r, sharedtypes.RoundStatusFinished); err != nil {
		return res, err
	}

	if r.FinalRound() || r.Num >= s.NumRounds {
		res.Final = true
		return res, FinalizeSession(s)
	}

	advanced, next, err := Advance(s, r, rng, defaultSpots)
	if err != nil {
		return res, err
	}
	if next == nil {
		// Nobody carries on, so this round decides the session.
		res.Final = true
		return res, FinalizeSession(s)
	}
	res.Advanced = advanced
	res.NextRound = &next.ID
	return res, nil
}

// RecomputeSession rebuilds every denormalized total from the scores up and
// re-ranks every contest.
func RecomputeSession(s *sharedtypes.Session) {
	for i := range s.Rounds {
		for j := range s.Rounds[i].Appearances {
			scoredomain.AggregateAppearance(&s.Rounds[i].Appearances[j])
		}
	}
	for i := range s.Competitors {
		scoredomain.AggregateCompetitor(&s.Competitors[i], s.Rounds)
	}
	for i := range s.Contests {
		c := &s.Contests[i]
		for j := range c.Entries {
			scoredomain.AggregateEntry(&c.Entries[j], c.Award, s.Rounds)
		}
		leaderboarddomain.RankEntries(c.Entries)
	}
}

// SelectAdvancers returns the competitors moving on from r, in no
// particular order.
func SelectAdvancers(s *sharedtypes.Session, r *sharedtypes.Round, rng *rand.Rand, defaultSpots int) []sharedtypes.CompetitorID {
	if s.Level == sharedtypes.ConventionLevelInternational && s.Kind == sharedtypes.SessionKindQuartet {
		if spots, ok := internationalQuartetSpots[r.Kind]; ok {
			return topByPrimaryRank(s, r, spots)
		}
	}

	inRound := func(id sharedtypes.CompetitorID) bool {
		a := r.AppearanceFor(id)
		return a != nil && !a.Status.Withdrawn()
	}

	var picked []sharedtypes.CompetitorID
	add := func(id sharedtypes.CompetitorID) {
		if inRound(id) && !slices.Contains(picked, id) {
			picked = append(picked, id)
		}
	}
	eligible := make(map[sharedtypes.CompetitorID]bool)

	for _, c := range s.Contests {
		if !c.Award.MultiRound() {
			continue
		}
		for _, e := range c.Entries {
			if leaderboarddomain.Ranked(e) {
				eligible[e.CompetitorID] = true
			}
		}
		switch c.Award.Level {
		case sharedtypes.AwardLevelQualifier, sharedtypes.AwardLevelRepresentative:
			if c.Award.Advance == nil {
				continue
			}
			for _, e := range c.Entries {
				if leaderboarddomain.Ranked(e) && e.Totals.TotScore != nil && *e.Totals.TotScore >= *c.Award.Advance {
					add(e.CompetitorID)
				}
			}
		case sharedtypes.AwardLevelChampionship:
			top, ok := leaderScore(c.Entries)
			if !ok {
				continue
			}
			cutoff := top - ChampionshipBand
			for _, e := range c.Entries {
				if leaderboarddomain.Ranked(e) && e.Totals.TotScore != nil && *e.Totals.TotScore >= cutoff {
					add(e.CompetitorID)
				}
			}
		}
	}

	spots := s.Spots
	if spots <= 0 {
		spots = defaultSpots
	}
	if len(picked) >= spots {
		return picked
	}

	// Backfill by appearance points. Shuffling first randomizes the order
	// among equal totals before the stable sort.
	var pool []sharedtypes.Appearance
	for _, a := range r.Appearances {
		if !a.Status.Withdrawn() && a.Totals.TotPoints != nil && eligible[a.CompetitorID] && !slices.Contains(picked, a.CompetitorID) {
			pool = append(pool, a)
		}
	}
	rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	slices.SortStableFunc(pool, func(a, b sharedtypes.Appearance) int {
		return cmp.Compare(*b.Totals.TotPoints, *a.Totals.TotPoints)
	})
	for _, a := range pool {
		if len(picked) >= spots {
			break
		}
		picked = append(picked, a.CompetitorID)
	}
	return picked
}

// leaderScore is the total score of the rank-one entry.
func leaderScore(entries []sharedtypes.Entry) (float64, bool) {
	for _, e := range entries {
		if leaderboarddomain.Ranked(e) && e.Rank != nil && *e.Rank == 1 && e.Totals.TotScore != nil {
			return *e.Totals.TotScore, true
		}
	}
	return 0, false
}

func topByPrimaryRank(s *sharedtypes.Session, r *sharedtypes.Round, spots int) []sharedtypes.CompetitorID {
	c := s.PrimaryContest()
	if c == nil {
		return nil
	}
	var out []sharedtypes.CompetitorID
	for _, e := range c.Entries {
		if !leaderboarddomain.Ranked(e) || e.Rank == nil || *e.Rank > spots {
			continue
		}
		if a := r.AppearanceFor(e.CompetitorID); a != nil && !a.Status.Withdrawn() {
			out = append(out, e.CompetitorID)
		}
	}
	return out
}

// Advance moves the selected competitors into the next round. The draw for
// the next round is random; each advancing appearance records its slot in
// Draw and the next round's appearance takes it as Num. Songs are built and
// the panel is carried over so the next round lands in drawn. When nobody
// advances the next round is left untouched and nil is returned for it.
func Advance(s *sharedtypes.Session, r *sharedtypes.Round, rng *rand.Rand, defaultSpots int) ([]sharedtypes.CompetitorID, *sharedtypes.Round, error) {
	advancing := SelectAdvancers(s, r, rng, defaultSpots)

	next := s.RoundByNum(r.Num + 1)
	if next != nil && (next.Status != sharedtypes.RoundStatusNew || len(next.Appearances) > 0) {
		return nil, nil, lifecycle.Blocked("round", r.ID, string(r.Status), string(r.Status),
			"next round already drawn", "round", next.ID)
	}
	if len(advancing) == 0 {
		return nil, nil, nil
	}
	rng.Shuffle(len(advancing), func(i, j int) { advancing[i], advancing[j] = advancing[j], advancing[i] })

	if next == nil {
		s.Rounds = append(s.Rounds, sharedtypes.Round{
			ID:        sharedtypes.NewRoundID(),
			SessionID: s.ID,
			Num:       r.Num + 1,
			Kind:      r.Kind - 1,
			Status:    sharedtypes.RoundStatusNew,
			NumSongs:  r.NumSongs,
		})
		// The append may have moved the backing array.
		r = s.Round(r.ID)
		next = &s.Rounds[len(s.Rounds)-1]
	}

	for i, id := range advancing {
		a := r.AppearanceFor(id)
		a.Draw = i + 1
		if err := transitionAppearance(a, sharedtypes.AppearanceStatusAdvanced); err != nil {
			return nil, nil, err
		}
		na := sharedtypes.Appearance{
			ID:           sharedtypes.NewAppearanceID(),
			RoundID:      next.ID,
			CompetitorID: id,
			Num:          i + 1,
			Status:       sharedtypes.AppearanceStatusBuilt,
		}
		buildSongs(&na, next.NumSongs)
		next.Appearances = append(next.Appearances, na)
	}

	if len(next.Panelists) == 0 {
		for _, p := range r.Panelists {
			p.ID = sharedtypes.NewPanelistID()
			p.RoundID = next.ID
			p.Released = false
			next.Panelists = append(next.Panelists, p)
		}
	}
	if err := transitionRound(next, sharedtypes.RoundStatusDrawn); err != nil {
		return nil, nil, err
	}
	return advancing, next, nil
}

// FinalizeSession writes results and champions and finishes the session.
func FinalizeSession(s *sharedtypes.Session) error {
	RecomputeSession(s)
	for i := range s.Contests {
		c := &s.Contests[i]
		for j := range c.Entries {
			e := &c.Entries[j]
			if !leaderboarddomain.Ranked(*e) {
				continue
			}
			e.Result = leaderboarddomain.QualificationResult(*e, c.Award)
		}
		c.ChampionID = nil
		if leaderboarddomain.HasChampion(c.Award.Level) {
			c.ChampionID = leaderboarddomain.Champion(*c)
		}
	}
	if err := moveEntries(s, sharedtypes.EntryStatusStarted, sharedtypes.EntryStatusFinished); err != nil {
		return err
	}
	return FinishSession(s)
}

// PublishRound releases a finished round. Entries that did not advance are
// finished and published with it, and the next round is validated so it can
// start. Publishing the final round publishes the session.
func PublishRound(s *sharedtypes.Session, roundID sharedtypes.RoundID) error {
	r := s.Round(roundID)
	if r == nil {
		return fmt.Errorf("%w: %s", ErrRoundNotFound, roundID)
	}
	if err := transitionRound(r, sharedtypes.RoundStatusPublished); err != nil {
		return err
	}

	next := s.RoundByNum(r.Num + 1)
	if next == nil || s.Status == sharedtypes.SessionStatusFinished {
		return PublishSession(s)
	}

	for i := range s.Contests {
		c := &s.Contests[i]
		for j := range c.Entries {
			e := &c.Entries[j]
			if e.Status != sharedtypes.EntryStatusStarted || next.AppearanceFor(e.CompetitorID) != nil {
				continue
			}
			if r.AppearanceFor(e.CompetitorID) == nil {
				continue
			}
			e.Result = leaderboarddomain.QualificationResult(*e, c.Award)
			for _, to := range []sharedtypes.EntryStatus{sharedtypes.EntryStatusFinished, sharedtypes.EntryStatusPublished} {
				status, err := EntryMachine.Transition(e.ID, e.Status, to)
				if err != nil {
					return err
				}
				e.Status = status
			}
		}
	}
	if next.Status == sharedtypes.RoundStatusDrawn {
		return ValidateRound(next)
	}
	return nil
}
