package leaderboarddomain

import (
	"slices"
	"strings"

	sharedtypes "github.com/Black-And-White-Club/barbershop-bot/app/shared/types"
)

const (
	OutcomeNotYetDetermined = "(Result not yet determined)"
	OutcomePostContest      = "(Result determined post-contest)"
	OutcomeNoQualifiers     = "(No qualifiers)"
	OutcomeManual           = "MUST SELECT WINNER MANUALLY"
	OutcomeAfterFinals      = "(Result announced following Finals)"
	OutcomeNoRecipient      = "(No Recipient)"
)

// HasChampion reports whether the award names a single winner.
func HasChampion(level sharedtypes.AwardLevel) bool {
	return level == sharedtypes.AwardLevelChampionship || level == sharedtypes.AwardLevelRepresentative
}

// Champion returns the top ranked entry of a championship or representative
// contest, breaking equal totals by the display order. Qualifier, deferred and
// manual contests have no computed champion.
func Champion(c sharedtypes.Contest) *sharedtypes.CompetitorID {
	if !HasChampion(c.Award.Level) {
		return nil
	}
	var best *sharedtypes.Entry
	for i := range c.Entries {
		e := &c.Entries[i]
		if !Ranked(*e) || !e.Totals.Complete() {
			continue
		}
		if best == nil || CompareTotals(e.Totals, best.Totals) < 0 {
			best = e
		}
	}
	if best == nil {
		return nil
	}
	id := best.CompetitorID
	return &id
}

// QualificationResult derives the published standing of an entry in a
// qualifier or representative contest from its average score. Championship
// entries are reported by rank and get QualificationNone, as do entries with
// no score yet.
func QualificationResult(e sharedtypes.Entry, award sharedtypes.Award) sharedtypes.QualificationResult {
	score := e.Totals.TotScore
	switch award.Level {
	case sharedtypes.AwardLevelRepresentative:
		if e.Rank != nil && *e.Rank == 1 {
			return sharedtypes.QualificationRepresentative
		}
		if score == nil {
			return sharedtypes.QualificationNone
		}
		if award.Minimum != nil && *score < *award.Minimum {
			return sharedtypes.QualificationIneligible
		}
		return sharedtypes.QualificationEligible
	case sharedtypes.AwardLevelQualifier:
		if score == nil {
			return sharedtypes.QualificationNone
		}
		if award.Minimum == nil {
			return sharedtypes.QualificationEligible
		}
		if *score < *award.Minimum {
			return sharedtypes.QualificationIneligible
		}
		if award.Threshold != nil && *score >= *award.Threshold {
			return sharedtypes.QualificationQualified
		}
		return sharedtypes.QualificationEligible
	}
	return sharedtypes.QualificationNone
}

// OutcomeName computes the display name of a round outcome from the current
// session state. The value depends on statuses, draws and totals that change
// on every transition, so it is never stored.
func OutcomeName(s *sharedtypes.Session, r sharedtypes.Round, o sharedtypes.Outcome) string {
	c := s.Contest(o.ContestID)
	if c == nil {
		return OutcomeNoRecipient
	}
	award := c.Award

	if r.Num < award.Rounds {
		return OutcomeNotYetDetermined
	}

	switch award.Level {
	case sharedtypes.AwardLevelDeferred:
		return OutcomePostContest
	case sharedtypes.AwardLevelQualifier:
		return qualifierNames(s, *c)
	case sharedtypes.AwardLevelManual:
		return OutcomeManual
	}

	for _, e := range c.Entries {
		if !Ranked(e) {
			continue
		}
		if a := r.AppearanceFor(e.CompetitorID); a != nil && a.Draw > 0 {
			return OutcomeAfterFinals
		}
	}

	winner := Champion(*c)
	if winner == nil {
		return OutcomeNoRecipient
	}
	if comp := s.Competitor(*winner); comp != nil {
		return comp.Name
	}
	return OutcomeNoRecipient
}

func qualifierNames(s *sharedtypes.Session, c sharedtypes.Contest) string {
	if c.Award.Threshold == nil {
		return OutcomeNoQualifiers
	}
	var names []string
	for _, e := range c.Entries {
		if !Ranked(e) {
			continue
		}
		comp := s.Competitor(e.CompetitorID)
		if comp == nil || comp.Totals.TotScore == nil || *comp.Totals.TotScore < *c.Award.Threshold {
			continue
		}
		if !slices.Contains(names, comp.Name) {
			names = append(names, comp.Name)
		}
	}
	if len(names) == 0 {
		return OutcomeNoQualifiers
	}
	slices.Sort(names)
	return strings.Join(names, ", ")
}
