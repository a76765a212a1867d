package leaderboarddomain

import (
	"cmp"
	"slices"

	sharedtypes "github.com/Black-And-White-Club/barbershop-bot/app/shared/types"
)

// Standing is one display row of a contest or round table.
type Standing struct {
	CompetitorID sharedtypes.CompetitorID
	Name         string
	Rank         *int
	Totals       sharedtypes.Totals
	Result       sharedtypes.QualificationResult
	Status       string
}

// ContestStandings ranks the entries of a contest from their stored totals.
func ContestStandings(s *sharedtypes.Session, c sharedtypes.Contest) []Standing {
	entries := slices.Clone(c.Entries)
	RankEntries(entries)

	rows := make([]Standing, 0, len(entries))
	for _, e := range entries {
		row := Standing{
			CompetitorID: e.CompetitorID,
			Rank:         e.Rank,
			Totals:       e.Totals,
			Result:       e.Result,
			Status:       string(e.Status),
		}
		if comp := s.Competitor(e.CompetitorID); comp != nil {
			row.Name = comp.Name
		}
		rows = append(rows, row)
	}
	SortStandings(rows)
	return rows
}

// RoundStandings ranks the appearances of one round by their own totals.
func RoundStandings(s *sharedtypes.Session, r sharedtypes.Round) []Standing {
	totals := make([]*int, 0, len(r.Appearances))
	for _, a := range r.Appearances {
		if !a.Status.Withdrawn() {
			totals = append(totals, a.Totals.TotPoints)
		}
	}

	rows := make([]Standing, 0, len(r.Appearances))
	for _, a := range r.Appearances {
		row := Standing{
			CompetitorID: a.CompetitorID,
			Totals:       a.Totals,
			Status:       string(a.Status),
		}
		if !a.Status.Withdrawn() {
			row.Rank = RankNullable(totals, a.Totals.TotPoints)
		}
		if comp := s.Competitor(a.CompetitorID); comp != nil {
			row.Name = comp.Name
		}
		rows = append(rows, row)
	}
	SortStandings(rows)
	return rows
}

// SortStandings orders rows by display tie-break and then by name so the
// output is stable across calls.
func SortStandings(rows []Standing) {
	slices.SortStableFunc(rows, func(a, b Standing) int {
		if c := CompareTotals(a.Totals, b.Totals); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
}
