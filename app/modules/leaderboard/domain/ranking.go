package leaderboarddomain

import (
	"cmp"
	"slices"

	sharedtypes "github.com/Black-And-White-Club/barbershop-bot/app/shared/types"
)

// Rank returns target's standard competition rank within totals: one plus
// the number of strictly greater values, so ties share a rank and the next
// distinct value skips ahead. ok is false when target is not in totals.
func Rank[T cmp.Ordered](totals []T, target T) (rank int, ok bool) {
	rank = 1
	for _, v := range totals {
		switch {
		case v > target:
			rank++
		case v == target:
			ok = true
		}
	}
	if !ok {
		return 0, false
	}
	return rank, true
}

// RankAll ranks every value of totals in place order.
//
//	[300, 295, 295, 280] -> [1, 2, 2, 4]
func RankAll[T cmp.Ordered](totals []T) []int {
	out := make([]int, len(totals))
	for i, v := range totals {
		out[i], _ = Rank(totals, v)
	}
	return out
}

// RankNullable ranks target among the present totals. A nil target has not
// been scored yet and gets no rank; nil totals are ignored.
func RankNullable[T cmp.Ordered](totals []*T, target *T) *int {
	if target == nil {
		return nil
	}
	present := make([]T, 0, len(totals))
	for _, v := range totals {
		if v != nil {
			present = append(present, *v)
		}
	}
	rank, ok := Rank(present, *target)
	if !ok {
		return nil
	}
	return &rank
}

// Ranked reports whether an entry takes part in ranking. Withdrawn entries
// keep their totals for the record but never hold a place.
func Ranked(e sharedtypes.Entry) bool {
	return e.Status != sharedtypes.EntryStatusScratched && e.Status != sharedtypes.EntryStatusDisqualified
}

// RankEntries writes each entry's rank from total points. Entries without a
// complete aggregate and withdrawn entries get a nil rank.
func RankEntries(entries []sharedtypes.Entry) {
	totals := make([]*int, 0, len(entries))
	for _, e := range entries {
		if Ranked(e) {
			totals = append(totals, e.Totals.TotPoints)
		}
	}
	for i := range entries {
		if !Ranked(entries[i]) {
			entries[i].Rank = nil
			continue
		}
		entries[i].Rank = RankNullable(totals, entries[i].Totals.TotPoints)
	}
}

// CompareTotals orders totals for display: total points descending, then
// singing, music and performance points. Absent values sort last. It never
// changes a rank; tied entries keep their shared rank.
func CompareTotals(a, b sharedtypes.Totals) int {
	if c := compareDesc(a.TotPoints, b.TotPoints); c != 0 {
		return c
	}
	for _, cat := range sharedtypes.Categories {
		if c := compareDesc(a.CategoryPoints(cat), b.CategoryPoints(cat)); c != 0 {
			return c
		}
	}
	return 0
}

func compareDesc(a, b *int) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}
	return cmp.Compare(*b, *a)
}

// SortEntries orders entries for display without touching their ranks.
func SortEntries(entries []sharedtypes.Entry) {
	slices.SortStableFunc(entries, func(a, b sharedtypes.Entry) int {
		return CompareTotals(a.Totals, b.Totals)
	})
}
