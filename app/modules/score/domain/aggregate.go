package scoredomain

import (
	"fmt"

	sharedtypes "github.com/Black-And-White-Club/barbershop-bot/app/shared/types"
)

// tally accumulates official points per category. Every aggregate level is
// computed from the underlying scores so averages are true means, not means
// of means.
type tally struct {
	sum   map[sharedtypes.Category]int
	count map[sharedtypes.Category]int
}

func newTally() *tally {
	return &tally{
		sum:   make(map[sharedtypes.Category]int, 3),
		count: make(map[sharedtypes.Category]int, 3),
	}
}

func (t *tally) addSong(song sharedtypes.Song) {
	for _, s := range song.Scores {
		if !s.Official() || !s.Category.Valid() {
			continue
		}
		t.sum[s.Category] += s.Points
		t.count[s.Category]++
	}
}

func (t *tally) addAppearance(a sharedtypes.Appearance) {
	for _, song := range a.Songs {
		t.addSong(song)
	}
}

func (t *tally) totals() sharedtypes.Totals {
	var out sharedtypes.Totals
	out.MusPoints, out.MusScore = t.category(sharedtypes.CategoryMusic)
	out.PrsPoints, out.PrsScore = t.category(sharedtypes.CategoryPerformance)
	out.SngPoints, out.SngScore = t.category(sharedtypes.CategorySinging)

	sum, n := 0, 0
	for _, c := range sharedtypes.Categories {
		sum += t.sum[c]
		n += t.count[c]
	}
	if n > 0 {
		avg := float64(sum) / float64(n)
		out.TotPoints, out.TotScore = &sum, &avg
	}
	return out
}

func (t *tally) category(c sharedtypes.Category) (*int, *float64) {
	n := t.count[c]
	if n == 0 {
		return nil, nil
	}
	sum := t.sum[c]
	avg := float64(sum) / float64(n)
	return &sum, &avg
}

// AggregateSong recomputes the song's official totals and writes the snapshot
// back onto it.
func AggregateSong(song *sharedtypes.Song) sharedtypes.Totals {
	t := newTally()
	t.addSong(*song)
	song.Totals = t.totals()
	return song.Totals
}

// AggregateAppearance refreshes every song and then the appearance itself.
func AggregateAppearance(a *sharedtypes.Appearance) sharedtypes.Totals {
	t := newTally()
	for i := range a.Songs {
		AggregateSong(&a.Songs[i])
		t.addSong(a.Songs[i])
	}
	a.Totals = t.totals()
	return a.Totals
}

// AggregateEntry rolls up the competitor's appearances in rounds numbered up
// to the award's round requirement. Withdrawn appearances do not count.
func AggregateEntry(entry *sharedtypes.Entry, award sharedtypes.Award, rounds []sharedtypes.Round) sharedtypes.Totals {
	t := newTally()
	for _, r := range rounds {
		if r.Num > award.Rounds {
			continue
		}
		for _, a := range r.Appearances {
			if a.CompetitorID != entry.CompetitorID || a.Status.Withdrawn() {
				continue
			}
			t.addAppearance(a)
		}
	}
	entry.Totals = t.totals()
	return entry.Totals
}

// AggregateCompetitor rolls up every appearance of the competitor in the session.
func AggregateCompetitor(c *sharedtypes.Competitor, rounds []sharedtypes.Round) sharedtypes.Totals {
	t := newTally()
	for _, r := range rounds {
		for _, a := range r.Appearances {
			if a.CompetitorID == c.ID && !a.Status.Withdrawn() {
				t.addAppearance(a)
			}
		}
	}
	c.Totals = t.totals()
	return c.Totals
}

// CheckComplete returns an *IncompleteAggregateError when totals is absent.
func CheckComplete(level string, id fmt.Stringer, totals sharedtypes.Totals) error {
	if totals.Complete() {
		return nil
	}
	return &IncompleteAggregateError{Level: level, ID: id.String()}
}
