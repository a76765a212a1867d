package sharedtypes

import "slices"

// Round returns a pointer into the session's rounds so callers can mutate in place.
func (s *Session) Round(id RoundID) *Round {
	for i := range s.Rounds {
		if s.Rounds[i].ID == id {
			return &s.Rounds[i]
		}
	}
	return nil
}

// RoundByNum returns the round with the given number.
func (s *Session) RoundByNum(num int) *Round {
	for i := range s.Rounds {
		if s.Rounds[i].Num == num {
			return &s.Rounds[i]
		}
	}
	return nil
}

func (s *Session) Contest(id ContestID) *Contest {
	for i := range s.Contests {
		if s.Contests[i].ID == id {
			return &s.Contests[i]
		}
	}
	return nil
}

// PrimaryContest returns the contest used for international ranking, if any.
func (s *Session) PrimaryContest() *Contest {
	if s.PrimaryContestID == nil {
		return nil
	}
	return s.Contest(*s.PrimaryContestID)
}

func (s *Session) Competitor(id CompetitorID) *Competitor {
	for i := range s.Competitors {
		if s.Competitors[i].ID == id {
			return &s.Competitors[i]
		}
	}
	return nil
}

// Appearance finds an appearance anywhere in the session together with its round.
func (s *Session) Appearance(id AppearanceID) (*Round, *Appearance) {
	for i := range s.Rounds {
		r := &s.Rounds[i]
		for j := range r.Appearances {
			if r.Appearances[j].ID == id {
				return r, &r.Appearances[j]
			}
		}
	}
	return nil, nil
}

// Panelist finds a panelist anywhere in the session together with its round.
func (s *Session) Panelist(id PanelistID) (*Round, *Panelist) {
	for i := range s.Rounds {
		r := &s.Rounds[i]
		for j := range r.Panelists {
			if r.Panelists[j].ID == id {
				return r, &r.Panelists[j]
			}
		}
	}
	return nil, nil
}

// FinalRound reports whether the round is the last one of its session.
func (r *Round) FinalRound() bool { return r.Kind == RoundKindFinal }

// AppearanceFor returns the competitor's appearance in this round.
func (r *Round) AppearanceFor(id CompetitorID) *Appearance {
	for i := range r.Appearances {
		if r.Appearances[i].CompetitorID == id {
			return &r.Appearances[i]
		}
	}
	return nil
}

func (r *Round) Panelist(id PanelistID) *Panelist {
	for i := range r.Panelists {
		if r.Panelists[i].ID == id {
			return &r.Panelists[i]
		}
	}
	return nil
}

// EntryFor returns the competitor's entry in this contest.
func (c *Contest) EntryFor(id CompetitorID) *Entry {
	for i := range c.Entries {
		if c.Entries[i].CompetitorID == id {
			return &c.Entries[i]
		}
	}
	return nil
}

func (a *Appearance) Song(id SongID) *Song {
	for i := range a.Songs {
		if a.Songs[i].ID == id {
			return &a.Songs[i]
		}
	}
	return nil
}

// Clone returns a deep copy of the session so a failed operation can be
// discarded without touching the loaded aggregate.
func (s *Session) Clone() *Session {
	c := *s
	c.PrimaryContestID = clonePtr(s.PrimaryContestID)
	c.Competitors = slices.Clone(s.Competitors)
	for i := range c.Competitors {
		c.Competitors[i].Totals = c.Competitors[i].Totals.Clone()
	}
	c.Contests = slices.Clone(s.Contests)
	for i := range c.Contests {
		cc := &c.Contests[i]
		cc.Award.Threshold = clonePtr(cc.Award.Threshold)
		cc.Award.Minimum = clonePtr(cc.Award.Minimum)
		cc.Award.Advance = clonePtr(cc.Award.Advance)
		cc.ChampionID = clonePtr(cc.ChampionID)
		cc.Entries = slices.Clone(cc.Entries)
		for j := range cc.Entries {
			cc.Entries[j].Rank = clonePtr(cc.Entries[j].Rank)
			cc.Entries[j].Totals = cc.Entries[j].Totals.Clone()
		}
	}
	c.Rounds = slices.Clone(s.Rounds)
	for i := range c.Rounds {
		r := &c.Rounds[i]
		r.Panelists = slices.Clone(r.Panelists)
		r.Outcomes = slices.Clone(r.Outcomes)
		r.Appearances = slices.Clone(r.Appearances)
		for j := range r.Appearances {
			a := &r.Appearances[j]
			a.Totals = a.Totals.Clone()
			a.Songs = slices.Clone(a.Songs)
			for k := range a.Songs {
				song := &a.Songs[k]
				song.Totals = song.Totals.Clone()
				song.Scores = slices.Clone(song.Scores)
				for m := range song.Scores {
					song.Scores[m].Original = clonePtr(song.Scores[m].Original)
				}
			}
		}
	}
	return &c
}

// Clone copies the totals so the result shares no pointers with the receiver.
func (t Totals) Clone() Totals {
	return Totals{
		MusPoints: clonePtr(t.MusPoints),
		MusScore:  clonePtr(t.MusScore),
		PrsPoints: clonePtr(t.PrsPoints),
		PrsScore:  clonePtr(t.PrsScore),
		SngPoints: clonePtr(t.SngPoints),
		SngScore:  clonePtr(t.SngScore),
		TotPoints: clonePtr(t.TotPoints),
		TotScore:  clonePtr(t.TotScore),
	}
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
