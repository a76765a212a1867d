package rounddb

import (
	"time"

	sharedtypes "github.com/Black-And-White-Club/barbershop-bot/app/shared/types"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Every child row carries session_id so the whole aggregate loads with one
// query per table.

type Convention struct {
	bun.BaseModel `bun:"table:conventions,alias:cv"`

	ID        uuid.UUID `bun:"id,pk,type:uuid"`
	Name      string    `bun:"name,notnull"`
	Season    string    `bun:"season,notnull"`
	Year      int       `bun:"year,notnull"`
	Level     string    `bun:"level,notnull"`
	Status    string    `bun:"status,notnull"`
	CreatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp"`
}

type Session struct {
	bun.BaseModel `bun:"table:sessions,alias:ss"`

	ID               uuid.UUID  `bun:"id,pk,type:uuid"`
	ConventionID     uuid.UUID  `bun:"convention_id,type:uuid,notnull"`
	Kind             string     `bun:"kind,notnull"`
	Level            string     `bun:"level,notnull"`
	Status           string     `bun:"status,notnull"`
	NumRounds        int        `bun:"num_rounds,notnull"`
	Spots            int        `bun:"spots,notnull"`
	PrimaryContestID *uuid.UUID `bun:"primary_contest_id,type:uuid,nullzero"`
	CreatedAt        time.Time  `bun:",nullzero,notnull,default:current_timestamp"`
	UpdatedAt        time.Time  `bun:",nullzero,notnull,default:current_timestamp"`
}

// Contest stores the award inline; awards are not shared between sessions.
type Contest struct {
	bun.BaseModel `bun:"table:contests,alias:ct"`

	ID         uuid.UUID  `bun:"id,pk,type:uuid"`
	SessionID  uuid.UUID  `bun:"session_id,type:uuid,notnull"`
	Position   int        `bun:"position,notnull"`
	AwardID    uuid.UUID  `bun:"award_id,type:uuid,notnull"`
	AwardName  string     `bun:"award_name,notnull"`
	AwardLevel string     `bun:"award_level,notnull"`
	Threshold  *float64   `bun:"threshold"`
	Minimum    *float64   `bun:"minimum"`
	Advance    *float64   `bun:"advance"`
	Rounds     int        `bun:"rounds,notnull"`
	IsSingle   bool       `bun:"is_single,notnull"`
	IsPrimary  bool       `bun:"is_primary,notnull"`
	ChampionID *uuid.UUID `bun:"champion_id,type:uuid,nullzero"`
}

type Competitor struct {
	bun.BaseModel `bun:"table:competitors,alias:cp"`

	ID        uuid.UUID          `bun:"id,pk,type:uuid"`
	SessionID uuid.UUID          `bun:"session_id,type:uuid,notnull"`
	Position  int                `bun:"position,notnull"`
	Name      string             `bun:"name,notnull"`
	Totals    sharedtypes.Totals `bun:"totals,type:jsonb"`
}

type Entry struct {
	bun.BaseModel `bun:"table:entries,alias:en"`

	ID           uuid.UUID          `bun:"id,pk,type:uuid"`
	SessionID    uuid.UUID          `bun:"session_id,type:uuid,notnull"`
	ContestID    uuid.UUID          `bun:"contest_id,type:uuid,notnull"`
	CompetitorID uuid.UUID          `bun:"competitor_id,type:uuid,notnull"`
	Position     int                `bun:"position,notnull"`
	Status       string             `bun:"status,notnull"`
	Result       string             `bun:"result"`
	Rank         *int               `bun:"rank"`
	Totals       sharedtypes.Totals `bun:"totals,type:jsonb"`
}

type Round struct {
	bun.BaseModel `bun:"table:rounds,alias:r"`

	ID        uuid.UUID `bun:"id,pk,type:uuid"`
	SessionID uuid.UUID `bun:"session_id,type:uuid,notnull"`
	Num       int       `bun:"num,notnull"`
	Kind      int       `bun:"kind,notnull"`
	Status    string    `bun:"status,notnull"`
	NumSongs  int       `bun:"num_songs,notnull"`
}

type Outcome struct {
	bun.BaseModel `bun:"table:outcomes,alias:oc"`

	ID        uuid.UUID `bun:"id,pk,type:uuid"`
	SessionID uuid.UUID `bun:"session_id,type:uuid,notnull"`
	RoundID   uuid.UUID `bun:"round_id,type:uuid,notnull"`
	ContestID uuid.UUID `bun:"contest_id,type:uuid,notnull"`
	Num       int       `bun:"num,notnull"`
}

type Panelist struct {
	bun.BaseModel `bun:"table:panelists,alias:pn"`

	ID        uuid.UUID `bun:"id,pk,type:uuid"`
	SessionID uuid.UUID `bun:"session_id,type:uuid,notnull"`
	RoundID   uuid.UUID `bun:"round_id,type:uuid,notnull"`
	Num       int       `bun:"num,notnull"`
	Name      string    `bun:"name,notnull"`
	Kind      string    `bun:"kind,notnull"`
	Category  string    `bun:"category,notnull"`
	Released  bool      `bun:"released,notnull"`
}

type Appearance struct {
	bun.BaseModel `bun:"table:appearances,alias:ap"`

	ID           uuid.UUID          `bun:"id,pk,type:uuid"`
	SessionID    uuid.UUID          `bun:"session_id,type:uuid,notnull"`
	RoundID      uuid.UUID          `bun:"round_id,type:uuid,notnull"`
	CompetitorID uuid.UUID          `bun:"competitor_id,type:uuid,notnull"`
	Num          int                `bun:"num,notnull"`
	Draw         int                `bun:"draw,notnull"`
	Status       string             `bun:"status,notnull"`
	Totals       sharedtypes.Totals `bun:"totals,type:jsonb"`
}

type Song struct {
	bun.BaseModel `bun:"table:songs,alias:s"`

	ID           uuid.UUID          `bun:"id,pk,type:uuid"`
	SessionID    uuid.UUID          `bun:"session_id,type:uuid,notnull"`
	AppearanceID uuid.UUID          `bun:"appearance_id,type:uuid,notnull"`
	Num          int                `bun:"num,notnull"`
	Title        string             `bun:"title"`
	Totals       sharedtypes.Totals `bun:"totals,type:jsonb"`
}

// SongContext is the slice of the aggregate a score submission needs.
type SongContext struct {
	SongID           sharedtypes.SongID
	AppearanceID     sharedtypes.AppearanceID
	RoundID          sharedtypes.RoundID
	SessionID        sharedtypes.SessionID
	AppearanceStatus sharedtypes.AppearanceStatus
	Panelists        []sharedtypes.Panelist
}

func ConventionFromShared(c sharedtypes.Convention) Convention {
	return Convention{
		ID:     c.ID.UUID,
		Name:   c.Name,
		Season: c.Season,
		Year:   c.Year,
		Level:  string(c.Level),
		Status: string(c.Status),
	}
}

func (c Convention) ToShared() sharedtypes.Convention {
	return sharedtypes.Convention{
		ID:     sharedtypes.ConventionID{UUID: c.ID},
		Name:   c.Name,
		Season: c.Season,
		Year:   c.Year,
		Level:  sharedtypes.ConventionLevel(c.Level),
		Status: sharedtypes.ConventionStatus(c.Status),
	}
}

func (p Panelist) ToShared() sharedtypes.Panelist {
	return sharedtypes.Panelist{
		ID:       sharedtypes.PanelistID{UUID: p.ID},
		RoundID:  sharedtypes.RoundID{UUID: p.RoundID},
		Num:      p.Num,
		Name:     p.Name,
		Kind:     sharedtypes.PanelistKind(p.Kind),
		Category: sharedtypes.PanelistCategory(p.Category),
		Released: p.Released,
	}
}

// rows is the session aggregate flattened into table rows.
type rows struct {
	session     Session
	contests    []Contest
	competitors []Competitor
	entries     []Entry
	rounds      []Round
	outcomes    []Outcome
	panelists   []Panelist
	appearances []Appearance
	songs       []Song
}

func flatten(s *sharedtypes.Session) rows {
	sid := s.ID.UUID
	out := rows{
		session: Session{
			ID:           sid,
			ConventionID: s.ConventionID.UUID,
			Kind:         string(s.Kind),
			Level:        string(s.Level),
			Status:       string(s.Status),
			NumRounds:    s.NumRounds,
			Spots:        s.Spots,
		},
	}
	if s.PrimaryContestID != nil {
		id := s.PrimaryContestID.UUID
		out.session.PrimaryContestID = &id
	}

	for i, c := range s.Contests {
		row := Contest{
			ID:         c.ID.UUID,
			SessionID:  sid,
			Position:   i,
			AwardID:    c.Award.ID.UUID,
			AwardName:  c.Award.Name,
			AwardLevel: string(c.Award.Level),
			Threshold:  c.Award.Threshold,
			Minimum:    c.Award.Minimum,
			Advance:    c.Award.Advance,
			Rounds:     c.Award.Rounds,
			IsSingle:   c.Award.IsSingle,
			IsPrimary:  c.Award.IsPrimary,
		}
		if c.ChampionID != nil {
			id := c.ChampionID.UUID
			row.ChampionID = &id
		}
		out.contests = append(out.contests, row)
		for j, e := range c.Entries {
			out.entries = append(out.entries, Entry{
				ID:           e.ID.UUID,
				SessionID:    sid,
				ContestID:    c.ID.UUID,
				CompetitorID: e.CompetitorID.UUID,
				Position:     j,
				Status:       string(e.Status),
				Result:       string(e.Result),
				Rank:         e.Rank,
				Totals:       e.Totals,
			})
		}
	}

	for i, c := range s.Competitors {
		out.competitors = append(out.competitors, Competitor{
			ID:        c.ID.UUID,
			SessionID: sid,
			Position:  i,
			Name:      c.Name,
			Totals:    c.Totals,
		})
	}

	for _, r := range s.Rounds {
		out.rounds = append(out.rounds, Round{
			ID:        r.ID.UUID,
			SessionID: sid,
			Num:       r.Num,
			Kind:      int(r.Kind),
			Status:    string(r.Status),
			NumSongs:  r.NumSongs,
		})
		for _, o := range r.Outcomes {
			out.outcomes = append(out.outcomes, Outcome{
				ID:        o.ID.UUID,
				SessionID: sid,
				RoundID:   r.ID.UUID,
				ContestID: o.ContestID.UUID,
				Num:       o.Num,
			})
		}
		for _, p := range r.Panelists {
			out.panelists = append(out.panelists, Panelist{
				ID:        p.ID.UUID,
				SessionID: sid,
				RoundID:   r.ID.UUID,
				Num:       p.Num,
				Name:      p.Name,
				Kind:      string(p.Kind),
				Category:  string(p.Category),
				Released:  p.Released,
			})
		}
		for _, a := range r.Appearances {
			out.appearances = append(out.appearances, Appearance{
				ID:           a.ID.UUID,
				SessionID:    sid,
				RoundID:      r.ID.UUID,
				CompetitorID: a.CompetitorID.UUID,
				Num:          a.Num,
				Draw:         a.Draw,
				Status:       string(a.Status),
				Totals:       a.Totals,
			})
			for _, song := range a.Songs {
				out.songs = append(out.songs, Song{
					ID:           song.ID.UUID,
					SessionID:    sid,
					AppearanceID: a.ID.UUID,
					Num:          song.Num,
					Title:        song.Title,
					Totals:       song.Totals,
				})
			}
		}
	}
	return out
}

// assemble rebuilds the aggregate from rows already ordered by position or num.
// Scores are attached by the caller.
func assemble(in rows) *sharedtypes.Session {
	sid := sharedtypes.SessionID{UUID: in.session.ID}
	s := &sharedtypes.Session{
		ID:           sid,
		ConventionID: sharedtypes.ConventionID{UUID: in.session.ConventionID},
		Kind:         sharedtypes.SessionKind(in.session.Kind),
		Level:        sharedtypes.ConventionLevel(in.session.Level),
		Status:       sharedtypes.SessionStatus(in.session.Status),
		NumRounds:    in.session.NumRounds,
		Spots:        in.session.Spots,
		UpdatedAt:    in.session.UpdatedAt,
	}
	if in.session.PrimaryContestID != nil {
		s.PrimaryContestID = &sharedtypes.ContestID{UUID: *in.session.PrimaryContestID}
	}

	for _, c := range in.competitors {
		s.Competitors = append(s.Competitors, sharedtypes.Competitor{
			ID:        sharedtypes.CompetitorID{UUID: c.ID},
			SessionID: sid,
			Name:      c.Name,
			Totals:    c.Totals,
		})
	}

	contestIdx := make(map[uuid.UUID]int, len(in.contests))
	for _, c := range in.contests {
		contest := sharedtypes.Contest{
			ID:        sharedtypes.ContestID{UUID: c.ID},
			SessionID: sid,
			Award: sharedtypes.Award{
				ID:        sharedtypes.AwardID{UUID: c.AwardID},
				Name:      c.AwardName,
				Level:     sharedtypes.AwardLevel(c.AwardLevel),
				Threshold: c.Threshold,
				Minimum:   c.Minimum,
				Advance:   c.Advance,
				Rounds:    c.Rounds,
				IsSingle:  c.IsSingle,
				IsPrimary: c.IsPrimary,
			},
		}
		if c.ChampionID != nil {
			contest.ChampionID = &sharedtypes.CompetitorID{UUID: *c.ChampionID}
		}
		contestIdx[c.ID] = len(s.Contests)
		s.Contests = append(s.Contests, contest)
	}
	for _, e := range in.entries {
		i, ok := contestIdx[e.ContestID]
		if !ok {
			continue
		}
		s.Contests[i].Entries = append(s.Contests[i].Entries, sharedtypes.Entry{
			ID:           sharedtypes.EntryID{UUID: e.ID},
			ContestID:    sharedtypes.ContestID{UUID: e.ContestID},
			CompetitorID: sharedtypes.CompetitorID{UUID: e.CompetitorID},
			Status:       sharedtypes.EntryStatus(e.Status),
			Result:       sharedtypes.QualificationResult(e.Result),
			Rank:         e.Rank,
			Totals:       e.Totals,
		})
	}

	roundIdx := make(map[uuid.UUID]int, len(in.rounds))
	for _, r := range in.rounds {
		roundIdx[r.ID] = len(s.Rounds)
		s.Rounds = append(s.Rounds, sharedtypes.Round{
			ID:        sharedtypes.RoundID{UUID: r.ID},
			SessionID: sid,
			Num:       r.Num,
			Kind:      sharedtypes.RoundKind(r.Kind),
			Status:    sharedtypes.RoundStatus(r.Status),
			NumSongs:  r.NumSongs,
		})
	}
	for _, o := range in.outcomes {
		if i, ok := roundIdx[o.RoundID]; ok {
			s.Rounds[i].Outcomes = append(s.Rounds[i].Outcomes, sharedtypes.Outcome{
				ID:        sharedtypes.OutcomeID{UUID: o.ID},
				RoundID:   sharedtypes.RoundID{UUID: o.RoundID},
				ContestID: sharedtypes.ContestID{UUID: o.ContestID},
				Num:       o.Num,
			})
		}
	}
	for _, p := range in.panelists {
		if i, ok := roundIdx[p.RoundID]; ok {
			s.Rounds[i].Panelists = append(s.Rounds[i].Panelists, p.ToShared())
		}
	}

	type loc struct{ round, appearance int }
	appearanceIdx := make(map[uuid.UUID]loc, len(in.appearances))
	for _, a := range in.appearances {
		i, ok := roundIdx[a.RoundID]
		if !ok {
			continue
		}
		r := &s.Rounds[i]
		appearanceIdx[a.ID] = loc{i, len(r.Appearances)}
		r.Appearances = append(r.Appearances, sharedtypes.Appearance{
			ID:           sharedtypes.AppearanceID{UUID: a.ID},
			RoundID:      r.ID,
			CompetitorID: sharedtypes.CompetitorID{UUID: a.CompetitorID},
			Num:          a.Num,
			Draw:         a.Draw,
			Status:       sharedtypes.AppearanceStatus(a.Status),
			Totals:       a.Totals,
		})
	}
	for _, song := range in.songs {
		l, ok := appearanceIdx[song.AppearanceID]
		if !ok {
			continue
		}
		a := &s.Rounds[l.round].Appearances[l.appearance]
		a.Songs = append(a.Songs, sharedtypes.Song{
			ID:           sharedtypes.SongID{UUID: song.ID},
			AppearanceID: a.ID,
			Num:          song.Num,
			Title:        song.Title,
			Totals:       song.Totals,
		})
	}
	return s
}
