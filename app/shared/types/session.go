package sharedtypes

import "time"

// Totals is the aggregate snapshot written onto songs, appearances and
// entries. A nil field means no qualifying official score exists yet and must
// not be read as zero.
type Totals struct {
	MusPoints *int     `json:"mus_points,omitempty"`
	MusScore  *float64 `json:"mus_score,omitempty"`
	PrsPoints *int     `json:"prs_points,omitempty"`
	PrsScore  *float64 `json:"prs_score,omitempty"`
	SngPoints *int     `json:"sng_points,omitempty"`
	SngScore  *float64 `json:"sng_score,omitempty"`
	TotPoints *int     `json:"tot_points,omitempty"`
	TotScore  *float64 `json:"tot_score,omitempty"`
}

// Complete reports whether the totals were computed from at least one official score.
func (t Totals) Complete() bool { return t.TotPoints != nil }

// CategoryPoints returns the point sum for one category.
func (t Totals) CategoryPoints(c Category) *int {
	switch c {
	case CategoryMusic:
		return t.MusPoints
	case CategoryPerformance:
		return t.PrsPoints
	case CategorySinging:
		return t.SngPoints
	}
	return nil
}

type Score struct {
	ID         ScoreID     `json:"id"`
	SongID     SongID      `json:"song_id"`
	PanelistID PanelistID  `json:"panelist_id"`
	Category   Category    `json:"category"`
	Kind       ScoreKind   `json:"kind"`
	Points     int         `json:"points"`
	Penalty    int         `json:"penalty"`
	Original   *int        `json:"original,omitempty"`
	IsFlagged  bool        `json:"is_flagged"`
	Status     ScoreStatus `json:"status"`
}

// Official reports whether the score counts toward results.
func (s Score) Official() bool { return s.Kind == ScoreKindOfficial }

type Song struct {
	ID           SongID       `json:"id"`
	AppearanceID AppearanceID `json:"appearance_id"`
	Num          int          `json:"num"`
	Title        string       `json:"title,omitempty"`
	Scores       []Score      `json:"scores,omitempty"`
	Totals       Totals       `json:"totals"`
}

type Appearance struct {
	ID           AppearanceID     `json:"id"`
	RoundID      RoundID          `json:"round_id"`
	CompetitorID CompetitorID     `json:"competitor_id"`
	Num          int              `json:"num"`
	Draw         int              `json:"draw"`
	Status       AppearanceStatus `json:"status"`
	Songs        []Song           `json:"songs,omitempty"`
	Totals       Totals           `json:"totals"`
}

type Panelist struct {
	ID       PanelistID       `json:"id"`
	RoundID  RoundID          `json:"round_id"`
	Num      int              `json:"num"`
	Name     string           `json:"name"`
	Kind     PanelistKind     `json:"kind"`
	Category PanelistCategory `json:"category"`
	Released bool             `json:"released"`
}

// Scores reports whether the panelist submits song scores.
func (p Panelist) Scores() bool {
	_, judged := p.Category.Category()
	_, scoring := p.Kind.ScoreKind()
	return judged && scoring
}

type Outcome struct {
	ID        OutcomeID `json:"id"`
	RoundID   RoundID   `json:"round_id"`
	ContestID ContestID `json:"contest_id"`
	Num       int       `json:"num"`
}

type Round struct {
	ID          RoundID      `json:"id"`
	SessionID   SessionID    `json:"session_id"`
	Num         int          `json:"num"`
	Kind        RoundKind    `json:"kind"`
	Status      RoundStatus  `json:"status"`
	NumSongs    int          `json:"num_songs"`
	Appearances []Appearance `json:"appearances,omitempty"`
	Panelists   []Panelist   `json:"panelists,omitempty"`
	Outcomes    []Outcome    `json:"outcomes,omitempty"`
}

// OfficialPanelSize counts the official panelists who score songs.
func (r Round) OfficialPanelSize() int {
	n := 0
	for _, p := range r.Panelists {
		if p.Kind == PanelistKindOfficial && p.Scores() {
			n++
		}
	}
	return n
}

// Competitor is the competing group (quartet or chorus) registered in a session.
type Competitor struct {
	ID        CompetitorID `json:"id"`
	SessionID SessionID    `json:"session_id"`
	Name      string       `json:"name"`
	Totals    Totals       `json:"totals"`
}

type Award struct {
	ID        AwardID    `json:"id"`
	Name      string     `json:"name" validate:"required"`
	Level     AwardLevel `json:"level" validate:"required,oneof=championship qualifier representative deferred manual"`
	Threshold *float64   `json:"threshold,omitempty" validate:"omitempty,gte=0,lte=100"`
	Minimum   *float64   `json:"minimum,omitempty" validate:"omitempty,gte=0,lte=100"`
	Advance   *float64   `json:"advance,omitempty" validate:"omitempty,gte=0,lte=100"`
	Rounds    int        `json:"rounds" validate:"gte=1,lte=3"`
	IsSingle  bool       `json:"is_single"`
	IsPrimary bool       `json:"is_primary"`
}

// MultiRound reports whether the award is decided across more than one round.
func (a Award) MultiRound() bool { return a.Rounds > 1 && !a.IsSingle }

type Entry struct {
	ID           EntryID             `json:"id"`
	ContestID    ContestID           `json:"contest_id"`
	CompetitorID CompetitorID        `json:"competitor_id"`
	Status       EntryStatus         `json:"status"`
	Result       QualificationResult `json:"result,omitempty"`
	Rank         *int                `json:"rank,omitempty"`
	Totals       Totals              `json:"totals"`
}

// Contest pairs a session with the award its entries compete for.
type Contest struct {
	ID         ContestID     `json:"id"`
	SessionID  SessionID     `json:"session_id"`
	Award      Award         `json:"award"`
	ChampionID *CompetitorID `json:"champion_id,omitempty"`
	Entries    []Entry       `json:"entries,omitempty"`
}

// Session is one competition track within a convention and the root of the
// aggregate that scoring and advancement mutate.
type Session struct {
	ID               SessionID       `json:"id"`
	ConventionID     ConventionID    `json:"convention_id"`
	Kind             SessionKind     `json:"kind"`
	Level            ConventionLevel `json:"level"`
	Status           SessionStatus   `json:"status"`
	NumRounds        int             `json:"num_rounds"`
	Spots            int             `json:"spots"`
	PrimaryContestID *ContestID      `json:"primary_contest_id,omitempty"`
	Rounds           []Round         `json:"rounds,omitempty"`
	Contests         []Contest       `json:"contests,omitempty"`
	Competitors      []Competitor    `json:"competitors,omitempty"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

type Convention struct {
	ID     ConventionID     `json:"id"`
	Name   string           `json:"name"`
	Season string           `json:"season"`
	Year   int              `json:"year"`
	Level  ConventionLevel  `json:"level"`
	Status ConventionStatus `json:"status"`
}
