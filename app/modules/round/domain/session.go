package rounddomain

import (
	"fmt"
	"slices"
	"strings"

	"github.com/Black-And-White-Club/barbershop-bot/app/shared/lifecycle"
	sharedtypes "github.com/Black-And-White-Club/barbershop-bot/app/shared/types"
)

const (
	MaxRounds       = 3
	DefaultNumSongs = 2
)

type NewSessionParams struct {
	ConventionID sharedtypes.ConventionID
	Kind         sharedtypes.SessionKind
	Level        sharedtypes.ConventionLevel
	NumRounds    int
	Spots        int
}

// NewSession returns an empty session in the New state.
func NewSession(p NewSessionParams) (sharedtypes.Session, error) {
	if !p.Kind.Valid() {
		return sharedtypes.Session{}, fmt.Errorf("%w: session kind %q", ErrInvalidInput, p.Kind)
	}
	if !p.Level.Valid() {
		return sharedtypes.Session{}, fmt.Errorf("%w: convention level %q", ErrInvalidInput, p.Level)
	}
	if p.NumRounds < 1 || p.NumRounds > MaxRounds {
		return sharedtypes.Session{}, fmt.Errorf("%w: num_rounds %d not in [1,%d]", ErrInvalidInput, p.NumRounds, MaxRounds)
	}
	if p.Spots < 0 {
		return sharedtypes.Session{}, fmt.Errorf("%w: negative spots %d", ErrInvalidInput, p.Spots)
	}
	return sharedtypes.Session{
		ID:           sharedtypes.NewSessionID(),
		ConventionID: p.ConventionID,
		Kind:         p.Kind,
		Level:        p.Level,
		Status:       sharedtypes.SessionStatusNew,
		NumRounds:    p.NumRounds,
		Spots:        p.Spots,
	}, nil
}

func transitionSession(s *sharedtypes.Session, to sharedtypes.SessionStatus) error {
	status, err := SessionMachine.Transition(s.ID, s.Status, to)
	if err != nil {
		return err
	}
	s.Status = status
	return nil
}

func OpenSession(s *sharedtypes.Session) error {
	return transitionSession(s, sharedtypes.SessionStatusOpened)
}

func CloseSession(s *sharedtypes.Session) error {
	if len(s.Competitors) == 0 {
		return &lifecycle.StateTransitionError{
			Entity: "session", ID: s.ID.String(),
			From: string(s.Status), To: string(sharedtypes.SessionStatusClosed),
			Reason: "no competitors registered",
		}
	}
	return transitionSession(s, sharedtypes.SessionStatusClosed)
}

// AddContest attaches an award to the session while entries can still change.
func AddContest(s *sharedtypes.Session, award sharedtypes.Award) (*sharedtypes.Contest, error) {
	switch s.Status {
	case sharedtypes.SessionStatusNew, sharedtypes.SessionStatusOpened, sharedtypes.SessionStatusClosed:
	default:
		return nil, &lifecycle.StateTransitionError{
			Entity: "session", ID: s.ID.String(),
			From: string(s.Status), To: string(s.Status),
			Reason: "contests are fixed once the session is validated",
		}
	}
	if !award.Level.Valid() {
		return nil, fmt.Errorf("%w: award level %q", ErrInvalidInput, award.Level)
	}
	if award.Rounds < 1 || award.Rounds > s.NumRounds {
		return nil, fmt.Errorf("%w: award %q needs %d rounds, session has %d", ErrInvalidInput, award.Name, award.Rounds, s.NumRounds)
	}
	if award.IsPrimary && slices.ContainsFunc(s.Contests, func(c sharedtypes.Contest) bool { return c.Award.IsPrimary }) {
		return nil, fmt.Errorf("%w: session already has a primary award", ErrInvalidInput)
	}
	if award.ID.IsZero() {
		award.ID = sharedtypes.NewAwardID()
	}
	s.Contests = append(s.Contests, sharedtypes.Contest{
		ID:        sharedtypes.NewContestID(),
		SessionID: s.ID,
		Award:     award,
	})
	return &s.Contests[len(s.Contests)-1], nil
}

// RegisterCompetitor adds a competing group and enters it into the given
// contests. Registration is only open before the session closes.
func RegisterCompetitor(s *sharedtypes.Session, name string, contests []sharedtypes.ContestID) (*sharedtypes.Competitor, error) {
	if s.Status != sharedtypes.SessionStatusNew && s.Status != sharedtypes.SessionStatusOpened {
		return nil, &lifecycle.StateTransitionError{
			Entity: "session", ID: s.ID.String(),
			From: string(s.Status), To: string(s.Status),
			Reason: "registration is closed",
		}
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: competitor name is empty", ErrInvalidInput)
	}
	if slices.ContainsFunc(s.Competitors, func(c sharedtypes.Competitor) bool { return strings.EqualFold(c.Name, name) }) {
		return nil, fmt.Errorf("%w: competitor %q already registered", ErrInvalidInput, name)
	}
	for _, id := range contests {
		if s.Contest(id) == nil {
			return nil, fmt.Errorf("%w: %s", ErrContestNotFound, id)
		}
	}

	comp := sharedtypes.Competitor{ID: sharedtypes.NewCompetitorID(), SessionID: s.ID, Name: name}
	s.Competitors = append(s.Competitors, comp)
	for _, id := range contests {
		c := s.Contest(id)
		if c.EntryFor(comp.ID) != nil {
			continue
		}
		c.Entries = append(c.Entries, sharedtypes.Entry{
			ID:           sharedtypes.NewEntryID(),
			ContestID:    c.ID,
			CompetitorID: comp.ID,
			Status:       sharedtypes.EntryStatusNew,
		})
	}
	return &s.Competitors[len(s.Competitors)-1], nil
}

// ValidateSession freezes the roster and builds every round. Round i of n
// has kind n-i+1 so the last round is always the final. Only round 1 gets
// appearances now; later rounds are filled by advancement.
func ValidateSession(s *sharedtypes.Session, numSongs int) error {
	if !SessionMachine.Allowed(s.Status, sharedtypes.SessionStatusValidated) {
		_, err := SessionMachine.Transition(s.ID, s.Status, sharedtypes.SessionStatusValidated)
		return err
	}
	if len(s.Contests) == 0 {
		return &lifecycle.StateTransitionError{
			Entity: "session", ID: s.ID.String(),
			From: string(s.Status), To: string(sharedtypes.SessionStatusValidated),
			Reason: "no contests",
		}
	}
	if numSongs < 1 {
		numSongs = DefaultNumSongs
	}

	rounds := make([]sharedtypes.Round, 0, s.NumRounds)
	for i := 1; i <= s.NumRounds; i++ {
		r := sharedtypes.Round{
			ID:        sharedtypes.NewRoundID(),
			SessionID: s.ID,
			Num:       i,
			Kind:      sharedtypes.RoundKind(s.NumRounds - i + 1),
			Status:    sharedtypes.RoundStatusNew,
			NumSongs:  numSongs,
		}
		for j, c := range s.Contests {
			r.Outcomes = append(r.Outcomes, sharedtypes.Outcome{
				ID:        sharedtypes.NewOutcomeID(),
				RoundID:   r.ID,
				ContestID: c.ID,
				Num:       j + 1,
			})
		}
		rounds = append(rounds, r)
	}

	for _, comp := range s.Competitors {
		if !entered(s, comp.ID) {
			continue
		}
		rounds[0].Appearances = append(rounds[0].Appearances, sharedtypes.Appearance{
			ID:           sharedtypes.NewAppearanceID(),
			RoundID:      rounds[0].ID,
			CompetitorID: comp.ID,
			Status:       sharedtypes.AppearanceStatusNew,
		})
	}
	if len(rounds[0].Appearances) == 0 {
		return &lifecycle.StateTransitionError{
			Entity: "session", ID: s.ID.String(),
			From: string(s.Status), To: string(sharedtypes.SessionStatusValidated),
			Reason: "no competitor is entered in a contest",
		}
	}

	s.Rounds = rounds
	s.PrimaryContestID = choosePrimary(s.Contests)
	return transitionSession(s, sharedtypes.SessionStatusValidated)
}

func entered(s *sharedtypes.Session, id sharedtypes.CompetitorID) bool {
	for _, c := range s.Contests {
		if e := c.EntryFor(id); e != nil && e.Status != sharedtypes.EntryStatusScratched && e.Status != sharedtypes.EntryStatusDisqualified {
			return true
		}
	}
	return false
}

// choosePrimary prefers the award flagged primary, then the first
// championship, then the first contest.
func choosePrimary(contests []sharedtypes.Contest) *sharedtypes.ContestID {
	idx := slices.IndexFunc(contests, func(c sharedtypes.Contest) bool { return c.Award.IsPrimary })
	if idx < 0 {
		idx = slices.IndexFunc(contests, func(c sharedtypes.Contest) bool {
			return c.Award.Level == sharedtypes.AwardLevelChampionship
		})
	}
	if idx < 0 {
		idx = 0
	}
	id := contests[idx].ID
	return &id
}

// StartSession opens scoring and starts every live entry.
func StartSession(s *sharedtypes.Session) error {
	if err := transitionSession(s, sharedtypes.SessionStatusStarted); err != nil {
		return err
	}
	return moveEntries(s, sharedtypes.EntryStatusNew, sharedtypes.EntryStatusStarted)
}

// FinishSession recomputes every denormalized total from the scores up and
// then marks the session finished. It refuses while any round is still open.
func FinishSession(s *sharedtypes.Session) error {
	if !SessionMachine.Allowed(s.Status, sharedtypes.SessionStatusFinished) {
		_, err := SessionMachine.Transition(s.ID, s.Status, sharedtypes.SessionStatusFinished)
		return err
	}
	for _, r := range s.Rounds {
		if r.Status != sharedtypes.RoundStatusFinished && r.Status != sharedtypes.RoundStatusPublished {
			return lifecycle.Blocked("session", s.ID, string(s.Status), string(sharedtypes.SessionStatusFinished),
				"round not finished", "round", r.ID)
		}
	}
	RecomputeSession(s)
	return transitionSession(s, sharedtypes.SessionStatusFinished)
}

// PublishSession makes every finished entry public.
func PublishSession(s *sharedtypes.Session) error {
	if err := transitionSession(s, sharedtypes.SessionStatusPublished); err != nil {
		return err
	}
	return moveEntries(s, sharedtypes.EntryStatusFinished, sharedtypes.EntryStatusPublished)
}

func moveEntries(s *sharedtypes.Session, from, to sharedtypes.EntryStatus) error {
	for i := range s.Contests {
		for j := range s.Contests[i].Entries {
			e := &s.Contests[i].Entries[j]
			if e.Status != from {
				continue
			}
			status, err := EntryMachine.Transition(e.ID, e.Status, to)
			if err != nil {
				return err
			}
			e.Status = status
		}
	}
	return nil
}

// AssignPanelist adds a judge to a round that has not been validated yet.
func AssignPanelist(s *sharedtypes.Session, roundID sharedtypes.RoundID, name string, kind sharedtypes.PanelistKind, category sharedtypes.PanelistCategory) (*sharedtypes.Panelist, error) {
	r := s.Round(roundID)
	if r == nil {
		return nil, fmt.Errorf("%w: %s", ErrRoundNotFound, roundID)
	}
	if r.Status != sharedtypes.RoundStatusNew && r.Status != sharedtypes.RoundStatusDrawn {
		return nil, &lifecycle.StateTransitionError{
			Entity: "round", ID: r.ID.String(),
			From: string(r.Status), To: string(r.Status),
			Reason: "panel is fixed once the round is validated",
		}
	}
	if !kind.Valid() || !category.Valid() {
		return nil, fmt.Errorf("%w: panelist kind %q category %q", ErrInvalidInput, kind, category)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: panelist name is empty", ErrInvalidInput)
	}
	r.Panelists = append(r.Panelists, sharedtypes.Panelist{
		ID:       sharedtypes.NewPanelistID(),
		RoundID:  r.ID,
		Num:      len(r.Panelists) + 1,
		Name:     name,
		Kind:     kind,
		Category: category,
	})
	return &r.Panelists[len(r.Panelists)-1], nil
}
