package roundservice

import (
	"context"
	"sync"

	rounddb "github.com/Black-And-White-Club/barbershop-bot/app/modules/round/infrastructure/repositories"
	reportevents "github.com/Black-And-White-Club/barbershop-bot/app/shared/events/report"
	sharedtypes "github.com/Black-And-White-Club/barbershop-bot/app/shared/types"
	"github.com/uptrace/bun"
)

// FakeRoundRepository keeps sessions in memory, stored without scores the
// way the database holds them.
type FakeRoundRepository struct {
	mu    sync.Mutex
	trace []string

	Conventions map[sharedtypes.ConventionID]sharedtypes.Convention
	Sessions    map[sharedtypes.SessionID]*sharedtypes.Session

	LoadSessionFunc func(ctx context.Context, db bun.IDB, id sharedtypes.SessionID) (*sharedtypes.Session, error)
	SaveSessionFunc func(ctx context.Context, db bun.IDB, s *sharedtypes.Session) error
	LockSessionFunc func(ctx context.Context, db bun.IDB, id sharedtypes.SessionID) error
}

func NewFakeRoundRepository() *FakeRoundRepository {
	return &FakeRoundRepository{
		trace:       []string{},
		Conventions: make(map[sharedtypes.ConventionID]sharedtypes.Convention),
		Sessions:    make(map[sharedtypes.SessionID]*sharedtypes.Session),
	}
}

func (f *FakeRoundRepository) record(step string) {
	f.trace = append(f.trace, step)
}

// Trace returns the sequence of method calls made to the fake.
func (f *FakeRoundRepository) Trace() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

// Put stores a copy of s.
func (f *FakeRoundRepository) Put(s *sharedtypes.Session) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Sessions[s.ID] = stripScores(s.Clone())
}

// Get returns a copy of the stored session.
func (f *FakeRoundRepository) Get(id sharedtypes.SessionID) *sharedtypes.Session {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.Sessions[id]
	if !ok {
		return nil
	}
	return s.Clone()
}

func stripScores(s *sharedtypes.Session) *sharedtypes.Session {
	for i := range s.Rounds {
		for j := range s.Rounds[i].Appearances {
			for k := range s.Rounds[i].Appearances[j].Songs {
				s.Rounds[i].Appearances[j].Songs[k].Scores = nil
			}
		}
	}
	return s
}

func (f *FakeRoundRepository) CreateConvention(_ context.Context, _ bun.IDB, c sharedtypes.Convention) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("CreateConvention")
	f.Conventions[c.ID] = c
	return nil
}

func (f *FakeRoundRepository) GetConvention(_ context.Context, _ bun.IDB, id sharedtypes.ConventionID) (*sharedtypes.Convention, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("GetConvention")
	c, ok := f.Conventions[id]
	if !ok {
		return nil, rounddb.ErrNotFound
	}
	return &c, nil
}

func (f *FakeRoundRepository) UpdateConvention(_ context.Context, _ bun.IDB, c sharedtypes.Convention) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("UpdateConvention")
	if _, ok := f.Conventions[c.ID]; !ok {
		return rounddb.ErrNoRowsAffected
	}
	f.Conventions[c.ID] = c
	return nil
}

func (f *FakeRoundRepository) LockSession(ctx context.Context, db bun.IDB, id sharedtypes.SessionID) error {
	f.mu.Lock()
	f.record("LockSession")
	fn := f.LockSessionFunc
	f.mu.Unlock()
	if fn != nil {
		return fn(ctx, db, id)
	}
	return nil
}

func (f *FakeRoundRepository) LoadSession(ctx context.Context, db bun.IDB, id sharedtypes.SessionID) (*sharedtypes.Session, error) {
	f.mu.Lock()
	f.record("LoadSession")
	fn := f.LoadSessionFunc
	f.mu.Unlock()
	if fn != nil {
		return fn(ctx, db, id)
	}
	s := f.Get(id)
	if s == nil {
		return nil, rounddb.ErrNotFound
	}
	return s, nil
}

func (f *FakeRoundRepository) SaveSession(ctx context.Context, db bun.IDB, s *sharedtypes.Session) error {
	f.mu.Lock()
	f.record("SaveSession")
	fn := f.SaveSessionFunc
	f.mu.Unlock()
	if fn != nil {
		if err := fn(ctx, db, s); err != nil {
			return err
		}
	}
	f.Put(s)
	return nil
}

func (f *FakeRoundRepository) ListSessions(_ context.Context, _ bun.IDB, conventionID sharedtypes.ConventionID) ([]sharedtypes.SessionID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("ListSessions")
	var out []sharedtypes.SessionID
	for id, s := range f.Sessions {
		if s.ConventionID == conventionID {
			out = append(out, id)
		}
	}
	return out, nil
}

func (f *FakeRoundRepository) SessionForRound(_ context.Context, _ bun.IDB, id sharedtypes.RoundID) (sharedtypes.SessionID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("SessionForRound")
	for sid, s := range f.Sessions {
		if s.Round(id) != nil {
			return sid, nil
		}
	}
	return sharedtypes.SessionID{}, rounddb.ErrNotFound
}

func (f *FakeRoundRepository) SessionForContest(_ context.Context, _ bun.IDB, id sharedtypes.ContestID) (sharedtypes.SessionID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("SessionForContest")
	for sid, s := range f.Sessions {
		if s.Contest(id) != nil {
			return sid, nil
		}
	}
	return sharedtypes.SessionID{}, rounddb.ErrNotFound
}

func (f *FakeRoundRepository) GetSongContext(context.Context, bun.IDB, sharedtypes.SongID) (*rounddb.SongContext, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("GetSongContext")
	return nil, rounddb.ErrNotFound
}

// FakeScoreStore holds scores in memory. Listing returns every score; the
// service matches them to songs itself.
type FakeScoreStore struct {
	mu      sync.Mutex
	Scores  []sharedtypes.Score
	Updated []sharedtypes.Score

	ListFunc func(ctx context.Context, db bun.IDB, ids []sharedtypes.AppearanceID) ([]sharedtypes.Score, error)
}

func (f *FakeScoreStore) Add(scores ...sharedtypes.Score) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Scores = append(f.Scores, scores...)
}

func (f *FakeScoreStore) ByID(id sharedtypes.ScoreID) (sharedtypes.Score, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.Scores {
		if s.ID == id {
			return s, true
		}
	}
	return sharedtypes.Score{}, false
}

func (f *FakeScoreStore) ListScoresByAppearances(ctx context.Context, db bun.IDB, ids []sharedtypes.AppearanceID) ([]sharedtypes.Score, error) {
	if f.ListFunc != nil {
		return f.ListFunc(ctx, db, ids)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]sharedtypes.Score, len(f.Scores))
	copy(out, f.Scores)
	return out, nil
}

func (f *FakeScoreStore) UpdateScores(_ context.Context, _ bun.IDB, scores []sharedtypes.Score) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Updated = append(f.Updated, scores...)
	for _, s := range scores {
		for i := range f.Scores {
			if f.Scores[i].ID == s.ID {
				f.Scores[i] = s
			}
		}
	}
	return nil
}

// FakeNotifier records report requests.
type FakeNotifier struct {
	mu      sync.Mutex
	Reports []reportevents.ReportRequestedPayloadV1
	Err     error
}

func (f *FakeNotifier) RequestReport(_ context.Context, p reportevents.ReportRequestedPayloadV1) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return f.Err
	}
	f.Reports = append(f.Reports, p)
	return nil
}

func (f *FakeNotifier) Kinds() []reportevents.ReportKind {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []reportevents.ReportKind
	for _, r := range f.Reports {
		out = append(out, r.Kind)
	}
	return out
}
