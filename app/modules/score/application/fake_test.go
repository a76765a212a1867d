package scoreservice

import (
	"context"

	scoredb "github.com/Black-And-White-Club/barbershop-bot/app/modules/score/infrastructure/repositories"
	sharedtypes "github.com/Black-And-White-Club/barbershop-bot/app/shared/types"
	"github.com/uptrace/bun"
)

// FakeScoreRepository provides a programmable stub for scoredb.Repository.
type FakeScoreRepository struct {
	trace []string

	GetScoreFunc                func(ctx context.Context, db bun.IDB, id sharedtypes.ScoreID) (*sharedtypes.Score, error)
	GetScoreByPanelistFunc      func(ctx context.Context, db bun.IDB, songID sharedtypes.SongID, panelistID sharedtypes.PanelistID) (*sharedtypes.Score, error)
	UpsertScoreFunc             func(ctx context.Context, db bun.IDB, score sharedtypes.Score) error
	UpdateScoresFunc            func(ctx context.Context, db bun.IDB, scores []sharedtypes.Score) error
	ListScoresBySongFunc        func(ctx context.Context, db bun.IDB, songID sharedtypes.SongID) ([]sharedtypes.Score, error)
	ListScoresByAppearancesFunc func(ctx context.Context, db bun.IDB, ids []sharedtypes.AppearanceID) ([]sharedtypes.Score, error)

	Upserted []sharedtypes.Score
	Updated  []sharedtypes.Score
}

func NewFakeScoreRepository() *FakeScoreRepository {
	return &FakeScoreRepository{trace: []string{}}
}

func (f *FakeScoreRepository) record(step string) {
	f.trace = append(f.trace, step)
}

// Trace returns the sequence of method calls made to the fake.
func (f *FakeScoreRepository) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeScoreRepository) GetScore(ctx context.Context, db bun.IDB, id sharedtypes.ScoreID) (*sharedtypes.Score, error) {
	f.record("GetScore")
	if f.GetScoreFunc != nil {
		return f.GetScoreFunc(ctx, db, id)
	}
	return nil, scoredb.ErrNotFound
}

func (f *FakeScoreRepository) GetScoreByPanelist(ctx context.Context, db bun.IDB, songID sharedtypes.SongID, panelistID sharedtypes.PanelistID) (*sharedtypes.Score, error) {
	f.record("GetScoreByPanelist")
	if f.GetScoreByPanelistFunc != nil {
		return f.GetScoreByPanelistFunc(ctx, db, songID, panelistID)
	}
	return nil, scoredb.ErrNotFound
}

func (f *FakeScoreRepository) UpsertScore(ctx context.Context, db bun.IDB, score sharedtypes.Score) error {
	f.record("UpsertScore")
	f.Upserted = append(f.Upserted, score)
	if f.UpsertScoreFunc != nil {
		return f.UpsertScoreFunc(ctx, db, score)
	}
	return nil
}

func (f *FakeScoreRepository) UpdateScores(ctx context.Context, db bun.IDB, scores []sharedtypes.Score) error {
	f.record("UpdateScores")
	f.Updated = append(f.Updated, scores...)
	if f.UpdateScoresFunc != nil {
		return f.UpdateScoresFunc(ctx, db, scores)
	}
	return nil
}

func (f *FakeScoreRepository) ListScoresBySong(ctx context.Context, db bun.IDB, songID sharedtypes.SongID) ([]sharedtypes.Score, error) {
	f.record("ListScoresBySong")
	if f.ListScoresBySongFunc != nil {
		return f.ListScoresBySongFunc(ctx, db, songID)
	}
	return nil, nil
}

func (f *FakeScoreRepository) ListScoresByAppearances(ctx context.Context, db bun.IDB, ids []sharedtypes.AppearanceID) ([]sharedtypes.Score, error) {
	f.record("ListScoresByAppearances")
	if f.ListScoresByAppearancesFunc != nil {
		return f.ListScoresByAppearancesFunc(ctx, db, ids)
	}
	return nil, nil
}

var _ scoredb.Repository = (*FakeScoreRepository)(nil)

// FakeSongLookup resolves every song to Context unless GetSongContextFunc is set.
type FakeSongLookup struct {
	Context            *SongContext
	GetSongContextFunc func(ctx context.Context, db bun.IDB, songID sharedtypes.SongID) (*SongContext, error)
}

func (f *FakeSongLookup) GetSongContext(ctx context.Context, db bun.IDB, songID sharedtypes.SongID) (*SongContext, error) {
	if f.GetSongContextFunc != nil {
		return f.GetSongContextFunc(ctx, db, songID)
	}
	if f.Context == nil {
		return nil, ErrSongNotFound
	}
	return f.Context, nil
}

var _ SongLookup = (*FakeSongLookup)(nil)
