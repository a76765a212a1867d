package scorehandlers

import (
	"context"

	scoreservice "github.com/Black-And-White-Club/barbershop-bot/app/modules/score/application"
	"github.com/Black-And-White-Club/barbershop-bot/app/shared/results"
	sharedtypes "github.com/Black-And-White-Club/barbershop-bot/app/shared/types"
)

// FakeScoreService is a programmable stub for scoreservice.Service.
type FakeScoreService struct {
	SubmitScoreFunc      func(ctx context.Context, req scoreservice.SubmitScoreRequest) (results.OperationResult[sharedtypes.Score, error], error)
	ReviseScoreFunc      func(ctx context.Context, id sharedtypes.ScoreID, points int, actor string) (results.OperationResult[sharedtypes.Score, error], error)
	VerifyScoreFunc      func(ctx context.Context, id sharedtypes.ScoreID) (results.OperationResult[scoreservice.VerifyScoreResult, error], error)
	GetSongAggregateFunc func(ctx context.Context, songID sharedtypes.SongID) (results.OperationResult[sharedtypes.Totals, error], error)
	ListSongScoresFunc   func(ctx context.Context, songID sharedtypes.SongID) ([]sharedtypes.Score, error)
}

func (f *FakeScoreService) SubmitScore(ctx context.Context, req scoreservice.SubmitScoreRequest) (results.OperationResult[sharedtypes.Score, error], error) {
	if f.SubmitScoreFunc != nil {
		return f.SubmitScoreFunc(ctx, req)
	}
	return results.OperationResult[sharedtypes.Score, error]{}, nil
}

func (f *FakeScoreService) ReviseScore(ctx context.Context, id sharedtypes.ScoreID, points int, actor string) (results.OperationResult[sharedtypes.Score, error], error) {
	if f.ReviseScoreFunc != nil {
		return f.ReviseScoreFunc(ctx, id, points, actor)
	}
	return results.OperationResult[sharedtypes.Score, error]{}, nil
}

func (f *FakeScoreService) VerifyScore(ctx context.Context, id sharedtypes.ScoreID) (results.OperationResult[scoreservice.VerifyScoreResult, error], error) {
	if f.VerifyScoreFunc != nil {
		return f.VerifyScoreFunc(ctx, id)
	}
	return results.OperationResult[scoreservice.VerifyScoreResult, error]{}, nil
}

func (f *FakeScoreService) GetSongAggregate(ctx context.Context, songID sharedtypes.SongID) (results.OperationResult[sharedtypes.Totals, error], error) {
	if f.GetSongAggregateFunc != nil {
		return f.GetSongAggregateFunc(ctx, songID)
	}
	return results.OperationResult[sharedtypes.Totals, error]{}, nil
}

func (f *FakeScoreService) ListSongScores(ctx context.Context, songID sharedtypes.SongID) ([]sharedtypes.Score, error) {
	if f.ListSongScoresFunc != nil {
		return f.ListSongScoresFunc(ctx, songID)
	}
	return nil, nil
}

var _ scoreservice.Service = (*FakeScoreService)(nil)
