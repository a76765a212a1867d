package leaderboardhandlers

import (
	"context"

	leaderboardservice "github.com/Black-And-White-Club/barbershop-bot/app/modules/leaderboard/application"
	"github.com/Black-And-White-Club/barbershop-bot/app/shared/results"
	sharedtypes "github.com/Black-And-White-Club/barbershop-bot/app/shared/types"
)

// FakeLeaderboardService is a programmable stub for leaderboardservice.Service.
type FakeLeaderboardService struct {
	ContestStandingsFunc func(ctx context.Context, sessionID sharedtypes.SessionID, contestID sharedtypes.ContestID) (results.OperationResult[leaderboardservice.ContestTable, error], error)
	RoundStandingsFunc   func(ctx context.Context, sessionID sharedtypes.SessionID, roundID sharedtypes.RoundID) (results.OperationResult[leaderboardservice.RoundTable, error], error)
	RoundOutcomesFunc    func(ctx context.Context, sessionID sharedtypes.SessionID, roundID sharedtypes.RoundID) (results.OperationResult[[]leaderboardservice.OutcomeResult, error], error)
}

func (f *FakeLeaderboardService) ContestStandings(ctx context.Context, sessionID sharedtypes.SessionID, contestID sharedtypes.ContestID) (results.OperationResult[leaderboardservice.ContestTable, error], error) {
	if f.ContestStandingsFunc != nil {
		return f.ContestStandingsFunc(ctx, sessionID, contestID)
	}
	return results.OperationResult[leaderboardservice.ContestTable, error]{}, nil
}

func (f *FakeLeaderboardService) RoundStandings(ctx context.Context, sessionID sharedtypes.SessionID, roundID sharedtypes.RoundID) (results.OperationResult[leaderboardservice.RoundTable, error], error) {
	if f.RoundStandingsFunc != nil {
		return f.RoundStandingsFunc(ctx, sessionID, roundID)
	}
	return results.OperationResult[leaderboardservice.RoundTable, error]{}, nil
}

func (f *FakeLeaderboardService) RoundOutcomes(ctx context.Context, sessionID sharedtypes.SessionID, roundID sharedtypes.RoundID) (results.OperationResult[[]leaderboardservice.OutcomeResult, error], error) {
	if f.RoundOutcomesFunc != nil {
		return f.RoundOutcomesFunc(ctx, sessionID, roundID)
	}
	return results.OperationResult[[]leaderboardservice.OutcomeResult, error]{}, nil
}

var _ leaderboardservice.Service = (*FakeLeaderboardService)(nil)
