package leaderboardhandlers

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	leaderboardservice "github.com/Black-And-White-Club/barbershop-bot/app/modules/leaderboard/application"
	leaderboarddomain "github.com/Black-And-White-Club/barbershop-bot/app/modules/leaderboard/domain"
	leaderboardevents "github.com/Black-And-White-Club/barbershop-bot/app/shared/events/leaderboard"
	roundevents "github.com/Black-And-White-Club/barbershop-bot/app/shared/events/round"
	"github.com/Black-And-White-Club/barbershop-bot/app/shared/results"
	sharedtypes "github.com/Black-And-White-Club/barbershop-bot/app/shared/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
)

func newTestHandlers(svc *FakeLeaderboardService) Handlers {
	return NewLeaderboardHandlers(svc, slog.New(slog.NewTextHandler(io.Discard, nil)), noop.NewTracerProvider().Tracer("test"))
}

func rank(v int) *int { return &v }

func TestHandleContestStandingsRequest(t *testing.T) {
	sessionID := sharedtypes.NewSessionID()
	contestID := sharedtypes.NewContestID()
	winner := sharedtypes.NewCompetitorID()

	tests := []struct {
		name      string
		standings func(context.Context, sharedtypes.SessionID, sharedtypes.ContestID) (results.OperationResult[leaderboardservice.ContestTable, error], error)
		wantTopic string
		wantErr   bool
	}{
		{
			name: "success publishes the table",
			standings: func(context.Context, sharedtypes.SessionID, sharedtypes.ContestID) (results.OperationResult[leaderboardservice.ContestTable, error], error) {
				return results.SuccessResult[leaderboardservice.ContestTable, error](leaderboardservice.ContestTable{
					SessionID: sessionID, ContestID: contestID, Award: "Chorus Championship", ChampionID: &winner,
					Standings: []leaderboarddomain.Standing{{CompetitorID: winner, Name: "Alpha", Rank: rank(1)}},
				}), nil
			},
			wantTopic: leaderboardevents.ContestStandingsV1,
		},
		{
			name: "missing contest publishes failure",
			standings: func(context.Context, sharedtypes.SessionID, sharedtypes.ContestID) (results.OperationResult[leaderboardservice.ContestTable, error], error) {
				return results.FailureResult[leaderboardservice.ContestTable, error](leaderboardservice.ErrContestNotFound), nil
			},
			wantTopic: leaderboardevents.LeaderboardRequestFailedV1,
		},
		{
			name: "infrastructure error is returned for retry",
			standings: func(context.Context, sharedtypes.SessionID, sharedtypes.ContestID) (results.OperationResult[leaderboardservice.ContestTable, error], error) {
				return results.OperationResult[leaderboardservice.ContestTable, error]{}, errors.New("db down")
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandlers(&FakeLeaderboardService{ContestStandingsFunc: tt.standings})
			out, err := h.HandleContestStandingsRequest(context.Background(), &leaderboardevents.ContestStandingsRequestedPayloadV1{
				SessionID: sessionID, ContestID: contestID,
			})
			if tt.wantErr {
				require.Error(t, err)
				assert.Nil(t, out)
				return
			}
			require.NoError(t, err)
			require.Len(t, out, 1)
			assert.Equal(t, tt.wantTopic, out[0].Topic)
		})
	}
}

func TestHandleRoundFinished_PublishesStandingsAndOutcomes(t *testing.T) {
	sessionID := sharedtypes.NewSessionID()
	roundID := sharedtypes.NewRoundID()
	contestID := sharedtypes.NewContestID()

	svc := &FakeLeaderboardService{
		RoundStandingsFunc: func(_ context.Context, s sharedtypes.SessionID, r sharedtypes.RoundID) (results.OperationResult[leaderboardservice.RoundTable, error], error) {
			return results.SuccessResult[leaderboardservice.RoundTable, error](leaderboardservice.RoundTable{
				SessionID: s, RoundID: r, Kind: sharedtypes.RoundKindFinal,
				Standings: []leaderboarddomain.Standing{{Name: "Alpha", Rank: rank(1)}, {Name: "Bravo", Rank: rank(2)}},
			}), nil
		},
		RoundOutcomesFunc: func(context.Context, sharedtypes.SessionID, sharedtypes.RoundID) (results.OperationResult[[]leaderboardservice.OutcomeResult, error], error) {
			return results.SuccessResult[[]leaderboardservice.OutcomeResult, error]([]leaderboardservice.OutcomeResult{{
				Outcome: sharedtypes.Outcome{ID: sharedtypes.NewOutcomeID(), ContestID: contestID, Num: 1},
				Award:   "Quartet Championship",
				Name:    "Alpha",
			}}), nil
		},
	}

	out, err := newTestHandlers(svc).HandleRoundFinished(context.Background(), &roundevents.RoundFinishedPayloadV1{
		SessionID: sessionID, RoundID: roundID, Kind: "final", Final: true,
	})
	require.NoError(t, err)
	require.Len(t, out, 2)

	assert.Equal(t, leaderboardevents.RoundStandingsV1, out[0].Topic)
	standings, ok := out[0].Payload.(*leaderboardevents.RoundStandingsPayloadV1)
	require.True(t, ok)
	assert.Equal(t, "final", standings.Kind)
	assert.Len(t, standings.Standings, 2)

	assert.Equal(t, leaderboardevents.RoundOutcomesV1, out[1].Topic)
	outcomes, ok := out[1].Payload.(*leaderboardevents.RoundOutcomesPayloadV1)
	require.True(t, ok)
	require.Len(t, outcomes.Outcomes, 1)
	assert.Equal(t, "Alpha", outcomes.Outcomes[0].Name)
	assert.Equal(t, contestID, outcomes.Outcomes[0].ContestID)
}

func TestHandleRoundOutcomesRequest_UnknownRound(t *testing.T) {
	svc := &FakeLeaderboardService{
		RoundOutcomesFunc: func(context.Context, sharedtypes.SessionID, sharedtypes.RoundID) (results.OperationResult[[]leaderboardservice.OutcomeResult, error], error) {
			return results.FailureResult[[]leaderboardservice.OutcomeResult, error](leaderboardservice.ErrRoundNotFound), nil
		},
	}
	sessionID := sharedtypes.NewSessionID()
	out, err := newTestHandlers(svc).HandleRoundOutcomesRequest(context.Background(), &leaderboardevents.RoundOutcomesRequestedPayloadV1{
		SessionID: sessionID, RoundID: sharedtypes.NewRoundID(),
	})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, leaderboardevents.LeaderboardRequestFailedV1, out[0].Topic)
	p, ok := out[0].Payload.(*leaderboardevents.LeaderboardRequestFailedPayloadV1)
	require.True(t, ok)
	assert.Equal(t, sessionID, p.SessionID)
	assert.Contains(t, p.Reason, "round not found")
}
