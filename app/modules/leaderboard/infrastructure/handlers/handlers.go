package leaderboardhandlers

import (
	"context"
	"log/slog"

	leaderboardservice "github.com/Black-And-White-Club/barbershop-bot/app/modules/leaderboard/application"
	leaderboarddomain "github.com/Black-And-White-Club/barbershop-bot/app/modules/leaderboard/domain"
	leaderboardevents "github.com/Black-And-White-Club/barbershop-bot/app/shared/events/leaderboard"
	roundevents "github.com/Black-And-White-Club/barbershop-bot/app/shared/events/round"
	"github.com/Black-And-White-Club/barbershop-bot/app/shared/handlerwrapper"
	"github.com/Black-And-White-Club/barbershop-bot/app/shared/observability/attr"
	sharedtypes "github.com/Black-And-White-Club/barbershop-bot/app/shared/types"
	"go.opentelemetry.io/otel/trace"
)

// LeaderboardHandlers implements the Handlers interface.
type LeaderboardHandlers struct {
	service leaderboardservice.Service
	logger  *slog.Logger
	tracer  trace.Tracer
}

func NewLeaderboardHandlers(
	service leaderboardservice.Service,
	logger *slog.Logger,
	tracer trace.Tracer,
) Handlers {
	return &LeaderboardHandlers{
		service: service,
		logger:  logger,
		tracer:  tracer,
	}
}

func failed(sessionID sharedtypes.SessionID, err error) []handlerwrapper.Result {
	return []handlerwrapper.Result{{
		Topic: leaderboardevents.LeaderboardRequestFailedV1,
		Payload: &leaderboardevents.LeaderboardRequestFailedPayloadV1{
			SessionID: sessionID,
			Reason:    err.Error(),
		},
	}}
}

func toStandings(rows []leaderboarddomain.Standing) []leaderboardevents.Standing {
	out := make([]leaderboardevents.Standing, 0, len(rows))
	for _, r := range rows {
		out = append(out, leaderboardevents.Standing{
			CompetitorID: r.CompetitorID,
			Name:         r.Name,
			Rank:         r.Rank,
			Totals:       r.Totals,
			Result:       r.Result,
			Status:       r.Status,
		})
	}
	return out
}

func (h *LeaderboardHandlers) HandleContestStandingsRequest(ctx context.Context, payload *leaderboardevents.ContestStandingsRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.tracer.Start(ctx, "LeaderboardHandlers.HandleContestStandingsRequest")
	defer span.End()

	result, err := h.service.ContestStandings(ctx, payload.SessionID, payload.ContestID)
	if err != nil {
		return nil, err
	}
	if result.IsFailure() {
		return failed(payload.SessionID, *result.Failure), nil
	}

	t := result.Success
	return []handlerwrapper.Result{{
		Topic: leaderboardevents.ContestStandingsV1,
		Payload: &leaderboardevents.ContestStandingsPayloadV1{
			SessionID:  t.SessionID,
			ContestID:  t.ContestID,
			Award:      t.Award,
			ChampionID: t.ChampionID,
			Standings:  toStandings(t.Standings),
		},
	}}, nil
}

func (h *LeaderboardHandlers) HandleRoundStandingsRequest(ctx context.Context, payload *leaderboardevents.RoundStandingsRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.tracer.Start(ctx, "LeaderboardHandlers.HandleRoundStandingsRequest")
	defer span.End()

	out, err := h.roundStandings(ctx, payload.SessionID, payload.RoundID)
	if err != nil {
		return nil, err
	}
	return []handlerwrapper.Result{out}, nil
}

func (h *LeaderboardHandlers) HandleRoundOutcomesRequest(ctx context.Context, payload *leaderboardevents.RoundOutcomesRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.tracer.Start(ctx, "LeaderboardHandlers.HandleRoundOutcomesRequest")
	defer span.End()

	out, err := h.roundOutcomes(ctx, payload.SessionID, payload.RoundID)
	if err != nil {
		return nil, err
	}
	return []handlerwrapper.Result{out}, nil
}

// HandleRoundFinished publishes the round table and its outcomes as soon as
// a round finishes.
func (h *LeaderboardHandlers) HandleRoundFinished(ctx context.Context, payload *roundevents.RoundFinishedPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.tracer.Start(ctx, "LeaderboardHandlers.HandleRoundFinished")
	defer span.End()

	h.logger.InfoContext(ctx, "Publishing standings for finished round",
		attr.ExtractCorrelationID(ctx),
		attr.ID("round_id", payload.RoundID),
		attr.Bool("final", payload.Final),
	)

	standings, err := h.roundStandings(ctx, payload.SessionID, payload.RoundID)
	if err != nil {
		return nil, err
	}
	outcomes, err := h.roundOutcomes(ctx, payload.SessionID, payload.RoundID)
	if err != nil {
		return nil, err
	}
	return []handlerwrapper.Result{standings, outcomes}, nil
}

func (h *LeaderboardHandlers) roundStandings(ctx context.Context, sessionID sharedtypes.SessionID, roundID sharedtypes.RoundID) (handlerwrapper.Result, error) {
	result, err := h.service.RoundStandings(ctx, sessionID, roundID)
	if err != nil {
		return handlerwrapper.Result{}, err
	}
	if result.IsFailure() {
		return failed(sessionID, *result.Failure)[0], nil
	}
	t := result.Success
	return handlerwrapper.Result{
		Topic: leaderboardevents.RoundStandingsV1,
		Payload: &leaderboardevents.RoundStandingsPayloadV1{
			SessionID: t.SessionID,
			RoundID:   t.RoundID,
			Kind:      t.Kind.String(),
			Standings: toStandings(t.Standings),
		},
	}, nil
}

func (h *LeaderboardHandlers) roundOutcomes(ctx context.Context, sessionID sharedtypes.SessionID, roundID sharedtypes.RoundID) (handlerwrapper.Result, error) {
	result, err := h.service.RoundOutcomes(ctx, sessionID, roundID)
	if err != nil {
		return handlerwrapper.Result{}, err
	}
	if result.IsFailure() {
		return failed(sessionID, *result.Failure)[0], nil
	}
	outcomes := make([]leaderboardevents.Outcome, 0, len(*result.Success))
	for _, o := range *result.Success {
		outcomes = append(outcomes, leaderboardevents.Outcome{
			OutcomeID: o.Outcome.ID,
			ContestID: o.Outcome.ContestID,
			Num:       o.Outcome.Num,
			Award:     o.Award,
			Name:      o.Name,
		})
	}
	return handlerwrapper.Result{
		Topic: leaderboardevents.RoundOutcomesV1,
		Payload: &leaderboardevents.RoundOutcomesPayloadV1{
			SessionID: sessionID,
			RoundID:   roundID,
			Outcomes:  outcomes,
		},
	}, nil
}
