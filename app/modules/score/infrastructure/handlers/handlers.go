package scorehandlers

import (
	"context"
	"errors"
	"log/slog"

	scoreservice "github.com/Black-And-White-Club/barbershop-bot/app/modules/score/application"
	scoredomain "github.com/Black-And-White-Club/barbershop-bot/app/modules/score/domain"
	scoreevents "github.com/Black-And-White-Club/barbershop-bot/app/shared/events/score"
	"github.com/Black-And-White-Club/barbershop-bot/app/shared/handlerwrapper"
	"github.com/Black-And-White-Club/barbershop-bot/app/shared/observability/attr"
	sharedtypes "github.com/Black-And-White-Club/barbershop-bot/app/shared/types"
	"go.opentelemetry.io/otel/trace"
)

// ScoreHandlers implements the Handlers interface.
type ScoreHandlers struct {
	service scoreservice.Service
	logger  *slog.Logger
	tracer  trace.Tracer
}

// NewScoreHandlers creates a new ScoreHandlers.
func NewScoreHandlers(
	service scoreservice.Service,
	logger *slog.Logger,
	tracer trace.Tracer,
) Handlers {
	return &ScoreHandlers{
		service: service,
		logger:  logger,
		tracer:  tracer,
	}
}

func failed(topic string, songID sharedtypes.SongID, scoreID *sharedtypes.ScoreID, err error) []handlerwrapper.Result {
	return []handlerwrapper.Result{{
		Topic: topic,
		Payload: &scoreevents.ScoreFailedPayloadV1{
			SongID:  songID,
			ScoreID: scoreID,
			Reason:  err.Error(),
		},
	}}
}

// HandleSubmitScoreRequest records a judge's submission.
func (h *ScoreHandlers) HandleSubmitScoreRequest(ctx context.Context, payload *scoreevents.ScoreSubmitRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.tracer.Start(ctx, "ScoreHandlers.HandleSubmitScoreRequest")
	defer span.End()

	result, err := h.service.SubmitScore(ctx, scoreservice.SubmitScoreRequest{
		SongID:     payload.SongID,
		PanelistID: payload.PanelistID,
		Points:     payload.Points,
		Penalty:    payload.Penalty,
	})
	if err != nil {
		return nil, err
	}
	if result.IsFailure() {
		h.logger.WarnContext(ctx, "Score submission rejected",
			attr.ExtractCorrelationID(ctx),
			attr.ID("song_id", payload.SongID),
			attr.ID("panelist_id", payload.PanelistID),
			attr.Error(*result.Failure),
		)
		return failed(scoreevents.ScoreSubmitFailedV1, payload.SongID, nil, *result.Failure), nil
	}

	return []handlerwrapper.Result{{
		Topic:   scoreevents.ScoreSubmittedV1,
		Payload: &scoreevents.ScoreSubmittedPayloadV1{Score: *result.Success},
	}}, nil
}

// HandleReviseScoreRequest applies a human correction to a flagged score.
func (h *ScoreHandlers) HandleReviseScoreRequest(ctx context.Context, payload *scoreevents.ScoreReviseRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.tracer.Start(ctx, "ScoreHandlers.HandleReviseScoreRequest")
	defer span.End()

	result, err := h.service.ReviseScore(ctx, payload.ScoreID, payload.Points, payload.Actor)
	if err != nil {
		return nil, err
	}
	if result.IsFailure() {
		id := payload.ScoreID
		return failed(scoreevents.ScoreReviseFailedV1, sharedtypes.SongID{}, &id, *result.Failure), nil
	}

	return []handlerwrapper.Result{{
		Topic: scoreevents.ScoreRevisedV1,
		Payload: &scoreevents.ScoreRevisedPayloadV1{
			Score: *result.Success,
			Actor: payload.Actor,
		},
	}}, nil
}

func (h *ScoreHandlers) HandleVerifyScoreRequest(ctx context.Context, payload *scoreevents.ScoreVerifyRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.tracer.Start(ctx, "ScoreHandlers.HandleVerifyScoreRequest")
	defer span.End()

	result, err := h.service.VerifyScore(ctx, payload.ScoreID)
	if err != nil {
		return nil, err
	}
	if result.IsFailure() {
		id := payload.ScoreID
		return failed(scoreevents.ScoreVerifyFailedV1, payload.SongID, &id, *result.Failure), nil
	}

	return []handlerwrapper.Result{{
		Topic: scoreevents.ScoreVerifiedV1,
		Payload: &scoreevents.ScoreVerifiedPayloadV1{
			Score:    result.Success.Score,
			Variance: result.Success.Variance,
		},
	}}, nil
}

// HandleSongAggregateRequest answers with the song's current totals. A song
// without official scores is answered with Complete=false, not a failure.
func (h *ScoreHandlers) HandleSongAggregateRequest(ctx context.Context, payload *scoreevents.SongAggregateRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.tracer.Start(ctx, "ScoreHandlers.HandleSongAggregateRequest")
	defer span.End()

	result, err := h.service.GetSongAggregate(ctx, payload.SongID)
	if err != nil {
		return nil, err
	}
	if result.IsFailure() {
		if errors.Is(*result.Failure, scoredomain.ErrIncompleteAggregate) {
			return []handlerwrapper.Result{{
				Topic:   scoreevents.SongAggregatedV1,
				Payload: &scoreevents.SongAggregatedPayloadV1{SongID: payload.SongID},
			}}, nil
		}
		return failed(scoreevents.SongAggregateFailedV1, payload.SongID, nil, *result.Failure), nil
	}

	return []handlerwrapper.Result{{
		Topic: scoreevents.SongAggregatedV1,
		Payload: &scoreevents.SongAggregatedPayloadV1{
			SongID:   payload.SongID,
			Totals:   *result.Success,
			Complete: true,
		},
	}}, nil
}
