package roundhandlers

import (
	"context"

	roundservice "github.com/Black-And-White-Club/barbershop-bot/app/modules/round/application"
	rounddomain "github.com/Black-And-White-Club/barbershop-bot/app/modules/round/domain"
	roundevents "github.com/Black-And-White-Club/barbershop-bot/app/shared/events/round"
	"github.com/Black-And-White-Club/barbershop-bot/app/shared/handlerwrapper"
	"github.com/Black-And-White-Club/barbershop-bot/app/shared/observability/attr"
	"github.com/Black-And-White-Club/barbershop-bot/app/shared/results"
)

// HandleRoundTransitionRequest dispatches a round lifecycle action. A
// finished round is also announced on RoundFinishedV1 with its advancement.
func (h *RoundHandlers) HandleRoundTransitionRequest(ctx context.Context, payload *roundevents.RoundTransitionRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.tracer.Start(ctx, "RoundHandlers.HandleRoundTransitionRequest")
	defer span.End()

	op := "round." + string(payload.Action)
	if out := h.invalid(ctx, op, payload.SessionID, payload); out != nil {
		return out, nil
	}

	var (
		result results.OperationResult[roundservice.RoundTransition, error]
		err    error
	)
	switch payload.Action {
	case roundevents.ActionDraw:
		result, err = h.service.DrawRound(ctx, payload.SessionID, payload.RoundID)
	case roundevents.ActionValidate:
		result, err = h.service.ValidateRound(ctx, payload.SessionID, payload.RoundID)
	case roundevents.ActionStart:
		result, err = h.service.StartRound(ctx, payload.SessionID, payload.RoundID)
	case roundevents.ActionFinish:
		result, err = h.service.FinishRound(ctx, payload.SessionID, payload.RoundID)
	case roundevents.ActionPublish:
		result, err = h.service.PublishRound(ctx, payload.SessionID, payload.RoundID)
	default:
		return h.rejected(ctx, op, payload.SessionID, roundservice.ErrUnknownAction), nil
	}

	return respond(h, ctx, op, payload.SessionID, result, err, func(t roundservice.RoundTransition) []handlerwrapper.Result {
		out := []handlerwrapper.Result{{
			Topic: roundevents.RoundTransitionedV1,
			Payload: &roundevents.RoundTransitionedPayloadV1{
				SessionID: t.SessionID,
				RoundID:   t.RoundID,
				From:      t.From,
				To:        t.To,
			},
		}}
		if f := t.Finish; f != nil {
			h.logger.InfoContext(ctx, "Round finished",
				attr.ExtractCorrelationID(ctx),
				attr.ID("round_id", t.RoundID),
				attr.Bool("final", f.Final),
				attr.Int("advanced", len(f.Advanced)),
			)
			out = append(out, handlerwrapper.Result{
				Topic: roundevents.RoundFinishedV1,
				Payload: &roundevents.RoundFinishedPayloadV1{
					SessionID:   t.SessionID,
					RoundID:     t.RoundID,
					Kind:        t.Kind.String(),
					Final:       f.Final,
					Advanced:    f.Advanced,
					NextRoundID: f.NextRound,
					Flagged:     f.Flagged,
				},
			})
		}
		return out
	})
}

// HandleAppearanceTransitionRequest starts, finishes or verifies an
// appearance. A verify that lands in variance is a success carrying the
// flagged counts.
func (h *RoundHandlers) HandleAppearanceTransitionRequest(ctx context.Context, payload *roundevents.AppearanceTransitionRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.tracer.Start(ctx, "RoundHandlers.HandleAppearanceTransitionRequest")
	defer span.End()

	op := "appearance." + string(payload.Action)
	if out := h.invalid(ctx, op, payload.SessionID, payload); out != nil {
		return out, nil
	}

	var (
		result results.OperationResult[roundservice.AppearanceTransition, error]
		err    error
	)
	switch payload.Action {
	case roundevents.ActionStart:
		result, err = h.service.StartAppearance(ctx, payload.SessionID, payload.AppearanceID)
	case roundevents.ActionFinish:
		result, err = h.service.FinishAppearance(ctx, payload.SessionID, payload.AppearanceID)
	case roundevents.ActionVerify:
		result, err = h.service.VerifyAppearance(ctx, payload.SessionID, payload.AppearanceID)
	default:
		return h.rejected(ctx, op, payload.SessionID, roundservice.ErrUnknownAction), nil
	}

	return respond(h, ctx, op, payload.SessionID, result, err, func(t roundservice.AppearanceTransition) []handlerwrapper.Result {
		return []handlerwrapper.Result{{
			Topic: roundevents.AppearanceTransitionedV1,
			Payload: &roundevents.AppearanceTransitionedPayloadV1{
				SessionID:    t.SessionID,
				AppearanceID: t.AppearanceID,
				From:         t.From,
				To:           t.To,
				Totals:       t.Totals,
				Variance:     t.Variance,
				Flagged:      t.Flagged,
			},
		}}
	})
}

func (h *RoundHandlers) HandleOverrideRequest(ctx context.Context, payload *roundevents.OverrideRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.tracer.Start(ctx, "RoundHandlers.HandleOverrideRequest")
	defer span.End()

	const op = "Override"
	if out := h.invalid(ctx, op, payload.SessionID, payload); out != nil {
		return out, nil
	}

	result, err := h.service.Override(ctx, roundservice.OverrideRequest{
		SessionID: payload.SessionID,
		Entity:    payload.Entity,
		ID:        payload.ID,
		ContestID: payload.ContestID,
		To:        payload.To,
		Actor:     payload.Actor,
		Reason:    payload.Reason,
	})
	return respond(h, ctx, op, payload.SessionID, result, err, func(o rounddomain.Override) []handlerwrapper.Result {
		return []handlerwrapper.Result{{
			Topic: roundevents.OverriddenV1,
			Payload: &roundevents.OverriddenPayloadV1{
				SessionID: payload.SessionID,
				Entity:    payload.Entity,
				ID:        o.ID,
				From:      o.From,
				To:        o.To,
				Actor:     payload.Actor,
				Reason:    payload.Reason,
			},
		}}
	})
}
