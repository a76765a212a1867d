package roundhandlers

import (
	"context"

	roundservice "github.com/Black-And-White-Club/barbershop-bot/app/modules/round/application"
	rounddomain "github.com/Black-And-White-Club/barbershop-bot/app/modules/round/domain"
	roundevents "github.com/Black-And-White-Club/barbershop-bot/app/shared/events/round"
	"github.com/Black-And-White-Club/barbershop-bot/app/shared/handlerwrapper"
	"github.com/Black-And-White-Club/barbershop-bot/app/shared/results"
	sharedtypes "github.com/Black-And-White-Club/barbershop-bot/app/shared/types"
)

func (h *RoundHandlers) HandleConventionCreateRequest(ctx context.Context, payload *roundevents.ConventionCreateRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.tracer.Start(ctx, "RoundHandlers.HandleConventionCreateRequest")
	defer span.End()

	const op = "CreateConvention"
	if out := h.invalid(ctx, op, sharedtypes.SessionID{}, payload); out != nil {
		return out, nil
	}

	result, err := h.service.CreateConvention(ctx, roundservice.CreateConventionRequest{
		Name:   payload.Name,
		Season: payload.Season,
		Year:   payload.Year,
		Level:  payload.Level,
	})
	return respond(h, ctx, op, sharedtypes.SessionID{}, result, err, func(c sharedtypes.Convention) []handlerwrapper.Result {
		return []handlerwrapper.Result{{
			Topic:   roundevents.ConventionCreatedV1,
			Payload: &roundevents.ConventionCreatedPayloadV1{Convention: c},
		}}
	})
}

func (h *RoundHandlers) HandleConventionTransitionRequest(ctx context.Context, payload *roundevents.ConventionTransitionRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.tracer.Start(ctx, "RoundHandlers.HandleConventionTransitionRequest")
	defer span.End()

	result, err := h.service.TransitionConvention(ctx, payload.ConventionID, payload.To)
	return respond(h, ctx, "TransitionConvention", sharedtypes.SessionID{}, result, err, func(t roundservice.ConventionTransition) []handlerwrapper.Result {
		return []handlerwrapper.Result{{
			Topic: roundevents.ConventionTransitionedV1,
			Payload: &roundevents.ConventionTransitionedPayloadV1{
				ConventionID: t.Convention.ID,
				From:         t.From,
				To:           t.Convention.Status,
			},
		}}
	})
}

// HandleSessionCreateRequest creates an empty session under a convention.
func (h *RoundHandlers) HandleSessionCreateRequest(ctx context.Context, payload *roundevents.SessionCreateRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.tracer.Start(ctx, "RoundHandlers.HandleSessionCreateRequest")
	defer span.End()

	const op = "CreateSession"
	if out := h.invalid(ctx, op, sharedtypes.SessionID{}, payload); out != nil {
		return out, nil
	}

	result, err := h.service.CreateSession(ctx, rounddomain.NewSessionParams{
		ConventionID: payload.ConventionID,
		Kind:         payload.Kind,
		Level:        payload.Level,
		NumRounds:    payload.NumRounds,
		Spots:        payload.Spots,
	})
	return respond(h, ctx, op, sharedtypes.SessionID{}, result, err, func(s sharedtypes.Session) []handlerwrapper.Result {
		return []handlerwrapper.Result{{
			Topic:   roundevents.SessionCreatedV1,
			Payload: &roundevents.SessionCreatedPayloadV1{Session: s},
		}}
	})
}

// HandleSessionTransitionRequest dispatches a session lifecycle action.
func (h *RoundHandlers) HandleSessionTransitionRequest(ctx context.Context, payload *roundevents.SessionTransitionRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.tracer.Start(ctx, "RoundHandlers.HandleSessionTransitionRequest")
	defer span.End()

	op := "session." + string(payload.Action)
	if out := h.invalid(ctx, op, payload.SessionID, payload); out != nil {
		return out, nil
	}

	var (
		result results.OperationResult[roundservice.SessionTransition, error]
		err    error
	)
	switch payload.Action {
	case roundevents.ActionOpen:
		result, err = h.service.OpenSession(ctx, payload.SessionID)
	case roundevents.ActionClose:
		result, err = h.service.CloseSession(ctx, payload.SessionID)
	case roundevents.ActionValidate:
		result, err = h.service.ValidateSession(ctx, payload.SessionID, payload.NumSongs)
	case roundevents.ActionStart:
		result, err = h.service.StartSession(ctx, payload.SessionID)
	case roundevents.ActionFinish:
		result, err = h.service.FinishSession(ctx, payload.SessionID)
	case roundevents.ActionPublish:
		result, err = h.service.PublishSession(ctx, payload.SessionID)
	default:
		return h.rejected(ctx, op, payload.SessionID, roundservice.ErrUnknownAction), nil
	}

	return respond(h, ctx, op, payload.SessionID, result, err, func(t roundservice.SessionTransition) []handlerwrapper.Result {
		return []handlerwrapper.Result{{
			Topic: roundevents.SessionTransitionedV1,
			Payload: &roundevents.SessionTransitionedPayloadV1{
				SessionID: t.SessionID,
				From:      t.From,
				To:        t.To,
			},
		}}
	})
}

func (h *RoundHandlers) HandleContestAddRequest(ctx context.Context, payload *roundevents.ContestAddRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.tracer.Start(ctx, "RoundHandlers.HandleContestAddRequest")
	defer span.End()

	const op = "AddContest"
	if out := h.invalid(ctx, op, payload.SessionID, payload); out != nil {
		return out, nil
	}

	result, err := h.service.AddContest(ctx, payload.SessionID, payload.Award)
	return respond(h, ctx, op, payload.SessionID, result, err, func(c sharedtypes.Contest) []handlerwrapper.Result {
		return []handlerwrapper.Result{{
			Topic:   roundevents.ContestAddedV1,
			Payload: &roundevents.ContestAddedPayloadV1{SessionID: payload.SessionID, Contest: c},
		}}
	})
}

func (h *RoundHandlers) HandleCompetitorRegisterRequest(ctx context.Context, payload *roundevents.CompetitorRegisterRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.tracer.Start(ctx, "RoundHandlers.HandleCompetitorRegisterRequest")
	defer span.End()

	const op = "RegisterCompetitor"
	if out := h.invalid(ctx, op, payload.SessionID, payload); out != nil {
		return out, nil
	}

	result, err := h.service.RegisterCompetitor(ctx, payload.SessionID, payload.Name, payload.ContestIDs)
	return respond(h, ctx, op, payload.SessionID, result, err, func(c sharedtypes.Competitor) []handlerwrapper.Result {
		return []handlerwrapper.Result{{
			Topic:   roundevents.CompetitorRegisteredV1,
			Payload: &roundevents.CompetitorRegisteredPayloadV1{SessionID: payload.SessionID, Competitor: c},
		}}
	})
}

func (h *RoundHandlers) HandlePanelistAssignRequest(ctx context.Context, payload *roundevents.PanelistAssignRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.tracer.Start(ctx, "RoundHandlers.HandlePanelistAssignRequest")
	defer span.End()

	const op = "AssignPanelist"
	if out := h.invalid(ctx, op, payload.SessionID, payload); out != nil {
		return out, nil
	}

	result, err := h.service.AssignPanelist(ctx, roundservice.AssignPanelistRequest{
		SessionID: payload.SessionID,
		RoundID:   payload.RoundID,
		Name:      payload.Name,
		Kind:      payload.Kind,
		Category:  payload.Category,
	})
	return respond(h, ctx, op, payload.SessionID, result, err, func(p sharedtypes.Panelist) []handlerwrapper.Result {
		return []handlerwrapper.Result{{
			Topic:   roundevents.PanelistAssignedV1,
			Payload: &roundevents.PanelistAssignedPayloadV1{SessionID: payload.SessionID, Panelist: p},
		}}
	})
}

// HandlePanelistReleaseRequest releases a judge once their round is over.
// The panelist's scoring analysis is requested by the service.
func (h *RoundHandlers) HandlePanelistReleaseRequest(ctx context.Context, payload *roundevents.PanelistReleaseRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.tracer.Start(ctx, "RoundHandlers.HandlePanelistReleaseRequest")
	defer span.End()

	result, err := h.service.ReleasePanelist(ctx, payload.SessionID, payload.PanelistID)
	return respond(h, ctx, "ReleasePanelist", payload.SessionID, result, err, func(p sharedtypes.Panelist) []handlerwrapper.Result {
		return []handlerwrapper.Result{{
			Topic:   roundevents.PanelistReleasedV1,
			Payload: &roundevents.PanelistReleasedPayloadV1{SessionID: payload.SessionID, Panelist: p},
		}}
	})
}
