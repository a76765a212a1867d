package roundhandlers

import (
	"context"

	roundevents "github.com/Black-And-White-Club/barbershop-bot/app/shared/events/round"
	"github.com/Black-And-White-Club/barbershop-bot/app/shared/handlerwrapper"
)

// Handlers defines the interface for round command handlers.
type Handlers interface {
	HandleConventionCreateRequest(ctx context.Context, payload *roundevents.ConventionCreateRequestedPayloadV1) ([]handlerwrapper.Result, error)
	HandleConventionTransitionRequest(ctx context.Context, payload *roundevents.ConventionTransitionRequestedPayloadV1) ([]handlerwrapper.Result, error)

	HandleSessionCreateRequest(ctx context.Context, payload *roundevents.SessionCreateRequestedPayloadV1) ([]handlerwrapper.Result, error)
	HandleSessionTransitionRequest(ctx context.Context, payload *roundevents.SessionTransitionRequestedPayloadV1) ([]handlerwrapper.Result, error)
	HandleContestAddRequest(ctx context.Context, payload *roundevents.ContestAddRequestedPayloadV1) ([]handlerwrapper.Result, error)
	HandleCompetitorRegisterRequest(ctx context.Context, payload *roundevents.CompetitorRegisterRequestedPayloadV1) ([]handlerwrapper.Result, error)
	HandlePanelistAssignRequest(ctx context.Context, payload *roundevents.PanelistAssignRequestedPayloadV1) ([]handlerwrapper.Result, error)
	HandlePanelistReleaseRequest(ctx context.Context, payload *roundevents.PanelistReleaseRequestedPayloadV1) ([]handlerwrapper.Result, error)

	HandleRoundTransitionRequest(ctx context.Context, payload *roundevents.RoundTransitionRequestedPayloadV1) ([]handlerwrapper.Result, error)
	HandleAppearanceTransitionRequest(ctx context.Context, payload *roundevents.AppearanceTransitionRequestedPayloadV1) ([]handlerwrapper.Result, error)

	HandleOverrideRequest(ctx context.Context, payload *roundevents.OverrideRequestedPayloadV1) ([]handlerwrapper.Result, error)
}
