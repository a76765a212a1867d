package roundhandlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	roundservice "github.com/Black-And-White-Club/barbershop-bot/app/modules/round/application"
	rounddomain "github.com/Black-And-White-Club/barbershop-bot/app/modules/round/domain"
	roundevents "github.com/Black-And-White-Club/barbershop-bot/app/shared/events/round"
	"github.com/Black-And-White-Club/barbershop-bot/app/shared/handlerwrapper"
	"github.com/Black-And-White-Club/barbershop-bot/app/shared/lifecycle"
	"github.com/Black-And-White-Club/barbershop-bot/app/shared/observability/attr"
	"github.com/Black-And-White-Club/barbershop-bot/app/shared/results"
	sharedtypes "github.com/Black-And-White-Club/barbershop-bot/app/shared/types"
	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel/trace"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// RoundHandlers implements the Handlers interface.
type RoundHandlers struct {
	service roundservice.Service
	logger  *slog.Logger
	tracer  trace.Tracer
}

// NewRoundHandlers creates a new RoundHandlers.
func NewRoundHandlers(
	service roundservice.Service,
	logger *slog.Logger,
	tracer trace.Tracer,
) Handlers {
	return &RoundHandlers{
		service: service,
		logger:  logger,
		tracer:  tracer,
	}
}

// rejected turns a business failure into a request-failed event. A blocked
// state transition names the entity that stood in the way.
func (h *RoundHandlers) rejected(ctx context.Context, operation string, sessionID sharedtypes.SessionID, err error) []handlerwrapper.Result {
	p := &roundevents.RoundRequestFailedPayloadV1{
		SessionID: sessionID,
		Operation: operation,
		Reason:    err.Error(),
	}
	var ste *lifecycle.StateTransitionError
	if errors.As(err, &ste) {
		p.Entity = ste.Entity
		p.EntityID = ste.ID
		p.BlockingEntity = ste.BlockingEntity
		p.BlockingID = ste.BlockingID
	}

	h.logger.WarnContext(ctx, "Round request rejected",
		attr.ExtractCorrelationID(ctx),
		attr.String("operation", operation),
		attr.ID("session_id", sessionID),
		attr.Error(err),
	)
	return []handlerwrapper.Result{{Topic: roundevents.RoundRequestFailedV1, Payload: p}}
}

// invalid checks the payload's struct tags. A malformed command is answered
// with a failure event, never retried.
func (h *RoundHandlers) invalid(ctx context.Context, operation string, sessionID sharedtypes.SessionID, payload any) []handlerwrapper.Result {
	if err := validate.Struct(payload); err != nil {
		return h.rejected(ctx, operation, sessionID, fmt.Errorf("%w: %v", rounddomain.ErrInvalidInput, err))
	}
	return nil
}

// respond maps a service result onto the outgoing events. Infrastructure
// errors are returned so the router retries the message.
func respond[S any](
	h *RoundHandlers,
	ctx context.Context,
	operation string,
	sessionID sharedtypes.SessionID,
	result results.OperationResult[S, error],
	err error,
	success func(S) []handlerwrapper.Result,
) ([]handlerwrapper.Result, error) {
	if err != nil {
		return nil, err
	}
	if result.IsFailure() {
		return h.rejected(ctx, operation, sessionID, *result.Failure), nil
	}
	if !result.IsSuccess() {
		return nil, fmt.Errorf("%s: empty result", operation)
	}
	return success(*result.Success), nil
}
