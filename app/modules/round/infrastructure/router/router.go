package roundrouter

import (
	"context"
	"log/slog"

	"github.com/Black-And-White-Club/barbershop-bot/app/eventbus"
	roundhandlers "github.com/Black-And-White-Club/barbershop-bot/app/modules/round/infrastructure/handlers"
	roundevents "github.com/Black-And-White-Club/barbershop-bot/app/shared/events/round"
	"github.com/Black-And-White-Club/barbershop-bot/app/shared/handlerwrapper"
	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel/trace"
)

// RoundRouter registers the round command handlers on a watermill router.
type RoundRouter struct {
	logger     *slog.Logger
	Router     *message.Router
	subscriber eventbus.EventBus
	publisher  eventbus.EventBus
	tracer     trace.Tracer
	metrics    handlerwrapper.Metrics
}

func NewRoundRouter(
	logger *slog.Logger,
	router *message.Router,
	subscriber eventbus.EventBus,
	publisher eventbus.EventBus,
	tracer trace.Tracer,
	handlerMetrics handlerwrapper.Metrics,
) *RoundRouter {
	return &RoundRouter{
		logger:     logger,
		Router:     router,
		subscriber: subscriber,
		publisher:  publisher,
		tracer:     tracer,
		metrics:    handlerMetrics,
	}
}

func (r *RoundRouter) Configure(_ context.Context, handlers roundhandlers.Handlers) error {
	r.registerHandlers(handlers)
	return nil
}

type handlerDeps struct {
	router     *message.Router
	subscriber eventbus.EventBus
	publisher  eventbus.EventBus
	logger     *slog.Logger
	tracer     trace.Tracer
	metrics    handlerwrapper.Metrics
}

func registerHandler[T any](
	deps handlerDeps,
	topic string,
	handler func(context.Context, *T) ([]handlerwrapper.Result, error),
) {
	handlerName := "round." + topic

	deps.router.AddHandler(
		handlerName,
		topic,
		deps.subscriber,
		"",
		deps.publisher,
		handlerwrapper.WrapTransformingTyped(
			handlerName,
			deps.logger,
			deps.tracer,
			deps.metrics,
			handler,
		),
	)
}

func (r *RoundRouter) registerHandlers(h roundhandlers.Handlers) {
	deps := handlerDeps{
		router:     r.Router,
		subscriber: r.subscriber,
		publisher:  r.publisher,
		logger:     r.logger,
		tracer:     r.tracer,
		metrics:    r.metrics,
	}

	registerHandler(deps, roundevents.ConventionCreateRequestedV1, h.HandleConventionCreateRequest)
	registerHandler(deps, roundevents.ConventionTransitionRequestedV1, h.HandleConventionTransitionRequest)

	registerHandler(deps, roundevents.SessionCreateRequestedV1, h.HandleSessionCreateRequest)
	registerHandler(deps, roundevents.SessionTransitionRequestedV1, h.HandleSessionTransitionRequest)
	registerHandler(deps, roundevents.ContestAddRequestedV1, h.HandleContestAddRequest)
	registerHandler(deps, roundevents.CompetitorRegisterRequestedV1, h.HandleCompetitorRegisterRequest)
	registerHandler(deps, roundevents.PanelistAssignRequestedV1, h.HandlePanelistAssignRequest)
	registerHandler(deps, roundevents.PanelistReleaseRequestedV1, h.HandlePanelistReleaseRequest)

	registerHandler(deps, roundevents.RoundTransitionRequestedV1, h.HandleRoundTransitionRequest)
	registerHandler(deps, roundevents.AppearanceTransitionRequestedV1, h.HandleAppearanceTransitionRequest)
	registerHandler(deps, roundevents.OverrideRequestedV1, h.HandleOverrideRequest)

	r.logger.Info("Round module handlers registered")
}

func (r *RoundRouter) Close() error {
	return r.Router.Close()
}
