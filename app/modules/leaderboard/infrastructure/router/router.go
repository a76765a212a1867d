package leaderboardrouter

import (
	"context"
	"log/slog"

	"github.com/Black-And-White-Club/barbershop-bot/app/eventbus"
	leaderboardhandlers "github.com/Black-And-White-Club/barbershop-bot/app/modules/leaderboard/infrastructure/handlers"
	leaderboardevents "github.com/Black-And-White-Club/barbershop-bot/app/shared/events/leaderboard"
	roundevents "github.com/Black-And-White-Club/barbershop-bot/app/shared/events/round"
	"github.com/Black-And-White-Club/barbershop-bot/app/shared/handlerwrapper"
	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel/trace"
)

// LeaderboardRouter registers the leaderboard handlers on a watermill router.
type LeaderboardRouter struct {
	logger     *slog.Logger
	Router     *message.Router
	subscriber eventbus.EventBus
	publisher  eventbus.EventBus
	tracer     trace.Tracer
	metrics    handlerwrapper.Metrics
}

func NewLeaderboardRouter(
	logger *slog.Logger,
	router *message.Router,
	subscriber eventbus.EventBus,
	publisher eventbus.EventBus,
	tracer trace.Tracer,
	handlerMetrics handlerwrapper.Metrics,
) *LeaderboardRouter {
	return &LeaderboardRouter{
		logger:     logger,
		Router:     router,
		subscriber: subscriber,
		publisher:  publisher,
		tracer:     tracer,
		metrics:    handlerMetrics,
	}
}

func (r *LeaderboardRouter) Configure(_ context.Context, handlers leaderboardhandlers.Handlers) error {
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
	handlerName := "leaderboard." + topic

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

func (r *LeaderboardRouter) registerHandlers(h leaderboardhandlers.Handlers) {
	deps := handlerDeps{
		router:     r.Router,
		subscriber: r.subscriber,
		publisher:  r.publisher,
		logger:     r.logger,
		tracer:     r.tracer,
		metrics:    r.metrics,
	}

	registerHandler(deps, leaderboardevents.ContestStandingsRequestedV1, h.HandleContestStandingsRequest)
	registerHandler(deps, leaderboardevents.RoundStandingsRequestedV1, h.HandleRoundStandingsRequest)
	registerHandler(deps, leaderboardevents.RoundOutcomesRequestedV1, h.HandleRoundOutcomesRequest)
	registerHandler(deps, roundevents.RoundFinishedV1, h.HandleRoundFinished)

	r.logger.Info("Leaderboard module handlers registered")
}

func (r *LeaderboardRouter) Close() error {
	return r.Router.Close()
}
