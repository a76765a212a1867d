package scorerouter

import (
	"context"
	"log/slog"

	"github.com/Black-And-White-Club/barbershop-bot/app/eventbus"
	scorehandlers "github.com/Black-And-White-Club/barbershop-bot/app/modules/score/infrastructure/handlers"
	scoreevents "github.com/Black-And-White-Club/barbershop-bot/app/shared/events/score"
	"github.com/Black-And-White-Club/barbershop-bot/app/shared/handlerwrapper"
	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel/trace"
)

// ScoreRouter registers the score command handlers on a watermill router.
type ScoreRouter struct {
	logger     *slog.Logger
	Router     *message.Router
	subscriber eventbus.EventBus
	publisher  eventbus.EventBus
	tracer     trace.Tracer
	metrics    handlerwrapper.Metrics
}

func NewScoreRouter(
	logger *slog.Logger,
	router *message.Router,
	subscriber eventbus.EventBus,
	publisher eventbus.EventBus,
	tracer trace.Tracer,
	handlerMetrics handlerwrapper.Metrics,
) *ScoreRouter {
	return &ScoreRouter{
		logger:     logger,
		Router:     router,
		subscriber: subscriber,
		publisher:  publisher,
		tracer:     tracer,
		metrics:    handlerMetrics,
	}
}

func (r *ScoreRouter) Configure(_ context.Context, handlers scorehandlers.Handlers) error {
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
	handlerName := "score." + topic

	deps.router.AddHandler(
		handlerName,
		topic,
		deps.subscriber,
		"", // the publisher routes by the "topic" metadata of each result
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

func (r *ScoreRouter) registerHandlers(h scorehandlers.Handlers) {
	deps := handlerDeps{
		router:     r.Router,
		subscriber: r.subscriber,
		publisher:  r.publisher,
		logger:     r.logger,
		tracer:     r.tracer,
		metrics:    r.metrics,
	}

	registerHandler(deps, scoreevents.ScoreSubmitRequestedV1, h.HandleSubmitScoreRequest)
	registerHandler(deps, scoreevents.ScoreReviseRequestedV1, h.HandleReviseScoreRequest)
	registerHandler(deps, scoreevents.ScoreVerifyRequestedV1, h.HandleVerifyScoreRequest)
	registerHandler(deps, scoreevents.SongAggregateRequestedV1, h.HandleSongAggregateRequest)

	r.logger.Info("Score module handlers registered")
}

func (r *ScoreRouter) Close() error {
	return r.Router.Close()
}
