package round

import (
	"context"
	"fmt"

	"github.com/Black-And-White-Club/barbershop-bot/app/eventbus"
	roundservice "github.com/Black-And-White-Club/barbershop-bot/app/modules/round/application"
	roundadapters "github.com/Black-And-White-Club/barbershop-bot/app/modules/round/infrastructure/adapters"
	roundhandlers "github.com/Black-And-White-Club/barbershop-bot/app/modules/round/infrastructure/handlers"
	rounddb "github.com/Black-And-White-Club/barbershop-bot/app/modules/round/infrastructure/repositories"
	roundrouter "github.com/Black-And-White-Club/barbershop-bot/app/modules/round/infrastructure/router"
	"github.com/Black-And-White-Club/barbershop-bot/app/shared/observability"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/uptrace/bun"
)

// Module represents the round module.
type Module struct {
	RoundService roundservice.Service
	Repository   rounddb.Repository
	RoundRouter  *roundrouter.RoundRouter
	// Songs resolves songs for the score module.
	Songs        *roundadapters.SongLookupAdapter

	obs observability.Observability
}

// NewRoundModule wires the round repository, service, handlers and router.
// scores is the score module's store; notifier receives report requests.
func NewRoundModule(
	ctx context.Context,
	obs observability.Observability,
	db *bun.DB,
	eventBus eventbus.EventBus,
	router *message.Router,
	scores roundservice.ScoreStore,
	notifier roundservice.Notifier,
	cfg roundservice.Config,
) (*Module, error) {
	logger := obs.Logger.With("module", "round")
	logger.InfoContext(ctx, "round.NewRoundModule initializing")

	metrics := obs.Metrics("round")
	repo := rounddb.NewRepository(db)
	service := roundservice.NewRoundService(repo, scores, notifier, logger, metrics, obs.Tracer, db, cfg)
	handlers := roundhandlers.NewRoundHandlers(service, logger, obs.Tracer)

	roundRouter := roundrouter.NewRoundRouter(logger, router, eventBus, eventBus, obs.Tracer, metrics)
	if err := roundRouter.Configure(ctx, handlers); err != nil {
		return nil, fmt.Errorf("failed to configure round router: %w", err)
	}

	return &Module{
		RoundService: service,
		Repository:   repo,
		RoundRouter:  roundRouter,
		Songs:        roundadapters.NewSongLookupAdapter(repo),
		obs:          obs,
	}, nil
}

// Close logs the shutdown. The shared router is closed by the app.
func (m *Module) Close() error {
	m.obs.Logger.Info("Round module stopped")
	return nil
}
