package score

import (
	"context"
	"fmt"

	"github.com/Black-And-White-Club/barbershop-bot/app/eventbus"
	scoreservice "github.com/Black-And-White-Club/barbershop-bot/app/modules/score/application"
	scorehandlers "github.com/Black-And-White-Club/barbershop-bot/app/modules/score/infrastructure/handlers"
	scoredb "github.com/Black-And-White-Club/barbershop-bot/app/modules/score/infrastructure/repositories"
	scorerouter "github.com/Black-And-White-Club/barbershop-bot/app/modules/score/infrastructure/router"
	"github.com/Black-And-White-Club/barbershop-bot/app/shared/observability"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/uptrace/bun"
)

// Module represents the score module.
type Module struct {
	ScoreService scoreservice.Service
	Repository   scoredb.Repository
	ScoreRouter  *scorerouter.ScoreRouter
	obs          observability.Observability
}

// NewScoreModule wires the score repository, service, handlers and router.
// songs resolves songs owned by the round module.
func NewScoreModule(
	ctx context.Context,
	obs observability.Observability,
	db *bun.DB,
	eventBus eventbus.EventBus,
	router *message.Router,
	songs scoreservice.SongLookup,
) (*Module, error) {
	logger := obs.Logger.With("module", "score")
	logger.InfoContext(ctx, "score.NewScoreModule initializing")

	metrics := obs.Metrics("score")
	repo := scoredb.NewRepository(db)
	service := scoreservice.NewScoreService(repo, songs, logger, metrics, obs.Tracer, db)
	handlers := scorehandlers.NewScoreHandlers(service, logger, obs.Tracer)

	scoreRouter := scorerouter.NewScoreRouter(logger, router, eventBus, eventBus, obs.Tracer, metrics)
	if err := scoreRouter.Configure(ctx, handlers); err != nil {
		return nil, fmt.Errorf("failed to configure score router: %w", err)
	}

	return &Module{
		ScoreService: service,
		Repository:   repo,
		ScoreRouter:  scoreRouter,
		obs:          obs,
	}, nil
}

// Close logs the shutdown. The shared router is closed by the app.
func (m *Module) Close() error {
	m.obs.Logger.Info("Score module stopped")
	return nil
}
