package leaderboard

import (
	"context"
	"fmt"

	"github.com/Black-And-White-Club/barbershop-bot/app/eventbus"
	leaderboardservice "github.com/Black-And-White-Club/barbershop-bot/app/modules/leaderboard/application"
	leaderboardhandlers "github.com/Black-And-White-Club/barbershop-bot/app/modules/leaderboard/infrastructure/handlers"
	leaderboardrouter "github.com/Black-And-White-Club/barbershop-bot/app/modules/leaderboard/infrastructure/router"
	"github.com/Black-And-White-Club/barbershop-bot/app/shared/observability"
	"github.com/ThreeDotsLabs/watermill/message"
)

// Module represents the leaderboard module.
type Module struct {
	LeaderboardService leaderboardservice.Service
	LeaderboardRouter  *leaderboardrouter.LeaderboardRouter
	obs                observability.Observability
}

// NewLeaderboardModule wires the ranking service over sessions owned by the
// round module.
func NewLeaderboardModule(
	ctx context.Context,
	obs observability.Observability,
	eventBus eventbus.EventBus,
	router *message.Router,
	sessions leaderboardservice.SessionLookup,
) (*Module, error) {
	logger := obs.Logger.With("module", "leaderboard")
	logger.InfoContext(ctx, "leaderboard.NewLeaderboardModule initializing")

	metrics := obs.Metrics("leaderboard")
	service := leaderboardservice.NewLeaderboardService(sessions, logger, metrics, obs.Tracer)
	handlers := leaderboardhandlers.NewLeaderboardHandlers(service, logger, obs.Tracer)

	lbRouter := leaderboardrouter.NewLeaderboardRouter(logger, router, eventBus, eventBus, obs.Tracer, metrics)
	if err := lbRouter.Configure(ctx, handlers); err != nil {
		return nil, fmt.Errorf("failed to configure leaderboard router: %w", err)
	}

	return &Module{
		LeaderboardService: service,
		LeaderboardRouter:  lbRouter,
		obs:                obs,
	}, nil
}

func (m *Module) Close() error {
	m.obs.Logger.Info("Leaderboard module stopped")
	return nil
}
