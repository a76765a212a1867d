package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/Black-And-White-Club/barbershop-bot/app/eventbus"
	"github.com/Black-And-White-Club/barbershop-bot/app/modules/leaderboard"
	leaderboardadapters "github.com/Black-And-White-Club/barbershop-bot/app/modules/leaderboard/infrastructure/adapters"
	"github.com/Black-And-White-Club/barbershop-bot/app/modules/round"
	roundservice "github.com/Black-And-White-Club/barbershop-bot/app/modules/round/application"
	roundqueue "github.com/Black-And-White-Club/barbershop-bot/app/modules/round/infrastructure/queue"
	"github.com/Black-And-White-Club/barbershop-bot/app/modules/score"
	scoredb "github.com/Black-And-White-Club/barbershop-bot/app/modules/score/infrastructure/repositories"
	"github.com/Black-And-White-Club/barbershop-bot/app/shared/observability"
	"github.com/Black-And-White-Club/barbershop-bot/app/shared/observability/attr"
	"github.com/Black-And-White-Club/barbershop-bot/config"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/components/metrics"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"golang.org/x/sync/errgroup"
)

const serviceName = "barbershop-bot"

// App holds the process-wide dependencies and the contest modules.
type App struct {
	Config   *config.Config
	Obs      observability.Observability
	DB       *bun.DB
	EventBus eventbus.EventBus
	Router   *message.Router

	RoundModule       *round.Module
	ScoreModule       *score.Module
	LeaderboardModule *leaderboard.Module

	// queue is nil when reports are published directly.
	queue         *roundqueue.Service
	metricsServer *http.Server
}

// NewApp connects to Postgres and NATS and wires every module onto one
// watermill router.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	obs := observability.New(observability.Config{
		ServiceName: serviceName,
		LogLevel:    cfg.Observability.LogLevel,
		LogFormat:   cfg.Observability.LogFormat,
	})
	logger := obs.Logger.With(attr.String("environment", cfg.Observability.Environment))

	app := &App{Config: cfg, Obs: obs}

	app.DB = bun.NewDB(sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.Postgres.DSN))), pgdialect.New())
	if err := app.DB.PingContext(ctx); err != nil {
		app.DB.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	bus, err := eventbus.NewEventBus(ctx, cfg.NATS.URL, cfg.NATS.ConsumerPrefix, logger)
	if err != nil {
		app.DB.Close()
		return nil, fmt.Errorf("failed to create event bus: %w", err)
	}
	app.EventBus = bus

	router, err := newRouter(logger)
	if err != nil {
		app.closeInfra(logger)
		return nil, err
	}
	app.Router = router
	if obs.Registry != nil {
		metrics.NewPrometheusMetricsBuilder(obs.Registry, "barbershop", "router").AddPrometheusRouterMetrics(router)
	}

	notifier, err := app.newNotifier(ctx, logger)
	if err != nil {
		app.closeInfra(logger)
		return nil, err
	}

	if err := app.initModules(ctx, notifier); err != nil {
		app.closeInfra(logger)
		return nil, err
	}

	if addr := cfg.Observability.MetricsAddress; addr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(obs.Registry, promhttp.HandlerOpts{}))
		app.metricsServer = &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	}

	logger.InfoContext(ctx, "Application initialized")
	return app, nil
}

func newRouter(logger *slog.Logger) (*message.Router, error) {
	wmLogger := watermill.NewSlogLogger(logger)
	router, err := message.NewRouter(message.RouterConfig{CloseTimeout: 30 * time.Second}, wmLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to create watermill router: %w", err)
	}
	router.AddMiddleware(
		middleware.CorrelationID,
		middleware.Retry{
			MaxRetries:      3,
			InitialInterval: 100 * time.Millisecond,
			MaxInterval:     2 * time.Second,
			Multiplier:      2,
			Logger:          wmLogger,
		}.Middleware,
		middleware.Recoverer,
	)
	return router, nil
}

// newNotifier returns the River queue when enabled, otherwise a notifier that
// publishes report requests straight onto the bus.
func (a *App) newNotifier(ctx context.Context, logger *slog.Logger) (roundservice.Notifier, error) {
	if !a.Config.Queue.Enabled {
		logger.InfoContext(ctx, "Report queue disabled, publishing reports directly")
		return roundqueue.NewDirectNotifier(a.EventBus), nil
	}
	q, err := roundqueue.NewService(
		ctx, a.DB, logger, a.Config.Postgres.DSN, a.Config.Queue.MaxWorkers, a.Obs.Metrics("queue"), a.EventBus,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create report queue: %w", err)
	}
	a.queue = q
	return q, nil
}

// initModules builds round before score and leaderboard, which read songs and
// sessions through round's repository.
func (a *App) initModules(ctx context.Context, notifier roundservice.Notifier) error {
	roundModule, err := round.NewRoundModule(
		ctx, a.Obs, a.DB, a.EventBus, a.Router,
		scoredb.NewRepository(a.DB),
		notifier,
		roundservice.Config{
			DefaultSpots: a.Config.Contest.DefaultSpots,
			Seed:         a.Config.Contest.RandomSeed,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to initialize round module: %w", err)
	}
	a.RoundModule = roundModule

	scoreModule, err := score.NewScoreModule(ctx, a.Obs, a.DB, a.EventBus, a.Router, roundModule.Songs)
	if err != nil {
		return fmt.Errorf("failed to initialize score module: %w", err)
	}
	a.ScoreModule = scoreModule

	leaderboardModule, err := leaderboard.NewLeaderboardModule(
		ctx, a.Obs, a.EventBus, a.Router,
		leaderboardadapters.NewSessionLookupAdapter(roundModule.Repository),
	)
	if err != nil {
		return fmt.Errorf("failed to initialize leaderboard module: %w", err)
	}
	a.LeaderboardModule = leaderboardModule
	return nil
}

// Run starts the router, the report queue and the metrics server, and blocks
// until ctx is cancelled or one of them fails.
func (a *App) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := a.Router.Run(ctx); err != nil {
			return fmt.Errorf("watermill router stopped: %w", err)
		}
		return nil
	})

	if a.queue != nil {
		if err := a.queue.Start(ctx); err != nil {
			return err
		}
		g.Go(func() error {
			<-ctx.Done()
			stopCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			return a.queue.Stop(stopCtx)
		})
	}

	if a.metricsServer != nil {
		g.Go(func() error {
			a.Obs.Logger.Info("Serving metrics", attr.String("address", a.metricsServer.Addr))
			if err := a.metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("metrics server: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return a.metricsServer.Shutdown(shutdownCtx)
		})
	}

	return g.Wait()
}

// Close stops the modules, then releases the router, bus and database.
func (a *App) Close() error {
	logger := a.Obs.Logger
	for _, m := range []interface{ Close() error }{a.LeaderboardModule, a.ScoreModule, a.RoundModule} {
		if err := m.Close(); err != nil {
			logger.Error("Failed to close module", attr.Error(err))
		}
	}
	if err := a.Router.Close(); err != nil {
		logger.Error("Failed to close router", attr.Error(err))
	}
	a.closeInfra(logger)
	logger.Info("Application shut down")
	return nil
}

func (a *App) closeInfra(logger *slog.Logger) {
	if a.EventBus != nil {
		if err := a.EventBus.Close(); err != nil {
			logger.Error("Failed to close event bus", attr.Error(err))
		}
	}
	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			logger.Error("Failed to close database", attr.Error(err))
		}
	}
}
