//go:build integration

package testutils

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	roundmigrations "github.com/Black-And-White-Club/barbershop-bot/app/modules/round/infrastructure/repositories/migrations"
	scoremigrations "github.com/Black-And-White-Club/barbershop-bot/app/modules/score/infrastructure/repositories/migrations"
	"github.com/Black-And-White-Club/barbershop-bot/integration_tests/containers"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"github.com/riverqueue/river/rivermigrate"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"
)

// appTables lists every table the modules own, children first.
var appTables = []string{
	"scores", "songs", "appearances", "outcomes", "panelists", "rounds",
	"entries", "competitors", "contests", "sessions", "conventions",
}

// Database is a migrated Postgres testcontainer.
type Database struct {
	DB        *bun.DB
	DSN       string
	container *postgres.PostgresContainer
}

// NewDatabase starts Postgres and applies the round then score migrations.
func NewDatabase(ctx context.Context) (*Database, error) {
	container, dsn, err := containers.SetupPostgresContainer(ctx)
	if err != nil {
		return nil, err
	}

	db := bun.NewDB(sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn))), pgdialect.New())
	d := &Database{DB: db, DSN: dsn, container: container}

	if err := runModuleMigrations(ctx, roundmigrations.NewMigrator(db), "round"); err != nil {
		d.Close(ctx)
		return nil, err
	}
	if err := runModuleMigrations(ctx, scoremigrations.NewMigrator(db), "score"); err != nil {
		d.Close(ctx)
		return nil, err
	}
	return d, nil
}

func runModuleMigrations(ctx context.Context, m *migrate.Migrator, name string) error {
	if err := m.Init(ctx); err != nil {
		return fmt.Errorf("failed to init %s migrations: %w", name, err)
	}
	if _, err := m.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to run %s migrations: %w", name, err)
	}
	return nil
}

// CleanupDatabase empties every module table between tests.
func (d *Database) CleanupDatabase(ctx context.Context) error {
	query := fmt.Sprintf("TRUNCATE TABLE %s CASCADE", strings.Join(appTables, ", "))
	if _, err := d.DB.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to truncate tables: %w", err)
	}
	return nil
}

func (d *Database) Close(ctx context.Context) {
	_ = d.DB.Close()
	_ = d.container.Terminate(ctx)
}

// RunRiverMigrations installs the River schema used by the report queue.
func (d *Database) RunRiverMigrations(ctx context.Context) error {
	pool, err := pgxpool.New(ctx, d.DSN)
	if err != nil {
		return fmt.Errorf("failed to create pgx pool: %w", err)
	}
	defer pool.Close()

	migrator, err := rivermigrate.New(riverpgxv5.New(pool), nil)
	if err != nil {
		return fmt.Errorf("failed to create river migrator: %w", err)
	}
	if _, err := migrator.Migrate(ctx, rivermigrate.DirectionUp, nil); err != nil {
		return fmt.Errorf("failed to run river migrations: %w", err)
	}
	return nil
}
