package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"slices"
	"strings"

	roundmigrations "github.com/Black-And-White-Club/barbershop-bot/app/modules/round/infrastructure/repositories/migrations"
	scoremigrations "github.com/Black-And-White-Club/barbershop-bot/app/modules/score/infrastructure/repositories/migrations"
	"github.com/Black-And-White-Club/barbershop-bot/config"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"github.com/riverqueue/river/rivermigrate"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"
	"github.com/urfave/cli/v2"
)

// moduleMigrator pairs a module name with its migrator. Order matters: scores
// reference songs, so round migrates first and rolls back last.
type moduleMigrator struct {
	name     string
	migrator *migrate.Migrator
}

func main() {
	var (
		cfg       *config.Config
		db        *bun.DB
		migrators []moduleMigrator
	)

	cliApp := &cli.App{
		Name:  "bun",
		Usage: "barbershop-bot database tooling",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Value: "config.yaml", Usage: "path to the configuration file"},
		},
		Before: func(c *cli.Context) error {
			var err error
			cfg, err = config.LoadConfig(c.String("config"))
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			db = bun.NewDB(sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.Postgres.DSN))), pgdialect.New())
			migrators = []moduleMigrator{
				{name: "round", migrator: roundmigrations.NewMigrator(db)},
				{name: "score", migrator: scoremigrations.NewMigrator(db)},
			}
			return nil
		},
		After: func(*cli.Context) error {
			if db != nil {
				return db.Close()
			}
			return nil
		},
		Commands: []*cli.Command{
			newMultiModuleDBCommand(func() []moduleMigrator { return migrators }),
			newQueueCommand(func() string { return cfg.Postgres.DSN }),
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newMultiModuleDBCommand(migrators func() []moduleMigrator) *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "database migrations",
		Subcommands: []*cli.Command{
			{
				Name:  "init",
				Usage: "create migration tables",
				Action: func(c *cli.Context) error {
					for _, m := range migrators() {
						fmt.Printf("Initializing migrations for module: %s\n", m.name)
						if err := m.migrator.Init(c.Context); err != nil {
							return fmt.Errorf("init %s: %w", m.name, err)
						}
					}
					return nil
				},
			},
			{
				Name:  "migrate",
				Usage: "migrate database",
				Action: func(c *cli.Context) error {
					for _, m := range migrators() {
						if err := m.migrator.Lock(c.Context); err != nil {
							return err
						}
						group, err := m.migrator.Migrate(c.Context)
						if unlockErr := m.migrator.Unlock(c.Context); unlockErr != nil && err == nil {
							err = unlockErr
						}
						if err != nil {
							return fmt.Errorf("migrate %s: %w", m.name, err)
						}
						if group.IsZero() {
							fmt.Printf("No new migrations to run for module: %s\n", m.name)
						} else {
							fmt.Printf("Migrated module: %s to %s\n", m.name, group)
						}
					}
					return nil
				},
			},
			{
				Name:  "rollback",
				Usage: "rollback the last migration group",
				Action: func(c *cli.Context) error {
					ordered := slices.Clone(migrators())
					slices.Reverse(ordered)
					for _, m := range ordered {
						if err := m.migrator.Lock(c.Context); err != nil {
							return err
						}
						group, err := m.migrator.Rollback(c.Context)
						if unlockErr := m.migrator.Unlock(c.Context); unlockErr != nil && err == nil {
							err = unlockErr
						}
						if err != nil {
							return fmt.Errorf("rollback %s: %w", m.name, err)
						}
						if group.IsZero() {
							fmt.Printf("No groups to roll back for module: %s\n", m.name)
						} else {
							fmt.Printf("Rolled back module: %s to %s\n", m.name, group)
						}
					}
					return nil
				},
			},
			{
				Name:  "status",
				Usage: "print migrations status",
				Action: func(c *cli.Context) error {
					for _, m := range migrators() {
						ms, err := m.migrator.MigrationsWithStatus(c.Context)
						if err != nil {
							return fmt.Errorf("status %s: %w", m.name, err)
						}
						fmt.Printf("[%s] migrations: %s\n", m.name, ms)
						fmt.Printf("[%s] unapplied migrations: %s\n", m.name, ms.Unapplied())
						fmt.Printf("[%s] last migration group: %s\n", m.name, ms.LastGroup())
					}
					return nil
				},
			},
			{
				Name:      "create_go",
				Usage:     "create Go migration",
				ArgsUsage: "<module> <name...>",
				Action: func(c *cli.Context) error {
					moduleName := c.Args().First()
					idx := slices.IndexFunc(migrators(), func(m moduleMigrator) bool { return m.name == moduleName })
					if idx < 0 {
						return fmt.Errorf("invalid module name: %s", moduleName)
					}

					name := strings.Join(c.Args().Tail(), "_")
					mf, err := migrators()[idx].migrator.CreateGoMigration(c.Context, name)
					if err != nil {
						return err
					}
					fmt.Printf("Created migration for module %s: %s (%s)\n", moduleName, mf.Name, mf.Path)
					return nil
				},
			},
		},
	}
}

// newQueueCommand manages the River schema used by the report queue.
func newQueueCommand(dsn func() string) *cli.Command {
	run := func(c *cli.Context, direction rivermigrate.Direction) error {
		pool, err := pgxpool.New(c.Context, dsn())
		if err != nil {
			return fmt.Errorf("failed to create pgx pool: %w", err)
		}
		defer pool.Close()

		migrator, err := rivermigrate.New(riverpgxv5.New(pool), nil)
		if err != nil {
			return fmt.Errorf("failed to create river migrator: %w", err)
		}
		res, err := migrator.Migrate(c.Context, direction, nil)
		if err != nil {
			return fmt.Errorf("river migrate %s: %w", direction, err)
		}
		if len(res.Versions) == 0 {
			fmt.Println("River schema already up to date")
		}
		for _, v := range res.Versions {
			fmt.Printf("River migration %s: version %d\n", direction, v.Version)
		}
		return nil
	}

	return &cli.Command{
		Name:  "queue",
		Usage: "report queue schema",
		Subcommands: []*cli.Command{
			{
				Name:   "migrate",
				Usage:  "apply River migrations",
				Action: func(c *cli.Context) error { return run(c, rivermigrate.DirectionUp) },
			},
			{
				Name:   "rollback",
				Usage:  "roll back River migrations",
				Action: func(c *cli.Context) error { return run(c, rivermigrate.DirectionDown) },
			},
		},
	}
}
