package scoremigrations

import (
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"
)

// Migrations must run after the round module's, since scores reference songs.
var Migrations = migrate.NewMigrations()

func NewMigrator(db *bun.DB) *migrate.Migrator {
	return migrate.NewMigrator(db, Migrations,
		migrate.WithTableName("bun_migrations_score"),
		migrate.WithLocksTableName("bun_migration_locks_score"),
	)
}
