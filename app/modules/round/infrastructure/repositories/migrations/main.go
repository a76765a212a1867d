package roundmigrations

import (
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"
)

var Migrations = migrate.NewMigrations()

// NewMigrator tracks round migrations in their own bookkeeping tables.
func NewMigrator(db *bun.DB) *migrate.Migrator {
	return migrate.NewMigrator(db, Migrations,
		migrate.WithTableName("bun_migrations_round"),
		migrate.WithLocksTableName("bun_migration_locks_round"),
	)
}
