package roundmigrations

import (
	"context"
	"fmt"

	rounddb "github.com/Black-And-White-Club/barbershop-bot/app/modules/round/infrastructure/repositories"
	"github.com/uptrace/bun"
)

type table struct {
	model any
	name  string
	fks   []string
}

// tables are listed parents first.
var tables = []table{
	{(*rounddb.Convention)(nil), "conventions", nil},
	{(*rounddb.Session)(nil), "sessions", []string{
		`(convention_id) REFERENCES conventions (id) ON DELETE CASCADE`,
	}},
	{(*rounddb.Contest)(nil), "contests", []string{
		`(session_id) REFERENCES sessions (id) ON DELETE CASCADE`,
	}},
	{(*rounddb.Competitor)(nil), "competitors", []string{
		`(session_id) REFERENCES sessions (id) ON DELETE CASCADE`,
	}},
	{(*rounddb.Entry)(nil), "entries", []string{
		`(contest_id) REFERENCES contests (id) ON DELETE CASCADE`,
		`(competitor_id) REFERENCES competitors (id) ON DELETE CASCADE`,
	}},
	{(*rounddb.Round)(nil), "rounds", []string{
		`(session_id) REFERENCES sessions (id) ON DELETE CASCADE`,
	}},
	{(*rounddb.Outcome)(nil), "outcomes", []string{
		`(round_id) REFERENCES rounds (id) ON DELETE CASCADE`,
		`(contest_id) REFERENCES contests (id) ON DELETE CASCADE`,
	}},
	{(*rounddb.Panelist)(nil), "panelists", []string{
		`(round_id) REFERENCES rounds (id) ON DELETE CASCADE`,
	}},
	{(*rounddb.Appearance)(nil), "appearances", []string{
		`(round_id) REFERENCES rounds (id) ON DELETE CASCADE`,
		`(competitor_id) REFERENCES competitors (id) ON DELETE CASCADE`,
	}},
	{(*rounddb.Song)(nil), "songs", []string{
		`(appearance_id) REFERENCES appearances (id) ON DELETE CASCADE`,
	}},
}

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating session tables...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			for _, t := range tables {
				q := tx.NewCreateTable().Model(t.model).IfNotExists()
				for _, fk := range t.fks {
					q = q.ForeignKey(fk)
				}
				if _, err := q.Exec(ctx); err != nil {
					return fmt.Errorf("failed to create %s table: %w", t.name, err)
				}
			}
			fmt.Println("Session tables created successfully!")
			return nil
		})
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping session tables...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			for i := len(tables) - 1; i >= 0; i-- {
				if _, err := tx.NewDropTable().Model(tables[i].model).IfExists().Cascade().Exec(ctx); err != nil {
					return fmt.Errorf("failed to drop %s table: %w", tables[i].name, err)
				}
			}
			fmt.Println("Session tables dropped successfully!")
			return nil
		})
	})
}
