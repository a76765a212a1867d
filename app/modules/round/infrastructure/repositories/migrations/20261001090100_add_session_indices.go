package roundmigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Adding indices for round module...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `
				CREATE INDEX IF NOT EXISTS idx_sessions_convention_id ON sessions(convention_id);
				CREATE INDEX IF NOT EXISTS idx_contests_session_id ON contests(session_id);
				CREATE INDEX IF NOT EXISTS idx_competitors_session_id ON competitors(session_id);
				CREATE INDEX IF NOT EXISTS idx_entries_session_id ON entries(session_id);
				CREATE UNIQUE INDEX IF NOT EXISTS idx_entries_contest_competitor ON entries(contest_id, competitor_id);
				CREATE UNIQUE INDEX IF NOT EXISTS idx_rounds_session_num ON rounds(session_id, num);
				CREATE INDEX IF NOT EXISTS idx_outcomes_session_id ON outcomes(session_id);
				CREATE INDEX IF NOT EXISTS idx_panelists_round_id ON panelists(round_id);
				CREATE INDEX IF NOT EXISTS idx_panelists_session_id ON panelists(session_id);
				CREATE INDEX IF NOT EXISTS idx_appearances_session_id ON appearances(session_id);
				CREATE UNIQUE INDEX IF NOT EXISTS idx_appearances_round_competitor ON appearances(round_id, competitor_id);
				CREATE INDEX IF NOT EXISTS idx_songs_session_id ON songs(session_id);
				CREATE INDEX IF NOT EXISTS idx_songs_appearance_id ON songs(appearance_id);
			`); err != nil {
				return fmt.Errorf("failed to add indices to round tables: %w", err)
			}
			return nil
		})
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Rolling back indices for round module...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `
				DROP INDEX IF EXISTS idx_songs_appearance_id;
				DROP INDEX IF EXISTS idx_songs_session_id;
				DROP INDEX IF EXISTS idx_appearances_round_competitor;
				DROP INDEX IF EXISTS idx_appearances_session_id;
				DROP INDEX IF EXISTS idx_panelists_session_id;
				DROP INDEX IF EXISTS idx_panelists_round_id;
				DROP INDEX IF EXISTS idx_outcomes_session_id;
				DROP INDEX IF EXISTS idx_rounds_session_num;
				DROP INDEX IF EXISTS idx_entries_contest_competitor;
				DROP INDEX IF EXISTS idx_entries_session_id;
				DROP INDEX IF EXISTS idx_competitors_session_id;
				DROP INDEX IF EXISTS idx_contests_session_id;
				DROP INDEX IF EXISTS idx_sessions_convention_id;
			`); err != nil {
				return fmt.Errorf("failed to drop indices from round tables: %w", err)
			}
			return nil
		})
	})
}
