package scoremigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Adding indices for scores module...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `
				CREATE INDEX IF NOT EXISTS idx_scores_panelist_id ON scores(panelist_id);
				CREATE INDEX IF NOT EXISTS idx_scores_status ON scores(status) WHERE status IN ('new', 'flagged', 'revised');
			`); err != nil {
				return fmt.Errorf("failed to add indices to scores: %w", err)
			}
			return nil
		})
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Rolling back indices for scores module...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `
				DROP INDEX IF EXISTS idx_scores_status;
				DROP INDEX IF EXISTS idx_scores_panelist_id;
			`); err != nil {
				return fmt.Errorf("failed to drop indices from scores: %w", err)
			}
			return nil
		})
	})
}
