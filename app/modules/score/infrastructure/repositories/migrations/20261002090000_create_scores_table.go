package scoremigrations

import (
	"context"
	"fmt"

	scoredb "github.com/Black-And-White-Club/barbershop-bot/app/modules/score/infrastructure/repositories"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating scores table...")

		if _, err := db.NewCreateTable().
			Model((*scoredb.Score)(nil)).
			IfNotExists().
			ForeignKey(`(song_id) REFERENCES songs (id) ON DELETE CASCADE`).
			Exec(ctx); err != nil {
			return fmt.Errorf("failed to create scores table: %w", err)
		}

		fmt.Println("Scores table created successfully!")
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping scores table...")

		if _, err := db.NewDropTable().Model((*scoredb.Score)(nil)).IfExists().Exec(ctx); err != nil {
			return fmt.Errorf("failed to drop scores table: %w", err)
		}

		fmt.Println("Scores table dropped successfully!")
		return nil
	})
}
