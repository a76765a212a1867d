package scoredb

import (
	"context"

	sharedtypes "github.com/Black-And-White-Club/barbershop-bot/app/shared/types"
	"github.com/uptrace/bun"
)

// Repository defines the contract for score persistence. A nil db uses the
// repository's own connection.
type Repository interface {
	GetScore(ctx context.Context, db bun.IDB, id sharedtypes.ScoreID) (*sharedtypes.Score, error)

	// GetScoreByPanelist returns the panelist's score for the song.
	GetScoreByPanelist(ctx context.Context, db bun.IDB, songID sharedtypes.SongID, panelistID sharedtypes.PanelistID) (*sharedtypes.Score, error)

	// UpsertScore inserts a submission or replaces the points of the
	// panelist's existing score on the song. A score that has left new is
	// not touched and ErrNoRowsAffected is returned.
	UpsertScore(ctx context.Context, db bun.IDB, score sharedtypes.Score) error

	// UpdateScores writes status, flag and revision fields for existing scores.
	UpdateScores(ctx context.Context, db bun.IDB, scores []sharedtypes.Score) error

	ListScoresBySong(ctx context.Context, db bun.IDB, songID sharedtypes.SongID) ([]sharedtypes.Score, error)

	// ListScoresByAppearances returns every score on the songs of the given appearances.
	ListScoresByAppearances(ctx context.Context, db bun.IDB, ids []sharedtypes.AppearanceID) ([]sharedtypes.Score, error)
}
