package scoreservice

import (
	"context"

	"github.com/Black-And-White-Club/barbershop-bot/app/shared/results"
	sharedtypes "github.com/Black-And-White-Club/barbershop-bot/app/shared/types"
	"github.com/uptrace/bun"
)

// Service records judges' scores and answers score queries. Business
// failures come back as the Failure of the result with a nil error.
type Service interface {
	SubmitScore(ctx context.Context, req SubmitScoreRequest) (results.OperationResult[sharedtypes.Score, error], error)
	ReviseScore(ctx context.Context, id sharedtypes.ScoreID, points int, actor string) (results.OperationResult[sharedtypes.Score, error], error)
	VerifyScore(ctx context.Context, id sharedtypes.ScoreID) (results.OperationResult[VerifyScoreResult, error], error)
	GetSongAggregate(ctx context.Context, songID sharedtypes.SongID) (results.OperationResult[sharedtypes.Totals, error], error)
	ListSongScores(ctx context.Context, songID sharedtypes.SongID) ([]sharedtypes.Score, error)
}

type SubmitScoreRequest struct {
	SongID     sharedtypes.SongID
	PanelistID sharedtypes.PanelistID
	Points     int
	Penalty    int
}

type VerifyScoreResult struct {
	Score    sharedtypes.Score
	Variance bool
}

// SongContext is what submission needs to know about the song being scored.
type SongContext struct {
	SongID           sharedtypes.SongID
	AppearanceID     sharedtypes.AppearanceID
	RoundID          sharedtypes.RoundID
	SessionID        sharedtypes.SessionID
	AppearanceStatus sharedtypes.AppearanceStatus
	Panelists        []sharedtypes.Panelist
}

// SongLookup resolves a song to its appearance and round panel. It returns
// ErrSongNotFound for unknown songs.
type SongLookup interface {
	GetSongContext(ctx context.Context, db bun.IDB, songID sharedtypes.SongID) (*SongContext, error)
}
