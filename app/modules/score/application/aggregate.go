package scoreservice

import (
	"context"
	"fmt"

	scoredomain "github.com/Black-And-White-Club/barbershop-bot/app/modules/score/domain"
	"github.com/Black-And-White-Club/barbershop-bot/app/shared/results"
	sharedtypes "github.com/Black-And-White-Club/barbershop-bot/app/shared/types"
)

// GetSongAggregate recomputes a song's totals from its stored scores. A song
// without official scores is a failure carrying ErrIncompleteAggregate.
func (s *ScoreService) GetSongAggregate(ctx context.Context, songID sharedtypes.SongID) (results.OperationResult[sharedtypes.Totals, error], error) {
	return withTelemetry(s, ctx, "GetSongAggregate", songID, func(ctx context.Context) (results.OperationResult[sharedtypes.Totals, error], error) {
		scores, err := s.repo.ListScoresBySong(ctx, nil, songID)
		if err != nil {
			return results.OperationResult[sharedtypes.Totals, error]{}, err
		}
		song := sharedtypes.Song{ID: songID, Scores: scores}
		totals := scoredomain.AggregateSong(&song)
		if err := scoredomain.CheckComplete("song", songID, totals); err != nil {
			return results.FailureResult[sharedtypes.Totals, error](err), nil
		}
		return results.SuccessResult[sharedtypes.Totals, error](totals), nil
	})
}

// ListSongScores returns the stored scores of a song.
func (s *ScoreService) ListSongScores(ctx context.Context, songID sharedtypes.SongID) ([]sharedtypes.Score, error) {
	scores, err := s.repo.ListScoresBySong(ctx, nil, songID)
	if err != nil {
		return nil, fmt.Errorf("ListSongScores: %w", err)
	}
	return scores, nil
}
