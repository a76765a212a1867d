package scoreservice

import (
	"context"
	"errors"
	"fmt"

	scoredomain "github.com/Black-And-White-Club/barbershop-bot/app/modules/score/domain"
	scoredb "github.com/Black-And-White-Club/barbershop-bot/app/modules/score/infrastructure/repositories"
	"github.com/Black-And-White-Club/barbershop-bot/app/shared/results"
	sharedtypes "github.com/Black-And-White-Club/barbershop-bot/app/shared/types"
	"github.com/uptrace/bun"
)

// VerifyScore checks one score against its category average on the song and
// persists the flag. Calling it again on unchanged scores writes nothing new.
func (s *ScoreService) VerifyScore(ctx context.Context, id sharedtypes.ScoreID) (results.OperationResult[VerifyScoreResult, error], error) {
	return withTelemetry(s, ctx, "VerifyScore", id, func(ctx context.Context) (results.OperationResult[VerifyScoreResult, error], error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (results.OperationResult[VerifyScoreResult, error], error) {
			score, err := s.repo.GetScore(ctx, db, id)
			if err != nil {
				if errors.Is(err, scoredb.ErrNotFound) {
					return results.FailureResult[VerifyScoreResult, error](fmt.Errorf("%w: %s", ErrScoreNotFound, id)), nil
				}
				return results.OperationResult[VerifyScoreResult, error]{}, err
			}

			scores, err := s.repo.ListScoresBySong(ctx, db, score.SongID)
			if err != nil {
				return results.OperationResult[VerifyScoreResult, error]{}, err
			}
			song := sharedtypes.Song{ID: score.SongID, Scores: scores}
			variance, err := scoredomain.VerifyScore(&song, id)
			if err != nil {
				return results.FailureResult[VerifyScoreResult, error](err), nil
			}

			var verified sharedtypes.Score
			for _, sc := range song.Scores {
				if sc.ID == id {
					verified = sc
				}
			}
			if variance {
				if err := s.repo.UpdateScores(ctx, db, []sharedtypes.Score{verified}); err != nil {
					return results.OperationResult[VerifyScoreResult, error]{}, err
				}
				s.metrics.RecordScoresFlagged(ctx, string(verified.Category), 1)
			}
			return results.SuccessResult[VerifyScoreResult, error](VerifyScoreResult{Score: verified, Variance: variance}), nil
		})
	})
}
