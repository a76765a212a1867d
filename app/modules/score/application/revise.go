package scoreservice

import (
	"context"
	"errors"
	"fmt"

	scoredomain "github.com/Black-And-White-Club/barbershop-bot/app/modules/score/domain"
	scoredb "github.com/Black-And-White-Club/barbershop-bot/app/modules/score/infrastructure/repositories"
	"github.com/Black-And-White-Club/barbershop-bot/app/shared/observability/attr"
	"github.com/Black-And-White-Club/barbershop-bot/app/shared/results"
	sharedtypes "github.com/Black-And-White-Club/barbershop-bot/app/shared/types"
	"github.com/uptrace/bun"
)

// ReviseScore applies a human correction to a flagged score. The next
// verification of its appearance confirms it.
func (s *ScoreService) ReviseScore(ctx context.Context, id sharedtypes.ScoreID, points int, actor string) (results.OperationResult[sharedtypes.Score, error], error) {
	return withTelemetry(s, ctx, "ReviseScore", id, func(ctx context.Context) (results.OperationResult[sharedtypes.Score, error], error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (results.OperationResult[sharedtypes.Score, error], error) {
			score, err := s.repo.GetScore(ctx, db, id)
			if err != nil {
				if errors.Is(err, scoredb.ErrNotFound) {
					return results.FailureResult[sharedtypes.Score, error](fmt.Errorf("%w: %s", ErrScoreNotFound, id)), nil
				}
				return results.OperationResult[sharedtypes.Score, error]{}, err
			}

			before := score.Points
			if err := scoredomain.Revise(score, points); err != nil {
				return results.FailureResult[sharedtypes.Score, error](err), nil
			}
			if err := s.repo.UpdateScores(ctx, db, []sharedtypes.Score{*score}); err != nil {
				return results.OperationResult[sharedtypes.Score, error]{}, err
			}

			s.logger.WarnContext(ctx, "Score revised",
				attr.ExtractCorrelationID(ctx),
				attr.ID("score_id", id),
				attr.String("actor", actor),
				attr.Int("from_points", before),
				attr.Int("to_points", points),
			)
			return results.SuccessResult[sharedtypes.Score, error](*score), nil
		})
	})
}
