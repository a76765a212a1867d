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

// SubmitScore records a judge's points for a song. Submitting again while
// the score is still new replaces its points; the pair (song, panelist)
// never holds more than one score.
func (s *ScoreService) SubmitScore(ctx context.Context, req SubmitScoreRequest) (results.OperationResult[sharedtypes.Score, error], error) {
	return withTelemetry(s, ctx, "SubmitScore", req.SongID, func(ctx context.Context) (results.OperationResult[sharedtypes.Score, error], error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (results.OperationResult[sharedtypes.Score, error], error) {
			return s.submitScore(ctx, db, req)
		})
	})
}

func (s *ScoreService) submitScore(ctx context.Context, db bun.IDB, req SubmitScoreRequest) (results.OperationResult[sharedtypes.Score, error], error) {
	fail := results.FailureResult[sharedtypes.Score, error]

	song, err := s.songs.GetSongContext(ctx, db, req.SongID)
	if err != nil {
		if errors.Is(err, ErrSongNotFound) {
			return fail(fmt.Errorf("%w: %s", ErrSongNotFound, req.SongID)), nil
		}
		return results.OperationResult[sharedtypes.Score, error]{}, err
	}

	if song.AppearanceStatus != sharedtypes.AppearanceStatusStarted && song.AppearanceStatus != sharedtypes.AppearanceStatusFinished {
		return fail(fmt.Errorf("%w: appearance %s is %s", ErrAppearanceNotScoring, song.AppearanceID, song.AppearanceStatus)), nil
	}

	var panelist *sharedtypes.Panelist
	for i := range song.Panelists {
		if song.Panelists[i].ID == req.PanelistID {
			panelist = &song.Panelists[i]
			break
		}
	}
	if panelist == nil || !panelist.Scores() {
		return fail(fmt.Errorf("%w: panelist %s, round %s", ErrPanelistNotOnPanel, req.PanelistID, song.RoundID)), nil
	}
	category, _ := panelist.Category.Category()
	kind, _ := panelist.Kind.ScoreKind()

	existing, err := s.repo.GetScoreByPanelist(ctx, db, req.SongID, req.PanelistID)
	switch {
	case errors.Is(err, scoredb.ErrNotFound):
		score, err := scoredomain.NewScore(scoredomain.NewScoreParams{
			SongID:     req.SongID,
			PanelistID: req.PanelistID,
			Category:   category,
			Kind:       kind,
			Points:     req.Points,
			Penalty:    req.Penalty,
		})
		if err != nil {
			return fail(err), nil
		}
		if err := s.repo.UpsertScore(ctx, db, score); err != nil {
			return settledOrError(score.SongID, req.PanelistID, err)
		}
		return results.SuccessResult[sharedtypes.Score, error](score), nil
	case err != nil:
		return results.OperationResult[sharedtypes.Score, error]{}, err
	}

	if err := scoredomain.Resubmit(existing, req.Points, req.Penalty); err != nil {
		return fail(err), nil
	}
	if err := s.repo.UpsertScore(ctx, db, *existing); err != nil {
		return settledOrError(existing.SongID, req.PanelistID, err)
	}
	return results.SuccessResult[sharedtypes.Score, error](*existing), nil
}

// settledOrError turns a guarded upsert that matched nothing into a business
// failure; anything else is an infrastructure error.
func settledOrError(songID sharedtypes.SongID, panelistID sharedtypes.PanelistID, err error) (results.OperationResult[sharedtypes.Score, error], error) {
	if errors.Is(err, scoredb.ErrNoRowsAffected) {
		return results.FailureResult[sharedtypes.Score, error](
			fmt.Errorf("%w: song %s, panelist %s", ErrScoreSettled, songID, panelistID)), nil
	}
	return results.OperationResult[sharedtypes.Score, error]{}, err
}
