package roundservice

import (
	"context"

	rounddomain "github.com/Black-And-White-Club/barbershop-bot/app/modules/round/domain"
	scoredomain "github.com/Black-And-White-Club/barbershop-bot/app/modules/score/domain"
	reportevents "github.com/Black-And-White-Club/barbershop-bot/app/shared/events/report"
	"github.com/Black-And-White-Club/barbershop-bot/app/shared/results"
	sharedtypes "github.com/Black-And-White-Club/barbershop-bot/app/shared/types"
)

func (s *RoundService) StartAppearance(ctx context.Context, sessionID sharedtypes.SessionID, id sharedtypes.AppearanceID) (results.OperationResult[AppearanceTransition, error], error) {
	return s.transitionAppearance(ctx, "StartAppearance", sessionID, id, func(sess *sharedtypes.Session, _ *outbox) (*sharedtypes.Appearance, *scoredomain.VerificationResult, error) {
		a, err := rounddomain.StartAppearance(sess, id)
		return a, nil, err
	})
}

// FinishAppearance closes scoring once every song holds a score from every
// official scoring panelist.
func (s *RoundService) FinishAppearance(ctx context.Context, sessionID sharedtypes.SessionID, id sharedtypes.AppearanceID) (results.OperationResult[AppearanceTransition, error], error) {
	return s.transitionAppearance(ctx, "FinishAppearance", sessionID, id, func(sess *sharedtypes.Session, _ *outbox) (*sharedtypes.Appearance, *scoredomain.VerificationResult, error) {
		a, err := rounddomain.FinishAppearance(sess, id)
		return a, nil, err
	})
}

// VerifyAppearance runs variance detection. An appearance left in variance
// is still a success; it needs revisions before its round can finish.
func (s *RoundService) VerifyAppearance(ctx context.Context, sessionID sharedtypes.SessionID, id sharedtypes.AppearanceID) (results.OperationResult[AppearanceTransition, error], error) {
	result, err := s.transitionAppearance(ctx, "VerifyAppearance", sessionID, id, func(sess *sharedtypes.Session, out *outbox) (*sharedtypes.Appearance, *scoredomain.VerificationResult, error) {
		a, v, err := rounddomain.VerifyAppearance(sess, id)
		if err != nil {
			return nil, nil, err
		}
		if !v.Variance {
			aid := a.ID
			out.report(reportevents.ReportCSA, sess.ID, a.RoundID).AppearanceID = &aid
		}
		return a, &v, nil
	})
	if err == nil && result.IsSuccess() {
		for c, n := range result.Success.Flagged {
			s.metrics.RecordScoresFlagged(ctx, string(c), n)
		}
	}
	return result, err
}

type appearanceStep func(sess *sharedtypes.Session, out *outbox) (*sharedtypes.Appearance, *scoredomain.VerificationResult, error)

func (s *RoundService) transitionAppearance(ctx context.Context, op string, sessionID sharedtypes.SessionID, id sharedtypes.AppearanceID, step appearanceStep) (results.OperationResult[AppearanceTransition, error], error) {
	return withTelemetry(s, ctx, op, id, func(ctx context.Context) (results.OperationResult[AppearanceTransition, error], error) {
		return mutateSession(s, ctx, sessionID, func(_ context.Context, sess *sharedtypes.Session, out *outbox) (AppearanceTransition, error) {
			var from sharedtypes.AppearanceStatus
			if _, a := sess.Appearance(id); a != nil {
				from = a.Status
			}
			a, v, err := step(sess, out)
			if err != nil {
				return AppearanceTransition{}, err
			}
			t := AppearanceTransition{
				SessionID:    sess.ID,
				AppearanceID: a.ID,
				From:         from,
				To:           a.Status,
				Totals:       a.Totals,
			}
			if v != nil {
				t.Variance = v.Variance
				t.Flagged = v.FlaggedByCategory(*a)
			}
			return t, nil
		})
	})
}
