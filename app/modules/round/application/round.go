package roundservice

import (
	"context"
	"fmt"
	"math/rand/v2"

	rounddomain "github.com/Black-And-White-Club/barbershop-bot/app/modules/round/domain"
	reportevents "github.com/Black-And-White-Club/barbershop-bot/app/shared/events/report"
	"github.com/Black-And-White-Club/barbershop-bot/app/shared/results"
	sharedtypes "github.com/Black-And-White-Club/barbershop-bot/app/shared/types"
)

func (s *RoundService) DrawRound(ctx context.Context, sessionID sharedtypes.SessionID, id sharedtypes.RoundID) (results.OperationResult[RoundTransition, error], error) {
	rng := s.newRand()
	return s.transitionRound(ctx, "DrawRound", sessionID, id, func(sess *sharedtypes.Session, r *sharedtypes.Round, _ *outbox) (*rounddomain.FinishResult, error) {
		return nil, rounddomain.DrawRound(sess, r, rng)
	})
}

func (s *RoundService) ValidateRound(ctx context.Context, sessionID sharedtypes.SessionID, id sharedtypes.RoundID) (results.OperationResult[RoundTransition, error], error) {
	return s.transitionRound(ctx, "ValidateRound", sessionID, id, func(_ *sharedtypes.Session, r *sharedtypes.Round, _ *outbox) (*rounddomain.FinishResult, error) {
		return nil, rounddomain.ValidateRound(r)
	})
}

func (s *RoundService) StartRound(ctx context.Context, sessionID sharedtypes.SessionID, id sharedtypes.RoundID) (results.OperationResult[RoundTransition, error], error) {
	return s.transitionRound(ctx, "StartRound", sessionID, id, func(sess *sharedtypes.Session, r *sharedtypes.Round, _ *outbox) (*rounddomain.FinishResult, error) {
		return nil, rounddomain.StartRound(sess, r)
	})
}

// FinishRound verifies, aggregates, ranks and then advances or finalizes in
// one transaction. Any appearance that is not settled blocks the whole step.
func (s *RoundService) FinishRound(ctx context.Context, sessionID sharedtypes.SessionID, id sharedtypes.RoundID) (results.OperationResult[RoundTransition, error], error) {
	rng := s.newRand()
	result, err := s.transitionRound(ctx, "FinishRound", sessionID, id, func(sess *sharedtypes.Session, r *sharedtypes.Round, out *outbox) (*rounddomain.FinishResult, error) {
		return s.finishRound(sess, r.ID, rng, out)
	})
	if err == nil && result.IsSuccess() && result.Success.Finish != nil {
		f := result.Success.Finish
		for c, n := range f.Flagged {
			s.metrics.RecordScoresFlagged(ctx, string(c), n)
		}
		s.metrics.RecordAdvancement(ctx, result.Success.Kind.String(), len(f.Advanced))
	}
	return result, err
}

func (s *RoundService) finishRound(sess *sharedtypes.Session, id sharedtypes.RoundID, rng *rand.Rand, out *outbox) (*rounddomain.FinishResult, error) {
	spots := s.cfg.DefaultSpots
	if sess.Spots > 0 {
		spots = sess.Spots
	}
	res, err := rounddomain.FinishRound(sess, id, rng, spots)
	if err != nil {
		return nil, err
	}
	for _, appearanceID := range res.Verified {
		aid := appearanceID
		out.report(reportevents.ReportCSA, sess.ID, id).AppearanceID = &aid
	}
	out.report(reportevents.ReportOSS, sess.ID, id)
	return &res, nil
}

// PublishRound releases results for a finished round and readies the next one.
func (s *RoundService) PublishRound(ctx context.Context, sessionID sharedtypes.SessionID, id sharedtypes.RoundID) (results.OperationResult[RoundTransition, error], error) {
	return s.transitionRound(ctx, "PublishRound", sessionID, id, func(sess *sharedtypes.Session, r *sharedtypes.Round, _ *outbox) (*rounddomain.FinishResult, error) {
		return nil, rounddomain.PublishRound(sess, r.ID)
	})
}

type roundStep func(sess *sharedtypes.Session, r *sharedtypes.Round, out *outbox) (*rounddomain.FinishResult, error)

func (s *RoundService) transitionRound(ctx context.Context, op string, sessionID sharedtypes.SessionID, id sharedtypes.RoundID, step roundStep) (results.OperationResult[RoundTransition, error], error) {
	return withTelemetry(s, ctx, op, id, func(ctx context.Context) (results.OperationResult[RoundTransition, error], error) {
		return mutateSession(s, ctx, sessionID, func(_ context.Context, sess *sharedtypes.Session, out *outbox) (RoundTransition, error) {
			r := sess.Round(id)
			if r == nil {
				return RoundTransition{}, fmt.Errorf("%w: %s", rounddomain.ErrRoundNotFound, id)
			}
			t := RoundTransition{SessionID: sess.ID, RoundID: id, Kind: r.Kind, From: r.Status}
			finish, err := step(sess, r, out)
			if err != nil {
				return RoundTransition{}, err
			}
			// The step may grow sess.Rounds, so look the round up again.
			t.To = sess.Round(id).Status
			t.Finish = finish
			return t, nil
		})
	})
}
