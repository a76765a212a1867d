package leaderboardservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	leaderboarddomain "github.com/Black-And-White-Club/barbershop-bot/app/modules/leaderboard/domain"
	"github.com/Black-And-White-Club/barbershop-bot/app/shared/observability/attr"
	"github.com/Black-And-White-Club/barbershop-bot/app/shared/observability/contestmetrics"
	"github.com/Black-And-White-Club/barbershop-bot/app/shared/results"
	sharedtypes "github.com/Black-And-White-Club/barbershop-bot/app/shared/types"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// LeaderboardService implements the Service interface.
type LeaderboardService struct {
	sessions SessionLookup
	logger   *slog.Logger
	metrics  contestmetrics.Metrics
	tracer   trace.Tracer
}

func NewLeaderboardService(
	sessions SessionLookup,
	logger *slog.Logger,
	metrics contestmetrics.Metrics,
	tracer trace.Tracer,
) *LeaderboardService {
	return &LeaderboardService{
		sessions: sessions,
		logger:   logger,
		metrics:  metrics,
		tracer:   tracer,
	}
}

type operationFunc[S any, F any] func(ctx context.Context) (results.OperationResult[S, F], error)

// withTelemetry wraps a service operation with tracing, metrics, and panic recovery.
func withTelemetry[S any, F any](
	s *LeaderboardService,
	ctx context.Context,
	operationName string,
	id fmt.Stringer,
	op operationFunc[S, F],
) (result results.OperationResult[S, F], err error) {
	ctx, span := s.tracer.Start(ctx, operationName, trace.WithAttributes(
		attribute.String("operation", operationName),
		attribute.String("entity_id", id.String()),
	))
	defer span.End()

	s.metrics.RecordOperationAttempt(ctx, operationName)

	startTime := time.Now()
	defer func() {
		s.metrics.RecordOperationDuration(ctx, operationName, time.Since(startTime))
	}()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, r)
			s.logger.ErrorContext(ctx, "Critical panic recovered",
				attr.ID("entity_id", id),
				attr.ExtractCorrelationID(ctx),
				attr.Error(err),
			)
			s.metrics.RecordOperationFailure(ctx, operationName)
			span.RecordError(err)
			result = results.OperationResult[S, F]{}
		}
	}()

	result, err = op(ctx)

	if err != nil {
		wrappedErr := fmt.Errorf("%s: %w", operationName, err)
		s.logger.ErrorContext(ctx, "Operation failed with error",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.ID("entity_id", id),
			attr.Error(wrappedErr),
		)
		s.metrics.RecordOperationFailure(ctx, operationName)
		span.RecordError(wrappedErr)
		return result, wrappedErr
	}

	if result.IsFailure() {
		s.logger.WarnContext(ctx, "Operation returned failure result",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.ID("entity_id", id),
			attr.Any("failure_payload", *result.Failure),
		)
		s.metrics.RecordOperationFailure(ctx, operationName)
	}

	if result.IsSuccess() {
		s.logger.InfoContext(ctx, operationName+" completed successfully",
			attr.String("operation", operationName),
			attr.ID("entity_id", id),
			attr.ExtractCorrelationID(ctx),
		)
		s.metrics.RecordOperationSuccess(ctx, operationName)
	}

	return result, nil
}

// withSession loads the session and runs fn on it. A missing session and
// any error fn returns are business failures.
func withSession[S any](
	s *LeaderboardService,
	ctx context.Context,
	id sharedtypes.SessionID,
	fn func(sess *sharedtypes.Session) (S, error),
) (results.OperationResult[S, error], error) {
	sess, err := s.sessions.LoadSession(ctx, id)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return results.FailureResult[S, error](fmt.Errorf("%w: %s", ErrSessionNotFound, id)), nil
		}
		return results.OperationResult[S, error]{}, err
	}
	v, err := fn(sess)
	if err != nil {
		return results.FailureResult[S, error](err), nil
	}
	return results.SuccessResult[S, error](v), nil
}

// ContestStandings ranks a contest's entries from their stored totals.
func (s *LeaderboardService) ContestStandings(ctx context.Context, sessionID sharedtypes.SessionID, contestID sharedtypes.ContestID) (results.OperationResult[ContestTable, error], error) {
	return withTelemetry(s, ctx, "ContestStandings", contestID, func(ctx context.Context) (results.OperationResult[ContestTable, error], error) {
		return withSession(s, ctx, sessionID, func(sess *sharedtypes.Session) (ContestTable, error) {
			c := sess.Contest(contestID)
			if c == nil {
				return ContestTable{}, fmt.Errorf("%w: %s", ErrContestNotFound, contestID)
			}
			return ContestTable{
				SessionID:  sess.ID,
				ContestID:  c.ID,
				Award:      c.Award.Name,
				ChampionID: c.ChampionID,
				Standings:  leaderboarddomain.ContestStandings(sess, *c),
			}, nil
		})
	})
}

// RoundStandings ranks the appearances of one round by their round totals.
func (s *LeaderboardService) RoundStandings(ctx context.Context, sessionID sharedtypes.SessionID, roundID sharedtypes.RoundID) (results.OperationResult[RoundTable, error], error) {
	return withTelemetry(s, ctx, "RoundStandings", roundID, func(ctx context.Context) (results.OperationResult[RoundTable, error], error) {
		return withSession(s, ctx, sessionID, func(sess *sharedtypes.Session) (RoundTable, error) {
			r := sess.Round(roundID)
			if r == nil {
				return RoundTable{}, fmt.Errorf("%w: %s", ErrRoundNotFound, roundID)
			}
			return RoundTable{
				SessionID: sess.ID,
				RoundID:   r.ID,
				Kind:      r.Kind,
				Standings: leaderboarddomain.RoundStandings(sess, *r),
			}, nil
		})
	})
}

// RoundOutcomes resolves every outcome name of a round against the
// session as it is now.
func (s *LeaderboardService) RoundOutcomes(ctx context.Context, sessionID sharedtypes.SessionID, roundID sharedtypes.RoundID) (results.OperationResult[[]OutcomeResult, error], error) {
	return withTelemetry(s, ctx, "RoundOutcomes", roundID, func(ctx context.Context) (results.OperationResult[[]OutcomeResult, error], error) {
		return withSession(s, ctx, sessionID, func(sess *sharedtypes.Session) ([]OutcomeResult, error) {
			r := sess.Round(roundID)
			if r == nil {
				return nil, fmt.Errorf("%w: %s", ErrRoundNotFound, roundID)
			}
			out := make([]OutcomeResult, 0, len(r.Outcomes))
			for _, o := range r.Outcomes {
				res := OutcomeResult{Outcome: o, Name: leaderboarddomain.OutcomeName(sess, *r, o)}
				if c := sess.Contest(o.ContestID); c != nil {
					res.Award = c.Award.Name
				}
				out = append(out, res)
			}
			return out, nil
		})
	})
}
