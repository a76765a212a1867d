package roundservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	rounddb "github.com/Black-And-White-Club/barbershop-bot/app/modules/round/infrastructure/repositories"
	reportevents "github.com/Black-And-White-Club/barbershop-bot/app/shared/events/report"
	"github.com/Black-And-White-Club/barbershop-bot/app/shared/observability/attr"
	"github.com/Black-And-White-Club/barbershop-bot/app/shared/observability/contestmetrics"
	"github.com/Black-And-White-Club/barbershop-bot/app/shared/results"
	sharedtypes "github.com/Black-And-White-Club/barbershop-bot/app/shared/types"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Config tunes advancement and randomness.
type Config struct {
	// DefaultSpots caps advancement when a session sets no spots of its own.
	DefaultSpots int
	// Seed makes draws and advancement shuffles reproducible when set.
	Seed *uint64
}

// RoundService implements the Service interface.
type RoundService struct {
	repo     rounddb.Repository
	scores   ScoreStore
	notifier Notifier
	logger   *slog.Logger
	metrics  contestmetrics.Metrics
	tracer   trace.Tracer
	db       *bun.DB
	locks    *keyedMutex
	cfg      Config
	now      func() time.Time

	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewRoundService creates a new RoundService.
func NewRoundService(
	repo rounddb.Repository,
	scores ScoreStore,
	notifier Notifier,
	logger *slog.Logger,
	metrics contestmetrics.Metrics,
	tracer trace.Tracer,
	db *bun.DB,
	cfg Config,
) *RoundService {
	var src rand.Source
	if cfg.Seed != nil {
		src = rand.NewPCG(*cfg.Seed, *cfg.Seed)
	} else {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	return &RoundService{
		repo:     repo,
		scores:   scores,
		notifier: notifier,
		logger:   logger,
		metrics:  metrics,
		tracer:   tracer,
		db:       db,
		locks:    newKeyedMutex(),
		cfg:      cfg,
		now:      time.Now,
		rng:      rand.New(src),
	}
}

// newRand derives a generator for one operation so concurrent sessions never
// share a *rand.Rand.
func (s *RoundService) newRand() *rand.Rand {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return rand.New(rand.NewPCG(s.rng.Uint64(), s.rng.Uint64()))
}

// operationFunc is the generic signature for service operation functions.
type operationFunc[S any, F any] func(ctx context.Context) (results.OperationResult[S, F], error)

// withTelemetry wraps a service operation with tracing, metrics, and panic recovery.
func withTelemetry[S any, F any](
	s *RoundService,
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

	s.logger.InfoContext(ctx, operationName+" triggered",
		attr.String("operation", operationName),
		attr.ID("entity_id", id),
		attr.ExtractCorrelationID(ctx),
	)

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

// runInTx ensures the operation runs within a transaction.
func runInTx[S any, F any](
	s *RoundService,
	ctx context.Context,
	fn func(ctx context.Context, db bun.IDB) (results.OperationResult[S, F], error),
) (results.OperationResult[S, F], error) {
	if s.db == nil {
		return fn(ctx, nil)
	}

	var result results.OperationResult[S, F]
	err := s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		var txErr error
		result, txErr = fn(ctx, tx)
		return txErr
	})

	return result, err
}

// outbox collects report requests to send once the transaction commits.
type outbox struct {
	reports []reportevents.ReportRequestedPayloadV1
}

func (o *outbox) report(kind reportevents.ReportKind, sessionID sharedtypes.SessionID, roundID sharedtypes.RoundID) *reportevents.ReportRequestedPayloadV1 {
	o.reports = append(o.reports, reportevents.ReportRequestedPayloadV1{
		Kind:      kind,
		SessionID: sessionID,
		RoundID:   roundID,
	})
	return &o.reports[len(o.reports)-1]
}

// sessionOp mutates a working copy of the session. Any error it returns is a
// business failure and discards the copy.
type sessionOp[S any] func(ctx context.Context, sess *sharedtypes.Session, out *outbox) (S, error)

// mutateSession loads the session under both locks, applies op to a clone
// and persists the clone only when op succeeds.
func mutateSession[S any](s *RoundService, ctx context.Context, id sharedtypes.SessionID, op sessionOp[S]) (results.OperationResult[S, error], error) {
	unlock := s.locks.Lock(id.String())
	defer unlock()

	var out outbox
	result, err := runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (results.OperationResult[S, error], error) {
		if err := s.repo.LockSession(ctx, db, id); err != nil {
			return results.OperationResult[S, error]{}, err
		}
		loaded, err := s.loadSession(ctx, db, id)
		if err != nil {
			if errors.Is(err, rounddb.ErrNotFound) {
				return results.FailureResult[S, error](fmt.Errorf("%w: %s", ErrSessionNotFound, id)), nil
			}
			return results.OperationResult[S, error]{}, err
		}

		work := loaded.Clone()
		v, opErr := op(ctx, work, &out)
		if opErr != nil {
			out = outbox{}
			return results.FailureResult[S, error](opErr), nil
		}
		if err := s.saveSession(ctx, db, loaded, work); err != nil {
			return results.OperationResult[S, error]{}, err
		}
		return results.SuccessResult[S, error](v), nil
	})
	if err == nil && result.IsSuccess() {
		s.dispatch(ctx, out)
	}
	return result, err
}

// loadSession reads the aggregate and attaches every score to its song.
func (s *RoundService) loadSession(ctx context.Context, db bun.IDB, id sharedtypes.SessionID) (*sharedtypes.Session, error) {
	sess, err := s.repo.LoadSession(ctx, db, id)
	if err != nil {
		return nil, err
	}
	var appearanceIDs []sharedtypes.AppearanceID
	for _, r := range sess.Rounds {
		for _, a := range r.Appearances {
			appearanceIDs = append(appearanceIDs, a.ID)
		}
	}
	if len(appearanceIDs) == 0 {
		return sess, nil
	}
	scores, err := s.scores.ListScoresByAppearances(ctx, db, appearanceIDs)
	if err != nil {
		return nil, err
	}
	bySong := make(map[sharedtypes.SongID][]sharedtypes.Score, len(scores))
	for _, sc := range scores {
		bySong[sc.SongID] = append(bySong[sc.SongID], sc)
	}
	for i := range sess.Rounds {
		for j := range sess.Rounds[i].Appearances {
			a := &sess.Rounds[i].Appearances[j]
			for k := range a.Songs {
				a.Songs[k].Scores = bySong[a.Songs[k].ID]
			}
		}
	}
	return sess, nil
}

// saveSession writes the aggregate and any score whose status, flag or
// points moved between before and after.
func (s *RoundService) saveSession(ctx context.Context, db bun.IDB, before, after *sharedtypes.Session) error {
	if err := s.repo.SaveSession(ctx, db, after); err != nil {
		return err
	}
	prev := make(map[sharedtypes.ScoreID]sharedtypes.Score)
	for _, sc := range allScores(before) {
		prev[sc.ID] = sc
	}
	var changed []sharedtypes.Score
	for _, sc := range allScores(after) {
		if old, ok := prev[sc.ID]; ok && !scoreChanged(old, sc) {
			continue
		}
		changed = append(changed, sc)
	}
	return s.scores.UpdateScores(ctx, db, changed)
}

func allScores(sess *sharedtypes.Session) []sharedtypes.Score {
	var out []sharedtypes.Score
	for _, r := range sess.Rounds {
		for _, a := range r.Appearances {
			for _, song := range a.Songs {
				out = append(out, song.Scores...)
			}
		}
	}
	return out
}

func scoreChanged(a, b sharedtypes.Score) bool {
	if a.Status != b.Status || a.IsFlagged != b.IsFlagged || a.Points != b.Points {
		return true
	}
	if (a.Original == nil) != (b.Original == nil) {
		return true
	}
	return a.Original != nil && *a.Original != *b.Original
}

// dispatch sends collected report requests. Failures are logged only; the
// workflow step has already committed.
func (s *RoundService) dispatch(ctx context.Context, out outbox) {
	if s.notifier == nil {
		return
	}
	for _, r := range out.reports {
		r.RequestedAt = s.now().UTC()
		if err := s.notifier.RequestReport(ctx, r); err != nil {
			s.logger.WarnContext(ctx, "Failed to request report",
				attr.String("report", string(r.Kind)),
				attr.ID("round_id", r.RoundID),
				attr.ExtractCorrelationID(ctx),
				attr.Error(err),
			)
		}
	}
}
