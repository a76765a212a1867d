package roundservice

import (
	"context"
	"errors"
	"fmt"

	rounddomain "github.com/Black-And-White-Club/barbershop-bot/app/modules/round/domain"
	rounddb "github.com/Black-And-White-Club/barbershop-bot/app/modules/round/infrastructure/repositories"
	reportevents "github.com/Black-And-White-Club/barbershop-bot/app/shared/events/report"
	"github.com/Black-And-White-Club/barbershop-bot/app/shared/results"
	sharedtypes "github.com/Black-And-White-Club/barbershop-bot/app/shared/types"
	"github.com/uptrace/bun"
)

// CreateSession adds an empty session to an existing convention.
func (s *RoundService) CreateSession(ctx context.Context, req rounddomain.NewSessionParams) (results.OperationResult[sharedtypes.Session, error], error) {
	return withTelemetry(s, ctx, "CreateSession", req.ConventionID, func(ctx context.Context) (results.OperationResult[sharedtypes.Session, error], error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (results.OperationResult[sharedtypes.Session, error], error) {
			if _, err := s.repo.GetConvention(ctx, db, req.ConventionID); err != nil {
				if errors.Is(err, rounddb.ErrNotFound) {
					return results.FailureResult[sharedtypes.Session, error](fmt.Errorf("%w: %s", ErrConventionNotFound, req.ConventionID)), nil
				}
				return results.OperationResult[sharedtypes.Session, error]{}, err
			}
			sess, err := rounddomain.NewSession(req)
			if err != nil {
				return results.FailureResult[sharedtypes.Session, error](err), nil
			}
			if err := s.repo.SaveSession(ctx, db, &sess); err != nil {
				return results.OperationResult[sharedtypes.Session, error]{}, err
			}
			return results.SuccessResult[sharedtypes.Session, error](sess), nil
		})
	})
}

func (s *RoundService) AddContest(ctx context.Context, sessionID sharedtypes.SessionID, award sharedtypes.Award) (results.OperationResult[sharedtypes.Contest, error], error) {
	return withTelemetry(s, ctx, "AddContest", sessionID, func(ctx context.Context) (results.OperationResult[sharedtypes.Contest, error], error) {
		return mutateSession(s, ctx, sessionID, func(_ context.Context, sess *sharedtypes.Session, _ *outbox) (sharedtypes.Contest, error) {
			c, err := rounddomain.AddContest(sess, award)
			if err != nil {
				return sharedtypes.Contest{}, err
			}
			return *c, nil
		})
	})
}

func (s *RoundService) RegisterCompetitor(ctx context.Context, sessionID sharedtypes.SessionID, name string, contests []sharedtypes.ContestID) (results.OperationResult[sharedtypes.Competitor, error], error) {
	return withTelemetry(s, ctx, "RegisterCompetitor", sessionID, func(ctx context.Context) (results.OperationResult[sharedtypes.Competitor, error], error) {
		return mutateSession(s, ctx, sessionID, func(_ context.Context, sess *sharedtypes.Session, _ *outbox) (sharedtypes.Competitor, error) {
			c, err := rounddomain.RegisterCompetitor(sess, name, contests)
			if err != nil {
				return sharedtypes.Competitor{}, err
			}
			return *c, nil
		})
	})
}

func (s *RoundService) AssignPanelist(ctx context.Context, req AssignPanelistRequest) (results.OperationResult[sharedtypes.Panelist, error], error) {
	return withTelemetry(s, ctx, "AssignPanelist", req.RoundID, func(ctx context.Context) (results.OperationResult[sharedtypes.Panelist, error], error) {
		return mutateSession(s, ctx, req.SessionID, func(_ context.Context, sess *sharedtypes.Session, _ *outbox) (sharedtypes.Panelist, error) {
			p, err := rounddomain.AssignPanelist(sess, req.RoundID, req.Name, req.Kind, req.Category)
			if err != nil {
				return sharedtypes.Panelist{}, err
			}
			return *p, nil
		})
	})
}

// ReleasePanelist lets a judge go once their round is finished and asks for
// their scoring analysis.
func (s *RoundService) ReleasePanelist(ctx context.Context, sessionID sharedtypes.SessionID, id sharedtypes.PanelistID) (results.OperationResult[sharedtypes.Panelist, error], error) {
	return withTelemetry(s, ctx, "ReleasePanelist", id, func(ctx context.Context) (results.OperationResult[sharedtypes.Panelist, error], error) {
		return mutateSession(s, ctx, sessionID, func(_ context.Context, sess *sharedtypes.Session, out *outbox) (sharedtypes.Panelist, error) {
			p, err := rounddomain.ReleasePanelist(sess, id)
			if err != nil {
				return sharedtypes.Panelist{}, err
			}
			pid := p.ID
			out.report(reportevents.ReportPSA, sess.ID, p.RoundID).PanelistID = &pid
			return *p, nil
		})
	})
}

func (s *RoundService) OpenSession(ctx context.Context, id sharedtypes.SessionID) (results.OperationResult[SessionTransition, error], error) {
	return s.transitionSession(ctx, "OpenSession", id, rounddomain.OpenSession)
}

func (s *RoundService) CloseSession(ctx context.Context, id sharedtypes.SessionID) (results.OperationResult[SessionTransition, error], error) {
	return s.transitionSession(ctx, "CloseSession", id, rounddomain.CloseSession)
}

// ValidateSession builds every round; numSongs below one means the default.
func (s *RoundService) ValidateSession(ctx context.Context, id sharedtypes.SessionID, numSongs int) (results.OperationResult[SessionTransition, error], error) {
	return s.transitionSession(ctx, "ValidateSession", id, func(sess *sharedtypes.Session) error {
		return rounddomain.ValidateSession(sess, numSongs)
	})
}

func (s *RoundService) StartSession(ctx context.Context, id sharedtypes.SessionID) (results.OperationResult[SessionTransition, error], error) {
	return s.transitionSession(ctx, "StartSession", id, rounddomain.StartSession)
}

// FinishSession recomputes every total from the scores up.
func (s *RoundService) FinishSession(ctx context.Context, id sharedtypes.SessionID) (results.OperationResult[SessionTransition, error], error) {
	return s.transitionSession(ctx, "FinishSession", id, rounddomain.FinishSession)
}

func (s *RoundService) PublishSession(ctx context.Context, id sharedtypes.SessionID) (results.OperationResult[SessionTransition, error], error) {
	return s.transitionSession(ctx, "PublishSession", id, rounddomain.PublishSession)
}

func (s *RoundService) transitionSession(ctx context.Context, op string, id sharedtypes.SessionID, step func(*sharedtypes.Session) error) (results.OperationResult[SessionTransition, error], error) {
	return withTelemetry(s, ctx, op, id, func(ctx context.Context) (results.OperationResult[SessionTransition, error], error) {
		return mutateSession(s, ctx, id, func(_ context.Context, sess *sharedtypes.Session, _ *outbox) (SessionTransition, error) {
			from := sess.Status
			if err := step(sess); err != nil {
				return SessionTransition{}, err
			}
			return SessionTransition{SessionID: sess.ID, From: from, To: sess.Status}, nil
		})
	})
}
