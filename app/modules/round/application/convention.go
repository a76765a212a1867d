package roundservice

import (
	"context"
	"errors"
	"fmt"
	"strings"

	rounddomain "github.com/Black-And-White-Club/barbershop-bot/app/modules/round/domain"
	rounddb "github.com/Black-And-White-Club/barbershop-bot/app/modules/round/infrastructure/repositories"
	"github.com/Black-And-White-Club/barbershop-bot/app/shared/results"
	sharedtypes "github.com/Black-And-White-Club/barbershop-bot/app/shared/types"
	"github.com/uptrace/bun"
)

func (s *RoundService) CreateConvention(ctx context.Context, req CreateConventionRequest) (results.OperationResult[sharedtypes.Convention, error], error) {
	c := sharedtypes.Convention{
		ID:     sharedtypes.NewConventionID(),
		Name:   strings.TrimSpace(req.Name),
		Season: strings.TrimSpace(req.Season),
		Year:   req.Year,
		Level:  req.Level,
		Status: sharedtypes.ConventionStatusNew,
	}
	return withTelemetry(s, ctx, "CreateConvention", c.ID, func(ctx context.Context) (results.OperationResult[sharedtypes.Convention, error], error) {
		if c.Name == "" || !c.Level.Valid() {
			return results.FailureResult[sharedtypes.Convention, error](
				fmt.Errorf("%w: convention name %q level %q", rounddomain.ErrInvalidInput, c.Name, c.Level)), nil
		}
		if err := s.repo.CreateConvention(ctx, nil, c); err != nil {
			return results.OperationResult[sharedtypes.Convention, error]{}, err
		}
		return results.SuccessResult[sharedtypes.Convention, error](c), nil
	})
}

// TransitionConvention moves a convention one step along new, listed,
// opened, started and finished.
func (s *RoundService) TransitionConvention(ctx context.Context, id sharedtypes.ConventionID, to sharedtypes.ConventionStatus) (results.OperationResult[ConventionTransition, error], error) {
	return withTelemetry(s, ctx, "TransitionConvention", id, func(ctx context.Context) (results.OperationResult[ConventionTransition, error], error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (results.OperationResult[ConventionTransition, error], error) {
			c, err := s.repo.GetConvention(ctx, db, id)
			if err != nil {
				if errors.Is(err, rounddb.ErrNotFound) {
					return results.FailureResult[ConventionTransition, error](fmt.Errorf("%w: %s", ErrConventionNotFound, id)), nil
				}
				return results.OperationResult[ConventionTransition, error]{}, err
			}
			from := c.Status
			if err := rounddomain.TransitionConvention(c, to); err != nil {
				return results.FailureResult[ConventionTransition, error](err), nil
			}
			if err := s.repo.UpdateConvention(ctx, db, *c); err != nil {
				return results.OperationResult[ConventionTransition, error]{}, err
			}
			return results.SuccessResult[ConventionTransition, error](ConventionTransition{Convention: *c, From: from}), nil
		})
	})
}
