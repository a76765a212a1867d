package roundservice

import (
	"context"
	"fmt"
	"strings"

	rounddomain "github.com/Black-And-White-Club/barbershop-bot/app/modules/round/domain"
	roundevents "github.com/Black-And-White-Club/barbershop-bot/app/shared/events/round"
	"github.com/Black-And-White-Club/barbershop-bot/app/shared/observability/attr"
	"github.com/Black-And-White-Club/barbershop-bot/app/shared/results"
	sharedtypes "github.com/Black-And-White-Club/barbershop-bot/app/shared/types"
	"github.com/google/uuid"
)

// Override forces a status on a session, round, appearance, entry or score.
// It bypasses the transition tables but never accepts an unknown state.
func (s *RoundService) Override(ctx context.Context, req OverrideRequest) (results.OperationResult[rounddomain.Override, error], error) {
	result, err := withTelemetry(s, ctx, "Override", req.SessionID, func(ctx context.Context) (results.OperationResult[rounddomain.Override, error], error) {
		if strings.TrimSpace(req.Actor) == "" || strings.TrimSpace(req.Reason) == "" {
			return results.FailureResult[rounddomain.Override, error](
				fmt.Errorf("%w: override needs an actor and a reason", rounddomain.ErrInvalidInput)), nil
		}
		id, err := uuid.Parse(req.ID)
		if err != nil {
			return results.FailureResult[rounddomain.Override, error](
				fmt.Errorf("%w: override id %q: %v", rounddomain.ErrInvalidInput, req.ID, err)), nil
		}
		return mutateSession(s, ctx, req.SessionID, func(_ context.Context, sess *sharedtypes.Session, _ *outbox) (rounddomain.Override, error) {
			return force(sess, req, id)
		})
	})
	if err == nil && result.IsSuccess() {
		o := result.Success
		s.logger.WarnContext(ctx, "Administrative override applied",
			attr.String("entity", o.Entity),
			attr.String("entity_id", o.ID),
			attr.String("from", o.From),
			attr.String("to", o.To),
			attr.String("actor", req.Actor),
			attr.String("reason", req.Reason),
			attr.ExtractCorrelationID(ctx),
		)
	}
	return result, err
}

func force(sess *sharedtypes.Session, req OverrideRequest, id uuid.UUID) (rounddomain.Override, error) {
	switch req.Entity {
	case roundevents.OverrideSession:
		if id != sess.ID.UUID {
			return rounddomain.Override{}, fmt.Errorf("%w: session id %s does not match %s", rounddomain.ErrInvalidInput, id, sess.ID)
		}
		return rounddomain.ForceSessionStatus(sess, sharedtypes.SessionStatus(req.To))
	case roundevents.OverrideRound:
		return rounddomain.ForceRoundStatus(sess, sharedtypes.RoundID{UUID: id}, sharedtypes.RoundStatus(req.To))
	case roundevents.OverrideAppearance:
		return rounddomain.ForceAppearanceStatus(sess, sharedtypes.AppearanceID{UUID: id}, sharedtypes.AppearanceStatus(req.To))
	case roundevents.OverrideEntry:
		if req.ContestID == nil {
			return rounddomain.Override{}, fmt.Errorf("%w: entry override needs a contest", rounddomain.ErrInvalidInput)
		}
		return rounddomain.ForceEntryStatus(sess, *req.ContestID, sharedtypes.CompetitorID{UUID: id}, sharedtypes.EntryStatus(req.To))
	case roundevents.OverrideScore:
		return rounddomain.ForceScoreStatus(sess, sharedtypes.ScoreID{UUID: id}, sharedtypes.ScoreStatus(req.To))
	}
	return rounddomain.Override{}, fmt.Errorf("%w: override entity %q", ErrUnknownAction, req.Entity)
}
