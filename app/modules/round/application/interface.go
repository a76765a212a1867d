package roundservice

import (
	"context"

	rounddomain "github.com/Black-And-White-Club/barbershop-bot/app/modules/round/domain"
	roundevents "github.com/Black-And-White-Club/barbershop-bot/app/shared/events/round"
	"github.com/Black-And-White-Club/barbershop-bot/app/shared/results"
	sharedtypes "github.com/Black-And-White-Club/barbershop-bot/app/shared/types"
)

// Service drives conventions and the session aggregate through their
// lifecycles. Every session operation runs under the session lock in one
// transaction; a rejected step leaves nothing behind. Business failures come
// back as the Failure of the result with a nil error.
type Service interface {
	ConventionOps
	SessionOps
	RoundOps
	AppearanceOps
	OverrideOps
}

type ConventionOps interface {
	CreateConvention(ctx context.Context, req CreateConventionRequest) (results.OperationResult[sharedtypes.Convention, error], error)
	TransitionConvention(ctx context.Context, id sharedtypes.ConventionID, to sharedtypes.ConventionStatus) (results.OperationResult[ConventionTransition, error], error)
}

type SessionOps interface {
	CreateSession(ctx context.Context, req rounddomain.NewSessionParams) (results.OperationResult[sharedtypes.Session, error], error)
	AddContest(ctx context.Context, sessionID sharedtypes.SessionID, award sharedtypes.Award) (results.OperationResult[sharedtypes.Contest, error], error)
	RegisterCompetitor(ctx context.Context, sessionID sharedtypes.SessionID, name string, contests []sharedtypes.ContestID) (results.OperationResult[sharedtypes.Competitor, error], error)
	AssignPanelist(ctx context.Context, req AssignPanelistRequest) (results.OperationResult[sharedtypes.Panelist, error], error)
	ReleasePanelist(ctx context.Context, sessionID sharedtypes.SessionID, id sharedtypes.PanelistID) (results.OperationResult[sharedtypes.Panelist, error], error)

	OpenSession(ctx context.Context, id sharedtypes.SessionID) (results.OperationResult[SessionTransition, error], error)
	CloseSession(ctx context.Context, id sharedtypes.SessionID) (results.OperationResult[SessionTransition, error], error)
	ValidateSession(ctx context.Context, id sharedtypes.SessionID, numSongs int) (results.OperationResult[SessionTransition, error], error)
	StartSession(ctx context.Context, id sharedtypes.SessionID) (results.OperationResult[SessionTransition, error], error)
	FinishSession(ctx context.Context, id sharedtypes.SessionID) (results.OperationResult[SessionTransition, error], error)
	PublishSession(ctx context.Context, id sharedtypes.SessionID) (results.OperationResult[SessionTransition, error], error)
}

type RoundOps interface {
	DrawRound(ctx context.Context, sessionID sharedtypes.SessionID, id sharedtypes.RoundID) (results.OperationResult[RoundTransition, error], error)
	ValidateRound(ctx context.Context, sessionID sharedtypes.SessionID, id sharedtypes.RoundID) (results.OperationResult[RoundTransition, error], error)
	StartRound(ctx context.Context, sessionID sharedtypes.SessionID, id sharedtypes.RoundID) (results.OperationResult[RoundTransition, error], error)
	FinishRound(ctx context.Context, sessionID sharedtypes.SessionID, id sharedtypes.RoundID) (results.OperationResult[RoundTransition, error], error)
	PublishRound(ctx context.Context, sessionID sharedtypes.SessionID, id sharedtypes.RoundID) (results.OperationResult[RoundTransition, error], error)
}

type AppearanceOps interface {
	StartAppearance(ctx context.Context, sessionID sharedtypes.SessionID, id sharedtypes.AppearanceID) (results.OperationResult[AppearanceTransition, error], error)
	FinishAppearance(ctx context.Context, sessionID sharedtypes.SessionID, id sharedtypes.AppearanceID) (results.OperationResult[AppearanceTransition, error], error)
	VerifyAppearance(ctx context.Context, sessionID sharedtypes.SessionID, id sharedtypes.AppearanceID) (results.OperationResult[AppearanceTransition, error], error)
}

// OverrideOps is the administrative escape hatch. Every override is
// logged at WARN with its actor and reason.
type OverrideOps interface {
	Override(ctx context.Context, req OverrideRequest) (results.OperationResult[rounddomain.Override, error], error)
}

type CreateConventionRequest struct {
	Name   string
	Season string
	Year   int
	Level  sharedtypes.ConventionLevel
}

type ConventionTransition struct {
	Convention sharedtypes.Convention
	From       sharedtypes.ConventionStatus
}

type AssignPanelistRequest struct {
	SessionID sharedtypes.SessionID
	RoundID   sharedtypes.RoundID
	Name      string
	Kind      sharedtypes.PanelistKind
	Category  sharedtypes.PanelistCategory
}

type SessionTransition struct {
	SessionID sharedtypes.SessionID
	From      sharedtypes.SessionStatus
	To        sharedtypes.SessionStatus
}

// RoundTransition describes a round step. Finish is set when the round was
// finished and carries the advancement outcome.
type RoundTransition struct {
	SessionID sharedtypes.SessionID
	RoundID   sharedtypes.RoundID
	Kind      sharedtypes.RoundKind
	From      sharedtypes.RoundStatus
	To        sharedtypes.RoundStatus
	Finish    *rounddomain.FinishResult
}

type AppearanceTransition struct {
	SessionID    sharedtypes.SessionID
	AppearanceID sharedtypes.AppearanceID
	From         sharedtypes.AppearanceStatus
	To           sharedtypes.AppearanceStatus
	Totals       sharedtypes.Totals
	Variance     bool
	Flagged      map[sharedtypes.Category]int
}

// OverrideRequest forces a status. For entries ID is the competitor and
// ContestID names the contest.
type OverrideRequest struct {
	SessionID sharedtypes.SessionID
	Entity    roundevents.OverrideEntity
	ID        string
	ContestID *sharedtypes.ContestID
	To        string
	Actor     string
	Reason    string
}
