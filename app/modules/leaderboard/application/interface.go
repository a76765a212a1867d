package leaderboardservice

import (
	"context"

	leaderboarddomain "github.com/Black-And-White-Club/barbershop-bot/app/modules/leaderboard/domain"
	"github.com/Black-And-White-Club/barbershop-bot/app/shared/results"
	sharedtypes "github.com/Black-And-White-Club/barbershop-bot/app/shared/types"
)

// Service answers ranking queries from the current session state. Nothing
// it returns is cached; every call reads the aggregate again.
type Service interface {
	ContestStandings(ctx context.Context, sessionID sharedtypes.SessionID, contestID sharedtypes.ContestID) (results.OperationResult[ContestTable, error], error)
	RoundStandings(ctx context.Context, sessionID sharedtypes.SessionID, roundID sharedtypes.RoundID) (results.OperationResult[RoundTable, error], error)
	RoundOutcomes(ctx context.Context, sessionID sharedtypes.SessionID, roundID sharedtypes.RoundID) (results.OperationResult[[]OutcomeResult, error], error)
}

// SessionLookup loads a session aggregate owned by the round module. A
// missing session is reported as ErrSessionNotFound.
type SessionLookup interface {
	LoadSession(ctx context.Context, id sharedtypes.SessionID) (*sharedtypes.Session, error)
}

type ContestTable struct {
	SessionID  sharedtypes.SessionID
	ContestID  sharedtypes.ContestID
	Award      string
	ChampionID *sharedtypes.CompetitorID
	Standings  []leaderboarddomain.Standing
}

type RoundTable struct {
	SessionID sharedtypes.SessionID
	RoundID   sharedtypes.RoundID
	Kind      sharedtypes.RoundKind
	Standings []leaderboarddomain.Standing
}

// OutcomeResult is an outcome with its name resolved at read time.
type OutcomeResult struct {
	Outcome sharedtypes.Outcome
	Award   string
	Name    string
}
