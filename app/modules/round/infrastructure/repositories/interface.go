package rounddb

import (
	"context"

	sharedtypes "github.com/Black-And-White-Club/barbershop-bot/app/shared/types"
	"github.com/uptrace/bun"
)

// Repository defines the contract for convention and session persistence.
// A nil db uses the repository's own connection.
//
// Error semantics:
//   - ErrNotFound: the convention, session or song does not exist
//   - ErrNoRowsAffected: an UPDATE matched no rows
//   - Other errors: infrastructure failures
type Repository interface {
	CreateConvention(ctx context.Context, db bun.IDB, c sharedtypes.Convention) error
	GetConvention(ctx context.Context, db bun.IDB, id sharedtypes.ConventionID) (*sharedtypes.Convention, error)
	UpdateConvention(ctx context.Context, db bun.IDB, c sharedtypes.Convention) error

	// LockSession takes a transaction-scoped advisory lock on the session.
	// db must be a transaction.
	LockSession(ctx context.Context, db bun.IDB, id sharedtypes.SessionID) error

	// LoadSession returns the full session aggregate without scores.
	LoadSession(ctx context.Context, db bun.IDB, id sharedtypes.SessionID) (*sharedtypes.Session, error)

	// SaveSession upserts the aggregate and removes children no longer in it.
	// Scores are owned by the score module and are not written here.
	SaveSession(ctx context.Context, db bun.IDB, s *sharedtypes.Session) error

	ListSessions(ctx context.Context, db bun.IDB, conventionID sharedtypes.ConventionID) ([]sharedtypes.SessionID, error)

	// SessionForRound and SessionForContest resolve a child id to its session.
	SessionForRound(ctx context.Context, db bun.IDB, id sharedtypes.RoundID) (sharedtypes.SessionID, error)
	SessionForContest(ctx context.Context, db bun.IDB, id sharedtypes.ContestID) (sharedtypes.SessionID, error)

	GetSongContext(ctx context.Context, db bun.IDB, songID sharedtypes.SongID) (*SongContext, error)
}
