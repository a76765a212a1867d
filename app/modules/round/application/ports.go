package roundservice

import (
	"context"

	reportevents "github.com/Black-And-White-Club/barbershop-bot/app/shared/events/report"
	sharedtypes "github.com/Black-And-White-Club/barbershop-bot/app/shared/types"
	"github.com/uptrace/bun"
)

// ScoreStore is the part of score persistence the session workflow needs.
// Scores belong to the score module; the round workflow reads them to
// aggregate and writes back status changes from verification and overrides.
type ScoreStore interface {
	ListScoresByAppearances(ctx context.Context, db bun.IDB, ids []sharedtypes.AppearanceID) ([]sharedtypes.Score, error)
	UpdateScores(ctx context.Context, db bun.IDB, scores []sharedtypes.Score) error
}

// Notifier dispatches report requests after a workflow step commits.
type Notifier interface {
	RequestReport(ctx context.Context, p reportevents.ReportRequestedPayloadV1) error
}
