package leaderboardhandlers

import (
	"context"

	leaderboardevents "github.com/Black-And-White-Club/barbershop-bot/app/shared/events/leaderboard"
	roundevents "github.com/Black-And-White-Club/barbershop-bot/app/shared/events/round"
	"github.com/Black-And-White-Club/barbershop-bot/app/shared/handlerwrapper"
)

// Handlers defines the interface for leaderboard handlers.
type Handlers interface {
	HandleContestStandingsRequest(ctx context.Context, payload *leaderboardevents.ContestStandingsRequestedPayloadV1) ([]handlerwrapper.Result, error)
	HandleRoundStandingsRequest(ctx context.Context, payload *leaderboardevents.RoundStandingsRequestedPayloadV1) ([]handlerwrapper.Result, error)
	HandleRoundOutcomesRequest(ctx context.Context, payload *leaderboardevents.RoundOutcomesRequestedPayloadV1) ([]handlerwrapper.Result, error)
	HandleRoundFinished(ctx context.Context, payload *roundevents.RoundFinishedPayloadV1) ([]handlerwrapper.Result, error)
}
