package scorehandlers

import (
	"context"

	scoreevents "github.com/Black-And-White-Club/barbershop-bot/app/shared/events/score"
	"github.com/Black-And-White-Club/barbershop-bot/app/shared/handlerwrapper"
)

// Handlers defines the interface for score command handlers.
type Handlers interface {
	HandleSubmitScoreRequest(ctx context.Context, payload *scoreevents.ScoreSubmitRequestedPayloadV1) ([]handlerwrapper.Result, error)
	HandleReviseScoreRequest(ctx context.Context, payload *scoreevents.ScoreReviseRequestedPayloadV1) ([]handlerwrapper.Result, error)
	HandleVerifyScoreRequest(ctx context.Context, payload *scoreevents.ScoreVerifyRequestedPayloadV1) ([]handlerwrapper.Result, error)
	HandleSongAggregateRequest(ctx context.Context, payload *scoreevents.SongAggregateRequestedPayloadV1) ([]handlerwrapper.Result, error)
}
