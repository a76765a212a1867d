// Package scoreevents defines the topics and payloads of the score module.
package scoreevents

import (
	sharedtypes "github.com/Black-And-White-Club/barbershop-bot/app/shared/types"
)

const (
	ScoreSubmitRequestedV1 = "score.submit.requested.v1"
	ScoreSubmittedV1       = "score.submitted.v1"
	ScoreSubmitFailedV1    = "score.submit.failed.v1"

	ScoreReviseRequestedV1 = "score.revise.requested.v1"
	ScoreRevisedV1         = "score.revised.v1"
	ScoreReviseFailedV1    = "score.revise.failed.v1"

	ScoreVerifyRequestedV1 = "score.verify.requested.v1"
	ScoreVerifiedV1        = "score.verified.v1"
	ScoreVerifyFailedV1    = "score.verify.failed.v1"

	SongAggregateRequestedV1 = "score.song.aggregate.requested.v1"
	SongAggregatedV1         = "score.song.aggregated.v1"
	SongAggregateFailedV1    = "score.song.aggregate.failed.v1"
)

type ScoreSubmitRequestedPayloadV1 struct {
	SongID     sharedtypes.SongID     `json:"song_id"`
	PanelistID sharedtypes.PanelistID `json:"panelist_id"`
	Points     int                    `json:"points"`
	Penalty    int                    `json:"penalty"`
}

type ScoreSubmittedPayloadV1 struct {
	Score sharedtypes.Score `json:"score"`
}

type ScoreReviseRequestedPayloadV1 struct {
	ScoreID sharedtypes.ScoreID `json:"score_id"`
	Points  int                 `json:"points"`
	Actor   string              `json:"actor"`
}

type ScoreRevisedPayloadV1 struct {
	Score sharedtypes.Score `json:"score"`
	Actor string            `json:"actor"`
}

type ScoreVerifyRequestedPayloadV1 struct {
	SongID  sharedtypes.SongID  `json:"song_id"`
	ScoreID sharedtypes.ScoreID `json:"score_id"`
}

type ScoreVerifiedPayloadV1 struct {
	Score    sharedtypes.Score `json:"score"`
	Variance bool              `json:"variance"`
}

type SongAggregateRequestedPayloadV1 struct {
	SongID sharedtypes.SongID `json:"song_id"`
}

type SongAggregatedPayloadV1 struct {
	SongID   sharedtypes.SongID `json:"song_id"`
	Totals   sharedtypes.Totals `json:"totals"`
	Complete bool               `json:"complete"`
}

// ScoreFailedPayloadV1 is published on every score failure topic.
type ScoreFailedPayloadV1 struct {
	SongID  sharedtypes.SongID   `json:"song_id,omitempty"`
	ScoreID *sharedtypes.ScoreID `json:"score_id,omitempty"`
	Reason  string               `json:"reason"`
}
