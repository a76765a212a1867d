// Package leaderboardevents defines the topics and payloads of the leaderboard module.
package leaderboardevents

import (
	sharedtypes "github.com/Black-And-White-Club/barbershop-bot/app/shared/types"
)

const (
	ContestStandingsRequestedV1 = "leaderboard.contest.standings.requested.v1"
	ContestStandingsV1          = "leaderboard.contest.standings.v1"

	RoundStandingsRequestedV1 = "leaderboard.round.standings.requested.v1"
	RoundStandingsV1          = "leaderboard.round.standings.v1"

	RoundOutcomesRequestedV1 = "leaderboard.round.outcomes.requested.v1"
	RoundOutcomesV1          = "leaderboard.round.outcomes.v1"

	LeaderboardRequestFailedV1 = "leaderboard.request.failed.v1"
)

// Standing is one row of a ranked table. Rank is nil while the row has no
// complete aggregate.
type Standing struct {
	CompetitorID sharedtypes.CompetitorID        `json:"competitor_id"`
	Name         string                          `json:"name"`
	Rank         *int                            `json:"rank,omitempty"`
	Totals       sharedtypes.Totals              `json:"totals"`
	Result       sharedtypes.QualificationResult `json:"result,omitempty"`
	Status       string                          `json:"status,omitempty"`
}

type ContestStandingsRequestedPayloadV1 struct {
	SessionID sharedtypes.SessionID `json:"session_id"`
	ContestID sharedtypes.ContestID `json:"contest_id"`
}

type ContestStandingsPayloadV1 struct {
	SessionID  sharedtypes.SessionID     `json:"session_id"`
	ContestID  sharedtypes.ContestID     `json:"contest_id"`
	Award      string                    `json:"award"`
	ChampionID *sharedtypes.CompetitorID `json:"champion_id,omitempty"`
	Standings  []Standing                `json:"standings"`
}

type RoundStandingsRequestedPayloadV1 struct {
	SessionID sharedtypes.SessionID `json:"session_id"`
	RoundID   sharedtypes.RoundID   `json:"round_id"`
}

type RoundStandingsPayloadV1 struct {
	SessionID sharedtypes.SessionID `json:"session_id"`
	RoundID   sharedtypes.RoundID   `json:"round_id"`
	Kind      string                `json:"kind"`
	Standings []Standing            `json:"standings"`
}

type RoundOutcomesRequestedPayloadV1 struct {
	SessionID sharedtypes.SessionID `json:"session_id"`
	RoundID   sharedtypes.RoundID   `json:"round_id"`
}

type Outcome struct {
	OutcomeID sharedtypes.OutcomeID `json:"outcome_id"`
	ContestID sharedtypes.ContestID `json:"contest_id"`
	Num       int                   `json:"num"`
	Award     string                `json:"award"`
	Name      string                `json:"name"`
}

type RoundOutcomesPayloadV1 struct {
	SessionID sharedtypes.SessionID `json:"session_id"`
	RoundID   sharedtypes.RoundID   `json:"round_id"`
	Outcomes  []Outcome             `json:"outcomes"`
}

type LeaderboardRequestFailedPayloadV1 struct {
	SessionID sharedtypes.SessionID `json:"session_id"`
	Reason    string                `json:"reason"`
}
