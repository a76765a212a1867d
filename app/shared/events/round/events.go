// Package roundevents defines the topics and payloads of the round module:
// conventions, sessions, rounds, appearances and administrative overrides.
package roundevents

import (
	sharedtypes "github.com/Black-And-White-Club/barbershop-bot/app/shared/types"
)

const (
	ConventionCreateRequestedV1     = "round.convention.create.requested.v1"
	ConventionCreatedV1             = "round.convention.created.v1"
	ConventionTransitionRequestedV1 = "round.convention.transition.requested.v1"
	ConventionTransitionedV1        = "round.convention.transitioned.v1"

	SessionCreateRequestedV1     = "round.session.create.requested.v1"
	SessionCreatedV1             = "round.session.created.v1"
	SessionTransitionRequestedV1 = "round.session.transition.requested.v1"
	SessionTransitionedV1        = "round.session.transitioned.v1"

	ContestAddRequestedV1 = "round.session.contest.add.requested.v1"
	ContestAddedV1        = "round.session.contest.added.v1"

	CompetitorRegisterRequestedV1 = "round.session.competitor.register.requested.v1"
	CompetitorRegisteredV1        = "round.session.competitor.registered.v1"

	PanelistAssignRequestedV1  = "round.panelist.assign.requested.v1"
	PanelistAssignedV1         = "round.panelist.assigned.v1"
	PanelistReleaseRequestedV1 = "round.panelist.release.requested.v1"
	PanelistReleasedV1         = "round.panelist.released.v1"

	RoundTransitionRequestedV1 = "round.transition.requested.v1"
	RoundTransitionedV1        = "round.transitioned.v1"
	// RoundFinishedV1 follows a successful round finish and carries the
	// advancement outcome.
	RoundFinishedV1 = "round.finished.v1"

	AppearanceTransitionRequestedV1 = "round.appearance.transition.requested.v1"
	AppearanceTransitionedV1        = "round.appearance.transitioned.v1"

	OverrideRequestedV1 = "round.override.requested.v1"
	OverriddenV1        = "round.overridden.v1"

	RoundRequestFailedV1 = "round.request.failed.v1"
)

// Action names a lifecycle step requested on a session, round or appearance.
type Action string

const (
	ActionOpen     Action = "open"
	ActionClose    Action = "close"
	ActionValidate Action = "validate"
	ActionDraw     Action = "draw"
	ActionStart    Action = "start"
	ActionFinish   Action = "finish"
	ActionVerify   Action = "verify"
	ActionPublish  Action = "publish"
)

type ConventionCreateRequestedPayloadV1 struct {
	Name   string                      `json:"name" validate:"required"`
	Season string                      `json:"season" validate:"required"`
	Year   int                         `json:"year" validate:"gte=1938"`
	Level  sharedtypes.ConventionLevel `json:"level" validate:"required,oneof=international district division"`
}

type ConventionCreatedPayloadV1 struct {
	Convention sharedtypes.Convention `json:"convention"`
}

type ConventionTransitionRequestedPayloadV1 struct {
	ConventionID sharedtypes.ConventionID     `json:"convention_id"`
	To           sharedtypes.ConventionStatus `json:"to"`
}

type ConventionTransitionedPayloadV1 struct {
	ConventionID sharedtypes.ConventionID     `json:"convention_id"`
	From         sharedtypes.ConventionStatus `json:"from"`
	To           sharedtypes.ConventionStatus `json:"to"`
}

type SessionCreateRequestedPayloadV1 struct {
	ConventionID sharedtypes.ConventionID    `json:"convention_id"`
	Kind         sharedtypes.SessionKind     `json:"kind" validate:"required,oneof=quartet chorus vlq"`
	Level        sharedtypes.ConventionLevel `json:"level" validate:"required,oneof=international district division"`
	NumRounds    int                         `json:"num_rounds" validate:"gte=1,lte=3"`
	Spots        int                         `json:"spots" validate:"gte=0"`
}

type SessionCreatedPayloadV1 struct {
	Session sharedtypes.Session `json:"session"`
}

type SessionTransitionRequestedPayloadV1 struct {
	SessionID sharedtypes.SessionID `json:"session_id"`
	Action    Action                `json:"action" validate:"required,oneof=open close validate start finish publish"`
	// NumSongs applies to validate and defaults to two songs per appearance.
	NumSongs int `json:"num_songs,omitempty" validate:"gte=0"`
}

type SessionTransitionedPayloadV1 struct {
	SessionID sharedtypes.SessionID     `json:"session_id"`
	From      sharedtypes.SessionStatus `json:"from"`
	To        sharedtypes.SessionStatus `json:"to"`
}

type ContestAddRequestedPayloadV1 struct {
	SessionID sharedtypes.SessionID `json:"session_id"`
	Award     sharedtypes.Award     `json:"award"`
}

type ContestAddedPayloadV1 struct {
	SessionID sharedtypes.SessionID `json:"session_id"`
	Contest   sharedtypes.Contest   `json:"contest"`
}

type CompetitorRegisterRequestedPayloadV1 struct {
	SessionID  sharedtypes.SessionID   `json:"session_id"`
	Name       string                  `json:"name" validate:"required"`
	ContestIDs []sharedtypes.ContestID `json:"contest_ids"`
}

type CompetitorRegisteredPayloadV1 struct {
	SessionID  sharedtypes.SessionID  `json:"session_id"`
	Competitor sharedtypes.Competitor `json:"competitor"`
}

type PanelistAssignRequestedPayloadV1 struct {
	SessionID sharedtypes.SessionID        `json:"session_id"`
	RoundID   sharedtypes.RoundID          `json:"round_id"`
	Name      string                       `json:"name" validate:"required"`
	Kind      sharedtypes.PanelistKind     `json:"kind" validate:"required,oneof=official practice observer"`
	Category  sharedtypes.PanelistCategory `json:"category" validate:"required,oneof=drcj ca music performance singing"`
}

type PanelistAssignedPayloadV1 struct {
	SessionID sharedtypes.SessionID `json:"session_id"`
	Panelist  sharedtypes.Panelist  `json:"panelist"`
}

type PanelistReleaseRequestedPayloadV1 struct {
	SessionID  sharedtypes.SessionID  `json:"session_id"`
	PanelistID sharedtypes.PanelistID `json:"panelist_id"`
}

type PanelistReleasedPayloadV1 struct {
	SessionID sharedtypes.SessionID `json:"session_id"`
	Panelist  sharedtypes.Panelist  `json:"panelist"`
}

type RoundTransitionRequestedPayloadV1 struct {
	SessionID sharedtypes.SessionID `json:"session_id"`
	RoundID   sharedtypes.RoundID   `json:"round_id"`
	Action    Action                `json:"action" validate:"required,oneof=draw validate start finish publish"`
}

type RoundTransitionedPayloadV1 struct {
	SessionID sharedtypes.SessionID   `json:"session_id"`
	RoundID   sharedtypes.RoundID     `json:"round_id"`
	From      sharedtypes.RoundStatus `json:"from"`
	To        sharedtypes.RoundStatus `json:"to"`
}

type RoundFinishedPayloadV1 struct {
	SessionID   sharedtypes.SessionID        `json:"session_id"`
	RoundID     sharedtypes.RoundID          `json:"round_id"`
	Kind        string                       `json:"kind"`
	Final       bool                         `json:"final"`
	Advanced    []sharedtypes.CompetitorID   `json:"advanced,omitempty"`
	NextRoundID *sharedtypes.RoundID         `json:"next_round_id,omitempty"`
	Flagged     map[sharedtypes.Category]int `json:"flagged,omitempty"`
}

type AppearanceTransitionRequestedPayloadV1 struct {
	SessionID    sharedtypes.SessionID    `json:"session_id"`
	AppearanceID sharedtypes.AppearanceID `json:"appearance_id"`
	Action       Action                   `json:"action" validate:"required,oneof=start finish verify"`
}

type AppearanceTransitionedPayloadV1 struct {
	SessionID    sharedtypes.SessionID        `json:"session_id"`
	AppearanceID sharedtypes.AppearanceID     `json:"appearance_id"`
	From         sharedtypes.AppearanceStatus `json:"from"`
	To           sharedtypes.AppearanceStatus `json:"to"`
	Totals       sharedtypes.Totals           `json:"totals"`
	// Variance is set by verify when a score needs human review.
	Variance bool                         `json:"variance,omitempty"`
	Flagged  map[sharedtypes.Category]int `json:"flagged,omitempty"`
}

// OverrideEntity names what an administrative override targets.
type OverrideEntity string

const (
	OverrideSession    OverrideEntity = "session"
	OverrideRound      OverrideEntity = "round"
	OverrideAppearance OverrideEntity = "appearance"
	OverrideEntry      OverrideEntity = "entry"
	OverrideScore      OverrideEntity = "score"
)

// OverrideRequestedPayloadV1 forces a status without the transition table.
// ContestID is required for entries, whose ID is the competitor's.
type OverrideRequestedPayloadV1 struct {
	SessionID sharedtypes.SessionID  `json:"session_id"`
	Entity    OverrideEntity         `json:"entity" validate:"required,oneof=session round appearance entry score"`
	ID        string                 `json:"id" validate:"required,uuid"`
	ContestID *sharedtypes.ContestID `json:"contest_id,omitempty"`
	To        string                 `json:"to" validate:"required"`
	Actor     string                 `json:"actor" validate:"required"`
	Reason    string                 `json:"reason" validate:"required"`
}

type OverriddenPayloadV1 struct {
	SessionID sharedtypes.SessionID `json:"session_id"`
	Entity    OverrideEntity        `json:"entity"`
	ID        string                `json:"id"`
	From      string                `json:"from"`
	To        string                `json:"to"`
	Actor     string                `json:"actor"`
	Reason    string                `json:"reason"`
}

// RoundRequestFailedPayloadV1 reports a rejected command. BlockingEntity and
// BlockingID name the child that prevented a transition, when there is one.
type RoundRequestFailedPayloadV1 struct {
	SessionID      sharedtypes.SessionID `json:"session_id,omitempty"`
	Operation      string                `json:"operation"`
	Reason         string                `json:"reason"`
	Entity         string                `json:"entity,omitempty"`
	EntityID       string                `json:"entity_id,omitempty"`
	BlockingEntity string                `json:"blocking_entity,omitempty"`
	BlockingID     string                `json:"blocking_id,omitempty"`
}
