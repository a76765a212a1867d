// Package reportevents defines the report requests emitted after workflow
// milestones. Rendering the reports happens outside this service.
package reportevents

import (
	"time"

	sharedtypes "github.com/Black-And-White-Club/barbershop-bot/app/shared/types"
)

const ReportRequestedV1 = "report.requested.v1"

// ReportKind names the document an external renderer should produce.
type ReportKind string

const (
	// ReportCSA is the competitor scoring analysis sent after an appearance is verified.
	ReportCSA ReportKind = "csa"
	// ReportPSA is the panelist scoring analysis sent when a panelist is released.
	ReportPSA ReportKind = "psa"
	// ReportOSS is the official scoring summary generated after a round finishes.
	ReportOSS ReportKind = "oss"
)

type ReportRequestedPayloadV1 struct {
	Kind         ReportKind                `json:"kind"`
	SessionID    sharedtypes.SessionID     `json:"session_id"`
	RoundID      sharedtypes.RoundID       `json:"round_id"`
	AppearanceID *sharedtypes.AppearanceID `json:"appearance_id,omitempty"`
	PanelistID   *sharedtypes.PanelistID   `json:"panelist_id,omitempty"`
	RequestedAt  time.Time                 `json:"requested_at"`
}
