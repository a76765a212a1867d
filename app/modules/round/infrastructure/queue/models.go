package roundqueue

import (
	"time"

	reportevents "github.com/Black-And-White-Club/barbershop-bot/app/shared/events/report"
	sharedtypes "github.com/Black-And-White-Club/barbershop-bot/app/shared/types"
)

// ReportJob asks for a scoring report once a workflow milestone commits.
// The worker turns it into a report.requested event.
type ReportJob struct {
	Report       reportevents.ReportKind   `json:"report"`
	SessionID    sharedtypes.SessionID     `json:"session_id"`
	RoundID      sharedtypes.RoundID       `json:"round_id"`
	AppearanceID *sharedtypes.AppearanceID `json:"appearance_id,omitempty"`
	PanelistID   *sharedtypes.PanelistID   `json:"panelist_id,omitempty"`
}

// Kind returns the job type identifier for River
func (ReportJob) Kind() string { return "report_request" }

func jobFromPayload(p reportevents.ReportRequestedPayloadV1) ReportJob {
	return ReportJob{
		Report:       p.Kind,
		SessionID:    p.SessionID,
		RoundID:      p.RoundID,
		AppearanceID: p.AppearanceID,
		PanelistID:   p.PanelistID,
	}
}

func (j ReportJob) payload(at time.Time) reportevents.ReportRequestedPayloadV1 {
	return reportevents.ReportRequestedPayloadV1{
		Kind:         j.Report,
		SessionID:    j.SessionID,
		RoundID:      j.RoundID,
		AppearanceID: j.AppearanceID,
		PanelistID:   j.PanelistID,
		RequestedAt:  at,
	}
}

// JobInfo represents information about a queued job (for debugging/monitoring)
type JobInfo struct {
	ID          int64  `json:"id"`
	Kind        string `json:"kind"`
	Report      string `json:"report"`
	State       string `json:"state"`
	CreatedAt   string `json:"created_at"`
	Attempt     int    `json:"attempt"`
	MaxAttempts int    `json:"max_attempts"`
}
