package roundqueue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	reportevents "github.com/Black-And-White-Club/barbershop-bot/app/shared/events/report"
	"github.com/Black-And-White-Club/barbershop-bot/app/shared/handlerwrapper"
	"github.com/Black-And-White-Club/barbershop-bot/app/shared/observability/attr"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/riverqueue/river"
)

// ReportWorker publishes queued report requests to the event bus.
type ReportWorker struct {
	river.WorkerDefaults[ReportJob]
	logger    *slog.Logger
	publisher message.Publisher
	now       func() time.Time
}

func NewReportWorker(logger *slog.Logger, publisher message.Publisher) *ReportWorker {
	return &ReportWorker{logger: logger, publisher: publisher, now: time.Now}
}

func (w *ReportWorker) Work(ctx context.Context, job *river.Job[ReportJob]) error {
	w.logger.InfoContext(ctx, "Publishing report request",
		attr.Int64("job_id", job.ID),
		attr.String("report", string(job.Args.Report)),
		attr.ID("round_id", job.Args.RoundID),
		attr.Int("attempt", job.Attempt),
	)
	return publishReport(w.publisher, job.Args.payload(w.now().UTC()))
}

func publishReport(publisher message.Publisher, p reportevents.ReportRequestedPayloadV1) error {
	body, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal report request: %w", err)
	}
	msg := message.NewMessage(watermill.NewUUID(), body)
	msg.Metadata.Set(handlerwrapper.TopicMetadataKey, reportevents.ReportRequestedV1)
	if err := publisher.Publish(reportevents.ReportRequestedV1, msg); err != nil {
		return fmt.Errorf("failed to publish report request: %w", err)
	}
	return nil
}

// DirectNotifier publishes report requests immediately. It serves deployments
// that run without the job queue.
type DirectNotifier struct {
	publisher message.Publisher
}

func NewDirectNotifier(publisher message.Publisher) *DirectNotifier {
	return &DirectNotifier{publisher: publisher}
}

func (n *DirectNotifier) RequestReport(_ context.Context, p reportevents.ReportRequestedPayloadV1) error {
	return publishReport(n.publisher, p)
}
