package roundqueue

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	reportevents "github.com/Black-And-White-Club/barbershop-bot/app/shared/events/report"
	"github.com/Black-And-White-Club/barbershop-bot/app/shared/handlerwrapper"
	sharedtypes "github.com/Black-And-White-Club/barbershop-bot/app/shared/types"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/rivertype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePublisher struct {
	topics []string
	msgs   []*message.Message
	err    error
}

func (p *fakePublisher) Publish(topic string, msgs ...*message.Message) error {
	if p.err != nil {
		return p.err
	}
	for _, m := range msgs {
		p.topics = append(p.topics, topic)
		p.msgs = append(p.msgs, m)
	}
	return nil
}

func (p *fakePublisher) Close() error { return nil }

func TestReportWorker_Work(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	fixed := time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC)
	appearanceID := sharedtypes.NewAppearanceID()
	args := ReportJob{
		Report:       reportevents.ReportCSA,
		SessionID:    sharedtypes.NewSessionID(),
		RoundID:      sharedtypes.NewRoundID(),
		AppearanceID: &appearanceID,
	}

	t.Run("publishes report request", func(t *testing.T) {
		pub := &fakePublisher{}
		w := NewReportWorker(logger, pub)
		w.now = func() time.Time { return fixed }

		err := w.Work(context.Background(), &river.Job[ReportJob]{
			JobRow: &rivertype.JobRow{ID: 7, Attempt: 1},
			Args:   args,
		})
		require.NoError(t, err)
		require.Len(t, pub.msgs, 1)
		assert.Equal(t, reportevents.ReportRequestedV1, pub.topics[0])
		assert.Equal(t, reportevents.ReportRequestedV1, pub.msgs[0].Metadata.Get(handlerwrapper.TopicMetadataKey))

		var got reportevents.ReportRequestedPayloadV1
		require.NoError(t, json.Unmarshal(pub.msgs[0].Payload, &got))
		assert.Equal(t, args.payload(fixed), got)
	})

	t.Run("publish failure retries the job", func(t *testing.T) {
		pub := &fakePublisher{err: errors.New("nats down")}
		w := NewReportWorker(logger, pub)

		err := w.Work(context.Background(), &river.Job[ReportJob]{
			JobRow: &rivertype.JobRow{ID: 8, Attempt: 2},
			Args:   args,
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "nats down")
	})
}

func TestDirectNotifier_RequestReport(t *testing.T) {
	pub := &fakePublisher{}
	n := NewDirectNotifier(pub)
	p := reportevents.ReportRequestedPayloadV1{
		Kind:      reportevents.ReportOSS,
		SessionID: sharedtypes.NewSessionID(),
		RoundID:   sharedtypes.NewRoundID(),
	}

	require.NoError(t, n.RequestReport(context.Background(), p))
	require.Len(t, pub.msgs, 1)
	assert.Equal(t, reportevents.ReportRequestedV1, pub.topics[0])
}

func TestReportJob_RoundTripsPayload(t *testing.T) {
	panelistID := sharedtypes.NewPanelistID()
	p := reportevents.ReportRequestedPayloadV1{
		Kind:       reportevents.ReportPSA,
		SessionID:  sharedtypes.NewSessionID(),
		RoundID:    sharedtypes.NewRoundID(),
		PanelistID: &panelistID,
	}
	at := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	p.RequestedAt = at

	job := jobFromPayload(p)
	assert.Equal(t, "report_request", job.Kind())
	assert.Equal(t, p, job.payload(at))
}
