//go:build integration

package eventbusintegrationtests

import (
	"context"
	"io"
	"log"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/Black-And-White-Club/barbershop-bot/app/eventbus"
	"github.com/Black-And-White-Club/barbershop-bot/app/shared/handlerwrapper"
	"github.com/Black-And-White-Club/barbershop-bot/integration_tests/containers"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var natsURL string

func TestMain(m *testing.M) {
	ctx := context.Background()
	container, url, err := containers.SetupNatsContainer(ctx)
	if err != nil {
		log.Fatalf("Failed to start NATS: %v", err)
	}
	natsURL = url

	code := m.Run()

	_ = container.Terminate(ctx)
	os.Exit(code)
}

func newBus(t *testing.T, prefix string) eventbus.EventBus {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	bus, err := eventbus.NewEventBus(context.Background(), natsURL, prefix, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = bus.Close() })
	return bus
}

func receive(t *testing.T, ch <-chan *message.Message) *message.Message {
	t.Helper()
	select {
	case msg := <-ch:
		msg.Ack()
		return msg
	case <-time.After(15 * time.Second):
		t.Fatal("timed out waiting for message")
		return nil
	}
}

func TestEventBus_RoutesByTopicMetadata(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	bus := newBus(t, "metadata_")

	const topic = "score.roundtrip.v1"
	ch, err := bus.Subscribe(ctx, topic)
	require.NoError(t, err)

	msg := message.NewMessage(watermill.NewUUID(), []byte(`{"points":77}`))
	msg.Metadata.Set(handlerwrapper.TopicMetadataKey, topic)
	middleware.SetCorrelationID("corr-1", msg)
	require.NoError(t, bus.Publish("", msg))

	got := receive(t, ch)
	assert.JSONEq(t, `{"points":77}`, string(got.Payload))
	assert.Equal(t, "corr-1", middleware.MessageCorrelationID(got))
}

func TestEventBus_RejectsMessageWithoutTopic(t *testing.T) {
	bus := newBus(t, "notopic_")
	err := bus.Publish("", message.NewMessage(watermill.NewUUID(), []byte(`{}`)))
	assert.Error(t, err)
}

func TestEventBus_CreateStreamIsIdempotent(t *testing.T) {
	ctx := context.Background()
	bus := newBus(t, "streams_")

	for name, subject := range eventbus.Streams {
		require.NoError(t, bus.CreateStream(ctx, name, subject))
	}
	require.NoError(t, bus.CreateStream(ctx, "round", "round.>"))
}

func TestEventBus_DurableConsumerKeepsMessages(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	const topic = "leaderboard.durable.v1"
	publisher := newBus(t, "durable_pub_")
	require.NoError(t, publisher.Publish(topic, message.NewMessage(watermill.NewUUID(), []byte(`{"n":1}`))))

	// The subscriber arrives after the publish; JetStream delivers from the start.
	subscriber := newBus(t, "durable_sub_")
	ch, err := subscriber.Subscribe(ctx, topic)
	require.NoError(t, err)

	got := receive(t, ch)
	assert.JSONEq(t, `{"n":1}`, string(got.Payload))
}
