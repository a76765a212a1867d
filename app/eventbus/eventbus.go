// Package eventbus connects the modules to NATS JetStream through watermill.
package eventbus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/Black-And-White-Club/barbershop-bot/app/shared/handlerwrapper"
	"github.com/ThreeDotsLabs/watermill"
	wmnats "github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	nc "github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// EventBus publishes and subscribes module events.
type EventBus interface {
	message.Publisher
	message.Subscriber
	// CreateStream makes sure a stream named name captures subject.
	CreateStream(ctx context.Context, name, subject string) error
}

// Streams maps every stream the service owns to the subjects it captures.
var Streams = map[string]string{
	"score":       "score.>",
	"round":       "round.>",
	"leaderboard": "leaderboard.>",
	"report":      "report.>",
}

type eventBus struct {
	publisher      message.Publisher
	subscriber     message.Subscriber
	js             jetstream.JetStream
	natsConn       *nc.Conn
	logger         *slog.Logger
	createdStreams map[string]bool
	streamMutex    sync.Mutex
}

var durableNames = strings.NewReplacer(".", "_", ">", "all", "*", "any")

// durableName derives a JetStream consumer name, which may not contain dots
// or wildcards, from a topic.
func durableName(prefix, topic string) string {
	return prefix + durableNames.Replace(topic)
}

// NewEventBus connects to NATS, provisions Streams and returns the bus.
func NewEventBus(ctx context.Context, natsURL, consumerPrefix string, logger *slog.Logger) (EventBus, error) {
	natsConn, err := nc.Connect(natsURL, nc.RetryOnFailedConnect(true), nc.MaxReconnects(-1))
	if err != nil {
		logger.Error("Failed to connect to NATS", slog.Any("error", err))
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := jetstream.New(natsConn)
	if err != nil {
		natsConn.Close()
		return nil, fmt.Errorf("failed to initialize JetStream: %w", err)
	}

	watermillLogger := watermill.NewSlogLogger(logger)
	marshaler := &wmnats.NATSMarshaler{}
	jsConfig := wmnats.JetStreamConfig{
		AutoProvision:     false,
		TrackMsgId:        true,
		DurablePrefix:     consumerPrefix,
		DurableCalculator: durableName,
		SubscribeOptions:  []nc.SubOpt{nc.DeliverAll(), nc.AckExplicit()},
	}

	publisher, err := wmnats.NewPublisher(
		wmnats.PublisherConfig{
			URL:         natsURL,
			Marshaler:   marshaler,
			NatsOptions: []nc.Option{nc.RetryOnFailedConnect(true)},
			JetStream:   jsConfig,
		},
		watermillLogger,
	)
	if err != nil {
		natsConn.Close()
		return nil, fmt.Errorf("failed to create watermill publisher: %w", err)
	}

	subscriber, err := wmnats.NewSubscriber(
		wmnats.SubscriberConfig{
			URL:              natsURL,
			Unmarshaler:      marshaler,
			SubscribersCount: 1,
			AckWaitTimeout:   30 * time.Second,
			CloseTimeout:     10 * time.Second,
			NatsOptions:      []nc.Option{nc.RetryOnFailedConnect(true)},
			JetStream:        jsConfig,
		},
		watermillLogger,
	)
	if err != nil {
		_ = publisher.Close()
		natsConn.Close()
		return nil, fmt.Errorf("failed to create watermill subscriber: %w", err)
	}

	eb := &eventBus{
		publisher:      publisher,
		subscriber:     subscriber,
		js:             js,
		natsConn:       natsConn,
		logger:         logger,
		createdStreams: make(map[string]bool),
	}

	for name, subject := range Streams {
		if err := eb.CreateStream(ctx, name, subject); err != nil {
			_ = eb.Close()
			return nil, err
		}
	}
	return eb, nil
}

// Publish sends messages to topic. An empty topic routes each message by its
// "topic" metadata, which is how routers forward handler results.
func (eb *eventBus) Publish(topic string, messages ...*message.Message) error {
	for _, msg := range messages {
		if msg.UUID == "" {
			msg.UUID = watermill.NewUUID()
		}
		target := topic
		if target == "" {
			target = msg.Metadata.Get(handlerwrapper.TopicMetadataKey)
		}
		if target == "" {
			return fmt.Errorf("message %s has no topic", msg.UUID)
		}
		if err := eb.publisher.Publish(target, msg); err != nil {
			eb.logger.Error("Failed to publish message",
				slog.String("topic", target),
				slog.String("message_id", msg.UUID),
				slog.Any("error", err),
			)
			return fmt.Errorf("failed to publish to %s: %w", target, err)
		}
		eb.logger.Debug("Message published",
			slog.String("topic", target),
			slog.String("message_id", msg.UUID),
		)
	}
	return nil
}

func (eb *eventBus) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	eb.logger.Info("Subscribing to topic", slog.String("topic", topic))
	messages, err := eb.subscriber.Subscribe(ctx, topic)
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe to %s: %w", topic, err)
	}
	return messages, nil
}

func (eb *eventBus) CreateStream(ctx context.Context, name, subject string) error {
	eb.streamMutex.Lock()
	defer eb.streamMutex.Unlock()

	if eb.createdStreams[name] {
		return nil
	}

	stream, err := eb.js.Stream(ctx, name)
	switch {
	case errors.Is(err, jetstream.ErrStreamNotFound):
		_, err = eb.js.CreateStream(ctx, jetstream.StreamConfig{
			Name:     name,
			Subjects: []string{subject},
		})
		if err != nil {
			return fmt.Errorf("failed to create stream %s: %w", name, err)
		}
		eb.logger.Info("Stream created", slog.String("stream", name), slog.String("subject", subject))
	case err != nil:
		return fmt.Errorf("failed to check stream %s: %w", name, err)
	default:
		info, err := stream.Info(ctx)
		if err != nil {
			return fmt.Errorf("failed to get stream info for %s: %w", name, err)
		}
		found := false
		for _, s := range info.Config.Subjects {
			if s == subject {
				found = true
				break
			}
		}
		if !found {
			info.Config.Subjects = append(info.Config.Subjects, subject)
			if _, err := eb.js.UpdateStream(ctx, info.Config); err != nil {
				return fmt.Errorf("failed to add subject %s to stream %s: %w", subject, name, err)
			}
			eb.logger.Info("Stream updated", slog.String("stream", name), slog.String("subject", subject))
		}
	}

	eb.createdStreams[name] = true
	return nil
}

// Close closes the watermill publisher, subscriber and the NATS connection.
func (eb *eventBus) Close() error {
	var errs []error
	if eb.publisher != nil {
		if err := eb.publisher.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing publisher: %w", err))
		}
	}
	if eb.subscriber != nil {
		if err := eb.subscriber.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing subscriber: %w", err))
		}
	}
	if eb.natsConn != nil {
		eb.natsConn.Close()
	}
	return errors.Join(errs...)
}
