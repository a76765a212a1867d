// Package handlerwrapper adapts typed command handlers to watermill.
package handlerwrapper

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/Black-And-White-Club/barbershop-bot/app/shared/observability/attr"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// TopicMetadataKey names the metadata entry a router reads to route an
// outgoing message.
const TopicMetadataKey = "topic"

// Result is one outgoing event produced by a handler.
type Result struct {
	Topic    string
	Payload  any
	Metadata map[string]string
}

// Metrics is the handler-level slice of the module metrics.
type Metrics interface {
	RecordHandlerAttempt(ctx context.Context, handler string)
	RecordHandlerSuccess(ctx context.Context, handler string)
	RecordHandlerFailure(ctx context.Context, handler string)
	RecordHandlerDuration(ctx context.Context, handler string, duration time.Duration)
}

// WrapTransformingTyped unmarshals the incoming payload into T, runs handler
// and turns each Result into a message tagged with its destination topic and
// the incoming correlation id.
func WrapTransformingTyped[T any](
	handlerName string,
	logger *slog.Logger,
	tracer trace.Tracer,
	metrics Metrics,
	handler func(context.Context, *T) ([]Result, error),
) message.HandlerFunc {
	return func(msg *message.Message) ([]*message.Message, error) {
		correlationID := middleware.MessageCorrelationID(msg)
		ctx := attr.WithCorrelationID(msg.Context(), correlationID)

		ctx, span := tracer.Start(ctx, handlerName, trace.WithAttributes(
			attribute.String("handler", handlerName),
			attribute.String("message_id", msg.UUID),
		))
		defer span.End()

		metrics.RecordHandlerAttempt(ctx, handlerName)
		start := time.Now()
		defer func() {
			metrics.RecordHandlerDuration(ctx, handlerName, time.Since(start))
		}()

		logger.InfoContext(ctx, handlerName+" triggered",
			attr.CorrelationIDFromMsg(msg),
			attr.String("message_id", msg.UUID),
		)

		payload := new(T)
		if err := json.Unmarshal(msg.Payload, payload); err != nil {
			metrics.RecordHandlerFailure(ctx, handlerName)
			span.RecordError(err)
			logger.ErrorContext(ctx, "Failed to unmarshal payload",
				attr.CorrelationIDFromMsg(msg),
				attr.Error(err),
			)
			return nil, fmt.Errorf("%s: failed to unmarshal payload: %w", handlerName, err)
		}

		results, err := handler(ctx, payload)
		if err != nil {
			metrics.RecordHandlerFailure(ctx, handlerName)
			span.RecordError(err)
			logger.ErrorContext(ctx, "Error in "+handlerName,
				attr.CorrelationIDFromMsg(msg),
				attr.Error(err),
			)
			return nil, err
		}

		out := make([]*message.Message, 0, len(results))
		for _, r := range results {
			m, err := newResultMessage(r, correlationID)
			if err != nil {
				metrics.RecordHandlerFailure(ctx, handlerName)
				return nil, fmt.Errorf("%s: %w", handlerName, err)
			}
			out = append(out, m)
		}

		metrics.RecordHandlerSuccess(ctx, handlerName)
		logger.InfoContext(ctx, handlerName+" completed successfully",
			attr.CorrelationIDFromMsg(msg),
			attr.Int("results", len(out)),
		)
		return out, nil
	}
}

func newResultMessage(r Result, correlationID string) (*message.Message, error) {
	if r.Topic == "" {
		return nil, fmt.Errorf("result has no topic")
	}
	body, err := json.Marshal(r.Payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload for %s: %w", r.Topic, err)
	}
	m := message.NewMessage(watermill.NewUUID(), body)
	for k, v := range r.Metadata {
		m.Metadata.Set(k, v)
	}
	m.Metadata.Set(TopicMetadataKey, r.Topic)
	if correlationID != "" {
		middleware.SetCorrelationID(correlationID, m)
	}
	return m, nil
}
