package handlerwrapper

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/Black-And-White-Club/barbershop-bot/app/shared/observability/contestmetrics"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
)

type ping struct {
	Value int `json:"value"`
}

func newWrapped(h func(context.Context, *ping) ([]Result, error)) message.HandlerFunc {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return WrapTransformingTyped("test.ping", logger, noop.NewTracerProvider().Tracer("test"), contestmetrics.NoOp{}, h)
}

func TestWrapTransformingTyped(t *testing.T) {
	t.Run("routes results with topic and correlation id", func(t *testing.T) {
		var got *ping
		h := newWrapped(func(ctx context.Context, p *ping) ([]Result, error) {
			got = p
			return []Result{{Topic: "pong.v1", Payload: ping{Value: p.Value + 1}}}, nil
		})

		in := message.NewMessage(watermill.NewUUID(), []byte(`{"value":41}`))
		middleware.SetCorrelationID("corr", in)

		out, err := h(in)
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, 41, got.Value)
		assert.Equal(t, "pong.v1", out[0].Metadata.Get(TopicMetadataKey))
		assert.Equal(t, "corr", middleware.MessageCorrelationID(out[0]))

		var decoded ping
		require.NoError(t, json.Unmarshal(out[0].Payload, &decoded))
		assert.Equal(t, 42, decoded.Value)
	})

	t.Run("rejects malformed payloads", func(t *testing.T) {
		called := false
		h := newWrapped(func(ctx context.Context, p *ping) ([]Result, error) {
			called = true
			return nil, nil
		})
		_, err := h(message.NewMessage(watermill.NewUUID(), []byte(`not json`)))
		require.Error(t, err)
		assert.False(t, called)
	})

	t.Run("propagates handler errors", func(t *testing.T) {
		boom := errors.New("boom")
		h := newWrapped(func(ctx context.Context, p *ping) ([]Result, error) {
			return nil, boom
		})
		_, err := h(message.NewMessage(watermill.NewUUID(), []byte(`{}`)))
		assert.ErrorIs(t, err, boom)
	})

	t.Run("rejects results without a topic", func(t *testing.T) {
		h := newWrapped(func(ctx context.Context, p *ping) ([]Result, error) {
			return []Result{{Payload: p}}, nil
		})
		_, err := h(message.NewMessage(watermill.NewUUID(), []byte(`{}`)))
		assert.Error(t, err)
	})
}
