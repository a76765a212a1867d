package attr

import (
	"context"
	"errors"
	"testing"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/google/uuid"
)

func TestCorrelationID(t *testing.T) {
	ctx := WithCorrelationID(context.Background(), "abc")
	if got := ExtractCorrelationID(ctx).Value.String(); got != "abc" {
		t.Errorf("expected abc, got %q", got)
	}
	if got := CorrelationID(context.Background()); got != "" {
		t.Errorf("expected empty correlation id, got %q", got)
	}
}

func TestCorrelationIDFromMsg(t *testing.T) {
	msg := message.NewMessage(watermill.NewUUID(), nil)
	middleware.SetCorrelationID("corr-1", msg)
	if got := CorrelationIDFromMsg(msg).Value.String(); got != "corr-1" {
		t.Errorf("expected corr-1, got %q", got)
	}
}

func TestErrorAndID(t *testing.T) {
	if got := Error(nil).Value.String(); got != "" {
		t.Errorf("expected empty error string, got %q", got)
	}
	if got := Error(errors.New("boom")).Value.String(); got != "boom" {
		t.Errorf("expected boom, got %q", got)
	}
	id := uuid.New()
	if got := ID("id", id).Value.String(); got != id.String() {
		t.Errorf("expected %s, got %s", id, got)
	}
}
