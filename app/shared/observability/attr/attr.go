// Package attr provides slog attribute constructors used across modules so
// log records share key names.
package attr

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
)

type correlationKey struct{}

// CorrelationIDKey is the metadata and log key carrying the correlation id.
const CorrelationIDKey = "correlation_id"

func String(key, value string) slog.Attr { return slog.String(key, value) }

func Int(key string, value int) slog.Attr { return slog.Int(key, value) }

func Int64(key string, value int64) slog.Attr { return slog.Int64(key, value) }

func Bool(key string, value bool) slog.Attr { return slog.Bool(key, value) }

func Float64(key string, value float64) slog.Attr { return slog.Float64(key, value) }

func Duration(key string, value time.Duration) slog.Attr { return slog.Duration(key, value) }

func Time(key string, value time.Time) slog.Attr { return slog.Time(key, value) }

func Any(key string, value any) slog.Attr { return slog.Any(key, value) }

// ID logs any identifier by its string form.
func ID(key string, id fmt.Stringer) slog.Attr { return slog.String(key, id.String()) }

// Error logs err under the "error" key; a nil error logs as an empty string.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "")
	}
	return slog.String("error", err.Error())
}

// WithCorrelationID stores the correlation id on the context.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationKey{}, id)
}

// CorrelationID returns the correlation id stored on ctx, if any.
func CorrelationID(ctx context.Context) string {
	id, _ := ctx.Value(correlationKey{}).(string)
	return id
}

// ExtractCorrelationID logs the correlation id carried by ctx.
func ExtractCorrelationID(ctx context.Context) slog.Attr {
	return slog.String(CorrelationIDKey, CorrelationID(ctx))
}

// CorrelationIDFromMsg logs the correlation id set by the router middleware.
func CorrelationIDFromMsg(msg *message.Message) slog.Attr {
	return slog.String(CorrelationIDKey, middleware.MessageCorrelationID(msg))
}
