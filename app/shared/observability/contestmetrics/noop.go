package contestmetrics

import (
	"context"
	"time"
)

// NoOp discards every measurement. Tests and tools without a registry use it.
type NoOp struct{}

var _ Metrics = NoOp{}

func (NoOp) RecordOperationAttempt(context.Context, string)                 {}
func (NoOp) RecordOperationSuccess(context.Context, string)                 {}
func (NoOp) RecordOperationFailure(context.Context, string)                 {}
func (NoOp) RecordOperationDuration(context.Context, string, time.Duration) {}
func (NoOp) RecordHandlerAttempt(context.Context, string)                   {}
func (NoOp) RecordHandlerSuccess(context.Context, string)                   {}
func (NoOp) RecordHandlerFailure(context.Context, string)                   {}
func (NoOp) RecordHandlerDuration(context.Context, string, time.Duration)   {}
func (NoOp) RecordScoresFlagged(context.Context, string, int)               {}
func (NoOp) RecordAdvancement(context.Context, string, int)                 {}
