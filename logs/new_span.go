package logs

import (
	"context"

	"github.com/google/uuid"
)

type NewSpan func(ctx context.Context, parent Span) (context.Context, Span)

func (Module) NewSpan(
	logger Logger,
) NewSpan {
	return func(ctx context.Context, parent Span) (context.Context, Span) {

		var creator Span
		if v, ok := ctx.Value(SpanKey).(Span); ok {
			creator = v
		}
		if parent == "" {
			parent = creator
		}

		span := Span(uuid.NewString())
		ctx = context.WithValue(ctx, SpanKey, span)

		var args []any
		if creator != "" && creator != parent {
			args = append(args, "creator", creator)
		}
		if parent != "" {
			args = append(args, "parent", parent)
		}
		logger.DebugContext(ctx, "new span", args...)

		return ctx, span
	}
}
