package logs

import (
	"context"
	"fmt"
)

// WrapSpan annotates err with the span of ctx.
func WrapSpan(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	span, ok := ctx.Value(SpanKey).(Span)
	if !ok {
		return err
	}
	return fmt.Errorf("%w (span %s)", err, span)
}
