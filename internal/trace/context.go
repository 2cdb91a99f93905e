package trace

import "context"

// contextKey is a private type for context keys.
type contextKey string

func (c contextKey) String() string {
	return string(c)
}

var traceCtxKey = contextKey("openTrace")

// WithContext returns a copy of ctx carrying ot.
func WithContext(ctx context.Context, ot OpenTrace) context.Context {
	return context.WithValue(ctx, traceCtxKey, ot)
}

// FromContext returns the trace stored in ctx.
//
//   - ok == true: a trace is present
//   - ok == false: ctx carries no trace
func FromContext(ctx context.Context) (OpenTrace, bool) {
	ot, ok := ctx.Value(traceCtxKey).(OpenTrace)
	if !ok || ot.IsZero() {
		return OpenTrace{}, false
	}
	return ot, true
}

// TraceIDFromContext returns the trace id stored in ctx or an empty string.
func TraceIDFromContext(ctx context.Context) string {
	ot, _ := FromContext(ctx)
	return ot.TraceID
}

// NextFromContext returns the trace to propagate on an outgoing call made
// while serving ctx: a child of the current span.
func NextFromContext(ctx context.Context) (OpenTrace, bool) {
	ot, ok := FromContext(ctx)
	if !ok {
		return OpenTrace{}, false
	}
	return ot.Child(), true
}
