package trace

import (
	"fmt"
	"math/rand/v2"
)

// OpenTrace holds the identifiers of a single span.
type OpenTrace struct {
	// TraceID is shared by every span of one request tree.
	TraceID string `json:"trace_id"`

	// SpanID identifies the current span.
	SpanID string `json:"span_id"`

	// ParentSpanID identifies the caller's span. It is empty for root spans.
	ParentSpanID string `json:"parent_span_id,omitempty"`
}

// New builds an OpenTrace from numeric ids. A nil parent yields an empty
// ParentSpanID.
func New(traceID, spanID uint64, parentSpanID *uint64) OpenTrace {
	ot := OpenTrace{
		TraceID: FormatID(traceID),
		SpanID:  FormatID(spanID),
	}
	if parentSpanID != nil {
		ot.ParentSpanID = FormatID(*parentSpanID)
	}
	return ot
}

// NewRoot starts a new trace. The span id equals the trace id and there is
// no parent.
func NewRoot() OpenTrace {
	id := randomID()
	return New(id, id, nil)
}

// FromParent starts a new span with a random id inside an existing trace.
func FromParent(traceID uint64, parentSpanID *uint64) OpenTrace {
	return New(traceID, randomID(), parentSpanID)
}

// Child returns the trace of a span started by the current one: the trace
// id is kept, the span id is fresh and the parent is the current span.
func (ot OpenTrace) Child() OpenTrace {
	return OpenTrace{
		TraceID:      ot.TraceID,
		SpanID:       FormatID(randomID()),
		ParentSpanID: ot.SpanID,
	}
}

// IsZero reports whether ot carries no trace id.
func (ot OpenTrace) IsZero() bool {
	return ot.TraceID == ""
}

// FormatID renders id as 16 lowercase hexadecimal digits.
func FormatID(id uint64) string {
	return fmt.Sprintf("%016x", id)
}

func randomID() uint64 {
	return rand.Uint64()
}
