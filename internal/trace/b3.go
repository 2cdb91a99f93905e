package trace

import (
	"net/http"
	"strconv"
	"strings"
)

// B3 propagation header names.
const (
	HeaderTraceID      = "X-B3-TraceId"
	HeaderSpanID       = "X-B3-SpanId"
	HeaderParentSpanID = "X-B3-ParentSpanId"
)

// FromHeader extracts the trace of an incoming request.
//
// Header values are hexadecimal. A missing or malformed trace id starts a new
// random trace, a missing span id reuses the trace id and a missing parent
// leaves ParentSpanID empty. 128-bit trace ids are truncated to their low 64
// bits.
func FromHeader(h http.Header) OpenTrace {
	traceID, ok := parseID(h.Get(HeaderTraceID))
	if !ok {
		traceID = randomID()
	}

	spanID, ok := parseID(h.Get(HeaderSpanID))
	if !ok {
		spanID = traceID
	}

	var parent *uint64
	if p, ok := parseID(h.Get(HeaderParentSpanID)); ok {
		parent = &p
	}

	return New(traceID, spanID, parent)
}

// Inject writes ot into h as B3 headers. An empty parent span id is not
// written.
func (ot OpenTrace) Inject(h http.Header) {
	if ot.IsZero() {
		return
	}
	h.Set(HeaderTraceID, ot.TraceID)
	h.Set(HeaderSpanID, ot.SpanID)
	if ot.ParentSpanID != "" {
		h.Set(HeaderParentSpanID, ot.ParentSpanID)
	}
}

func parseID(s string) (uint64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if len(s) == 32 {
		s = s[16:]
	}
	v, err := strconv.ParseUint(s, 16, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
