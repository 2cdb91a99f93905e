// Package trace implements B3-style request tracing identifiers.
//
// A trace is described by an [OpenTrace]: a trace id shared by every span of
// a request tree, the id of the current span, and the id of the parent span.
// All ids are 64-bit values rendered as 16 lowercase hexadecimal digits.
// Incoming requests are traced with [FromHeader], outgoing requests carry the
// child trace produced by [NextFromContext] and written with [OpenTrace.Inject].
package trace
