// Package apperr defines the error type returned to HTTP callers.
//
// An [Error] is one of three kinds: an internal I/O failure (always 500), an
// HTTP error carrying a status and a message, or a remote error whose raw
// JSON body is relayed verbatim. [Write] renders any error as a JSON
// response tagged with the trace id of the request.
package apperr
