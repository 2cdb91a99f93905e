// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package apperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an [Error].
type Kind int

const (
	// KindIO is an internal failure. It is always reported as 500.
	KindIO Kind = iota
	// KindHTTP carries an explicit status and message.
	KindHTTP
	// KindRemote carries a status and a raw JSON body that is written as is.
	KindRemote
)

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	switch k {
	case KindIO:
		return "io"
	case KindHTTP:
		return "http"
	case KindRemote:
		return "remote"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Error is an error that knows how it should be reported over HTTP.
type Error struct {
	Kind    Kind
	Status  int
	Message string

	// Body is the raw JSON body of a [KindRemote] error.
	Body json.RawMessage

	// Err is the underlying cause, if any.
	Err error
}

func (e *Error) Error() string {
	switch {
	case e.Kind == KindRemote:
		return fmt.Sprintf("remote error %d: %s", e.Status, string(e.Body))
	case e.Err != nil && e.Message != "":
		return e.Message + ": " + e.Err.Error()
	case e.Err != nil:
		return e.Err.Error()
	default:
		return e.Message
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New returns a [KindHTTP] error with the given status and message.
func New(status int, msg string) *Error {
	return &Error{Kind: KindHTTP, Status: status, Message: msg}
}

// BadRequest returns a 400 error.
func BadRequest(msg string) *Error {
	return New(http.StatusBadRequest, msg)
}

// Unauthorized returns a 401 error.
func Unauthorized(msg string) *Error {
	return New(http.StatusUnauthorized, msg)
}

// NotFound returns a 404 error.
func NotFound(msg string) *Error {
	return New(http.StatusNotFound, msg)
}

// Internal wraps err as a [KindIO] error.
func Internal(err error) *Error {
	return &Error{Kind: KindIO, Status: http.StatusInternalServerError, Err: err}
}

// FromStatus wraps err as a [KindHTTP] error with the given status. The
// message is the text of err, or the standard status text when err is nil.
func FromStatus(status int, err error) *Error {
	if err == nil {
		return New(status, http.StatusText(status))
	}
	return &Error{Kind: KindHTTP, Status: status, Err: err}
}

// Remote returns a [KindRemote] error. Byte slices and [json.RawMessage] are
// used as the body verbatim; any other value is encoded as JSON.
func Remote(status int, v any) *Error {
	var body []byte
	switch b := v.(type) {
	case json.RawMessage:
		body = b
	case []byte:
		body = b
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return Internal(fmt.Errorf("error encoding remote error body: %w", err))
		}
		body = encoded
	}

	return &Error{Kind: KindRemote, Status: status, Body: body}
}

// StatusCode returns the HTTP status err should be reported with.
// Errors that are not an [*Error] map to 500.
func StatusCode(err error) int {
	var appErr *Error
	if errors.As(err, &appErr) {
		if appErr.Kind == KindIO || appErr.Status == 0 {
			return http.StatusInternalServerError
		}
		return appErr.Status
	}
	return http.StatusInternalServerError
}
