// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors used by the authentication hook when reading the
// "Authorization" HTTP header. Callers can match against them with [errors.Is].
var (
	// ErrEmptyAuthorizationHeader is returned when the incoming request does
	// not include an "Authorization" header at all.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrTokenIsExpired is returned when the bearer token has expired.
	ErrTokenIsExpired = errors.New("token is expired")

	// ErrInvalidToken is returned when the bearer token cannot be verified.
	ErrInvalidToken = errors.New("invalid token")
)

// ErrPanicRecovered is the error body sent when a handler panics.
var ErrPanicRecovered = errors.New("internal server error")
