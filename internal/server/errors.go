// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "errors"

var (
	ErrListening     = errors.New("error listening")
	ErrServing       = errors.New("error serving http")
	ErrShuttingDown  = errors.New("error shutting down http server")
	errNoHTTPAddress = errors.New("no http address configured")
)
