// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"bytes"
	"errors"

	"github.com/MKhiriev/go-fall/internal/apperr"
	"github.com/go-resty/resty/v2"
)

var (
	ErrUpstreamUnreachable = errors.New("upstream unreachable")
	ErrUpstreamDown        = errors.New("upstream is down")
)

// DecodeRemoteError returns nil for a 2xx response. Any other response
// becomes a remote [apperr.Error] that replays the status and body to our
// own caller. An empty body falls back to the status text.
func DecodeRemoteError(resp *resty.Response) error {
	if resp.IsSuccess() {
		return nil
	}

	body := bytes.TrimSpace(resp.Body())
	if len(body) == 0 {
		return apperr.FromStatus(resp.StatusCode(), nil)
	}
	return apperr.Remote(resp.StatusCode(), body)
}
