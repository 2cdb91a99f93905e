package apperr

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-fall/internal/logger"
	"github.com/MKhiriev/go-fall/internal/trace"
	"github.com/MKhiriev/go-fall/internal/utils"
)

// Body is the JSON document written for every non-remote error.
type Body struct {
	TraceID string `json:"trace_id,omitempty"`
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// Write reports err on w. Remote errors are written verbatim with their own
// status; any other error is written as a [Body].
func Write(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusCode(err)

	var appErr *Error
	if errors.As(err, &appErr) && appErr.Kind == KindRemote {
		if _, writeErr := utils.WriteRawJSON(w, appErr.Body, status); writeErr != nil {
			logger.FromRequest(r).Err(writeErr).Msg("error writing remote error")
		}
		return
	}

	body := Body{
		TraceID: trace.TraceIDFromContext(r.Context()),
		Status:  status,
		Message: err.Error(),
	}

	if _, writeErr := utils.WriteJSON(w, body, status); writeErr != nil {
		logger.FromRequest(r).Err(writeErr).Msg("error writing error response")
	}
}
