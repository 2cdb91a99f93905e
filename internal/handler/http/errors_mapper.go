package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-fall/internal/apperr"
	"github.com/MKhiriev/go-fall/internal/service"
	"github.com/MKhiriev/go-fall/internal/store"
)

var errorStatusMap = map[error]int{
	service.ErrEmptyName:   http.StatusBadRequest,
	service.ErrNameTooLong: http.StatusBadRequest,

	store.ErrEmptyName:  http.StatusBadRequest,
	store.ErrConnecting: http.StatusServiceUnavailable,

	store.ErrBuildingSQLQuery:       http.StatusInternalServerError,
	store.ErrExecutingQuery:         http.StatusInternalServerError,
	store.ErrBeginningTransaction:   http.StatusInternalServerError,
	store.ErrRollingBackTransaction: http.StatusInternalServerError,
	store.ErrScanningRow:            http.StatusInternalServerError,
	store.ErrExecutingCommand:       http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// toAppError converts err into an [apperr.Error] using [errorStatusMap].
// Errors that already are an [apperr.Error] are returned unchanged.
func toAppError(err error) error {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		return err
	}

	status := statusFromError(err)
	if status == http.StatusInternalServerError {
		return apperr.Internal(err)
	}
	return apperr.FromStatus(status, err)
}

func notFound(w http.ResponseWriter, r *http.Request) {
	apperr.Write(w, r, apperr.NotFound(http.StatusText(http.StatusNotFound)))
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	apperr.Write(w, r, apperr.New(http.StatusMethodNotAllowed, http.StatusText(http.StatusMethodNotAllowed)))
}
