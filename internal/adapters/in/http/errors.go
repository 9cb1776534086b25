package http

import (
	"errors"
	"net/http"

	"tracking/internal/core/domain/model/tracking"
	"tracking/internal/pkg/errs"
)

// Error is the JSON body returned for failed requests.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// statusCodeFor maps application errors onto HTTP status codes. Validation
// failures are the caller's fault, missing objects map to 404, and state
// conflicts (closed trackings, rejected transitions, concurrent writes,
// duplicate creations) map to 409. Everything else is a server error.
func statusCodeFor(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, tracking.ErrInvalidTransition),
		errors.Is(err, tracking.ErrTrackingClosed),
		errors.Is(err, errs.ErrVersionIsInvalid),
		errors.Is(err, errs.ErrObjectAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
