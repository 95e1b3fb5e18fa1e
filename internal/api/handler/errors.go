package handler

import (
	"net/http"

	"github.com/spaceblaster/scorekeeper/internal/api/apierr"
)

// Re-export from apierr for convenience
type APIError = apierr.APIError
type ErrorResponse = apierr.ErrorResponse

// Re-export error codes
const (
	CodeInvalidRequest   = apierr.CodeInvalidRequest
	CodeInvalidArgument  = apierr.CodeInvalidArgument
	CodeUnauthenticated  = apierr.CodeUnauthenticated
	CodePlayerNotFound   = apierr.CodePlayerNotFound
	CodeStatsNotFound    = apierr.CodeStatsNotFound
	CodeScoreNotFound    = apierr.CodeScoreNotFound
	CodeConflict         = apierr.CodeConflict
	CodeStoreUnavailable = apierr.CodeStoreUnavailable
	CodeInternalError    = apierr.CodeInternalError
)

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	apierr.WriteError(w, err)
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return apierr.NewInvalidRequestError(message)
}

// NewUnauthenticatedError creates an authentication-required error
func NewUnauthenticatedError() error {
	return apierr.NewUnauthenticatedError()
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return apierr.NewInternalError()
}
