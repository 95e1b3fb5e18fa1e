package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/spaceblaster/scorekeeper/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest   = "INVALID_REQUEST"
	CodeInvalidArgument  = "INVALID_ARGUMENT"
	CodeUnauthenticated  = "UNAUTHENTICATED"
	CodePlayerNotFound   = "PLAYER_NOT_FOUND"
	CodeStatsNotFound    = "STATS_NOT_FOUND"
	CodeScoreNotFound    = "SCORE_NOT_FOUND"
	CodeConflict         = "CONFLICT"
	CodeStoreUnavailable = "STORE_UNAVAILABLE"
	CodeInternalError    = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Map the error taxonomy. InvalidArgument carries the validation
	// detail in the error message, so surface it to the client.
	switch {
	case errors.Is(err, model.ErrUnauthenticated):
		return &httpError{http.StatusUnauthorized, APIError{CodeUnauthenticated, "Not authenticated"}}
	case errors.Is(err, model.ErrInvalidArgument):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidArgument, err.Error()}}
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePlayerNotFound, "Player not found"}}
	case errors.Is(err, model.ErrStatsNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeStatsNotFound, "Player stats not found"}}
	case errors.Is(err, model.ErrScoreNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeScoreNotFound, "Score record not found"}}
	case errors.Is(err, model.ErrConflict):
		return &httpError{http.StatusConflict, APIError{CodeConflict, "Concurrent update conflict, re-submit with fresh state"}}
	case errors.Is(err, model.ErrPlayerExists):
		return &httpError{http.StatusConflict, APIError{CodeConflict, "Player already exists for user"}}
	case errors.Is(err, model.ErrStoreUnavailable):
		return &httpError{http.StatusServiceUnavailable, APIError{CodeStoreUnavailable, "Store temporarily unavailable, retry the request"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthenticatedError creates an authentication-required error
func NewUnauthenticatedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthenticated, "Authentication required"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
