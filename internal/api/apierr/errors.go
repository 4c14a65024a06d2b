package apierr

import (
	"errors"
	"net/http"

	"github.com/bytedance/sonic"

	"github.com/mcoot/teamsplit/internal/model"
	"github.com/mcoot/teamsplit/internal/services/group"
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
	CodeInvalidRequest       = "INVALID_REQUEST"
	CodeGroupNameRequired    = "GROUP_NAME_REQUIRED"
	CodeGroupAlreadyExists   = "GROUP_ALREADY_EXISTS"
	CodeGroupNotFound        = "GROUP_NOT_FOUND"
	CodePlayerNameRequired   = "PLAYER_NAME_REQUIRED"
	CodePlayerAlreadyInGroup = "PLAYER_ALREADY_IN_GROUP"
	CodeInvalidTeam          = "INVALID_TEAM"
	CodeNotFound             = "NOT_FOUND"
	CodeMethodNotAllowed     = "METHOD_NOT_ALLOWED"
	CodeSweepUnsupported     = "SWEEP_UNSUPPORTED"
	CodeInternalError        = "INTERNAL_ERROR"
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
	_ = sonic.ConfigStd.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// Status returns the HTTP status WriteError would use for err
func Status(err error) int {
	return toHTTPError(err).status
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Map domain errors, keeping their display message
	var de *model.DomainError
	if errors.As(err, &de) {
		switch {
		case errors.Is(err, model.ErrGroupNameRequired):
			return &httpError{http.StatusBadRequest, APIError{CodeGroupNameRequired, de.Message}}
		case errors.Is(err, model.ErrGroupAlreadyExists):
			return &httpError{http.StatusConflict, APIError{CodeGroupAlreadyExists, de.Message}}
		case errors.Is(err, model.ErrPlayerNameRequired):
			return &httpError{http.StatusBadRequest, APIError{CodePlayerNameRequired, de.Message}}
		case errors.Is(err, model.ErrPlayerAlreadyInGroup):
			return &httpError{http.StatusConflict, APIError{CodePlayerAlreadyInGroup, de.Message}}
		case errors.Is(err, model.ErrInvalidTeam):
			return &httpError{http.StatusBadRequest, APIError{CodeInvalidTeam, de.Message}}
		default:
			return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, de.Message}}
		}
	}

	if errors.Is(err, group.ErrSweepUnsupported) {
		return &httpError{http.StatusNotImplemented, APIError{CodeSweepUnsupported, "Storage backend cannot list keys"}}
	}

	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewGroupNotFoundError creates a group not found error
func NewGroupNotFoundError() error {
	return &httpError{http.StatusNotFound, APIError{CodeGroupNotFound, "Group not found"}}
}

// NewNotFoundError creates an error for unknown routes
func NewNotFoundError() error {
	return &httpError{http.StatusNotFound, APIError{CodeNotFound, "Not found"}}
}

// NewMethodNotAllowedError creates an error for a known route with the wrong method
func NewMethodNotAllowedError() error {
	return &httpError{http.StatusMethodNotAllowed, APIError{CodeMethodNotAllowed, "Method not allowed"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
