package model

import "errors"

// DomainError is an expected rule violation whose message can be shown to the user as-is.
// Anything that is not a DomainError is an infrastructure failure.
type DomainError struct {
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a DomainError with the given display message
func NewDomainError(message string) *DomainError {
	return &DomainError{Message: message}
}

// IsDomainError reports whether err is, or wraps, a DomainError
func IsDomainError(err error) bool {
	var de *DomainError
	return errors.As(err, &de)
}

// Domain errors used across the application
var (
	// Group errors
	ErrGroupNameRequired  = NewDomainError("group name is required")
	ErrGroupAlreadyExists = NewDomainError("group already exists")

	// Player errors
	ErrPlayerNameRequired   = NewDomainError("player name is required")
	ErrPlayerAlreadyInGroup = NewDomainError("player already added to this group")
	ErrInvalidTeam          = NewDomainError("team must be Team A or Team B")
)
