package model

import (
	"fmt"

	"github.com/pkg/errors"
)

const (
	// ErrorMessage is the generic user facing failure message
	ErrorMessage = "Oops, something went wrong!"

	// RequestingSignatureMessage is shown while waiting for a wallet signature
	RequestingSignatureMessage = "Requesting signature..."

	// MaxContentLength is the max number of characters in a comment
	MaxContentLength = 5000
)

var (
	// ErrFeatureUnavailable is returned when a data availability action is
	// attempted by a channel without a sponsored dispatcher
	ErrFeatureUnavailable = errors.New("Momoka is currently in beta - during this time certain actions are not available to all channels.")

	// ErrSubmissionInFlight is returned when the same draft is submitted twice
	// before the first submission completes
	ErrSubmissionInFlight = errors.New("submission already in progress")

	// ErrNoPersisterResults is returned when a persister finds nothing
	ErrNoPersisterResults = errors.New("no results from persister")
)

// ValidationError is returned for invalid user input before any network call
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %v: %v", e.Field, e.Message)
}

// IsValidationError returns true if the cause of err is a ValidationError
func IsValidationError(err error) bool {
	_, ok := errors.Cause(err).(*ValidationError)
	return ok
}
