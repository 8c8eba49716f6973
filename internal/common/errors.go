// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Storage errors.
	ErrNotFound           = errors.New("not found")
	ErrDuplicateEntry     = errors.New("duplicate entry")
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrDatabaseCorrupted  = errors.New("database corrupted")

	// Record errors.
	ErrInvalidRecord = errors.New("invalid record")

	// Network errors.
	ErrNetworkFailure = errors.New("network request failed")
	ErrSyncRejected   = errors.New("sync rejected by server")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}

// FormatUserError renders the user-facing message when the error carries one,
// and the raw error otherwise.
func FormatUserError(err error) string {
	var userErr *UserError
	if errors.As(err, &userErr) {
		return userErr.UserMessage
	}
	return err.Error()
}

// IsRetryable determines if an error should trigger a retry. Only network
// failures qualify; storage and validation errors fail fast.
func IsRetryable(err error) bool {
	if errors.Is(err, ErrNetworkFailure) {
		return true
	}

	var retryableErr *RetryableError
	if errors.As(err, &retryableErr) {
		return retryableErr.Retryable
	}

	return false
}
