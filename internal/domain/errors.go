package domain

import (
	"errors"
	"fmt"
)

// Business outcomes surfaced by the user flows
var (
	ErrNotFound       = errors.New("resource not found")
	ErrAlreadyExists  = errors.New("resource already exists")
	ErrInvalidInput   = errors.New("invalid input")
	ErrInternalError  = errors.New("internal error")
	ErrBadCredentials = errors.New("incorrect credentials")
	ErrNotApproved    = errors.New("access not approved by administrator")
)

// AppError carries an HTTP status code alongside the user-facing message
type AppError struct {
	Code    int    // HTTP status code
	Message string // User-facing message
	Err     error  // Original error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewInternalError wraps an unexpected failure. The result matches
// ErrInternalError under errors.Is while keeping the cause in the chain.
func NewInternalError(msg string, err error) *AppError {
	return &AppError{Code: 500, Message: msg, Err: fmt.Errorf("%w: %w", ErrInternalError, err)}
}
