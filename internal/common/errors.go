// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// ErrSessionExpired means the stored token was missing or rejected;
	// the session must be cleared and the user routed back to login.
	ErrSessionExpired = errors.New("session expired")

	// ErrNotLoggedIn means no session exists at all.
	ErrNotLoggedIn = errors.New("not logged in")

	// ErrRateLimit indicates the backend rejected a call for rate limiting.
	ErrRateLimit = errors.New("rate limit exceeded")

	// ErrMaxRetries indicates that all retry attempts have been exhausted.
	ErrMaxRetries = errors.New("max retries exceeded")
)

// ValidationError is a local pre-network rejection of user input. It never
// reaches the backend and its message renders inline next to the field
// that produced it.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a validation error for a named input field.
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// IsValidation reports whether err is a local validation error.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

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
	return &UserError{UserMessage: userMessage, Err: err}
}

// userMessager is implemented by errors that carry a message meant for
// the user verbatim (backend rejections in particular).
type userMessager interface {
	UserVisibleMessage() string
}

// Message extracts the text to render inline for any error produced by a
// flow: validation errors, user errors and backend rejections carry their
// own message, everything else falls back to the generic string.
func Message(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	var ue *UserError
	if errors.As(err, &ue) {
		return ue.UserMessage
	}
	var um userMessager
	if errors.As(err, &um) {
		return um.UserVisibleMessage()
	}
	if fallback != "" {
		return fallback
	}
	return err.Error()
}
