// Package errors provides common, reusable error values and helpers.
package errors

import (
	"errors"
	"fmt"
)

// Common errors
var (
	// Data source errors
	ErrSourceUnavailable  = errors.New("transaction history source unavailable")
	ErrBalanceUnavailable = errors.New("balance source unavailable")
	ErrInvalidAddress     = errors.New("invalid stacks address")

	// Profile errors
	ErrProfileNotFound      = errors.New("profile not found")
	ErrProfileAlreadyExists = errors.New("profile already exists")
	ErrUsernameTaken        = errors.New("username already taken")
)

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
