// Package common defines shared constants and sentinel errors used across
// the web server, the inventory CLI and the storage layer. Callers should use
// errors.Is to match these values.
package common

import (
	"errors"
	"fmt"
)

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Validation errors (missing or malformed field, broken reference).
	ErrorValidation       = errors.New("validation error")
	ErrorPasswordMismatch = fmt.Errorf("passwords do not match: %w", ErrorValidation)
	ErrorUnknownReference = fmt.Errorf("%w: unknown category or status", ErrorValidation)
	ErrorValueTooLarge    = fmt.Errorf("%w: value is too long or out of range", ErrorValidation)

	// Uniqueness errors reported to the user with a specific message.
	ErrorUserNameTaken = fmt.Errorf("username %w", ErrorAlreadyExists)
	ErrorEmailTaken    = fmt.Errorf("email %w", ErrorAlreadyExists)

	// Auth errors.
	ErrorUnauthorized       = errors.New("unauthorized")
	ErrorForbidden          = errors.New("forbidden")
	ErrorInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken         = errors.New("invalid token")
	ErrTokenExpired         = errors.New("token expired")

	// Store errors, the only class treated as fatal.
	ErrorStoreUnavailable = errors.New("store unavailable")
	ErrorInternal         = errors.New("internal error")
)
