package auth

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation wraps malformed input; no database I/O happened.
	ErrValidation = errors.New("validation failed")

	// ErrConflict marks a uniqueness violation on register. The two wrapped
	// variants tell the registration form which field collided.
	ErrConflict        = errors.New("account already exists")
	ErrUsernameTaken   = fmt.Errorf("%w: username is already taken", ErrConflict)
	ErrEmailRegistered = fmt.Errorf("%w: email is already registered", ErrConflict)

	// ErrInvalidCredentials deliberately merges "unknown user" and "wrong
	// password" so callers cannot enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid username or password")

	ErrAccountLocked         = errors.New("account temporarily locked")
	ErrEmailNotVerified      = errors.New("email address not verified")
	ErrRegistrationClosed    = errors.New("registration is disabled")
	ErrInvalidOrExpiredToken = errors.New("invalid or expired token")

	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("permission denied")

	ErrSessionNotFound = errors.New("session not found")
	ErrUserNotFound    = errors.New("user not found")
)
