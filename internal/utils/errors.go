package utils

import "errors"

// Common application errors used across services. The messages are the
// exact strings returned to API callers.
var (
	ErrInvalidCredentials = errors.New("Invalid email or password")
	ErrAccountInactive    = errors.New("Account is inactive")
	ErrEmailTaken         = errors.New("Email already registered")
	ErrSlugTaken          = errors.New("Slug already in use")
	ErrNotFound           = errors.New("Resource not found")
)

// ValidationError marks malformed or missing input. The string is the
// user-facing message.
type ValidationError string

func (e ValidationError) Error() string { return string(e) }

// Invalid builds a ValidationError with the given message.
func Invalid(msg string) error { return ValidationError(msg) }

// StatusFor maps an application error to its HTTP status code.
// Unrecognized errors are treated as internal failures.
func StatusFor(err error) int {
	var ve ValidationError
	switch {
	case errors.As(err, &ve):
		return 400
	case errors.Is(err, ErrInvalidCredentials):
		return 401
	case errors.Is(err, ErrAccountInactive):
		return 403
	case errors.Is(err, ErrNotFound):
		return 404
	case errors.Is(err, ErrEmailTaken), errors.Is(err, ErrSlugTaken):
		return 409
	default:
		return 500
	}
}
