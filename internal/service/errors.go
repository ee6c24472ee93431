package service

import "errors"

// Sentinel errors form the taxonomy handlers map onto HTTP statuses.
// Authentication and ownership failures stay generic so the API never
// reveals whether an account or record exists.
var (
	// ErrNotFound covers scoped lookups that matched nothing, including
	// records owned by somebody else.
	ErrNotFound = errors.New("record not found")

	// ErrEmailTaken signals a duplicate signup email.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials is returned identically for unknown emails
	// and wrong passwords.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrInvalidResetToken covers missing, consumed, and expired reset
	// tokens alike.
	ErrInvalidResetToken = errors.New("invalid or expired reset token")

	// ErrMailSend signals that a required outbound email could not be
	// delivered.
	ErrMailSend = errors.New("failed to send email")
)

// ValidationError carries a client-facing message for a rejected input.
// Validation always runs before any store access.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func validationError(msg string) error {
	return &ValidationError{Message: msg}
}
