package domain

import (
	"errors"
	"fmt"
)

// Error classes. Every error returned by the services wraps exactly one of
// these, so transports can map them with errors.Is.
var (
	ErrValidation     = errors.New("validation failed")
	ErrAuthentication = errors.New("authentication failed")
	ErrNotFound       = errors.New("not found")
	ErrConflict       = errors.New("conflict")
)

var (
	ErrUsernameTaken        = fmt.Errorf("%w: username already taken", ErrConflict)
	ErrInvalidCredentials   = fmt.Errorf("%w: invalid credentials", ErrAuthentication)
	ErrRefreshExpired       = fmt.Errorf("%w: refresh token expired", ErrAuthentication)
	ErrRefreshInvalid       = fmt.Errorf("%w: invalid refresh token", ErrAuthentication)
	ErrUnauthorized         = fmt.Errorf("%w: could not validate credentials", ErrAuthentication)
	ErrUserNotFound         = fmt.Errorf("%w: user not found", ErrNotFound)
	ErrNotificationNotFound = fmt.Errorf("%w: notification not found", ErrNotFound)
)

// Infrastructure-level errors. The services translate these into the
// classes above before returning.
var (
	ErrTokenExpired      = errors.New("token expired")
	ErrTokenInvalid      = errors.New("token invalid")
	ErrCorruptCredential = errors.New("corrupt credential")
)

// Validationf builds an ErrValidation with a caller-facing message.
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
