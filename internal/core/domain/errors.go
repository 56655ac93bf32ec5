package domain

import "errors"

// Errors returned by the core services. Handlers map these to HTTP status
// codes; anything not in this list is treated as ErrInternal and never shown
// to the caller verbatim.
var (
	// ErrInvalidCredentials covers both "no such email" and "wrong password"
	// so a caller cannot probe which accounts exist.
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrValidation   = errors.New("validation failed")
	ErrEmailExists  = errors.New("email already exists")
	ErrUserNotFound = errors.New("user not found")
	ErrInternal     = errors.New("internal error")

	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("invalid token")
)
