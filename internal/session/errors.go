package session

import "errors"

// Sentinel errors; the API layer maps them to HTTP statuses.
var (
	ErrInvalidArgument     = errors.New("invalid argument")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrEmailExists         = errors.New("email already registered")
	ErrIdentityNotFound    = errors.New("identity not found")
	ErrInternal            = errors.New("internal error")
)
