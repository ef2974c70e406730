package identity

import "errors"

// Sentinel kinds for identity-service errors.
var (
	ErrUnavailable  = errors.New("identity service unavailable")
	ErrUserNotFound = errors.New("user does not exist")
)
