package service

import "errors"

// Domain errors. Handlers translate these into HTTP status codes:
// validation and conflicts → 400, unknown id → 404, ownership mismatch → 403,
// missing session → 401; anything else is a storage failure → 500.
var (
	ErrNameRequired      = errors.New("name is required")
	ErrDeviceKeyRequired = errors.New("device key is required")
	ErrAlreadyRsvped     = errors.New("already RSVP'd")
	ErrRsvpNotFound      = errors.New("RSVP not found")
	ErrNotOwner          = errors.New("not your RSVP")

	ErrCredentialsRequired = errors.New("username and password required")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrUsernameTaken       = errors.New("username exists")
	ErrNoSession           = errors.New("no active session")
)
