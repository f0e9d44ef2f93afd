package auth

import "errors"

var (
	// ErrInvalidToken is the only failure Decode reports: malformed, mis-signed
	// and expired tokens are indistinguishable to callers.
	ErrInvalidToken = errors.New("invalid token")

	// ErrCredentialsIncorrect covers both unknown identifiers and wrong secrets.
	ErrCredentialsIncorrect = errors.New("credentials incorrect")

	// ErrForbidden is wrapped by ownership guard denials.
	ErrForbidden = errors.New("not a community admin")

	// ErrCollaboratorUnavailable marks infrastructure failures of a lookup.
	ErrCollaboratorUnavailable = errors.New("collaborator unavailable")
)
