package auth

import "errors"

var (
	// ErrMalformedHeader is returned when the Authorization header is not of the form "Bearer <token>"
	ErrMalformedHeader = errors.New("malformed authorization header")

	// ErrInvalidToken is returned for bad encoding, bad signature, expiry or unusable claims
	ErrInvalidToken = errors.New("invalid token")

	// ErrUnauthenticated is returned when a protected route is called without credentials
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrForbidden is returned when an authenticated identity is denied by policy
	ErrForbidden = errors.New("forbidden")

	// ErrWeakSecret is returned when the signing secret is too short for HS256
	ErrWeakSecret = errors.New("signing secret must be at least 32 bytes")
)
