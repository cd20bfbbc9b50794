// Package common defines shared sentinel errors used across the server
// layers of chronofeed. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Directory errors. ErrInvalidCredentials is returned for an unknown
	// username and for a wrong password alike; the two cases must stay
	// indistinguishable to callers.
	ErrInvalidCredentials = errors.New("invalid username/password")

	// Session token errors (invalid or malformed cookie payload).
	ErrInvalidToken = errors.New("invalid token")

	// Service-level errors (generic/internal flow control).
	ErrorInternal = errors.New("internal error")
)
