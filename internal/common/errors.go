// Package common defines shared constants and sentinel errors used across
// client layers of the console. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Session errors.
	ErrNoSession    = errors.New("no active session")
	ErrOpaqueToken  = errors.New("token is not a JWT")
	ErrCorruptValue = errors.New("stored value cannot be unsealed")

	// Form flow errors.
	ErrInvalidForm   = errors.New("form has validation errors")
	ErrUsernameTaken = errors.New("username is already taken")
	ErrBusy          = errors.New("submission not allowed right now")
)
