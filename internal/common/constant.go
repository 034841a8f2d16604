// Package common contains shared constants and sentinel errors used across
// the useradmin console.
package common

// Header names used on outbound requests to the user API.
const (
	AuthorizationHeaderName = "Authorization"
	RequestIDHeaderName     = "X-Request-ID"
	ContentTypeHeaderName   = "Content-Type"
)

// Authorization schemes.
const (
	BasicScheme  = "Basic"
	BearerScheme = "Bearer"
)

// ContentTypeJSON is the only body encoding the user API accepts.
const ContentTypeJSON = "application/json"
