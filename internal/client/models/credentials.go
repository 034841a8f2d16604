package models

import "encoding/base64"

// Credentials is the process-wide session: a bearer token for write
// endpoints and a basic credential for read/delete endpoints.
type Credentials struct {
	Token  string
	Basic  string
	UserID ID
}

// HasToken reports whether a bearer token is present.
func (c Credentials) HasToken() bool {
	return c.Token != ""
}

// BasicCredential returns base64("username:password").
func BasicCredential(username, password string) string {
	return base64.StdEncoding.EncodeToString([]byte(username + ":" + password))
}
