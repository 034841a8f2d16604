// Package models defines the records exchanged with the remote user API and
// the client-side session credentials.
package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ID is the opaque identifier assigned by the remote system. The API is not
// consistent about its JSON type, so both numbers and strings decode into it.
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id must be a string or a number: %w", err)
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string { return string(id) }

// User is a record as returned by the search endpoint. The password is
// write-only and never decoded.
type User struct {
	ID        ID     `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

// NewUser is the create-user payload.
type NewUser struct {
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// UserUpdate is the update payload. Username is omitted unless it changed.
type UserUpdate struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Username  string `json:"username,omitempty"`
}

// AuthRequest is the body of both login and signup.
type AuthRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResult is returned by the login endpoint.
type LoginResult struct {
	Token  string `json:"token"`
	UserID ID     `json:"userId"`
}
