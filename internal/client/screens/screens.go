// Package screens holds the terminal-independent screen controllers of the
// console: login, signup, add-user, edit-user and the user list.
//
// Every form screen follows the same submission shape: mark all fields
// touched and validate; abort with a notification on any error or a taken
// username; issue the request; on success reset or navigate and notify; on
// failure notify the server message or a generic fallback. Submit is refused
// with common.ErrBusy while a request is in flight.
package screens

import (
	"sync/atomic"

	"github.com/dmitrijs2005/useradmin/internal/client/client"
	"github.com/dmitrijs2005/useradmin/internal/common"
)

// Notifier shows transient messages (toasts).
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// Navigator switches the current screen.
type Navigator interface {
	Navigate(path string)
}

// User-facing messages.
const (
	MsgFixErrors     = "Please fix form errors"
	MsgUsernameTaken = "Username is already taken"
	MsgUsernameFree  = "Username is available"
	MsgPasswordWeak  = "Password is too weak"

	MsgLoginOK      = "Login successful!"
	MsgLoginBad     = "Invalid username or password"
	MsgLoginFailed  = "Login failed. Please try again."
	MsgSignupOK     = "Account created successfully!"
	MsgSignupExists = "Username already exists"
	MsgSignupFailed = "Signup failed. Please try again."

	MsgUserAdded     = "User added successfully"
	MsgAddFailed     = "Failed to add user"
	MsgUserNotFound  = "User not found"
	MsgFetchUserFail = "Failed to fetch user data"
	MsgUserUpdated   = "User updated successfully"
	MsgUpdateFailed  = "Failed to update user"

	MsgUserDeleted  = "User deleted successfully"
	MsgDeleteFailed = "Failed to delete user"
	MsgFetchFailed  = "Failed to fetch users"
)

// MinStrength is the password strength the add-user screen requires.
const MinStrength = 2

// inflight guards a screen against overlapping submissions.
type inflight struct {
	busy atomic.Bool
}

func (f *inflight) begin() error {
	if !f.busy.CompareAndSwap(false, true) {
		return common.ErrBusy
	}
	return nil
}

func (f *inflight) end() { f.busy.Store(false) }
func (f *inflight) Busy() bool { return f.busy.Load() }

// failure notifies the server message carried by err, or fallback.
func failure(n Notifier, err error, fallback string) {
	n.Error(client.MessageOr(err, fallback))
}
