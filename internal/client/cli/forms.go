package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/useradmin/internal/client/availability"
	"github.com/dmitrijs2005/useradmin/internal/client/form"
	"github.com/dmitrijs2005/useradmin/internal/client/screens"
	"github.com/dmitrijs2005/useradmin/internal/client/validation"
)

// cancelInput leaves the current form.
const cancelInput = "."

var errCancelled = errors.New("cancelled")

// getSimpleText and getPassword are indirections used to facilitate testing.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
)

type field struct {
	name   string
	label  string
	secret bool
}

var (
	fieldUsername  = field{name: validation.FieldUsername, label: "Username"}
	fieldPassword  = field{name: validation.FieldPassword, label: "Password", secret: true}
	fieldConfirm   = field{name: validation.FieldConfirmPassword, label: "Confirm password", secret: true}
	fieldFirstName = field{name: validation.FieldFirstName, label: "First name"}
	fieldLastName  = field{name: validation.FieldLastName, label: "Last name"}
	fieldEmail     = field{name: validation.FieldEmail, label: "Email"}
)

// afterFn runs once a field passed validation; retry asks the field again.
type afterFn func(ctx context.Context, f field) (retry bool, err error)

// fill asks every field in turn. Each answer is a change followed by a blur;
// a field is asked again while it has an error. With current set, an empty
// answer keeps the current value.
func (a *App) fill(ctx context.Context, frm *form.Form, change func(field, value string), fields []field, current map[string]string, after afterFn) error {
	for _, f := range fields {
		for {
			if err := a.ask(frm, change, f, current[f.name]); err != nil {
				return err
			}
			if after == nil {
				break
			}
			retry, err := after(ctx, f)
			if err != nil {
				return err
			}
			if !retry {
				break
			}
		}
	}
	return nil
}

func (a *App) ask(frm *form.Form, change func(field, value string), f field, keep string) error {
	prompt := f.label
	switch {
	case keep != "" && f.secret:
		prompt = f.label + " [unchanged]"
	case keep != "":
		prompt = fmt.Sprintf("%s [%s]", f.label, keep)
	}

	for {
		var (
			value string
			err   error
		)
		if f.secret {
			value, err = getPassword(a.reader, a.inFd, prompt, a.out)
		} else {
			value, err = getSimpleText(a.reader, prompt, a.out)
		}
		if err != nil {
			return err
		}
		if value == cancelInput {
			return errCancelled
		}
		if value == "" && keep != "" {
			value = keep
		}

		change(f.name, value)
		frm.Blur(f.name)
		if msg := frm.Error(f.name); msg != "" {
			a.printf("  ! %s\n", msg)
			continue
		}
		return nil
	}
}

// submit sends the screen. After a failure the draft is kept: the user may
// send it again (r), go through the fields with the current values (e) or
// leave the screen (.), which returns the last failure.
func (a *App) submit(ctx context.Context, send, edit func(context.Context) error) error {
	for {
		err := send(ctx)
		if err == nil {
			return nil
		}
		a.log.Debug(ctx, "submit failed", "error", err)

	choose:
		for {
			choice, rerr := getSimpleText(a.reader, "Retry (r), edit (e) or leave (.)", a.out)
			if rerr != nil {
				return rerr
			}
			switch choice {
			case "r", "retry":
				break choose
			case "e", "edit":
				if eerr := edit(ctx); eerr != nil {
					if errors.Is(eerr, errCancelled) {
						a.println("Cancelled.")
						return err
					}
					return eerr
				}
				break choose
			case cancelInput:
				a.println("Cancelled.")
				return err
			}
		}
	}
}

// awaitUsername waits for the availability checker and asks the username
// again when it is taken.
func (a *App) awaitUsername(ctx context.Context, c *availability.Checker) (bool, error) {
	if c.Checking() {
		a.println("  checking availability...")
	}
	state, err := c.Await(ctx)
	if err != nil {
		return false, err
	}

	switch state {
	case availability.Taken:
		a.printf("  ! %s\n", screens.MsgUsernameTaken)
		return true, nil
	case availability.Available:
		a.printf("  %s\n", screens.MsgUsernameFree)
	default:
		a.println("  ? username availability could not be checked")
	}
	return false, nil
}

// leave turns a cancelled form into a quiet return.
func (a *App) leave(err error) error {
	if errors.Is(err, errCancelled) {
		a.println("Cancelled.")
		return nil
	}
	return err
}

func (a *App) title(s string) {
	a.printf("== %s ==\n", s)
}
