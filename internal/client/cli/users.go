package cli

import (
	"context"
	"text/tabwriter"

	"github.com/dmitrijs2005/useradmin/internal/client/models"
	"github.com/dmitrijs2005/useradmin/internal/client/screens"
	"github.com/dmitrijs2005/useradmin/internal/client/validation"
)

func (a *App) addUserScreen(ctx context.Context) error {
	s := screens.NewAddUser(a.users, a, a.availabilityOptions()...)
	defer s.Close()
	a.title("Add user")

	after := func(ctx context.Context, f field) (bool, error) {
		switch f.name {
		case validation.FieldUsername:
			return a.awaitUsername(ctx, s.Checker)
		case validation.FieldPassword:
			score := s.Strength()
			a.printf("  strength: %s (%d/4)\n", validation.StrengthLabel(score), score)
			if score < screens.MinStrength {
				a.printf("  ! %s\n", screens.MsgPasswordWeak)
				return true, nil
			}
		}
		return false, nil
	}

	fields := []field{fieldUsername, fieldFirstName, fieldLastName, fieldEmail, fieldPassword}
	if err := a.fill(ctx, s.Form, s.Change, fields, nil, after); err != nil {
		return a.leave(err)
	}
	return a.submit(ctx, s.Submit, func(ctx context.Context) error {
		return a.fill(ctx, s.Form, s.Change, fields, s.Form.Values(), after)
	})
}

func (a *App) editUserScreen(ctx context.Context, id models.ID) error {
	s := screens.NewEditUser(a.users, a, a, a.availabilityOptions()...)
	defer s.Close()

	if err := s.Load(ctx, id); err != nil {
		return err
	}
	a.title("Edit user " + id.String())
	a.printUser(s.Original())
	a.println("Press Enter to keep a value.")

	after := func(ctx context.Context, f field) (bool, error) {
		if f.name == validation.FieldUsername {
			return a.awaitUsername(ctx, s.Checker)
		}
		return false, nil
	}

	fields := []field{fieldUsername, fieldFirstName, fieldLastName, fieldEmail}
	refill := func(ctx context.Context) error {
		return a.fill(ctx, s.Form, s.Change, fields, s.Form.Values(), after)
	}
	if err := refill(ctx); err != nil {
		return a.leave(err)
	}
	return a.submit(ctx, s.Submit, refill)
}

func (a *App) printUser(u models.User) {
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	a.fprintRow(tw, "  Username:", u.Username)
	a.fprintRow(tw, "  First name:", u.FirstName)
	a.fprintRow(tw, "  Last name:", u.LastName)
	a.fprintRow(tw, "  Email:", u.Email)
	_ = tw.Flush()
}

func (a *App) fprintRow(tw *tabwriter.Writer, cols ...string) {
	for i, c := range cols {
		if i > 0 {
			_, _ = tw.Write([]byte("\t"))
		}
		_, _ = tw.Write([]byte(c))
	}
	_, _ = tw.Write([]byte("\n"))
}

