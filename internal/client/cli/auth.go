package cli

import (
	"context"

	"github.com/dmitrijs2005/useradmin/internal/client/screens"
)

func (a *App) loginScreen(ctx context.Context) error {
	s := screens.NewLogin(a.auth, a, a)
	a.title("Login")

	fields := []field{fieldUsername, fieldPassword}
	if err := a.fill(ctx, s.Form, s.Form.Change, fields, nil, nil); err != nil {
		return a.leave(err)
	}
	return a.submit(ctx, s.Submit, func(ctx context.Context) error {
		return a.fill(ctx, s.Form, s.Form.Change, fields, s.Form.Values(), nil)
	})
}

func (a *App) signupScreen(ctx context.Context) error {
	s := screens.NewSignup(a.auth, a, a)
	a.title("Sign up")

	fields := []field{fieldUsername, fieldPassword, fieldConfirm}
	if err := a.fill(ctx, s.Form, s.Form.Change, fields, nil, nil); err != nil {
		return a.leave(err)
	}
	return a.submit(ctx, s.Submit, func(ctx context.Context) error {
		return a.fill(ctx, s.Form, s.Form.Change, fields, s.Form.Values(), nil)
	})
}
