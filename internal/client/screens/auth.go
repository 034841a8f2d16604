package screens

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/useradmin/internal/client/client"
	"github.com/dmitrijs2005/useradmin/internal/client/form"
	"github.com/dmitrijs2005/useradmin/internal/client/router"
	"github.com/dmitrijs2005/useradmin/internal/client/services"
	"github.com/dmitrijs2005/useradmin/internal/client/validation"
	"github.com/dmitrijs2005/useradmin/internal/common"
)

type Login struct {
	inflight
	Form   *form.Form
	auth   services.AuthService
	notify Notifier
	nav    Navigator
}

func NewLogin(auth services.AuthService, n Notifier, nav Navigator) *Login {
	return &Login{Form: form.New(validation.LoginSchema(), nil), auth: auth, notify: n, nav: nav}
}

// CanSubmit needs every field filled, no standing error and no request in
// flight.
func (s *Login) CanSubmit() bool { return !s.Busy() && s.Form.Valid() }

func (s *Login) Submit(ctx context.Context) error {
	if err := s.begin(); err != nil {
		return err
	}
	defer s.end()

	if !s.Form.ValidateAll() {
		s.notify.Error(MsgFixErrors)
		return common.ErrInvalidForm
	}

	_, err := s.auth.Login(ctx, s.Form.Value(validation.FieldUsername), s.Form.Value(validation.FieldPassword))
	if err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			s.notify.Error(MsgLoginBad)
		} else {
			failure(s.notify, err, MsgLoginFailed)
		}
		return err
	}

	s.notify.Success(MsgLoginOK)
	s.nav.Navigate(router.PathHome)
	return nil
}

type Signup struct {
	inflight
	Form   *form.Form
	auth   services.AuthService
	notify Notifier
	nav    Navigator
}

func NewSignup(auth services.AuthService, n Notifier, nav Navigator) *Signup {
	return &Signup{Form: form.New(validation.SignupSchema(), nil), auth: auth, notify: n, nav: nav}
}

func (s *Signup) CanSubmit() bool { return !s.Busy() && s.Form.Valid() }

func (s *Signup) Submit(ctx context.Context) error {
	if err := s.begin(); err != nil {
		return err
	}
	defer s.end()

	if !s.Form.ValidateAll() {
		s.notify.Error(MsgFixErrors)
		return common.ErrInvalidForm
	}

	err := s.auth.Register(ctx, s.Form.Value(validation.FieldUsername), s.Form.Value(validation.FieldPassword))
	if err != nil {
		if errors.Is(err, client.ErrConflict) {
			s.notify.Error(MsgSignupExists)
		} else {
			failure(s.notify, err, MsgSignupFailed)
		}
		return err
	}

	s.notify.Success(MsgSignupOK)
	s.nav.Navigate(router.PathLogin)
	return nil
}
