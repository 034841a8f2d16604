package screens

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/useradmin/internal/client/availability"
	"github.com/dmitrijs2005/useradmin/internal/client/client"
	"github.com/dmitrijs2005/useradmin/internal/client/form"
	"github.com/dmitrijs2005/useradmin/internal/client/models"
	"github.com/dmitrijs2005/useradmin/internal/client/router"
	"github.com/dmitrijs2005/useradmin/internal/client/services"
	"github.com/dmitrijs2005/useradmin/internal/client/validation"
	"github.com/dmitrijs2005/useradmin/internal/common"
)

var errNotLoaded = errors.New("no user loaded")

// EditUser edits one record. Keeping the original username never triggers
// a lookup; a failed lookup counts as taken.
type EditUser struct {
	inflight
	Form    *form.Form
	Checker *availability.Checker
	users   services.UserService
	notify  Notifier
	nav     Navigator
	opts    []availability.Option

	id       models.ID
	original models.User
	loaded   bool
}

func NewEditUser(users services.UserService, n Notifier, nav Navigator, opts ...availability.Option) *EditUser {
	s := &EditUser{
		Form:   form.New(validation.EditUserSchema(), nil),
		users:  users,
		notify: n,
		nav:    nav,
		opts:   opts,
	}
	s.Checker = s.newChecker("")
	return s
}

func (s *EditUser) newChecker(original string) *availability.Checker {
	opts := append([]availability.Option{
		availability.WithErrorState(availability.Taken),
		availability.WithOriginal(original),
		// a rename may be to any non-empty username
		availability.WithMinLength(1),
	}, s.opts...)
	return availability.New(s.users.UsernameTaken, opts...)
}

// Load fetches the record. When it cannot, the screen notifies and
// navigates back to the list.
func (s *EditUser) Load(ctx context.Context, id models.ID) error {
	u, err := s.users.Get(ctx, id)
	if err != nil {
		if errors.Is(err, client.ErrNotFound) {
			s.notify.Error(MsgUserNotFound)
		} else {
			s.notify.Error(MsgFetchUserFail)
		}
		s.nav.Navigate(router.PathListUsers)
		return err
	}

	s.Checker.Stop()
	s.Checker = s.newChecker(u.Username)
	s.Checker.Update(u.Username)

	s.id, s.original, s.loaded = id, *u, true
	s.Form.Reset(map[string]string{
		validation.FieldUsername:  u.Username,
		validation.FieldFirstName: u.FirstName,
		validation.FieldLastName:  u.LastName,
		validation.FieldEmail:     u.Email,
	})
	return nil
}

// Original returns the record as loaded.
func (s *EditUser) Original() models.User { return s.original }

func (s *EditUser) Change(field, value string) {
	s.Form.Change(field, value)
	if field == validation.FieldUsername {
		s.Checker.Update(value)
	}
}

func (s *EditUser) CanSubmit() bool {
	return s.loaded && !s.Busy() && !s.Checker.Checking() && s.Checker.State() == availability.Available
}

func (s *EditUser) Submit(ctx context.Context) error {
	if !s.loaded {
		return errNotLoaded
	}
	if s.Checker.Checking() {
		return common.ErrBusy
	}
	if err := s.begin(); err != nil {
		return err
	}
	defer s.end()

	valid := s.Form.ValidateAll()
	switch {
	case !valid:
		s.notify.Error(MsgFixErrors)
		return common.ErrInvalidForm
	case s.Checker.State() == availability.Taken:
		s.notify.Error(MsgUsernameTaken)
		return common.ErrUsernameTaken
	case s.Checker.State() != availability.Available:
		s.notify.Error(MsgFixErrors)
		return common.ErrInvalidForm
	}

	v := s.Form.Values()
	draft := models.User{
		ID:        s.id,
		Username:  v[validation.FieldUsername],
		FirstName: v[validation.FieldFirstName],
		LastName:  v[validation.FieldLastName],
		Email:     v[validation.FieldEmail],
	}
	if err := s.users.Update(ctx, s.id, s.original.Username, draft); err != nil {
		failure(s.notify, err, MsgUpdateFailed)
		return err
	}

	s.notify.Success(MsgUserUpdated)
	s.nav.Navigate(router.PathListUsers)
	return nil
}

func (s *EditUser) Close() {
	s.Checker.Stop()
}
