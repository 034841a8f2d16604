package screens

import (
	"context"

	"github.com/dmitrijs2005/useradmin/internal/client/availability"
	"github.com/dmitrijs2005/useradmin/internal/client/form"
	"github.com/dmitrijs2005/useradmin/internal/client/models"
	"github.com/dmitrijs2005/useradmin/internal/client/services"
	"github.com/dmitrijs2005/useradmin/internal/client/validation"
	"github.com/dmitrijs2005/useradmin/internal/common"
)

// AddUser creates accounts. The username is checked for availability as it
// is typed and the password must reach MinStrength.
type AddUser struct {
	inflight
	Form    *form.Form
	Checker *availability.Checker
	users   services.UserService
	notify  Notifier
}

func NewAddUser(users services.UserService, n Notifier, opts ...availability.Option) *AddUser {
	opts = append([]availability.Option{availability.WithErrorState(availability.Unknown)}, opts...)
	return &AddUser{
		Form:    form.New(validation.AddUserSchema(), nil),
		Checker: availability.New(users.UsernameTaken, opts...),
		users:   users,
		notify:  n,
	}
}

// Change forwards to the form and feeds username drafts to the checker.
func (s *AddUser) Change(field, value string) {
	s.Form.Change(field, value)
	if field == validation.FieldUsername {
		s.Checker.Update(value)
	}
}

// Strength scores the current password draft.
func (s *AddUser) Strength() int {
	return validation.PasswordStrength(s.Form.Value(validation.FieldPassword))
}

// CanSubmit is false while a request or lookup is pending and until the
// username is known to be available.
func (s *AddUser) CanSubmit() bool {
	return !s.Busy() && !s.Checker.Checking() && s.Checker.State() == availability.Available
}

func (s *AddUser) Submit(ctx context.Context) error {
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
	case s.Strength() < MinStrength:
		s.notify.Error(MsgPasswordWeak)
		return common.ErrInvalidForm
	}

	v := s.Form.Values()
	err := s.users.Create(ctx, models.NewUser{
		Username:  v[validation.FieldUsername],
		FirstName: v[validation.FieldFirstName],
		LastName:  v[validation.FieldLastName],
		Email:     v[validation.FieldEmail],
		Password:  v[validation.FieldPassword],
	})
	if err != nil {
		failure(s.notify, err, MsgAddFailed)
		return err
	}

	s.notify.Success(MsgUserAdded)
	s.Reset()
	return nil
}

// Reset empties the draft and forgets the availability result.
func (s *AddUser) Reset() {
	s.Form.Reset(nil)
	s.Checker.Reset()
}

// Close stops the checker; the screen is not reused afterwards.
func (s *AddUser) Close() {
	s.Checker.Stop()
}
