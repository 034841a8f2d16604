package screens

import (
	"context"
	"net/http"
	"testing"

	"github.com/dmitrijs2005/useradmin/internal/client/router"
	"github.com/dmitrijs2005/useradmin/internal/client/validation"
	"github.com/dmitrijs2005/useradmin/internal/common"
	"github.com/dmitrijs2005/useradmin/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fillLogin(s *Login, username, password string) {
	s.Form.Change(validation.FieldUsername, username)
	s.Form.Change(validation.FieldPassword, password)
}

func TestLogin_Success(t *testing.T) {
	e := setup(t)
	e.api.AddAccount("admin", "secret1")
	s := NewLogin(e.auth, e.rec, e.rec)

	fillLogin(s, "admin", "secret1")
	require.NoError(t, s.Submit(context.Background()))

	assert.Equal(t, toast{ok: true, msg: MsgLoginOK}, e.rec.last())
	assert.Equal(t, router.PathHome, e.rec.lastPath())
	assert.True(t, e.auth.LoggedIn(context.Background()))
}

func TestLogin_InvalidFormIssuesNoRequest(t *testing.T) {
	e := setup(t)
	s := NewLogin(e.auth, e.rec, e.rec)

	fillLogin(s, "admin", "short")
	err := s.Submit(context.Background())
	require.ErrorIs(t, err, common.ErrInvalidForm)
	assert.Equal(t, toast{msg: MsgFixErrors}, e.rec.last())
	assert.Equal(t, "Password must be at least 6 characters", s.Form.Error(validation.FieldPassword))
	assert.Zero(t, e.api.Calls(testutil.RouteLogin))
	assert.Empty(t, e.rec.lastPath())
}

func TestLogin_Failures(t *testing.T) {
	e := setup(t)
	e.api.AddAccount("admin", "secret1")
	s := NewLogin(e.auth, e.rec, e.rec)
	ctx := context.Background()

	fillLogin(s, "admin", "wrong-password")
	require.Error(t, s.Submit(ctx))
	assert.Equal(t, MsgLoginBad, e.rec.last().msg)

	fillLogin(s, "admin", "secret1")
	e.api.FailNext(testutil.RouteLogin, http.StatusInternalServerError, map[string]string{"error": "database down"})
	require.Error(t, s.Submit(ctx))
	assert.Equal(t, "database down", e.rec.last().msg)

	e.api.FailNext(testutil.RouteLogin, http.StatusInternalServerError, nil)
	require.Error(t, s.Submit(ctx))
	assert.Equal(t, MsgLoginFailed, e.rec.last().msg)
	assert.Empty(t, e.rec.lastPath())
}

func TestLogin_BusyRefusesSubmit(t *testing.T) {
	e := setup(t)
	s := NewLogin(e.auth, e.rec, e.rec)
	fillLogin(s, "admin", "secret1")

	require.NoError(t, s.begin())
	assert.False(t, s.CanSubmit())
	require.ErrorIs(t, s.Submit(context.Background()), common.ErrBusy)
	assert.Zero(t, e.api.Calls(testutil.RouteLogin))

	s.end()
	assert.True(t, s.CanSubmit())
}

func TestAuthScreens_CanSubmitNeedsValidDraft(t *testing.T) {
	e := setup(t)

	l := NewLogin(e.auth, e.rec, e.rec)
	assert.False(t, l.CanSubmit(), "blank form")
	l.Form.Change(validation.FieldUsername, "admin")
	assert.False(t, l.CanSubmit(), "password still blank")
	l.Form.Change(validation.FieldPassword, "abc")
	l.Form.Blur(validation.FieldPassword)
	assert.False(t, l.CanSubmit(), "standing error")
	l.Form.Change(validation.FieldPassword, "secret1")
	assert.True(t, l.CanSubmit())

	s := NewSignup(e.auth, e.rec, e.rec)
	s.Form.Change(validation.FieldUsername, "ann")
	s.Form.Change(validation.FieldPassword, "secret1")
	s.Form.Change(validation.FieldConfirmPassword, "secret2")
	s.Form.Blur(validation.FieldConfirmPassword)
	assert.False(t, s.CanSubmit())
	s.Form.Change(validation.FieldConfirmPassword, "secret1")
	assert.True(t, s.CanSubmit())
}

func TestSignup(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	s := NewSignup(e.auth, e.rec, e.rec)

	s.Form.Change(validation.FieldUsername, "ann")
	s.Form.Change(validation.FieldPassword, "secret1")
	s.Form.Change(validation.FieldConfirmPassword, "secret2")
	require.ErrorIs(t, s.Submit(ctx), common.ErrInvalidForm)
	assert.Equal(t, "Passwords do not match", s.Form.Error(validation.FieldConfirmPassword))
	assert.Zero(t, e.api.Calls(testutil.RouteSignup))

	s.Form.Change(validation.FieldConfirmPassword, "secret1")
	require.NoError(t, s.Submit(ctx))
	assert.Equal(t, toast{ok: true, msg: MsgSignupOK}, e.rec.last())
	assert.Equal(t, router.PathLogin, e.rec.lastPath())

	require.Error(t, s.Submit(ctx))
	assert.Equal(t, toast{msg: MsgSignupExists}, e.rec.last())
}
