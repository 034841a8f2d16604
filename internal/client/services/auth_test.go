package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/useradmin/internal/client/client"
	"github.com/dmitrijs2005/useradmin/internal/client/models"
	"github.com/dmitrijs2005/useradmin/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin_PersistsBothCredentials(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	id := e.api.AddAccount("admin", "secret1")

	assert.False(t, e.auth.LoggedIn(ctx))

	res, err := e.auth.Login(ctx, "admin", "secret1")
	require.NoError(t, err)
	assert.Equal(t, models.ID("1"), res.UserID)
	assert.Equal(t, 1, id)

	creds, err := e.session.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, res.Token, creds.Token)
	assert.Equal(t, models.BasicCredential("admin", "secret1"), creds.Basic)
	assert.Equal(t, models.ID("1"), creds.UserID)
	assert.True(t, e.auth.LoggedIn(ctx))

	info, err := e.session.Claims(ctx)
	require.NoError(t, err)
	assert.Equal(t, "admin", info.Name())
}

func TestLogin_WrongPasswordKeepsSessionEmpty(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	e.api.AddAccount("admin", "secret1")

	_, err := e.auth.Login(ctx, "admin", "nope")
	require.ErrorIs(t, err, client.ErrUnauthorized)
	assert.False(t, e.auth.LoggedIn(ctx))
}

func TestRegister(t *testing.T) {
	e := setup(t)
	ctx := context.Background()

	require.NoError(t, e.auth.Register(ctx, "ann", "secret1"))
	require.ErrorIs(t, e.auth.Register(ctx, "ann", "secret1"), client.ErrConflict)
	assert.Equal(t, 2, e.api.Calls(testutil.RouteSignup))

	_, err := e.auth.Login(ctx, "ann", "secret1")
	require.NoError(t, err)
}

func TestLogout_ClearsBothCredentials(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	e.loginAdmin(t)

	require.NoError(t, e.auth.Logout(ctx))
	assert.False(t, e.auth.LoggedIn(ctx))

	creds, err := e.session.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, creds.Token)
	assert.Empty(t, creds.Basic)

	_, err = e.users.Search(ctx, models.FieldFirstName, "")
	require.ErrorIs(t, err, client.ErrUnauthorized)
	assert.Zero(t, e.api.Calls(testutil.RouteSearch))
}
