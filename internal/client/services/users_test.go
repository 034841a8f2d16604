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

func TestSearch_DropsAdminAccount(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	e.loginAdmin(t)
	e.api.AddUser("ann", "Ann", "Lee", "ann@example.org", "pw")
	e.api.AddUser("bob", "Bob", "Stone", "bob@example.org", "pw")

	users, err := e.users.Search(ctx, models.FieldUsername, "")
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "ann", users[0].Username)
	assert.Equal(t, "bob", users[1].Username)

	users, err = e.users.Search(ctx, models.FieldFirstName, "bo")
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "Stone", users[0].LastName)
}

func TestGet(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	e.loginAdmin(t)
	id := e.api.AddUser("ann", "Ann", "Lee", "ann@example.org", "pw")

	u, err := e.users.Get(ctx, models.ID("2"))
	require.NoError(t, err)
	assert.Equal(t, 2, id)
	assert.Equal(t, "ann", u.Username)
	assert.Equal(t, map[string]any{"id": "2"}, e.api.LastBody(testutil.RouteSearch))

	_, err = e.users.Get(ctx, models.ID("99"))
	require.ErrorIs(t, err, client.ErrNotFound)
}

func TestCreate(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	e.loginAdmin(t)

	nu := models.NewUser{Username: "ann", FirstName: "Ann", LastName: "Lee", Email: "ann@example.org", Password: "longenough1"}
	require.NoError(t, e.users.Create(ctx, nu))

	rec, ok := e.api.User(2)
	require.True(t, ok)
	assert.Equal(t, "Lee", rec.LastName)

	err := e.users.Create(ctx, nu)
	require.ErrorIs(t, err, client.ErrConflict)
	assert.Equal(t, "Username already taken", client.MessageOr(err, "Failed to add user"))
}

func TestUpdate_UsernameOnlyWhenChanged(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	e.loginAdmin(t)
	e.api.AddUser("ann", "Ann", "Lee", "ann@example.org", "pw")

	draft := models.User{Username: "ann", FirstName: "Anna", LastName: "Lee", Email: "anna@example.org"}
	require.NoError(t, e.users.Update(ctx, "2", "ann", draft))
	assert.NotContains(t, e.api.LastBody(testutil.RouteUpdate), "username")

	draft.Username = "anna"
	require.NoError(t, e.users.Update(ctx, "2", "ann", draft))
	assert.Equal(t, "anna", e.api.LastBody(testutil.RouteUpdate)["username"])

	rec, _ := e.api.User(2)
	assert.Equal(t, "anna", rec.Username)
	assert.Equal(t, "anna@example.org", rec.Email)

	err := e.users.Update(ctx, "42", "x", draft)
	require.ErrorIs(t, err, client.ErrNotFound)
}

func TestDelete(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	e.loginAdmin(t)
	e.api.AddUser("ann", "Ann", "Lee", "ann@example.org", "pw")

	require.NoError(t, e.users.Delete(ctx, "2"))
	_, ok := e.api.User(2)
	assert.False(t, ok)

	require.ErrorIs(t, e.users.Delete(ctx, "2"), client.ErrNotFound)
}

func TestUsernameTaken_ExactMatch(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	e.loginAdmin(t)
	e.api.AddUser("annabel", "Annabel", "Lee", "a@example.org", "pw")

	taken, err := e.users.UsernameTaken(ctx, "ann")
	require.NoError(t, err)
	assert.False(t, taken, "substring hits do not count")

	taken, err = e.users.UsernameTaken(ctx, "annabel")
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = e.users.UsernameTaken(ctx, "admin")
	require.NoError(t, err)
	assert.True(t, taken, "the admin account is a real username")
}
