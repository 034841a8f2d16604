package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/useradmin/internal/client/client"
	"github.com/dmitrijs2005/useradmin/internal/client/session"
	"github.com/dmitrijs2005/useradmin/internal/testutil"
	"github.com/stretchr/testify/require"
)

// ---- helpers ----

type env struct {
	api     *testutil.FakeAPI
	session *session.Service
	auth    AuthService
	users   UserService
}

func setup(t *testing.T) *env {
	t.Helper()
	ctx := context.Background()

	api := testutil.NewFakeAPI(t)
	sess, db, err := session.Open(ctx, t.TempDir(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	c, err := client.NewHTTPClient(api.URL, sess, client.WithHTTPClient(api.Client()))
	require.NoError(t, err)

	return &env{
		api:     api,
		session: sess,
		auth:    NewAuthService(c, sess, nil),
		users:   NewUserService(c),
	}
}

// loginAdmin registers the admin account on the fake and logs in with it.
func (e *env) loginAdmin(t *testing.T) {
	t.Helper()
	e.api.AddAccount("admin", "secret1")
	_, err := e.auth.Login(context.Background(), "admin", "secret1")
	require.NoError(t, err)
}
