package screens

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/useradmin/internal/client/availability"
	"github.com/dmitrijs2005/useradmin/internal/client/client"
	"github.com/dmitrijs2005/useradmin/internal/client/services"
	"github.com/dmitrijs2005/useradmin/internal/client/session"
	"github.com/dmitrijs2005/useradmin/internal/testutil"
	"github.com/stretchr/testify/require"
)

type toast struct {
	ok  bool
	msg string
}

type recorder struct {
	mu     sync.Mutex
	toasts []toast
	paths  []string
}

func (r *recorder) Success(msg string) { r.add(toast{ok: true, msg: msg}) }
func (r *recorder) Error(msg string) { r.add(toast{msg: msg}) }

func (r *recorder) add(t toast) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.toasts = append(r.toasts, t)
}

func (r *recorder) Navigate(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paths = append(r.paths, path)
}

func (r *recorder) last() toast {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.toasts) == 0 {
		return toast{}
	}
	return r.toasts[len(r.toasts)-1]
}

func (r *recorder) lastPath() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.paths) == 0 {
		return ""
	}
	return r.paths[len(r.paths)-1]
}

type env struct {
	api     *testutil.FakeAPI
	session *session.Service
	auth    services.AuthService
	users   services.UserService
	rec     *recorder
}

func setup(t *testing.T) *env {
	t.Helper()
	api := testutil.NewFakeAPI(t)
	sess, db, err := session.Open(context.Background(), t.TempDir(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	c, err := client.NewHTTPClient(api.URL, sess, client.WithHTTPClient(api.Client()))
	require.NoError(t, err)

	return &env{
		api:     api,
		session: sess,
		auth:    services.NewAuthService(c, sess, nil),
		users:   services.NewUserService(c),
		rec:     &recorder{},
	}
}

func (e *env) loginAdmin(t *testing.T) {
	t.Helper()
	e.api.AddAccount("admin", "secret1")
	_, err := e.auth.Login(context.Background(), "admin", "secret1")
	require.NoError(t, err)
}

// fast keeps the real clock but makes the debounce negligible.
var fast = availability.WithDelay(time.Millisecond)

func await(t *testing.T, c *availability.Checker) availability.State {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s, err := c.Await(ctx)
	require.NoError(t, err)
	return s
}
