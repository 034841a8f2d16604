package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/useradmin/internal/client/availability"
	"github.com/dmitrijs2005/useradmin/internal/client/config"
	"github.com/dmitrijs2005/useradmin/internal/client/models"
	"github.com/dmitrijs2005/useradmin/internal/client/router"
	"github.com/dmitrijs2005/useradmin/internal/client/services"
	"github.com/dmitrijs2005/useradmin/internal/client/session"
	"github.com/dmitrijs2005/useradmin/internal/common"
	"github.com/dmitrijs2005/useradmin/internal/logging"
)

// ClaimsSource exposes what the stored token says about its owner.
type ClaimsSource interface {
	Claims(ctx context.Context) (*session.TokenInfo, error)
}

// Deps are the collaborators the console is built from.
type Deps struct {
	Auth    services.AuthService
	Users   services.UserService
	Session ClaimsSource
	Logger  logging.Logger
	In      io.Reader
	Out     io.Writer
}

type App struct {
	config  *config.Config
	auth    services.AuthService
	users   services.UserService
	session ClaimsSource
	router  *router.Router
	log     logging.Logger
	reader  *bufio.Reader
	inFd    int
	out     io.Writer

	// next is the path requested by the current screen, if any.
	next string
	now  func() time.Time
}

func NewApp(c *config.Config, d Deps) *App {
	if d.Logger == nil {
		d.Logger = logging.Discard()
	}
	if d.In == nil {
		d.In = os.Stdin
	}
	if d.Out == nil {
		d.Out = os.Stdout
	}
	return &App{
		config:  c,
		auth:    d.Auth,
		users:   d.Users,
		session: d.Session,
		router:  router.New(d.Auth),
		log:     d.Logger,
		reader:  bufio.NewReader(d.In),
		inFd:    InputFd(d.In),
		out:     d.Out,
		now:     time.Now,
	}
}

// Run shows the login screen when there is no session and then serves the
// REPL until the user exits or input ends.
func (a *App) Run(ctx context.Context) {
	a.println("useradmin console (type 'help' for commands)")
	if !a.isLoggedIn(ctx) {
		_ = a.Go(ctx, router.PathHome)
	}
	runREPL(ctx, a, func() string { return a.getStatus(ctx) }, a.reader, a.out)
}

func (a *App) isLoggedIn(ctx context.Context) bool {
	return a.auth.LoggedIn(ctx)
}

func (a *App) getStatus(ctx context.Context) string {
	if !a.isLoggedIn(ctx) {
		return "(guest)"
	}
	info, err := a.session.Claims(ctx)
	if err != nil || info.Name() == "" {
		return "(logged in)"
	}
	return fmt.Sprintf("(%s)", info.Name())
}

// Go resolves path and shows the screen, following any navigation the
// screen requests.
func (a *App) Go(ctx context.Context, path string) error {
	for {
		route := a.router.Resolve(ctx, path)
		a.next = ""
		if route.Guarded {
			a.printf("%s requires a session, please log in.\n", route.Path)
		}
		a.log.Debug(ctx, "open screen", "path", route.Path, "screen", route.Name, "guarded", route.Guarded)

		err := a.show(ctx, route)
		if a.next == "" || ctx.Err() != nil || errors.Is(err, io.EOF) {
			return err
		}
		path = a.next
	}
}

func (a *App) show(ctx context.Context, route router.Route) error {
	switch route.Name {
	case router.Login:
		return a.loginScreen(ctx)
	case router.Signup:
		return a.signupScreen(ctx)
	case router.AddUser:
		return a.addUserScreen(ctx)
	case router.ListUsers:
		return a.listScreen(ctx)
	case router.EditUser:
		return a.editUserScreen(ctx, models.ID(route.Var("id")))
	default:
		a.printf("404: nothing at %s (type 'help' for commands)\n", route.Path)
		return nil
	}
}

// Navigate implements screens.Navigator.
func (a *App) Navigate(path string) { a.next = path }

// Success implements screens.Notifier.
func (a *App) Success(msg string) { a.println("✔ " + msg) }

// Error implements screens.Notifier.
func (a *App) Error(msg string) { a.println("✖ " + msg) }

// Logout clears both stored credentials.
func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		a.Error("Logout failed")
		return err
	}
	a.Success("Logged out")
	return nil
}

// WhoAmI prints what the stored token says about the session.
func (a *App) WhoAmI(ctx context.Context) error {
	info, err := a.session.Claims(ctx)
	switch {
	case errors.Is(err, common.ErrNoSession):
		a.println("Not logged in")
		return nil
	case errors.Is(err, common.ErrOpaqueToken):
		a.println("Logged in (the token carries no readable claims)")
		return nil
	case err != nil:
		return err
	}

	a.printf("Logged in as %s\n", info.Name())
	switch {
	case info.ExpiresAt.IsZero():
	case info.Expired(a.now()):
		a.printf("Token expired at %s\n", info.ExpiresAt.Format(time.RFC3339))
	default:
		a.printf("Token expires at %s\n", info.ExpiresAt.Format(time.RFC3339))
	}
	return nil
}

func (a *App) availabilityOptions() []availability.Option {
	return []availability.Option{
		availability.WithDelay(a.config.DebounceDelay),
		availability.WithLogger(a.log),
	}
}

func (a *App) println(s string) { fmt.Fprintln(a.out, s) }

func (a *App) printf(format string, args ...any) { fmt.Fprintf(a.out, format, args...) }
