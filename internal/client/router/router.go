// Package router holds the console's fixed route table and the guard that
// keeps protected screens behind a stored session.
package router

import (
	"context"
	"net/http"
	"net/url"

	"github.com/gorilla/mux"
)

const (
	PathHome      = "/"
	PathLogin     = "/login"
	PathSignup    = "/signup"
	PathListUsers = "/listuser"
	PathEditUser  = "/edituser/{id}"
)

// Name identifies a screen.
type Name string

const (
	Login     Name = "login"
	Signup    Name = "signup"
	AddUser   Name = "adduser"
	ListUsers Name = "listuser"
	EditUser  Name = "edituser"
	NotFound  Name = "notfound"
)

// SessionChecker reports whether a session token is stored.
type SessionChecker interface {
	LoggedIn(ctx context.Context) bool
}

// Route is the outcome of resolving a path.
type Route struct {
	Name Name
	// Path is the requested path; it is kept when the guard renders login
	// in place.
	Path string
	Vars map[string]string
	// Guarded is set when a protected screen was replaced by login.
	Guarded bool
}

// Var returns the named path parameter.
func (r Route) Var(name string) string { return r.Vars[name] }

type Router struct {
	mux       *mux.Router
	protected map[Name]bool
	session   SessionChecker
}

func New(session SessionChecker) *Router {
	r := &Router{
		mux:       mux.NewRouter(),
		protected: map[Name]bool{AddUser: true, ListUsers: true, EditUser: true},
		session:   session,
	}

	r.mux.NewRoute().Path(PathLogin).Name(string(Login))
	r.mux.NewRoute().Path(PathSignup).Name(string(Signup))
	r.mux.NewRoute().Path(PathHome).Name(string(AddUser))
	r.mux.NewRoute().Path(PathListUsers).Name(string(ListUsers))
	r.mux.NewRoute().Path(PathEditUser).Name(string(EditUser))
	r.mux.NewRoute().PathPrefix("/").Name(string(NotFound))

	return r
}

// Resolve maps path to a screen. A protected screen without a stored
// session resolves to login, keeping the requested path.
func (r *Router) Resolve(ctx context.Context, path string) Route {
	if path == "" {
		path = PathHome
	}
	u, err := url.Parse(path)
	if err != nil || u.Path == "" || u.Path[0] != '/' {
		return Route{Name: NotFound, Path: path}
	}

	req := &http.Request{Method: http.MethodGet, URL: u, Host: "console"}
	var match mux.RouteMatch
	if !r.mux.Match(req, &match) || match.Route == nil {
		return Route{Name: NotFound, Path: u.Path}
	}

	route := Route{Name: Name(match.Route.GetName()), Path: u.Path, Vars: match.Vars}
	if r.protected[route.Name] && !r.session.LoggedIn(ctx) {
		return Route{Name: Login, Path: u.Path, Guarded: true}
	}
	return route
}

// Protected reports whether name needs a session.
func (r *Router) Protected(name Name) bool {
	return r.protected[name]
}

// EditUserPath builds the edit path for id.
func EditUserPath(id string) string {
	return "/edituser/" + url.PathEscape(id)
}
