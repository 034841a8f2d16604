// Package cli provides the interactive useradmin console.
//
// It drives the terminal-independent screen controllers from a REPL: each
// command resolves a path through the router (and its session guard), the
// resulting screen asks for its fields one by one, and toasts are printed
// as "✔ message" or "✖ message".
//
// Commands:
//   - login, signup           authenticate / create an account
//   - add                     add a user (username availability is checked as you type)
//   - list                    search and page through users, delete or edit them
//   - edit <id>               edit one user
//   - go <path>               open any route, e.g. "go /edituser/3"
//   - whoami, logout          session information / clear the session
//   - help, exit | quit
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
