package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/useradmin/internal/client/router"
)

// printlnFn and printFn are test seams for REPL output. In tests, replace
// them with stubs.
var (
	printlnFn = fmt.Fprintln
	printFn   = fmt.Fprint
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn(ctx context.Context) bool
	Go(ctx context.Context, path string) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
}

// runREPL starts a simple read-eval-print loop for the console.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. Prompt and help text go to out. Screen commands are translated to paths so
// they pass through the router and its session guard. The loop exits on EOF
// or when the user types "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	  - help             show available commands
//	  - login            open the login screen
//	  - signup           open the signup screen
//	  - add              add a user
//	  - (l)ist           search users
//	  - edit <id>        edit a user
//	  - go <path>        open a route by path
//	  - whoami           show the session owner
//	  - logout           clear the session
//	  - exit | quit      leave the program
//
// Any errors returned by command handlers are ignored here; handlers report
// their own failures. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, out io.Writer) {
	for {
		if ctx.Err() != nil {
			return
		}
		printFn(out, fmt.Sprintf("useradmin %s> ", statusFn()))
		line, err := readLine(reader)
		if err != nil {
			printlnFn(out)
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn(ctx) {
				printlnFn(out, "Available commands: add, (l)ist, edit <id>, go <path>, whoami, logout, exit")
			} else {
				printlnFn(out, "Available commands: login, signup, go <path>, exit")
			}
			printlnFn(out, "Inside a form, enter '.' to leave it.")

		case "login":
			_ = a.Go(ctx, router.PathLogin)

		case "signup":
			_ = a.Go(ctx, router.PathSignup)

		case "add":
			_ = a.Go(ctx, router.PathHome)

		case "l", "list":
			_ = a.Go(ctx, router.PathListUsers)

		case "edit":
			if len(args) == 0 {
				printlnFn(out, "Usage: edit <id>")
				continue
			}
			_ = a.Go(ctx, router.EditUserPath(args[0]))

		case "go":
			if len(args) == 0 {
				printlnFn(out, "Usage: go <path>")
				continue
			}
			_ = a.Go(ctx, args[0])

		case "whoami":
			_ = a.WhoAmI(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn(out, "Bye!")
			return

		default:
			printlnFn(out, "Unknown command:", cmd)
		}
	}
}
