package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/useradmin/internal/client/models"
	"github.com/dmitrijs2005/useradmin/internal/client/screens"
)

const listHelp = "n | p | <page> | field <name> | q [query] | del <id> | edit <id> | back"

// listScreen runs the list sub-prompt until the user goes back or picks a
// record to edit.
func (a *App) listScreen(ctx context.Context) error {
	s := screens.NewList(a.users, a, a, a.config.PageSize)
	_ = s.Refresh(ctx)

	for {
		a.renderList(s)
		line, err := getSimpleText(a.reader, listHelp, a.out)
		if err != nil {
			return err
		}
		cmd, arg, _ := strings.Cut(line, " ")
		arg = strings.TrimSpace(arg)

		switch cmd {
		case "":
		case "n", "next":
			s.Next()
		case "p", "prev":
			s.Prev()
		case "r", "refresh":
			_ = s.Refresh(ctx)
		case "field":
			f, err := models.ParseSearchField(arg)
			if err != nil {
				a.printf("  ! %v (one of: %s)\n", err, fieldNames())
				continue
			}
			_ = s.SetField(ctx, f)
		case "q", "query":
			_ = s.SetQuery(ctx, arg)
		case "del", "delete":
			if arg == "" {
				a.println("Usage: del <id>")
				continue
			}
			ok, err := Confirm(a.reader, fmt.Sprintf("Delete user %s?", arg), a.out)
			if err != nil {
				return err
			}
			if ok {
				_ = s.Delete(ctx, models.ID(arg))
			}
		case "edit":
			if arg == "" {
				a.println("Usage: edit <id>")
				continue
			}
			s.Edit(models.ID(arg))
			return nil
		case "back", "b", cancelInput:
			return nil
		default:
			n, err := strconv.Atoi(cmd)
			if err != nil {
				a.printf("Unknown list command: %s\n", cmd)
				continue
			}
			if !s.Goto(n) {
				a.printf("  ! no page %d\n", n)
			}
		}
	}
}

func (a *App) renderList(s *screens.List) {
	a.printf("== Users: %s contains %q ==\n", s.Field().Label(), s.Query())
	if s.Total() == 0 {
		a.println("No users found.")
		return
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	a.fprintRow(tw, "ID", "USERNAME", "FIRST NAME", "LAST NAME", "EMAIL")
	for _, u := range s.Page() {
		a.fprintRow(tw, u.ID.String(), u.Username, u.FirstName, u.LastName, u.Email)
	}
	_ = tw.Flush()

	a.printf("Page %d of %d, %d users\n", s.Current(), s.Pages(), s.Total())
}

func fieldNames() string {
	names := make([]string, len(models.SelectableFields))
	for i, f := range models.SelectableFields {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}
