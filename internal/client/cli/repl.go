package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

var errUsage = errors.New("usage")

// execIface is the command surface the REPL drives. App satisfies it; tests
// provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	EditProfile(ctx context.Context) error
	DeleteAccount(ctx context.Context) error
	List(ctx context.Context, args []string) error
	Add(ctx context.Context, args []string) error
	Edit(ctx context.Context, args []string) error
	Remove(ctx context.Context, args []string) error
	Chart(ctx context.Context, args []string) error
	Convert(ctx context.Context, args []string) error
	Stats(ctx context.Context) error
}

var usage = map[string]string{
	"list":    "list <transactions|budgets|employees|projects>",
	"add":     "add <kind>",
	"edit":    "edit <kind> <id>",
	"rm":      "rm <kind> <id>",
	"chart":   "chart [start YYYY-MM-DD] [end YYYY-MM-DD]",
	"convert": "convert <base> <target> <amount>",
}

// runREPL reads commands from in until EOF, "exit" or "quit" and dispatches
// them to a. Handler errors are printed and the loop goes on.
func runREPL(ctx context.Context, a execIface, statusFn func() string, in *bufio.Reader, out io.Writer) {
	for {
		if ctx.Err() != nil {
			return
		}
		fmt.Fprintf(out, "bizdesk %s> ", statusFn())

		line, err := readLine(in)
		if err != nil {
			fmt.Fprintln(out)
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(out, "Available commands: whoami, profile, delete-account, list, add, edit, rm, chart, convert, stats, logout, exit")
			} else {
				fmt.Fprintln(out, "Available commands: register, login, stats, exit")
			}
		case "register":
			err = a.Register(ctx)
		case "login":
			err = a.Login(ctx)
		case "logout":
			err = a.Logout(ctx)
		case "whoami":
			err = a.WhoAmI(ctx)
		case "profile":
			err = a.EditProfile(ctx)
		case "delete-account":
			err = a.DeleteAccount(ctx)
		case "list":
			err = a.List(ctx, args)
		case "add":
			err = a.Add(ctx, args)
		case "edit":
			err = a.Edit(ctx, args)
		case "rm":
			err = a.Remove(ctx, args)
		case "chart":
			err = a.Chart(ctx, args)
		case "convert":
			err = a.Convert(ctx, args)
		case "stats":
			err = a.Stats(ctx)
		case "exit", "quit":
			fmt.Fprintln(out, "Bye!")
			return
		default:
			fmt.Fprintln(out, "Unknown command:", cmd)
		}

		switch {
		case errors.Is(err, errUsage):
			if u, ok := usage[cmd]; ok {
				fmt.Fprintln(out, "Usage:", u)
			} else {
				fmt.Fprintln(out, "Usage error")
			}
		case err != nil:
			fmt.Fprintln(out, "Error:", err)
		}
	}
}
