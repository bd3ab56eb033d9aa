package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/dmitrijs2005/pdfnotes/internal/client/router"
)

// notifyContext is a test seam for the per-command interrupt context.
var notifyContext = func(ctx context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(ctx, os.Interrupt)
}

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	prompt() string
	help() string
	whoami() string
	open(ctx context.Context, path string)
	back()
	logout(ctx context.Context)
	exec(ctx context.Context, cmd string, args []string) bool
	settle()
}

// navCommands map global commands to the route they open.
var navCommands = map[string]string{
	"home":        "/",
	"public":      "/public",
	"dashboard":   "/dashboard",
	"upload":      "/upload",
	"profile":     "/profile",
	"annotations": "/annotations",
	"login":       "/login",
	"register":    "/register",
}

// runREPL reads commands from in until EOF or "exit"/"quit".
//
// Global commands:
//
//	help, whoami             information
//	home, public, dashboard,
//	upload, profile,
//	annotations, login,
//	register                 open a route (forms prompt right away)
//	pdf <id>, go <path>      open a document or any path
//	back                     previous route
//	logout                   end the session
//	exit | quit              leave the program
//
// Anything else goes to the active screen. Each command runs with its own
// context, cancelled by Ctrl-C. After a command the shell re-applies the
// route guards and renders the active screen.
func runREPL(ctx context.Context, a execIface, in *bufio.Reader, out io.Writer) error {
	for {
		fmt.Fprint(out, a.prompt())
		line, err := in.ReadString('\n')
		if err != nil && line == "" {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(out)
				return nil
			}
			return err
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		cctx, stop := notifyContext(ctx)
		render := true

		switch cmd {
		case "help":
			fmt.Fprintln(out, a.help())
			render = false

		case "whoami":
			fmt.Fprintln(out, a.whoami())
			render = false

		case "home", "public", "dashboard", "upload", "profile", "annotations", "login", "register":
			a.open(cctx, navCommands[cmd])

		case "pdf":
			if len(args) == 0 {
				fmt.Fprintln(out, "Usage: pdf <id>")
				render = false
				break
			}
			a.open(cctx, router.ViewerPath(args[0]))

		case "go":
			if len(args) == 0 {
				fmt.Fprintln(out, "Usage: go <path>")
				render = false
				break
			}
			a.open(cctx, args[0])

		case "back":
			a.back()

		case "logout":
			a.logout(cctx)

		case "exit", "quit":
			stop()
			fmt.Fprintln(out, "Bye!")
			return nil

		default:
			if !a.exec(cctx, cmd, args) {
				fmt.Fprintln(out, "Unknown command:", cmd)
				render = false
			}
		}

		interrupted := cctx.Err() != nil && ctx.Err() == nil
		stop()
		if interrupted {
			fmt.Fprintln(out, "Interrupted.")
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if render {
			a.settle()
		}
	}
}
