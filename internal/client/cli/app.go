package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/pdfnotes/internal/client/api"
	"github.com/dmitrijs2005/pdfnotes/internal/client/client"
	"github.com/dmitrijs2005/pdfnotes/internal/client/config"
	"github.com/dmitrijs2005/pdfnotes/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/pdfnotes/internal/client/repositories/tokens"
	"github.com/dmitrijs2005/pdfnotes/internal/client/router"
	"github.com/dmitrijs2005/pdfnotes/internal/client/session"
	"github.com/dmitrijs2005/pdfnotes/internal/client/storage"
	"github.com/dmitrijs2005/pdfnotes/internal/client/ui"
	"github.com/dmitrijs2005/pdfnotes/internal/client/views"
	"github.com/dmitrijs2005/pdfnotes/internal/logging"
)

type App struct {
	config  *config.Config
	log     logging.Logger
	closers []func() error

	client  *client.Client
	session *session.Session
	shell   *Shell
	in      *bufio.Reader
	out     io.Writer
}

// NewApp opens the local database (or keeps the token in memory when
// c.DBPath is empty) and wires the client, session, screens
// and shell. Commands and prompt answers are read from in; screens and
// notices are written to out.
func NewApp(ctx context.Context, c *config.Config, in io.Reader, out io.Writer) (*App, error) {
	log, closeLog, err := logging.New(c.Log)
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}

	if c.DBPath == "" {
		log.Info(ctx, "no database path, the session is kept in memory")
		app := newApp(c, log, metadata.NewMemoryRepository(), in, out)
		app.closers = append(app.closers, closeLog)
		return app, nil
	}

	db, err := storage.InitDatabase(ctx, c.DBPath)
	if err != nil {
		_ = closeLog()
		return nil, fmt.Errorf("init database: %w", err)
	}

	app := newApp(c, log, metadata.NewSQLiteRepository(db), in, out)
	app.closers = append(app.closers, db.Close, closeLog)
	return app, nil
}

func newApp(c *config.Config, log logging.Logger, repo metadata.Repository, in io.Reader, out io.Writer) *App {
	store := tokens.NewStore(repo)
	hc := client.New(c.APIURL, store, client.WithTimeout(c.Timeout), client.WithLogger(log))
	services := api.New(hc, c.FilesURL)

	toast := ui.NewToaster(out)
	sess := session.New(services.Auth, store, toast, log)

	reader := bufio.NewReader(in)
	deps := &views.Deps{
		Session:     sess,
		PDFs:        services.PDFs,
		Annotations: services.Annotations,
		Prompt:      ui.NewTerminal(reader, out, ui.InputFD(in)),
		Toast:       toast,
		Files:       views.Files{Dir: c.DownloadDir, ViewerCommand: c.ViewerCommand},
		Log:         log,
	}
	shell := NewShell(router.New(), sess, func(name string) views.Screen { return views.New(name, deps) }, out, log)
	deps.Nav = shell

	sess.Subscribe(shell.SessionChanged)
	hc.OnUnauthorized(sess.Expire)
	hc.OnUnauthorized(func() { shell.Navigate(router.LoginPath) })

	return &App{config: c, log: log, client: hc, session: sess, shell: shell, in: reader, out: out}
}

// Run restores the session, opens the start route and blocks in the REPL
// until the user exits or ctx is done.
func (a *App) Run(ctx context.Context) error {
	fmt.Fprintln(a.out, "PDF Annotator (type 'help' for commands)")
	a.log.Info(ctx, "starting", "api", a.config.APIURL)

	a.shell.Start(ctx, a.config.StartPath)
	a.session.Hydrate(ctx)
	a.settle()

	return runREPL(ctx, a, a.in, a.out)
}

// Close releases the database and the log output.
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c())
	}
	return errors.Join(errs...)
}

func (a *App) prompt() string {
	who := "guest"
	if u := a.session.User(); u != nil {
		who = u.Name
	}
	return fmt.Sprintf("pdfnotes (%s) %s> ", who, a.shell.Path())
}

func (a *App) help() string {
	var b strings.Builder
	b.WriteString("Navigation: home, public, pdf <id>, go <path>, back")
	if a.session.Snapshot().Authenticated() {
		b.WriteString(", dashboard, upload, annotations, profile, logout")
	} else {
		b.WriteString(", login, register")
	}
	b.WriteString(", whoami, exit")
	if cmds := a.shell.Commands(); cmds != "" {
		b.WriteString("\nThis screen: " + cmds)
	}
	return b.String()
}

func (a *App) whoami() string {
	snap := a.session.Snapshot()
	if !snap.Authenticated() {
		return "Not logged in"
	}
	return fmt.Sprintf("%s <%s>", snap.User.Name, snap.User.Email)
}

func (a *App) open(ctx context.Context, path string) { a.shell.Open(ctx, path) }

func (a *App) back() { a.shell.Back() }

// logout ends the session and goes home.
func (a *App) logout(ctx context.Context) {
	if !a.session.Snapshot().Authenticated() {
		fmt.Fprintln(a.out, "Not logged in")
		return
	}
	a.session.Logout(ctx)
	a.shell.Navigate(router.RootPath)
}

func (a *App) exec(ctx context.Context, cmd string, args []string) bool {
	return a.shell.Exec(ctx, cmd, args)
}

// settle re-applies the guards and renders the active screen.
func (a *App) settle() {
	a.shell.Refresh()
	a.shell.Render()
}
