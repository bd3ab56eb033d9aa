package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/pdfnotes/internal/client/router"
	"github.com/dmitrijs2005/pdfnotes/internal/client/session"
	"github.com/dmitrijs2005/pdfnotes/internal/client/views"
	"github.com/dmitrijs2005/pdfnotes/internal/logging"
)

// maxRedirects bounds guard redirect chains.
const maxRedirects = 4

type sessionState interface {
	Snapshot() session.Snapshot
}

// ScreenFactory builds the screen for a route name.
type ScreenFactory func(name string) views.Screen

// Shell owns the active route and screen. It applies the route guards on
// every navigation and after every session change, and cancels a screen's
// context when the screen is replaced.
//
// Shell is driven by the REPL goroutine only; it is not safe for concurrent
// use. Navigate may be re-entered from within a screen call (for example by
// the 401 hook) and must not hold state across screen calls.
type Shell struct {
	router  *router.Router
	session sessionState
	screens ScreenFactory
	out     io.Writer
	log     logging.Logger

	base context.Context
	cmd  context.Context

	path    string
	pending string
	history []string
	active  views.Screen
	ctx     context.Context
	cancel  context.CancelFunc
	gen     int
	dirty   bool
}

func NewShell(r *router.Router, s sessionState, screens ScreenFactory, out io.Writer, log logging.Logger) *Shell {
	if log == nil {
		log = logging.Nop()
	}
	return &Shell{router: r, session: s, screens: screens, out: out, log: log, base: context.Background()}
}

// Start sets the root context and requests the initial path. While the
// session is loading the path is only recorded.
func (s *Shell) Start(ctx context.Context, path string) {
	s.base = ctx
	s.Navigate(path)
}

// SessionChanged is the session subscriber; guards are re-applied on the
// next Refresh.
func (s *Shell) SessionChanged(session.Snapshot) { s.dirty = true }

// Navigate opens path, following guard redirects. Navigating to the current
// path does nothing.
func (s *Shell) Navigate(path string) {
	path = router.Clean(path)
	if s.session.Snapshot().Loading() {
		s.pending = path
		return
	}
	s.pending = ""
	s.open(path)
}

// Refresh re-applies the guards after a session change and opens any path
// requested while the session was loading.
func (s *Shell) Refresh() {
	if !s.dirty || s.session.Snapshot().Loading() {
		return
	}
	s.dirty = false
	if s.pending != "" {
		p := s.pending
		s.pending = ""
		s.open(p)
		return
	}
	if s.path != "" {
		s.open(s.path)
	}
}

// Back returns to the previous route.
func (s *Shell) Back() {
	if len(s.history) == 0 {
		return
	}
	p := s.history[len(s.history)-1]
	s.history = s.history[:len(s.history)-1]
	before := len(s.history)
	s.Navigate(p)
	if len(s.history) > before {
		s.history = s.history[:before]
	}
}

// open resolves path and activates its screen unless it is already active.
func (s *Shell) open(path string) {
	auth := s.session.Snapshot().Authenticated()
	d := s.router.Resolve(path, auth)
	for i := 0; d.Redirect != "" && i < maxRedirects; i++ {
		s.log.Debug(s.context(), "redirect", "from", path, "to", d.Redirect)
		path = d.Redirect
		d = s.router.Resolve(path, auth)
	}
	if d.Redirect != "" {
		s.log.Error(s.context(), "redirect loop", "path", path)
		return
	}
	if s.active != nil && d.Match.Path == s.path {
		return
	}
	s.activate(d.Match)
}

func (s *Shell) activate(m router.Match) {
	screen := s.screens(m.Route.Name)
	if screen == nil {
		s.log.Error(s.context(), "no screen for route", "route", m.Route.Name)
		return
	}

	if s.cancel != nil {
		s.cancel()
	}
	if s.path != "" && s.path != m.Path {
		s.history = append(s.history, s.path)
	}
	s.gen++
	s.path, s.active = m.Path, screen
	s.ctx, s.cancel = context.WithCancel(s.base)

	ctx, done := s.scoped(s.context())
	defer done()
	screen.Mount(ctx, m.Params)
}

// Exec hands a command to the active screen.
func (s *Shell) Exec(ctx context.Context, cmd string, args []string) bool {
	if s.active == nil {
		return false
	}
	s.cmd = ctx
	defer func() { s.cmd = nil }()

	hctx, done := s.scoped(ctx)
	defer done()
	return s.active.Handle(hctx, cmd, args)
}

// Open navigates to path and, when the resulting screen is a form opened at
// exactly that path, submits it.
func (s *Shell) Open(ctx context.Context, path string) {
	s.cmd = ctx
	defer func() { s.cmd = nil }()

	path = router.Clean(path)
	s.Navigate(path)
	if s.path != path {
		return
	}
	if f, ok := s.active.(views.Form); ok {
		hctx, done := s.scoped(ctx)
		defer done()
		f.Submit(hctx)
	}
}

// Render prints the navbar and the active screen.
func (s *Shell) Render() {
	snap := s.session.Snapshot()
	fmt.Fprintln(s.out)
	views.Navbar(s.out, snap)
	switch {
	case snap.Loading():
		fmt.Fprintln(s.out, "Loading...")
	case s.active != nil:
		s.active.Render(s.out)
	}
}

// Path is the active route path.
func (s *Shell) Path() string { return s.path }

// Generation changes every time a new screen is activated.
func (s *Shell) Generation() int { return s.gen }

func (s *Shell) Screen() views.Screen { return s.active }

// Commands lists the active screen's commands.
func (s *Shell) Commands() string {
	if s.active == nil {
		return ""
	}
	return strings.TrimSpace(s.active.Commands())
}

// context is the command context when a command is running, else the root.
func (s *Shell) context() context.Context {
	if s.cmd != nil {
		return s.cmd
	}
	return s.base
}

// scoped derives a context that ends with either ctx or the active
// screen's context.
func (s *Shell) scoped(ctx context.Context) (context.Context, func()) {
	c, cancel := context.WithCancel(ctx)
	if s.ctx == nil {
		return c, cancel
	}
	stop := context.AfterFunc(s.ctx, cancel)
	return c, func() {
		stop()
		cancel()
	}
}
