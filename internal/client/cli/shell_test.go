package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/pdfnotes/internal/client/models"
	"github.com/dmitrijs2005/pdfnotes/internal/client/router"
	"github.com/dmitrijs2005/pdfnotes/internal/client/session"
	"github.com/dmitrijs2005/pdfnotes/internal/client/views"
)

type fakeSession struct{ snap session.Snapshot }

func (f *fakeSession) Snapshot() session.Snapshot { return f.snap }

func (f *fakeSession) signIn()  { f.snap = session.Snapshot{State: session.StateAuthenticated, User: &models.User{Name: "Ann"}} }
func (f *fakeSession) signOut() { f.snap = session.Snapshot{State: session.StateAnonymous} }

type stubScreen struct {
	name    string
	params  map[string]string
	ctx     context.Context
	handled []string
	onMount  func()
	onHandle func(ctx context.Context)
}

func (s *stubScreen) Mount(ctx context.Context, params map[string]string) {
	s.ctx, s.params = ctx, params
	if s.onMount != nil {
		s.onMount()
	}
}
func (s *stubScreen) Render(w io.Writer) { fmt.Fprintln(w, "screen:"+s.name) }
func (s *stubScreen) Commands() string   { return " cmd-" + s.name + " " }

func (s *stubScreen) Handle(ctx context.Context, cmd string, args []string) bool {
	if cmd != "ok" {
		return false
	}
	s.handled = append(s.handled, cmd)
	if s.onHandle != nil {
		s.onHandle(ctx)
	}
	return true
}

type stubForm struct {
	stubScreen
	submits int
}

func (f *stubForm) Submit(context.Context) { f.submits++ }

type shellFixture struct {
	sess    *fakeSession
	shell   *Shell
	out     *bytes.Buffer
	mounted []*stubScreen
	forms   map[string]*stubForm
}

func newShellFixture() *shellFixture {
	f := &shellFixture{
		sess:  &fakeSession{snap: session.Snapshot{State: session.StateAnonymous}},
		out:   &bytes.Buffer{},
		forms: map[string]*stubForm{},
	}
	f.shell = NewShell(router.New(), f.sess, f.screen, f.out, nil)
	return f
}

func (f *shellFixture) screen(name string) views.Screen {
	if name == router.Login || name == router.Upload {
		form := &stubForm{stubScreen: stubScreen{name: name}}
		f.forms[name] = form
		f.mounted = append(f.mounted, &form.stubScreen)
		return form
	}
	s := &stubScreen{name: name}
	f.mounted = append(f.mounted, s)
	return s
}

func (f *shellFixture) last() *stubScreen { return f.mounted[len(f.mounted)-1] }

func TestShell_GuardsRedirect(t *testing.T) {
	f := newShellFixture()

	f.shell.Navigate("/dashboard")
	assert.Equal(t, router.LoginPath, f.shell.Path())
	assert.Equal(t, router.Login, f.last().name)

	f.sess.signIn()
	f.shell.Navigate("/register")
	assert.Equal(t, router.DashboardPath, f.shell.Path())

	f.shell.Navigate("/nowhere")
	assert.Equal(t, router.RootPath, f.shell.Path())
}

func TestShell_PassesRouteParams(t *testing.T) {
	f := newShellFixture()

	f.shell.Navigate("pdf/abc123/?page=2")
	assert.Equal(t, "/pdf/abc123", f.shell.Path())
	assert.Equal(t, map[string]string{"id": "abc123"}, f.last().params)
}

func TestShell_PendingWhileLoading(t *testing.T) {
	f := newShellFixture()
	f.sess.snap = session.Snapshot{State: session.StateHydrating}

	f.shell.Start(context.Background(), "/dashboard")
	assert.Empty(t, f.mounted)
	assert.Equal(t, "", f.shell.Path())

	f.shell.Render()
	assert.Contains(t, f.out.String(), "Loading...")

	f.sess.signIn()
	f.shell.SessionChanged(f.sess.snap)
	f.shell.Refresh()
	assert.Equal(t, router.DashboardPath, f.shell.Path())
	require.Len(t, f.mounted, 1)
}

func TestShell_SessionChangeReappliesGuards(t *testing.T) {
	f := newShellFixture()
	f.sess.signIn()
	f.shell.Navigate("/profile")

	f.sess.signOut()
	f.shell.Refresh()
	assert.Equal(t, "/profile", f.shell.Path(), "refresh without a change notification is a no-op")

	f.shell.SessionChanged(f.sess.snap)
	f.shell.Refresh()
	assert.Equal(t, router.LoginPath, f.shell.Path())

	f.sess.signIn()
	f.shell.SessionChanged(f.sess.snap)
	f.shell.Refresh()
	assert.Equal(t, router.DashboardPath, f.shell.Path())
}

func TestShell_SamePathDoesNotRemount(t *testing.T) {
	f := newShellFixture()
	f.shell.Navigate("/public")
	gen := f.shell.Generation()

	f.shell.Navigate("/public/")
	assert.Equal(t, gen, f.shell.Generation())
	assert.Len(t, f.mounted, 1)

	f.shell.Navigate("/")
	assert.Equal(t, gen+1, f.shell.Generation())
}

func TestShell_NavigationCancelsPreviousScreen(t *testing.T) {
	f := newShellFixture()
	f.shell.Navigate("/public")

	var before, after error
	f.last().onHandle = func(ctx context.Context) {
		before = ctx.Err()
		f.shell.Navigate("/pdf/p1")
		after = ctx.Err()
	}
	f.shell.Exec(context.Background(), "ok", nil)

	assert.NoError(t, before)
	assert.ErrorIs(t, after, context.Canceled)
	assert.Equal(t, "/pdf/p1", f.shell.Path())
}

func TestShell_Back(t *testing.T) {
	f := newShellFixture()
	f.shell.Navigate("/")
	f.shell.Navigate("/public")
	f.shell.Navigate("/pdf/p1")

	f.shell.Back()
	assert.Equal(t, "/public", f.shell.Path())
	f.shell.Back()
	assert.Equal(t, "/", f.shell.Path())
	f.shell.Back()
	assert.Equal(t, "/", f.shell.Path())
}

func TestShell_ExecRoutesToActiveScreen(t *testing.T) {
	f := newShellFixture()
	assert.False(t, f.shell.Exec(context.Background(), "ok", nil))

	f.shell.Navigate("/public")
	assert.True(t, f.shell.Exec(context.Background(), "ok", nil))
	assert.False(t, f.shell.Exec(context.Background(), "nope", nil))
	assert.Equal(t, []string{"ok"}, f.last().handled)
	assert.Equal(t, "cmd-public", f.shell.Commands())
}

func TestShell_OpenSubmitsFormAtRequestedPath(t *testing.T) {
	f := newShellFixture()

	f.shell.Open(context.Background(), "/login")
	require.Contains(t, f.forms, router.Login)
	assert.Equal(t, 1, f.forms[router.Login].submits)

	// protected route redirects to login; the form is not submitted
	f.shell.Navigate("/")
	f.shell.Open(context.Background(), "/upload")
	assert.Equal(t, router.LoginPath, f.shell.Path())
	assert.NotContains(t, f.forms, router.Upload)
	assert.Equal(t, 0, f.forms[router.Login].submits)
}

func TestShell_NavigateFromMount(t *testing.T) {
	f := newShellFixture()
	f.sess.signIn()
	f.shell.Navigate("/dashboard")

	// a screen whose mount triggers a redirect, as the 401 hook does
	next := &stubScreen{name: "viewer"}
	next.onMount = func() {
		f.sess.signOut()
		f.shell.Navigate(router.LoginPath)
	}
	f.shell.screens = func(name string) views.Screen {
		if name == router.Viewer {
			return next
		}
		return f.screen(name)
	}

	f.shell.Navigate("/pdf/p9")
	assert.Equal(t, router.LoginPath, f.shell.Path())
	assert.Equal(t, router.Login, f.last().name)
	assert.Error(t, next.ctx.Err())
	assert.Equal(t, []string{router.DashboardPath, "/pdf/p9"}, f.shell.history)
}

func TestShell_Render(t *testing.T) {
	f := newShellFixture()
	f.sess.signIn()
	f.shell.Navigate("/annotations")

	f.shell.Render()
	out := f.out.String()
	assert.Contains(t, out, "Profile (Ann)")
	assert.Contains(t, out, "screen:annotations")
}
