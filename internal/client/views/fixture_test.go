package views

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/pdfnotes/internal/client/api"
	"github.com/dmitrijs2005/pdfnotes/internal/client/client"
	"github.com/dmitrijs2005/pdfnotes/internal/client/fakeapi"
	"github.com/dmitrijs2005/pdfnotes/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/pdfnotes/internal/client/repositories/tokens"
	"github.com/dmitrijs2005/pdfnotes/internal/client/session"
	"github.com/dmitrijs2005/pdfnotes/internal/client/ui"
)

// fakePrompt answers prompts from a queue. Confirm accepts "y" and "n";
// anything else yields the default.
type fakePrompt struct {
	Answers []string
	Asked   []string
}

func (p *fakePrompt) next(prompt string) (string, error) {
	p.Asked = append(p.Asked, prompt)
	if len(p.Answers) == 0 {
		return "", ui.ErrAborted
	}
	a := p.Answers[0]
	p.Answers = p.Answers[1:]
	return a, nil
}

func (p *fakePrompt) Line(prompt string) (string, error)      { return p.next(prompt) }
func (p *fakePrompt) Password(prompt string) (string, error)  { return p.next(prompt) }
func (p *fakePrompt) Multiline(prompt string) (string, error) { return p.next(prompt) }

func (p *fakePrompt) Confirm(prompt string, def bool) (bool, error) {
	a, err := p.next(prompt)
	if err != nil {
		return false, err
	}
	switch a {
	case "y":
		return true, nil
	case "n":
		return false, nil
	}
	return def, nil
}

type fakeToaster struct {
	Successes []string
	Errors    []string
}

func (f *fakeToaster) Success(msg string) { f.Successes = append(f.Successes, msg) }
func (f *fakeToaster) Error(msg string)   { f.Errors = append(f.Errors, msg) }

type fakeNav struct {
	Paths []string
}

func (n *fakeNav) Navigate(path string) { n.Paths = append(n.Paths, path) }

func (n *fakeNav) Last() string {
	if len(n.Paths) == 0 {
		return ""
	}
	return n.Paths[len(n.Paths)-1]
}

type fixture struct {
	srv    *fakeapi.Server
	store  *tokens.Store
	client *client.Client
	sess   *session.Session
	prompt *fakePrompt
	toast  *fakeToaster
	nav    *fakeNav
	d      *Deps
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	srv := fakeapi.New()
	t.Cleanup(srv.Close)

	f := &fixture{
		srv:    srv,
		store:  tokens.NewStore(metadata.NewMemoryRepository()),
		prompt: &fakePrompt{},
		toast:  &fakeToaster{},
		nav:    &fakeNav{},
	}
	f.client = client.New(srv.APIURL(), f.store)
	a := api.New(f.client, srv.URL)
	f.sess = session.New(a.Auth, f.store, f.toast, nil)
	f.client.OnUnauthorized(f.sess.Expire)
	f.d = &Deps{
		Session:     f.sess,
		PDFs:        a.PDFs,
		Annotations: a.Annotations,
		Prompt:      f.prompt,
		Toast:       f.toast,
		Nav:         f.nav,
		Files:       Files{Dir: t.TempDir()},
	}
	return f
}

// signIn creates an account and restores a session for it.
func (f *fixture) signIn(t *testing.T, name, email string) {
	t.Helper()
	tok := f.srv.AddUser(name, email, "secret")
	require.NoError(t, f.store.Save(context.Background(), tok))
	f.sess.Hydrate(context.Background())
	require.True(t, f.sess.Snapshot().Authenticated())
}

func (f *fixture) answer(a ...string) { f.prompt.Answers = append(f.prompt.Answers, a...) }

func render(s Screen) string {
	var b bytes.Buffer
	s.Render(&b)
	return b.String()
}

func pdfBytes(n int) []byte {
	b := make([]byte, n)
	copy(b, "%PDF-1.4\n")
	return b
}

func cmd(line string) (string, []string) {
	parts := strings.Fields(line)
	return parts[0], parts[1:]
}
