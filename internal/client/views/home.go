package views

import (
	"context"
	"fmt"
	"io"
)

// CTA is a call to action: a label and the path it leads to.
type CTA struct {
	Label string
	Path  string
}

type Home struct {
	d *Deps
}

func NewHome(d *Deps) *Home { return &Home{d: d} }

func (h *Home) Mount(context.Context, map[string]string) {}

// CTAs differ for guests and signed-in users.
func (h *Home) CTAs() []CTA {
	if h.d.Session.Snapshot().Authenticated() {
		return []CTA{{"Upload PDF", "/upload"}, {"My Documents", "/dashboard"}}
	}
	return []CTA{{"Get Started Free", "/register"}, {"Browse Public PDFs", "/public"}}
}

func (h *Home) Render(w io.Writer) {
	fmt.Fprintln(w, "Annotate PDFs with Precision")
	fmt.Fprintln(w, "Upload, view, and annotate PDF documents. Collaborate with others and keep your annotations organized.")
	fmt.Fprintln(w)
	for i, c := range h.CTAs() {
		fmt.Fprintf(w, "  %d) %s  (%s)\n", i+1, c.Label, c.Path)
	}
	if !h.d.Session.Snapshot().Authenticated() {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Ready to get started? Create a free account with 'register'.")
	}
}

// Handle follows a numbered call to action.
func (h *Home) Handle(_ context.Context, cmd string, _ []string) bool {
	ctas := h.CTAs()
	i, err := index([]string{cmd}, 0, len(ctas))
	if err != nil {
		return false
	}
	h.d.Nav.Navigate(ctas[i].Path)
	return true
}

func (h *Home) Commands() string { return "1, 2 (follow a call to action)" }
