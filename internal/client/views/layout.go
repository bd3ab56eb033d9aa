package views

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/pdfnotes/internal/client/client"
	"github.com/dmitrijs2005/pdfnotes/internal/client/session"
)

const brand = "PDF Annotator"

// Navbar prints the top navigation line for the given session.
func Navbar(w io.Writer, snap session.Snapshot) {
	links := []string{"Home", "Public PDFs"}
	if snap.Authenticated() {
		links = append(links, "My PDFs", "Upload", "Annotations")
	}
	var account []string
	switch {
	case snap.Authenticated():
		account = []string{"Profile (" + snap.User.Name + ")", "Logout"}
	case snap.Loading():
	default:
		account = []string{"Login", "Sign Up"}
	}
	line := brand + " | " + strings.Join(links, " · ")
	if len(account) > 0 {
		line += " | " + strings.Join(account, " · ")
	}
	fmt.Fprintln(w, line)
	fmt.Fprintln(w, strings.Repeat("─", 60))
}

// Pager is the pagination state of a listing. Page is 1-based.
type Pager struct {
	Page  int
	Total int
}

// Visible reports whether pagination controls are shown at all.
func (p Pager) Visible() bool { return p.Total > 1 }

func (p Pager) HasPrev() bool { return p.Visible() && p.Page != 1 }

func (p Pager) HasNext() bool { return p.Visible() && p.Page != p.Total }

func (p Pager) Render(w io.Writer) {
	if !p.Visible() {
		return
	}
	prev, next := "[prev]", "[next]"
	if !p.HasPrev() {
		prev = " prev "
	}
	if !p.HasNext() {
		next = " next "
	}
	fmt.Fprintf(w, "%s  %d / %d  %s\n", prev, p.Page, p.Total, next)
}

// index parses a 1-based item number from args[pos] against n items and
// returns the 0-based index.
func index(args []string, pos, n int) (int, error) {
	if len(args) <= pos {
		return 0, fmt.Errorf("missing item number")
	}
	i, err := strconv.Atoi(args[pos])
	if err != nil || i < 1 || i > n {
		return 0, fmt.Errorf("no item %s", args[pos])
	}
	return i - 1, nil
}

func date(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02")
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

// errMessage is the text shown in place for a failed call.
func errMessage(err error, fallback string) string {
	return client.Message(err, fallback)
}

// splitTags turns "a, b,,c" into [a b c].
func splitTags(s string) []string {
	var out []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
