package views

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/pdfnotes/internal/client/models"
	"github.com/dmitrijs2005/pdfnotes/internal/client/router"
)

// PublicLimit is the page size of the public listing.
const PublicLimit = 9

type Public struct {
	d       *Deps
	search  string
	pager   Pager
	loading bool
	errMsg  string
	pdfs    []models.PDF
}

func NewPublic(d *Deps) *Public { return &Public{d: d, pager: Pager{Page: 1, Total: 1}} }

func (p *Public) Mount(ctx context.Context, _ map[string]string) { p.fetch(ctx, 1, p.search) }

// fetch loads page for search. The pager and the search text change only
// together with the listing they describe.
func (p *Public) fetch(ctx context.Context, page int, search string) {
	p.loading = true
	defer func() { p.loading = false }()

	list, err := p.d.PDFs.ListPublic(ctx, models.ListParams{Page: page, Limit: PublicLimit, Search: search})
	if stale(ctx) {
		return
	}
	if err != nil {
		p.d.Log.Debug(ctx, "public listing failed", "error", err)
		p.errMsg = errMessage(err, "Failed to load PDFs")
		return
	}
	p.errMsg = ""
	p.search = search
	p.pdfs = list.PDFs
	p.pager = Pager{Page: page, Total: list.Pages}
}

func (p *Public) Pager() Pager { return p.pager }

func (p *Public) PDFs() []models.PDF { return p.pdfs }

func (p *Public) Render(w io.Writer) {
	fmt.Fprintln(w, "Public PDFs")
	fmt.Fprintln(w, "Explore documents shared by the community")
	if p.search != "" {
		fmt.Fprintf(w, "Search: %q\n", p.search)
	}
	fmt.Fprintln(w)
	switch {
	case p.loading:
		fmt.Fprintln(w, "Loading...")
	case p.errMsg != "":
		fmt.Fprintf(w, "! %s\n", p.errMsg)
	case len(p.pdfs) == 0:
		fmt.Fprintln(w, "No public documents yet")
		fmt.Fprintln(w, "Public documents will appear here when users share them with the community")
	default:
		for i, pdf := range p.pdfs {
			fmt.Fprintf(w, "%2d. %s\n", i+1, pdf.Title)
			fmt.Fprintf(w, "    %s\n", orDefault(pdf.Description, "No description available"))
			fmt.Fprintf(w, "    by %s • %d views\n", pdf.Owner.DisplayName(), pdf.AccessCount)
		}
	}
	p.pager.Render(w)
}

func (p *Public) Handle(ctx context.Context, cmd string, args []string) bool {
	switch cmd {
	case "search":
		p.Search(ctx, strings.Join(args, " "))
	case "next":
		if !p.pager.HasNext() {
			p.d.Toast.Error("Already on the last page")
			return true
		}
		p.fetch(ctx, p.pager.Page+1, p.search)
	case "prev":
		if !p.pager.HasPrev() {
			p.d.Toast.Error("Already on the first page")
			return true
		}
		p.fetch(ctx, p.pager.Page-1, p.search)
	case "view":
		i, err := index(args, 0, len(p.pdfs))
		if err != nil {
			p.d.Toast.Error(err.Error())
			return true
		}
		p.d.Nav.Navigate(router.ViewerPath(p.pdfs[i].ID))
	case "reload":
		p.fetch(ctx, p.pager.Page, p.search)
	default:
		return false
	}
	return true
}

// Search filters by q and starts again from the first page. An empty q
// clears the filter.
func (p *Public) Search(ctx context.Context, q string) {
	p.fetch(ctx, 1, strings.TrimSpace(q))
}

func (p *Public) Commands() string { return "search [text], next, prev, view <n>, reload" }
