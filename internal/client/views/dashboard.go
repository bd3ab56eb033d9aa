package views

import (
	"context"
	"fmt"
	"io"

	"github.com/dmitrijs2005/pdfnotes/internal/client/models"
	"github.com/dmitrijs2005/pdfnotes/internal/client/router"
)

// DashboardLimit is how many recent documents the dashboard shows.
const DashboardLimit = 5

type Dashboard struct {
	d       *Deps
	loading bool
	errMsg  string
	pdfs    []models.PDF
}

func NewDashboard(d *Deps) *Dashboard { return &Dashboard{d: d} }

func (s *Dashboard) Mount(ctx context.Context, _ map[string]string) { s.load(ctx) }

func (s *Dashboard) load(ctx context.Context) {
	s.loading = true
	defer func() { s.loading = false }()

	list, err := s.d.PDFs.List(ctx, models.ListParams{Page: 1, Limit: DashboardLimit})
	if stale(ctx) {
		return
	}
	if err != nil {
		s.d.Log.Debug(ctx, "dashboard load failed", "error", err)
		s.errMsg = errMessage(err, "Failed to load PDFs")
		return
	}
	s.errMsg = ""
	s.pdfs = list.PDFs
}

func (s *Dashboard) Render(w io.Writer) {
	name := ""
	if u := s.d.Session.Snapshot().User; u != nil {
		name = u.Name
	}
	fmt.Fprintf(w, "Welcome back, %s!\n", name)
	fmt.Fprintln(w, "Manage your PDF documents and annotations")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Your Documents")
	switch {
	case s.loading:
		fmt.Fprintln(w, "Loading documents...")
	case s.errMsg != "":
		fmt.Fprintf(w, "! %s\n", s.errMsg)
	case len(s.pdfs) == 0:
		fmt.Fprintln(w, "No documents yet")
		fmt.Fprintln(w, "Upload your first PDF to get started with annotations")
		fmt.Fprintln(w, "  → Upload PDF (upload)")
	default:
		for i, p := range s.pdfs {
			fmt.Fprintf(w, "%2d. %s\n", i+1, p.Title)
			if p.Description != "" {
				fmt.Fprintf(w, "    %s\n", p.Description)
			}
			fmt.Fprintf(w, "    %d pages • Uploaded %s\n", p.PageCount, date(p.CreatedAt))
		}
	}
}

// Empty reports whether the listing loaded without documents.
func (s *Dashboard) Empty() bool { return !s.loading && s.errMsg == "" && len(s.pdfs) == 0 }

func (s *Dashboard) Err() string { return s.errMsg }

func (s *Dashboard) PDFs() []models.PDF { return s.pdfs }

func (s *Dashboard) Handle(ctx context.Context, cmd string, args []string) bool {
	switch cmd {
	case "view":
		if i, ok := s.pick(args); ok {
			s.d.Nav.Navigate(router.ViewerPath(s.pdfs[i].ID))
		}
	case "delete":
		if i, ok := s.pick(args); ok {
			s.delete(ctx, s.pdfs[i])
		}
	case "edit":
		if i, ok := s.pick(args); ok {
			s.edit(ctx, s.pdfs[i])
		}
	case "reload":
		s.load(ctx)
	default:
		return false
	}
	return true
}

func (s *Dashboard) Commands() string { return "view <n>, edit <n>, delete <n>, reload" }

func (s *Dashboard) pick(args []string) (int, bool) {
	i, err := index(args, 0, len(s.pdfs))
	if err != nil {
		s.d.Toast.Error(err.Error())
		return 0, false
	}
	return i, true
}

func (s *Dashboard) delete(ctx context.Context, pdf models.PDF) {
	ok, err := s.d.Prompt.Confirm(fmt.Sprintf("Delete %q?", pdf.Title), false)
	if err != nil || !ok {
		return
	}
	err = s.d.PDFs.Delete(ctx, pdf.ID)
	if stale(ctx) {
		return
	}
	if err != nil {
		s.d.Toast.Error(errMessage(err, "Failed to delete PDF"))
		return
	}
	s.d.Toast.Success("PDF deleted successfully")
	s.load(ctx)
}

func (s *Dashboard) edit(ctx context.Context, pdf models.PDF) {
	var title, desc, tags string
	var public bool
	err := collect(
		func() (err error) { title, err = s.d.Prompt.Line(fmt.Sprintf("Title [%s]", pdf.Title)); return },
		func() (err error) { desc, err = s.d.Prompt.Line(fmt.Sprintf("Description [%s]", pdf.Description)); return },
		func() (err error) { tags, err = s.d.Prompt.Line("Tags, comma separated (empty keeps current)"); return },
		func() (err error) { public, err = s.d.Prompt.Confirm("Make this document public?", pdf.IsPublic); return },
	)
	if err != nil {
		return
	}

	req := models.PDFUpdate{Tags: splitTags(tags)}
	if title != "" && title != pdf.Title {
		req.Title = &title
	}
	if desc != "" && desc != pdf.Description {
		req.Description = &desc
	}
	if public != pdf.IsPublic {
		req.IsPublic = &public
	}
	if req.Title == nil && req.Description == nil && req.IsPublic == nil && req.Tags == nil {
		return
	}

	_, err = s.d.PDFs.Update(ctx, pdf.ID, req)
	if stale(ctx) {
		return
	}
	if err != nil {
		s.d.Toast.Error(errMessage(err, "Failed to update PDF"))
		return
	}
	s.d.Toast.Success("PDF updated successfully")
	s.load(ctx)
}
