package views

import (
	"context"
	"fmt"
	"io"

	"github.com/dmitrijs2005/pdfnotes/internal/client/models"
	"github.com/dmitrijs2005/pdfnotes/internal/filex"
)

// Viewer shows one document with its read-only annotation list.
type Viewer struct {
	d       *Deps
	id      string
	loading bool
	errMsg  string
	pdf     *models.PDF
}

func NewViewer(d *Deps) *Viewer { return &Viewer{d: d} }

func (v *Viewer) Mount(ctx context.Context, params map[string]string) {
	v.id = params["id"]
	v.load(ctx)
}

func (v *Viewer) load(ctx context.Context) {
	v.loading = true
	defer func() { v.loading = false }()

	pdf, err := v.d.PDFs.Get(ctx, v.id)
	if stale(ctx) {
		return
	}
	if err != nil {
		v.errMsg = errMessage(err, "Failed to load PDF")
		return
	}
	if !pdf.HasAnnotations {
		list, err := v.d.Annotations.ListByPDF(ctx, v.id, models.AnnotationFilter{})
		if stale(ctx) {
			return
		}
		if err != nil {
			v.d.Log.Debug(ctx, "annotation fallback failed", "pdf", v.id, "error", err)
		} else {
			pdf.Annotations = list.Annotations
		}
	}
	v.errMsg, v.pdf = "", pdf
}

func (v *Viewer) PDF() *models.PDF { return v.pdf }

func (v *Viewer) Err() string { return v.errMsg }

func (v *Viewer) Render(w io.Writer) {
	switch {
	case v.loading:
		fmt.Fprintln(w, "Loading PDF...")
		return
	case v.errMsg != "":
		fmt.Fprintf(w, "! %s\n", v.errMsg)
		return
	case v.pdf == nil:
		return
	}
	p := v.pdf
	fmt.Fprintln(w, p.Title)
	if p.Description != "" {
		fmt.Fprintln(w, p.Description)
	}
	fmt.Fprintf(w, "Uploaded by %s • %s\n", p.Owner.DisplayName(), date(p.CreatedAt))
	fmt.Fprintf(w, "%d pages • %d views • %s\n", p.PageCount, p.AccessCount, visibility(p.IsPublic))
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Annotations")
	if len(p.Annotations) == 0 {
		fmt.Fprintln(w, "No annotations yet")
	}
	for _, a := range p.Annotations {
		fmt.Fprintf(w, "  [p.%d %s] %s\n", a.Page, a.Type, a.Content)
		fmt.Fprintf(w, "    By %s\n", a.Author.DisplayName())
		for _, r := range a.Replies {
			fmt.Fprintf(w, "    ↳ %s: %s\n", r.Author.DisplayName(), r.Text)
		}
	}
}

func (v *Viewer) Handle(ctx context.Context, cmd string, args []string) bool {
	switch cmd {
	case "open":
		v.open(ctx)
	case "save":
		v.save(ctx)
	case "reload":
		v.load(ctx)
	default:
		return false
	}
	return true
}

func (v *Viewer) Commands() string { return "open, save, reload" }

// open downloads the stored file from the files address and hands it to the
// external viewer.
func (v *Viewer) open(ctx context.Context) {
	if v.pdf == nil {
		return
	}
	data, err := v.d.PDFs.Fetch(ctx, *v.pdf)
	if stale(ctx) {
		return
	}
	if err != nil {
		v.d.Toast.Error(errMessage(err, "Failed to load PDF"))
		return
	}
	path, err := v.d.Files.Save(fileName(*v.pdf), data)
	if err != nil {
		v.d.Toast.Error(err.Error())
		return
	}
	opened, err := v.d.Files.Open(path)
	switch {
	case err != nil:
		v.d.Toast.Error(err.Error())
	case opened:
		v.d.Toast.Success("Opened " + path)
	default:
		v.d.Toast.Success("Saved to " + path + " (" + v.d.PDFs.FileURL(*v.pdf) + ")")
	}
}

// save downloads the document through the API.
func (v *Viewer) save(ctx context.Context) {
	if v.pdf == nil {
		return
	}
	data, err := v.d.PDFs.File(ctx, v.pdf.ID)
	if stale(ctx) {
		return
	}
	if err != nil {
		v.d.Toast.Error(errMessage(err, "Failed to download PDF"))
		return
	}
	path, err := v.d.Files.Save(fileName(*v.pdf), data)
	if err != nil {
		v.d.Toast.Error(err.Error())
		return
	}
	v.d.Toast.Success("Saved to " + path)
}

func fileName(p models.PDF) string {
	name := filex.SafeName(p.Title)
	if name == "" {
		name = p.ID
	}
	return name + ".pdf"
}

func visibility(public bool) string {
	if public {
		return "public"
	}
	return "private"
}
