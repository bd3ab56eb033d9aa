package views

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/pdfnotes/internal/client/forms"
	"github.com/dmitrijs2005/pdfnotes/internal/client/models"
	"github.com/dmitrijs2005/pdfnotes/internal/client/router"
	"github.com/dmitrijs2005/pdfnotes/internal/common"
)

// Upload sends a local PDF. The file is checked before anything goes over
// the network, and a failed send keeps the form for retry.
type Upload struct {
	d           *Deps
	file        *forms.PDFFile
	title       string
	description string
	public      bool
	uploading   bool
	errMsg      string
}

func NewUpload(d *Deps) *Upload { return &Upload{d: d} }

func (u *Upload) Mount(context.Context, map[string]string) {}

// Submit asks for the file and its details, then sends it.
func (u *Upload) Submit(ctx context.Context) {
	path, err := u.d.Prompt.Line("Path to PDF file (max 10MB)")
	if err != nil {
		return
	}
	if !u.Select(path) {
		return
	}

	var title, desc string
	var public bool
	err = collect(
		func() (err error) { title, err = u.d.Prompt.Line(fmt.Sprintf("Title [%s]", u.title)); return },
		func() (err error) { desc, err = u.d.Prompt.Line("Description (optional)"); return },
		func() (err error) { public, err = u.d.Prompt.Confirm("Make this document public?", false); return },
	)
	if err != nil {
		return
	}
	if title != "" {
		u.title = title
	}
	u.description, u.public = desc, public
	u.send(ctx)
}

// Select validates path and, when it is an acceptable PDF, makes it the
// chosen file with a title derived from its name.
func (u *Upload) Select(path string) bool {
	f, err := forms.CheckPDF(path)
	if err != nil {
		u.errMsg = err.Error()
		return false
	}
	u.file = &f
	u.title = forms.DefaultTitle(f.Name)
	u.errMsg = ""
	return true
}

// send checks the chosen file again, since it may have changed since it was
// selected, and uploads it.
func (u *Upload) send(ctx context.Context) {
	if u.file == nil {
		u.errMsg = forms.ErrNoFile.Error()
		return
	}
	checked, err := forms.CheckPDF(u.file.Path)
	if err != nil {
		u.errMsg = err.Error()
		return
	}
	u.file = &checked

	f, err := os.Open(checked.Path)
	if err != nil {
		u.errMsg = err.Error()
		return
	}
	defer f.Close()

	u.uploading, u.errMsg = true, ""
	defer func() { u.uploading = false }()

	_, err = u.d.PDFs.Upload(ctx, models.Upload{
		FileName:    checked.Name,
		Content:     io.LimitReader(f, common.MaxUploadSize),
		Title:       u.title,
		Description: u.description,
		IsPublic:    u.public,
	})
	if stale(ctx) {
		return
	}
	if err != nil {
		u.d.Log.Debug(ctx, "upload failed", "file", checked.Path, "error", err)
		u.errMsg = errMessage(err, "Upload failed")
		return
	}
	u.d.Nav.Navigate(router.DashboardPath)
}

func (u *Upload) Err() string { return u.errMsg }

func (u *Upload) File() *forms.PDFFile { return u.file }

func (u *Upload) Render(w io.Writer) {
	fmt.Fprintln(w, "Upload PDF")
	fmt.Fprintln(w, "Upload a PDF document to start annotating")
	fmt.Fprintln(w)
	if u.errMsg != "" {
		fmt.Fprintf(w, "! %s\n", u.errMsg)
	}
	if u.file == nil {
		fmt.Fprintln(w, "No file selected. Maximum file size: 10MB")
		fmt.Fprintln(w, "Type 'submit' to choose a file.")
		return
	}
	fmt.Fprintf(w, "File:        %s (%.2f MB)\n", u.file.Name, float64(u.file.Size)/1024/1024)
	fmt.Fprintf(w, "Title:       %s\n", u.title)
	fmt.Fprintf(w, "Description: %s\n", orDefault(u.description, "-"))
	fmt.Fprintf(w, "Public:      %v\n", u.public)
	switch {
	case u.uploading:
		fmt.Fprintln(w, "Uploading...")
	case u.errMsg != "":
		fmt.Fprintln(w, "Type 'retry' to send again, 'remove' to clear the form or 'cancel'.")
	}
}

func (u *Upload) Handle(ctx context.Context, cmd string, _ []string) bool {
	switch cmd {
	case "submit":
		u.Submit(ctx)
	case "retry":
		u.send(ctx)
	case "remove":
		*u = Upload{d: u.d}
	case "cancel":
		u.d.Nav.Navigate(router.DashboardPath)
	default:
		return false
	}
	return true
}

func (u *Upload) Commands() string { return "submit, retry, remove, cancel" }
