package views

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/pdfnotes/internal/client/forms"
	"github.com/dmitrijs2005/pdfnotes/internal/client/models"
	"github.com/dmitrijs2005/pdfnotes/internal/client/router"
)

// Annotations lists the signed-in user's own annotations across documents.
type Annotations struct {
	d       *Deps
	loading bool
	errMsg  string
	items   []models.Annotation
}

func NewAnnotations(d *Deps) *Annotations { return &Annotations{d: d} }

func (a *Annotations) Mount(ctx context.Context, _ map[string]string) { a.load(ctx) }

func (a *Annotations) load(ctx context.Context) {
	a.loading = true
	defer func() { a.loading = false }()

	list, err := a.d.Annotations.ListMine(ctx, models.AnnotationFilter{})
	if stale(ctx) {
		return
	}
	if err != nil {
		a.errMsg = errMessage(err, "Failed to load annotations")
		return
	}
	a.errMsg = ""
	a.items = list.Annotations
}

func (a *Annotations) Items() []models.Annotation { return a.items }

func (a *Annotations) Render(w io.Writer) {
	fmt.Fprintln(w, "My Annotations")
	switch {
	case a.loading:
		fmt.Fprintln(w, "Loading annotations...")
		return
	case a.errMsg != "":
		fmt.Fprintf(w, "! %s\n", a.errMsg)
		return
	case len(a.items) == 0:
		fmt.Fprintln(w, "No annotations yet")
		fmt.Fprintln(w, "Type 'add' to annotate a document.")
		return
	}
	for i, an := range a.items {
		state := "open"
		if an.IsResolved {
			state = "resolved"
		}
		if an.IsPrivate {
			state += ", private"
		}
		fmt.Fprintf(w, "%2d. [%s p.%d %s] %s\n", i+1, an.PDFID, an.Page, an.Type, an.Content)
		fmt.Fprintf(w, "    %s • %s\n", state, date(an.CreatedAt))
		for j, r := range an.Replies {
			fmt.Fprintf(w, "    %d.%d ↳ %s: %s\n", i+1, j+1, r.Author.DisplayName(), r.Text)
		}
	}
}

func (a *Annotations) Handle(ctx context.Context, cmd string, args []string) bool {
	switch cmd {
	case "add":
		if createAnnotation(ctx, a.d) {
			a.load(ctx)
		}
	case "resolve":
		if i, ok := a.pick(args); ok {
			a.resolve(ctx, a.items[i])
		}
	case "delete":
		if i, ok := a.pick(args); ok {
			a.delete(ctx, a.items[i])
		}
	case "reply":
		if i, ok := a.pick(args); ok {
			a.reply(ctx, a.items[i])
		}
	case "unreply":
		if i, ok := a.pick(args); ok {
			j, err := index(args, 1, len(a.items[i].Replies))
			if err != nil {
				a.d.Toast.Error(err.Error())
				return true
			}
			a.unreply(ctx, a.items[i], a.items[i].Replies[j])
		}
	case "view":
		if i, ok := a.pick(args); ok {
			a.d.Nav.Navigate(router.ViewerPath(string(a.items[i].PDFID)))
		}
	case "reload":
		a.load(ctx)
	default:
		return false
	}
	return true
}

func (a *Annotations) Commands() string {
	return "add, resolve <n>, delete <n>, reply <n>, unreply <n> <m>, view <n>, reload"
}

func (a *Annotations) pick(args []string) (int, bool) {
	i, err := index(args, 0, len(a.items))
	if err != nil {
		a.d.Toast.Error(err.Error())
		return 0, false
	}
	return i, true
}

// done reports the outcome of a mutation and reloads on success.
func (a *Annotations) done(ctx context.Context, err error, ok, fail string) {
	if stale(ctx) {
		return
	}
	if err != nil {
		a.d.Toast.Error(errMessage(err, fail))
		return
	}
	a.d.Toast.Success(ok)
	a.load(ctx)
}

func (a *Annotations) resolve(ctx context.Context, an models.Annotation) {
	resolved := !an.IsResolved
	_, err := a.d.Annotations.Update(ctx, an.ID, models.AnnotationUpdate{IsResolved: &resolved})
	a.done(ctx, err, "Annotation updated", "Failed to update annotation")
}

func (a *Annotations) delete(ctx context.Context, an models.Annotation) {
	ok, err := a.d.Prompt.Confirm("Delete this annotation?", false)
	if err != nil || !ok {
		return
	}
	err = a.d.Annotations.Delete(ctx, an.ID)
	a.done(ctx, err, "Annotation deleted", "Failed to delete annotation")
}

func (a *Annotations) reply(ctx context.Context, an models.Annotation) {
	text, err := a.d.Prompt.Line("Reply")
	if err != nil {
		return
	}
	req := models.ReplyCreate{Text: text}
	if err := forms.Validate(req); err != nil {
		a.d.Toast.Error(err.Error())
		return
	}
	_, err = a.d.Annotations.AddReply(ctx, an.ID, req)
	a.done(ctx, err, "Reply added", "Failed to add reply")
}

func (a *Annotations) unreply(ctx context.Context, an models.Annotation, r models.Reply) {
	err := a.d.Annotations.DeleteReply(ctx, an.ID, r.ID)
	a.done(ctx, err, "Reply deleted", "Failed to delete reply")
}

// createAnnotation asks for a new annotation, validates it and sends it. It
// reports whether one was created.
func createAnnotation(ctx context.Context, d *Deps) bool {
	req := models.AnnotationCreate{Type: models.AnnotationNote}
	var page, typ, text string
	var private bool
	err := collect(
		func() (err error) { req.PDFID, err = d.Prompt.Line("Document id"); return },
		func() (err error) { page, err = d.Prompt.Line("Page [1]"); return },
		func() (err error) { typ, err = d.Prompt.Line(fmt.Sprintf("Type %v [note]", models.AnnotationTypes)); return },
		func() (err error) { text, err = d.Prompt.Multiline("Content"); return },
		func() (err error) { private, err = d.Prompt.Confirm("Private?", false); return },
	)
	if err != nil {
		return false
	}

	req.Page = 1
	if page != "" {
		n, err := strconv.Atoi(page)
		if err != nil {
			n = 0
		}
		req.Page = n
	}
	if typ != "" {
		req.Type = models.AnnotationType(typ)
	}
	req.Content = models.TextContent(text)
	if private {
		req.IsPrivate = &private
	}
	if err := forms.Validate(req); err != nil {
		d.Toast.Error(err.Error())
		return false
	}
	if strings.TrimSpace(text) == "" {
		d.Toast.Error("content: This field is required")
		return false
	}

	_, err = d.Annotations.Create(ctx, req)
	if stale(ctx) {
		return false
	}
	if err != nil {
		d.Toast.Error(errMessage(err, "Failed to create annotation"))
		return false
	}
	d.Toast.Success("Annotation added")
	return true
}
