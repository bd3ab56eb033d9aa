package views

import (
	"context"
	"io"
	"time"

	"github.com/dmitrijs2005/pdfnotes/internal/client/models"
	"github.com/dmitrijs2005/pdfnotes/internal/client/router"
	"github.com/dmitrijs2005/pdfnotes/internal/client/session"
	"github.com/dmitrijs2005/pdfnotes/internal/client/ui"
	"github.com/dmitrijs2005/pdfnotes/internal/logging"
)

// Screen is one route-level view.
type Screen interface {
	// Mount runs once when the screen becomes active.
	Mount(ctx context.Context, params map[string]string)
	Render(w io.Writer)
	// Handle runs a screen command and reports whether it was recognised.
	Handle(ctx context.Context, cmd string, args []string) bool
	// Commands lists the screen's own commands for help output.
	Commands() string
}

// Form is a screen whose main action collects input interactively. The
// shell submits it right away when it is opened by its command.
type Form interface {
	Screen
	Submit(ctx context.Context)
}

// Navigator switches the active route.
type Navigator interface {
	Navigate(path string)
}

// Session is what the screens need from the session container.
type Session interface {
	Snapshot() session.Snapshot
	Login(ctx context.Context, email, password string) error
	Register(ctx context.Context, name, email, password string) error
	UpdateProfile(ctx context.Context, req models.ProfileUpdate) error
	UpdatePassword(ctx context.Context, current, next string) error
	Expiry(ctx context.Context) (time.Time, bool)
}

type PDFService interface {
	Upload(ctx context.Context, up models.Upload) (*models.PDF, error)
	List(ctx context.Context, params models.ListParams) (*models.PDFList, error)
	ListPublic(ctx context.Context, params models.ListParams) (*models.PDFList, error)
	Get(ctx context.Context, id string) (*models.PDF, error)
	File(ctx context.Context, id string) ([]byte, error)
	Update(ctx context.Context, id string, req models.PDFUpdate) (*models.PDF, error)
	Delete(ctx context.Context, id string) error
	Fetch(ctx context.Context, pdf models.PDF) ([]byte, error)
	FileURL(pdf models.PDF) string
}

type AnnotationService interface {
	Create(ctx context.Context, req models.AnnotationCreate) (*models.Annotation, error)
	ListByPDF(ctx context.Context, pdfID string, f models.AnnotationFilter) (*models.AnnotationList, error)
	ListMine(ctx context.Context, f models.AnnotationFilter) (*models.AnnotationList, error)
	Update(ctx context.Context, id string, req models.AnnotationUpdate) (*models.Annotation, error)
	Delete(ctx context.Context, id string) error
	AddReply(ctx context.Context, id string, req models.ReplyCreate) (*models.Annotation, error)
	DeleteReply(ctx context.Context, id, replyID string) error
}

// Deps are shared by every screen.
type Deps struct {
	Session     Session
	PDFs        PDFService
	Annotations AnnotationService
	Prompt      ui.Prompter
	Toast       session.Toaster
	Nav         Navigator
	Files       Files
	Log         logging.Logger
}

// New builds the screen for a route name, or nil for an unknown name.
func New(name string, d *Deps) Screen {
	if d.Log == nil {
		d.Log = logging.Nop()
	}
	switch name {
	case router.Home:
		return NewHome(d)
	case router.PublicPDFs:
		return NewPublic(d)
	case router.Viewer:
		return NewViewer(d)
	case router.Login:
		return NewLogin(d)
	case router.Register:
		return NewRegister(d)
	case router.Dashboard:
		return NewDashboard(d)
	case router.Upload:
		return NewUpload(d)
	case router.Profile:
		return NewProfile(d)
	case router.Annotations:
		return NewAnnotations(d)
	}
	return nil
}

// stale reports whether the call's screen was replaced or the command was
// interrupted; results must then be dropped.
func stale(ctx context.Context) bool { return ctx.Err() != nil }
