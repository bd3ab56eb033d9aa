// Package api maps pdfnotes domain operations onto REST calls. Each method
// builds a path, picks the verb and forwards to the transport; there is no
// retrying or caching here.
package api

import (
	"context"
	"net/url"

	"github.com/dmitrijs2005/pdfnotes/internal/client/client"
)

// Transport is the subset of *client.Client the API modules use.
type Transport interface {
	Get(ctx context.Context, path string, out any, opts ...client.RequestOption) error
	Post(ctx context.Context, path string, body, out any, opts ...client.RequestOption) error
	Put(ctx context.Context, path string, body, out any, opts ...client.RequestOption) error
	Delete(ctx context.Context, path string, out any, opts ...client.RequestOption) error
	Download(ctx context.Context, path string, opts ...client.RequestOption) ([]byte, error)
	DownloadURL(ctx context.Context, rawURL string, opts ...client.RequestOption) ([]byte, error)
}

// API groups the three domain modules.
type API struct {
	Auth        *AuthAPI
	PDFs        *PDFAPI
	Annotations *AnnotationAPI
}

// New builds all modules on t. filesBase is the address stored document
// paths are resolved against.
func New(t Transport, filesBase string) *API {
	return &API{
		Auth:        NewAuthAPI(t),
		PDFs:        NewPDFAPI(t, filesBase),
		Annotations: NewAnnotationAPI(t),
	}
}

func seg(id string) string { return url.PathEscape(id) }
