package api

import (
	"context"
	"strconv"

	"github.com/dmitrijs2005/pdfnotes/internal/client/client"
	"github.com/dmitrijs2005/pdfnotes/internal/client/models"
	"github.com/dmitrijs2005/pdfnotes/internal/common"
	"github.com/dmitrijs2005/pdfnotes/internal/netx"
)

type PDFAPI struct {
	t         Transport
	filesBase string
}

func NewPDFAPI(t Transport, filesBase string) *PDFAPI {
	return &PDFAPI{t: t, filesBase: filesBase}
}

// Upload sends the document as multipart/form-data with the file under
// "pdf" and title, description and isPublic as plain fields.
func (p *PDFAPI) Upload(ctx context.Context, up models.Upload) (*models.PDF, error) {
	body, contentType, err := netx.MultipartBody(
		netx.FilePart{Field: "pdf", FileName: up.FileName, ContentType: common.PDFMediaType, Content: up.Content},
		netx.Field{Name: "title", Value: up.Title},
		netx.Field{Name: "description", Value: up.Description},
		netx.Field{Name: "isPublic", Value: strconv.FormatBool(up.IsPublic)},
	)
	if err != nil {
		return nil, err
	}

	var out models.PDFEnvelope
	if err := p.t.Post(ctx, "/pdfs/upload", body, &out, client.WithHeader("Content-Type", contentType)); err != nil {
		return nil, err
	}
	return &out.PDF, nil
}

// List returns the caller's own documents.
func (p *PDFAPI) List(ctx context.Context, params models.ListParams) (*models.PDFList, error) {
	var out models.PDFList
	if err := p.t.Get(ctx, "/pdfs", &out, client.WithQuery(params.Values())); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListPublic returns documents shared with everyone.
func (p *PDFAPI) ListPublic(ctx context.Context, params models.ListParams) (*models.PDFList, error) {
	var out models.PDFList
	if err := p.t.Get(ctx, "/pdfs/public", &out, client.WithQuery(params.Values())); err != nil {
		return nil, err
	}
	return &out, nil
}

func (p *PDFAPI) Get(ctx context.Context, id string) (*models.PDF, error) {
	var out models.PDFEnvelope
	if err := p.t.Get(ctx, "/pdfs/"+seg(id), &out); err != nil {
		return nil, err
	}
	return &out.PDF, nil
}

// File downloads the document bytes through the API.
func (p *PDFAPI) File(ctx context.Context, id string) ([]byte, error) {
	return p.t.Download(ctx, "/pdfs/"+seg(id)+"/file", client.WithHeader("Accept", common.PDFMediaType))
}

func (p *PDFAPI) Update(ctx context.Context, id string, req models.PDFUpdate) (*models.PDF, error) {
	var out models.PDFEnvelope
	if err := p.t.Put(ctx, "/pdfs/"+seg(id), req, &out); err != nil {
		return nil, err
	}
	return &out.PDF, nil
}

func (p *PDFAPI) Delete(ctx context.Context, id string) error {
	return p.t.Delete(ctx, "/pdfs/"+seg(id), nil)
}

// FileURL is the address the stored file is served from.
func (p *PDFAPI) FileURL(pdf models.PDF) string {
	return pdf.FileURL(p.filesBase)
}

// Fetch downloads the stored file from FileURL. The token is sent only when
// the files host is the API host.
func (p *PDFAPI) Fetch(ctx context.Context, pdf models.PDF) ([]byte, error) {
	return p.t.DownloadURL(ctx, p.FileURL(pdf), client.WithHeader("Accept", common.PDFMediaType))
}
