package api

import (
	"context"

	"github.com/dmitrijs2005/pdfnotes/internal/client/client"
	"github.com/dmitrijs2005/pdfnotes/internal/client/models"
)

type AnnotationAPI struct {
	t Transport
}

func NewAnnotationAPI(t Transport) *AnnotationAPI { return &AnnotationAPI{t: t} }

func (a *AnnotationAPI) Create(ctx context.Context, req models.AnnotationCreate) (*models.Annotation, error) {
	var out models.AnnotationEnvelope
	if err := a.t.Post(ctx, "/annotations", req, &out); err != nil {
		return nil, err
	}
	return &out.Annotation, nil
}

// ListByPDF returns the annotation thread of one document.
func (a *AnnotationAPI) ListByPDF(ctx context.Context, pdfID string, f models.AnnotationFilter) (*models.AnnotationList, error) {
	var out models.AnnotationList
	if err := a.t.Get(ctx, "/annotations/pdf/"+seg(pdfID), &out, client.WithQuery(f.Values())); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListMine returns annotations authored by the current user.
func (a *AnnotationAPI) ListMine(ctx context.Context, f models.AnnotationFilter) (*models.AnnotationList, error) {
	var out models.AnnotationList
	if err := a.t.Get(ctx, "/annotations/my", &out, client.WithQuery(f.Values())); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *AnnotationAPI) Update(ctx context.Context, id string, req models.AnnotationUpdate) (*models.Annotation, error) {
	var out models.AnnotationEnvelope
	if err := a.t.Put(ctx, "/annotations/"+seg(id), req, &out); err != nil {
		return nil, err
	}
	return &out.Annotation, nil
}

func (a *AnnotationAPI) Delete(ctx context.Context, id string) error {
	return a.t.Delete(ctx, "/annotations/"+seg(id), nil)
}

func (a *AnnotationAPI) AddReply(ctx context.Context, id string, req models.ReplyCreate) (*models.Annotation, error) {
	var out models.AnnotationEnvelope
	if err := a.t.Post(ctx, "/annotations/"+seg(id)+"/replies", req, &out); err != nil {
		return nil, err
	}
	return &out.Annotation, nil
}

func (a *AnnotationAPI) DeleteReply(ctx context.Context, id, replyID string) error {
	return a.t.Delete(ctx, "/annotations/"+seg(id)+"/replies/"+seg(replyID), nil)
}
