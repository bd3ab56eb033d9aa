package models

import (
	"io"
	"net/url"
	"strconv"
)

// ListParams filters a document listing. Zero values are not sent.
type ListParams struct {
	Page   int
	Limit  int
	Search string
	Tags   string
}

func (p ListParams) Values() url.Values {
	v := url.Values{}
	if p.Page > 0 {
		v.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		v.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Search != "" {
		v.Set("search", p.Search)
	}
	if p.Tags != "" {
		v.Set("tags", p.Tags)
	}
	return v
}

// AnnotationFilter narrows annotation listings.
type AnnotationFilter struct {
	Page       int
	Limit      int
	Type       AnnotationType
	IsResolved *bool
}

func (f AnnotationFilter) Values() url.Values {
	v := url.Values{}
	if f.Page > 0 {
		v.Set("page", strconv.Itoa(f.Page))
	}
	if f.Limit > 0 {
		v.Set("limit", strconv.Itoa(f.Limit))
	}
	if f.Type != "" {
		v.Set("type", string(f.Type))
	}
	if f.IsResolved != nil {
		v.Set("isResolved", strconv.FormatBool(*f.IsResolved))
	}
	return v
}

// Upload is a document ready to send. Content is read once.
type Upload struct {
	FileName    string
	Content     io.Reader
	Title       string
	Description string
	IsPublic    bool
}

// PDFUpdate changes document metadata. Nil fields are not sent.
type PDFUpdate struct {
	Title       *string  `json:"title,omitempty"`
	Description *string  `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	IsPublic    *bool    `json:"isPublic,omitempty"`
}

type AnnotationCreate struct {
	PDFID     string         `json:"pdfId" validate:"required"`
	Page      int            `json:"page" validate:"gte=1"`
	Type      AnnotationType `json:"type" validate:"required,oneof=highlight note comment underline drawing"`
	Content   Content        `json:"content"`
	IsPrivate *bool          `json:"isPrivate,omitempty"`
	Tags      []string       `json:"tags,omitempty"`
}

// AnnotationUpdate changes an annotation. Nil fields are not sent.
type AnnotationUpdate struct {
	Content    *Content `json:"content,omitempty"`
	IsPrivate  *bool    `json:"isPrivate,omitempty"`
	IsResolved *bool    `json:"isResolved,omitempty"`
	Tags       []string `json:"tags,omitempty"`
}

type ReplyCreate struct {
	Text string `json:"text" validate:"required"`
}
