package models

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"
)

// PDF is a stored document's metadata. File bytes are never modified by the
// client.
type PDF struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	FilePath    string       `json:"filePath"`
	PageCount   int          `json:"pageCount"`
	IsPublic    bool         `json:"isPublic"`
	AccessCount int          `json:"accessCount"`
	Owner       Owner        `json:"user"`
	Tags        []string     `json:"tags,omitempty"`
	Annotations []Annotation `json:"annotations,omitempty"`
	CreatedAt   time.Time    `json:"createdAt,omitzero"`

	// HasAnnotations reports whether the payload carried an annotations key.
	HasAnnotations bool `json:"-"`
}

func (p *PDF) UnmarshalJSON(b []byte) error {
	type plain PDF
	var raw struct {
		plain
		MongoID     string        `json:"_id"`
		Annotations *[]Annotation `json:"annotations"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*p = PDF(raw.plain)
	if p.ID == "" {
		p.ID = raw.MongoID
	}
	if raw.Annotations != nil {
		p.Annotations = *raw.Annotations
		p.HasAnnotations = true
	}
	return nil
}

// FileURL resolves the stored relative path against filesBase. Windows
// separators in the stored path are normalised to "/".
func (p PDF) FileURL(filesBase string) string {
	path := strings.ReplaceAll(p.FilePath, `\`, "/")
	return strings.TrimRight(filesBase, "/") + "/" + strings.TrimLeft(path, "/")
}

// PDFEnvelope decodes both {"pdf": {...}} and a bare document object.
type PDFEnvelope struct {
	Success bool
	PDF     PDF
}

func (e *PDFEnvelope) UnmarshalJSON(b []byte) error {
	var wrapped struct {
		Success bool            `json:"success"`
		PDF     json.RawMessage `json:"pdf"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(b, &wrapped); err != nil {
		return err
	}
	e.Success = wrapped.Success
	inner := b
	switch {
	case isObject(wrapped.PDF):
		inner = wrapped.PDF
	case isObject(wrapped.Data):
		inner = wrapped.Data
	}
	return json.Unmarshal(inner, &e.PDF)
}

// PDFList is a page of documents.
type PDFList struct {
	Success bool  `json:"success"`
	PDFs    []PDF `json:"pdfs"`
	Pages   int   `json:"pages"`
	Total   int   `json:"total"`
	Page    int   `json:"page"`
}

func isObject(b json.RawMessage) bool {
	b = bytes.TrimSpace(b)
	return len(b) > 0 && b[0] == '{'
}
