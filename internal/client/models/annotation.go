package models

import (
	"bytes"
	"encoding/json"
	"time"
)

// AnnotationType is the kind of mark an annotation places on a page.
type AnnotationType string

const (
	AnnotationHighlight AnnotationType = "highlight"
	AnnotationNote      AnnotationType = "note"
	AnnotationComment   AnnotationType = "comment"
	AnnotationUnderline AnnotationType = "underline"
	AnnotationDrawing   AnnotationType = "drawing"
)

// AnnotationTypes lists the kinds offered when creating an annotation.
var AnnotationTypes = []AnnotationType{
	AnnotationHighlight, AnnotationNote, AnnotationComment, AnnotationUnderline, AnnotationDrawing,
}

type Annotation struct {
	ID         string         `json:"id"`
	PDFID      Ref            `json:"pdfId"`
	Page       int            `json:"page"`
	Type       AnnotationType `json:"type"`
	Content    Content        `json:"content"`
	Author     Owner          `json:"user"`
	IsPrivate  bool           `json:"isPrivate"`
	IsResolved bool           `json:"isResolved"`
	Tags       []string       `json:"tags,omitempty"`
	Replies    []Reply        `json:"replies,omitempty"`
	CreatedAt  time.Time      `json:"createdAt,omitzero"`
}

func (a *Annotation) UnmarshalJSON(b []byte) error {
	type plain Annotation
	var raw struct {
		plain
		MongoID string `json:"_id"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*a = Annotation(raw.plain)
	if a.ID == "" {
		a.ID = raw.MongoID
	}
	return nil
}

// Reply is a child comment on exactly one annotation.
type Reply struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Author    Owner     `json:"user"`
	CreatedAt time.Time `json:"createdAt,omitzero"`
}

func (r *Reply) UnmarshalJSON(b []byte) error {
	type plain Reply
	var raw struct {
		plain
		MongoID string `json:"_id"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*r = Reply(raw.plain)
	if r.ID == "" {
		r.ID = raw.MongoID
	}
	return nil
}

// Ref is an identifier that may arrive populated as an object.
type Ref string

func (r *Ref) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '{' {
		var obj struct {
			ID      string `json:"id"`
			MongoID string `json:"_id"`
		}
		if err := json.Unmarshal(b, &obj); err != nil {
			return err
		}
		*r = Ref(obj.ID)
		if *r == "" {
			*r = Ref(obj.MongoID)
		}
		return nil
	}
	var s *string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s != nil {
		*r = Ref(*s)
	}
	return nil
}

// Content is an annotation body: usually text, but the service stores any
// JSON value.
type Content struct {
	Text string
	Raw  json.RawMessage
}

// TextContent wraps a plain string.
func TextContent(s string) Content { return Content{Text: s} }

func (c *Content) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	*c = Content{}
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}
	if b[0] == '"' {
		return json.Unmarshal(b, &c.Text)
	}
	c.Raw = append(json.RawMessage(nil), b...)
	var withText struct {
		Text string `json:"text"`
	}
	if b[0] == '{' && json.Unmarshal(b, &withText) == nil {
		c.Text = withText.Text
	}
	return nil
}

func (c Content) MarshalJSON() ([]byte, error) {
	if len(c.Raw) > 0 {
		return c.Raw, nil
	}
	return json.Marshal(c.Text)
}

// String renders the content for display.
func (c Content) String() string {
	if c.Text != "" || len(c.Raw) == 0 {
		return c.Text
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, c.Raw); err != nil {
		return string(c.Raw)
	}
	return buf.String()
}

// AnnotationList decodes {"annotations": [...]} as well as a bare array.
type AnnotationList struct {
	Success     bool
	Annotations []Annotation
	Pages       int
	Total       int
}

func (l *AnnotationList) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '[' {
		*l = AnnotationList{Success: true}
		return json.Unmarshal(b, &l.Annotations)
	}
	var raw struct {
		Success     bool         `json:"success"`
		Annotations []Annotation `json:"annotations"`
		Data        []Annotation `json:"data"`
		Pages       int          `json:"pages"`
		Total       int          `json:"total"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*l = AnnotationList{Success: raw.Success, Annotations: raw.Annotations, Pages: raw.Pages, Total: raw.Total}
	if l.Annotations == nil {
		l.Annotations = raw.Data
	}
	return nil
}

// AnnotationEnvelope decodes {"annotation": {...}} as well as a bare object.
type AnnotationEnvelope struct {
	Success    bool
	Annotation Annotation
}

func (e *AnnotationEnvelope) UnmarshalJSON(b []byte) error {
	var wrapped struct {
		Success    bool            `json:"success"`
		Annotation json.RawMessage `json:"annotation"`
		Data       json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(b, &wrapped); err != nil {
		return err
	}
	e.Success = wrapped.Success
	inner := b
	switch {
	case isObject(wrapped.Annotation):
		inner = wrapped.Annotation
	case isObject(wrapped.Data):
		inner = wrapped.Data
	}
	return json.Unmarshal(inner, &e.Annotation)
}
