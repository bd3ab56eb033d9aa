package fakeapi

import (
	"io"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrijs2005/pdfnotes/internal/client/models"
)

// --- auth ---

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Please provide name, email and password")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.accounts[req.Email]; exists {
		writeError(w, http.StatusBadRequest, "User already exists")
		return
	}
	a := &account{user: models.User{ID: s.nextID("u"), Name: req.Name, Email: req.Email}, password: req.Password}
	s.accounts[req.Email] = a
	writeJSON(w, http.StatusCreated, models.AuthResponse{Success: true, Token: s.issueToken(req.Email), User: &a.user})
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[req.Email]
	if !ok || a.password != req.Password {
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	writeJSON(w, http.StatusOK, models.AuthResponse{Success: true, Token: s.issueToken(req.Email), User: &a.user})
}

func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	s.mu.Lock()
	delete(s.tokens, token)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, models.Ack{Success: true, Message: "Logged out"})
}

func (s *Server) me(w http.ResponseWriter, r *http.Request) {
	a, _ := s.caller(r)
	s.mu.Lock()
	u := a.user
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, models.UserResponse{Success: true, User: &u})
}

func (s *Server) updateProfile(w http.ResponseWriter, r *http.Request) {
	a, _ := s.caller(r)
	var req models.ProfileUpdate
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if req.Email != "" && req.Email != a.user.Email {
		if _, taken := s.accounts[req.Email]; taken {
			writeError(w, http.StatusBadRequest, "Email already in use")
			return
		}
		delete(s.accounts, a.user.Email)
		for t, e := range s.tokens {
			if e == a.user.Email {
				s.tokens[t] = req.Email
			}
		}
		a.user.Email = req.Email
		s.accounts[req.Email] = a
	}
	if req.Name != "" {
		a.user.Name = req.Name
	}
	u := a.user
	writeJSON(w, http.StatusOK, models.UserResponse{Success: true, User: &u})
}

func (s *Server) updatePassword(w http.ResponseWriter, r *http.Request) {
	a, _ := s.caller(r)
	var req models.PasswordUpdate
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if a.password != req.CurrentPassword {
		writeError(w, http.StatusBadRequest, "Current password is incorrect")
		return
	}
	a.password = req.NewPassword
	u := a.user
	writeJSON(w, http.StatusOK, models.AuthResponse{Success: true, Token: s.issueToken(a.user.Email), User: &u})
}

// --- documents ---

func (s *Server) upload(w http.ResponseWriter, r *http.Request) {
	a, _ := s.caller(r)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid form data")
		return
	}
	f, fh, err := r.FormFile("pdf")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Please upload a PDF file")
		return
	}
	defer f.Close()
	if fh.Header.Get("Content-Type") != "application/pdf" {
		writeError(w, http.StatusBadRequest, "Only PDF files are allowed")
		return
	}
	data, err := io.ReadAll(f)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	pdf := s.addPDF(a.user.Email, r.FormValue("title"), r.FormValue("description"), r.FormValue("isPublic") == "true", data)
	writeJSON(w, http.StatusCreated, map[string]any{"success": true, "pdf": pdf})
}

func matches(p models.PDF, search string) bool {
	if search == "" {
		return true
	}
	q := strings.ToLower(search)
	return strings.Contains(strings.ToLower(p.Title), q) || strings.Contains(strings.ToLower(p.Description), q)
}

func (s *Server) listOwn(w http.ResponseWriter, r *http.Request) {
	a, _ := s.caller(r)
	search := r.URL.Query().Get("search")

	s.mu.Lock()
	var own []models.PDF
	for _, d := range slices.Backward(s.docs) {
		if d.pdf.Owner.Email == a.user.Email && matches(d.pdf, search) {
			own = append(own, d.pdf)
		}
	}
	s.mu.Unlock()

	page, pages, total := paginate(own, r, 10)
	if page == nil {
		page = []models.PDF{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "pdfs": page, "pages": pages, "total": total})
}

// publicPDF mirrors the listing shape where "user" is the owner's name.
type publicPDF struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	AccessCount int       `json:"accessCount"`
	User        string    `json:"user"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (s *Server) listPublic(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")

	s.mu.Lock()
	public := []publicPDF{}
	for _, d := range slices.Backward(s.docs) {
		if d.pdf.IsPublic && matches(d.pdf, search) {
			public = append(public, publicPDF{
				ID: d.pdf.ID, Title: d.pdf.Title, Description: d.pdf.Description,
				AccessCount: d.pdf.AccessCount, User: d.pdf.Owner.Name, CreatedAt: d.pdf.CreatedAt,
			})
		}
	}
	s.mu.Unlock()

	page, pages, total := paginate(public, r, 10)
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "pdfs": page, "pages": pages, "total": total})
}

func (s *Server) getPDF(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	a, authed := s.caller(r)

	s.mu.Lock()
	defer s.mu.Unlock()
	_, d := s.findDoc(id)
	if d == nil {
		writeError(w, http.StatusNotFound, "PDF not found")
		return
	}
	if !d.pdf.IsPublic && (!authed || d.pdf.Owner.Email != a.user.Email) {
		writeError(w, http.StatusForbidden, "Not authorized to access this PDF")
		return
	}
	d.pdf.AccessCount++

	body := map[string]any{
		"_id": d.pdf.ID, "title": d.pdf.Title, "description": d.pdf.Description,
		"filePath": d.pdf.FilePath, "pageCount": d.pdf.PageCount, "isPublic": d.pdf.IsPublic,
		"accessCount": d.pdf.AccessCount, "user": d.pdf.Owner, "tags": d.pdf.Tags,
		"createdAt": d.pdf.CreatedAt,
	}
	if !s.OmitEmbeddedAnnotations {
		body["annotations"] = s.visibleAnnotations(id, a)
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "pdf": body})
}

// visibleAnnotations requires s.mu. Private annotations are shown only to
// their author.
func (s *Server) visibleAnnotations(pdfID string, viewer *account) []models.Annotation {
	out := []models.Annotation{}
	for _, an := range s.annotations {
		if string(an.PDFID) != pdfID {
			continue
		}
		if an.IsPrivate && (viewer == nil || an.Author.Email != viewer.user.Email) {
			continue
		}
		out = append(out, *an)
	}
	return out
}

func (s *Server) pdfFile(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	_, d := s.findDoc(chi.URLParam(r, "id"))
	var data []byte
	if d != nil {
		data = d.data
	}
	s.mu.Unlock()

	if d == nil {
		writeError(w, http.StatusNotFound, "PDF not found")
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	_, _ = w.Write(data)
}

// serveFile answers the static files address: /uploads/<id>.pdf.
func (s *Server) serveFile(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSuffix(chi.URLParam(r, "*"), ".pdf")

	s.mu.Lock()
	_, d := s.findDoc(id)
	s.mu.Unlock()

	if d == nil {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	_, _ = w.Write(d.data)
}

func (s *Server) updatePDF(w http.ResponseWriter, r *http.Request) {
	a, _ := s.caller(r)
	var req models.PDFUpdate
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	_, d := s.findDoc(chi.URLParam(r, "id"))
	if d == nil {
		writeError(w, http.StatusNotFound, "PDF not found")
		return
	}
	if d.pdf.Owner.Email != a.user.Email {
		writeError(w, http.StatusForbidden, "Not authorized to update this PDF")
		return
	}
	if req.Title != nil {
		d.pdf.Title = *req.Title
	}
	if req.Description != nil {
		d.pdf.Description = *req.Description
	}
	if req.Tags != nil {
		d.pdf.Tags = req.Tags
	}
	if req.IsPublic != nil {
		d.pdf.IsPublic = *req.IsPublic
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "pdf": d.pdf})
}

func (s *Server) deletePDF(w http.ResponseWriter, r *http.Request) {
	a, _ := s.caller(r)

	s.mu.Lock()
	defer s.mu.Unlock()
	i, d := s.findDoc(chi.URLParam(r, "id"))
	if d == nil {
		writeError(w, http.StatusNotFound, "PDF not found")
		return
	}
	if d.pdf.Owner.Email != a.user.Email {
		writeError(w, http.StatusForbidden, "Not authorized to delete this PDF")
		return
	}
	s.docs = slices.Delete(s.docs, i, i+1)
	s.annotations = slices.DeleteFunc(s.annotations, func(an *models.Annotation) bool { return string(an.PDFID) == d.pdf.ID })
	writeJSON(w, http.StatusOK, models.Ack{Success: true, Message: "PDF deleted"})
}

// --- annotations ---

func (s *Server) createAnnotation(w http.ResponseWriter, r *http.Request) {
	a, _ := s.caller(r)
	var req models.AnnotationCreate
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, d := s.findDoc(req.PDFID); d == nil {
		writeError(w, http.StatusNotFound, "PDF not found")
		return
	}
	an := &models.Annotation{
		ID:        s.nextID("a"),
		PDFID:     models.Ref(req.PDFID),
		Page:      req.Page,
		Type:      req.Type,
		Content:   req.Content,
		Author:    s.owner(a.user.Email),
		IsPrivate: req.IsPrivate != nil && *req.IsPrivate,
		Tags:      req.Tags,
		CreatedAt: time.Now().UTC(),
	}
	s.annotations = append(s.annotations, an)
	writeJSON(w, http.StatusCreated, map[string]any{"success": true, "annotation": an})
}

func (s *Server) listAnnotations(w http.ResponseWriter, r *http.Request) {
	a, _ := s.caller(r)
	s.mu.Lock()
	list := s.visibleAnnotations(chi.URLParam(r, "pdfId"), a)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "annotations": list})
}

func (s *Server) myAnnotations(w http.ResponseWriter, r *http.Request) {
	a, _ := s.caller(r)
	s.mu.Lock()
	var mine []models.Annotation
	for _, an := range s.annotations {
		if an.Author.Email == a.user.Email {
			mine = append(mine, *an)
		}
	}
	s.mu.Unlock()

	page, pages, total := paginate(mine, r, 20)
	if page == nil {
		page = []models.Annotation{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "annotations": page, "pages": pages, "total": total})
}

// ownedAnnotation requires s.mu; it writes the error reply itself.
func (s *Server) ownedAnnotation(w http.ResponseWriter, id string, a *account) (int, *models.Annotation) {
	i, an := s.findAnnotation(id)
	if an == nil {
		writeError(w, http.StatusNotFound, "Annotation not found")
		return -1, nil
	}
	if an.Author.Email != a.user.Email {
		writeError(w, http.StatusForbidden, "Not authorized to modify this annotation")
		return -1, nil
	}
	return i, an
}

func (s *Server) updateAnnotation(w http.ResponseWriter, r *http.Request) {
	a, _ := s.caller(r)
	var req models.AnnotationUpdate
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	_, an := s.ownedAnnotation(w, chi.URLParam(r, "id"), a)
	if an == nil {
		return
	}
	if req.Content != nil {
		an.Content = *req.Content
	}
	if req.IsPrivate != nil {
		an.IsPrivate = *req.IsPrivate
	}
	if req.IsResolved != nil {
		an.IsResolved = *req.IsResolved
	}
	if req.Tags != nil {
		an.Tags = req.Tags
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "annotation": an})
}

func (s *Server) deleteAnnotation(w http.ResponseWriter, r *http.Request) {
	a, _ := s.caller(r)

	s.mu.Lock()
	defer s.mu.Unlock()
	i, an := s.ownedAnnotation(w, chi.URLParam(r, "id"), a)
	if an == nil {
		return
	}
	s.annotations = slices.Delete(s.annotations, i, i+1)
	writeJSON(w, http.StatusOK, models.Ack{Success: true, Message: "Annotation deleted"})
}

func (s *Server) addReply(w http.ResponseWriter, r *http.Request) {
	a, _ := s.caller(r)
	var req models.ReplyCreate
	if err := decode(r, &req); err != nil || strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, "Reply text is required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	_, an := s.findAnnotation(chi.URLParam(r, "id"))
	if an == nil {
		writeError(w, http.StatusNotFound, "Annotation not found")
		return
	}
	an.Replies = append(an.Replies, models.Reply{
		ID:        s.nextID("r"),
		Text:      req.Text,
		Author:    s.owner(a.user.Email),
		CreatedAt: time.Now().UTC(),
	})
	writeJSON(w, http.StatusCreated, map[string]any{"success": true, "annotation": an})
}

func (s *Server) deleteReply(w http.ResponseWriter, r *http.Request) {
	a, _ := s.caller(r)
	replyID := chi.URLParam(r, "replyId")

	s.mu.Lock()
	defer s.mu.Unlock()
	_, an := s.findAnnotation(chi.URLParam(r, "id"))
	if an == nil {
		writeError(w, http.StatusNotFound, "Annotation not found")
		return
	}
	i := slices.IndexFunc(an.Replies, func(rp models.Reply) bool { return rp.ID == replyID })
	if i < 0 {
		writeError(w, http.StatusNotFound, "Reply not found")
		return
	}
	if an.Replies[i].Author.Email != a.user.Email {
		writeError(w, http.StatusForbidden, "Not authorized to delete this reply")
		return
	}
	an.Replies = slices.Delete(an.Replies, i, i+1)
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "annotation": an})
}
