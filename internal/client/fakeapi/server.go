// Package fakeapi is an in-memory stand-in for the pdfnotes REST service,
// served over httptest. Tests across the client drive it instead of a real
// backend.
package fakeapi

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/dmitrijs2005/pdfnotes/internal/client/models"
)

// Call records one request the server received.
type Call struct {
	Method string
	Path   string
	Query  string
	Auth   string
}

type account struct {
	user     models.User
	password string
}

type document struct {
	pdf  models.PDF
	data []byte
}

type failure struct {
	status  int
	message string
}

// Server is the fake service. Its API root is URL+"/api"; stored files are
// served from URL+"/uploads/".
type Server struct {
	*httptest.Server

	// OmitEmbeddedAnnotations makes GET /pdfs/{id} leave out the
	// annotations key so clients must fall back to the per-document listing.
	OmitEmbeddedAnnotations bool

	mu          sync.Mutex
	seq         int
	accounts    map[string]*account // by email
	tokens      map[string]string   // token -> email
	docs        []*document
	annotations []*models.Annotation
	calls       []Call
	failures    map[string]failure
	delay       time.Duration
}

func New() *Server {
	s := &Server{
		accounts: make(map[string]*account),
		tokens:   make(map[string]string),
		failures: make(map[string]failure),
	}
	s.Server = httptest.NewServer(s.routes())
	return s
}

// APIURL is the base address clients should be configured with.
func (s *Server) APIURL() string { return s.URL + "/api" }

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.record)

	r.Get("/uploads/*", s.serveFile)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", s.register)
		r.Post("/auth/login", s.login)
		r.Get("/pdfs/public", s.listPublic)
		r.Get("/pdfs/{id}", s.getPDF)

		r.Group(func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Post("/auth/logout", s.logout)
			r.Get("/auth/me", s.me)
			r.Put("/auth/profile", s.updateProfile)
			r.Put("/auth/updatepassword", s.updatePassword)

			r.Post("/pdfs/upload", s.upload)
			r.Get("/pdfs", s.listOwn)
			r.Get("/pdfs/{id}/file", s.pdfFile)
			r.Put("/pdfs/{id}", s.updatePDF)
			r.Delete("/pdfs/{id}", s.deletePDF)

			r.Post("/annotations", s.createAnnotation)
			r.Get("/annotations/pdf/{pdfId}", s.listAnnotations)
			r.Get("/annotations/my", s.myAnnotations)
			r.Put("/annotations/{id}", s.updateAnnotation)
			r.Delete("/annotations/{id}", s.deleteAnnotation)
			r.Post("/annotations/{id}/replies", s.addReply)
			r.Delete("/annotations/{id}/replies/{replyId}", s.deleteReply)
		})
	})
	return r
}

// --- test controls ---

// AddUser creates an account and returns its token.
func (s *Server) AddUser(name, email, password string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	a := &account{user: models.User{ID: s.nextID("u"), Name: name, Email: email}, password: password}
	s.accounts[email] = a
	return s.issueToken(email)
}

// AddPDF stores a document owned by email and returns it.
func (s *Server) AddPDF(ownerEmail, title string, public bool, data []byte) models.PDF {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addPDF(ownerEmail, title, "", public, data)
}

// AddAnnotation attaches a note to a document.
func (s *Server) AddAnnotation(authorEmail, pdfID string, page int, text string) models.Annotation {
	s.mu.Lock()
	defer s.mu.Unlock()
	a := &models.Annotation{
		ID:        s.nextID("a"),
		PDFID:     models.Ref(pdfID),
		Page:      page,
		Type:      models.AnnotationNote,
		Content:   models.TextContent(text),
		Author:    s.owner(authorEmail),
		CreatedAt: time.Now().UTC(),
	}
	s.annotations = append(s.annotations, a)
	return *a
}

// RevokeTokens invalidates every issued token, as if they expired.
func (s *Server) RevokeTokens() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.tokens)
}

// Fail makes every request matching "METHOD /path" answer with status and
// message until ClearFailures.
func (s *Server) Fail(route string, status int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[route] = failure{status: status, message: message}
}

func (s *Server) ClearFailures() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.failures)
}

// SetDelay slows every response down by d.
func (s *Server) SetDelay(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delay = d
}

// Calls returns the requests received so far.
func (s *Server) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.calls)
}

// CallCount counts received requests matching "METHOD /path".
func (s *Server) CallCount(route string) int {
	n := 0
	for _, c := range s.Calls() {
		if c.Method+" "+c.Path == route {
			n++
		}
	}
	return n
}

// PDFs returns a snapshot of stored documents.
func (s *Server) PDFs() []models.PDF {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.PDF, 0, len(s.docs))
	for _, d := range s.docs {
		out = append(out, d.pdf)
	}
	return out
}

// Annotations returns a snapshot of stored annotations.
func (s *Server) Annotations() []models.Annotation {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Annotation, 0, len(s.annotations))
	for _, a := range s.annotations {
		out = append(out, *a)
	}
	return out
}

// User returns the stored account for email.
func (s *Server) User(email string) (models.User, string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[email]
	if !ok {
		return models.User{}, "", false
	}
	return a.user, a.password, true
}

// --- middleware ---

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.calls = append(s.calls, Call{Method: r.Method, Path: r.URL.EscapedPath(), Query: r.URL.RawQuery, Auth: r.Header.Get("Authorization")})
		f, failing := s.failures[r.Method+" "+r.URL.Path]
		delay := s.delay
		s.mu.Unlock()

		if delay > 0 {
			select {
			case <-time.After(delay):
			case <-r.Context().Done():
				return
			}
		}
		if failing {
			writeError(w, f.status, f.message)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := s.caller(r); !ok {
			writeError(w, http.StatusUnauthorized, "Not authorized, token failed")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// caller resolves the bearer token to an account.
func (s *Server) caller(r *http.Request) (*account, bool) {
	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok || token == "" {
		return nil, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	email, ok := s.tokens[token]
	if !ok {
		return nil, false
	}
	a, ok := s.accounts[email]
	return a, ok
}

// --- helpers (callers hold s.mu where noted) ---

// nextID requires s.mu.
func (s *Server) nextID(prefix string) string {
	s.seq++
	return prefix + strconv.Itoa(s.seq)
}

// issueToken requires s.mu.
func (s *Server) issueToken(email string) string {
	t := uuid.NewString()
	s.tokens[t] = email
	return t
}

// owner requires s.mu.
func (s *Server) owner(email string) models.Owner {
	if a, ok := s.accounts[email]; ok {
		return models.Owner{ID: a.user.ID, Name: a.user.Name, Email: a.user.Email}
	}
	return models.Owner{Name: email}
}

// addPDF requires s.mu.
func (s *Server) addPDF(ownerEmail, title, description string, public bool, data []byte) models.PDF {
	id := s.nextID("p")
	d := &document{
		pdf: models.PDF{
			ID:          id,
			Title:       title,
			Description: description,
			FilePath:    `uploads\` + id + ".pdf",
			PageCount:   1,
			IsPublic:    public,
			Owner:       s.owner(ownerEmail),
			CreatedAt:   time.Now().UTC(),
		},
		data: data,
	}
	s.docs = append(s.docs, d)
	return d.pdf
}

// findDoc requires s.mu.
func (s *Server) findDoc(id string) (int, *document) {
	for i, d := range s.docs {
		if d.pdf.ID == id {
			return i, d
		}
	}
	return -1, nil
}

// findAnnotation requires s.mu.
func (s *Server) findAnnotation(id string) (int, *models.Annotation) {
	for i, a := range s.annotations {
		if a.ID == id {
			return i, a
		}
	}
	return -1, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"success": false, "message": message})
}

func decode(r *http.Request, v any) error {
	b, err := io.ReadAll(r.Body)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	return nil
}

func paginate[T any](items []T, r *http.Request, defaultLimit int) ([]T, int, int) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	total := len(items)
	pages := (total + limit - 1) / limit
	start := min((page-1)*limit, total)
	end := min(start+limit, total)
	return items[start:end], pages, total
}
