package views

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboard_EmptyState(t *testing.T) {
	f := newFixture(t)
	f.signIn(t, "Ann", "a@b.com")

	s := NewDashboard(f.d)
	s.Mount(context.Background(), nil)

	assert.True(t, s.Empty())
	assert.Empty(t, s.Err())
	out := render(s)
	assert.Contains(t, out, "Welcome back, Ann!")
	assert.Contains(t, out, "No documents yet")
	assert.Contains(t, out, "Upload PDF")
}

func TestDashboard_ListsRecentFive(t *testing.T) {
	f := newFixture(t)
	f.signIn(t, "Ann", "a@b.com")
	for _, title := range []string{"a", "b", "c", "d", "e", "f"} {
		f.srv.AddPDF("a@b.com", title, false, pdfBytes(16))
	}
	f.srv.AddPDF("other@b.com", "not mine", true, pdfBytes(16))

	s := NewDashboard(f.d)
	s.Mount(context.Background(), nil)

	require.Len(t, s.PDFs(), DashboardLimit)
	assert.Equal(t, "f", s.PDFs()[0].Title)
	calls := f.srv.Calls()
	assert.Equal(t, "limit=5&page=1", calls[len(calls)-1].Query)
	assert.Contains(t, render(s), " 1. f")
}

func TestDashboard_ErrorState(t *testing.T) {
	f := newFixture(t)
	f.signIn(t, "Ann", "a@b.com")
	f.srv.Fail("GET /api/pdfs", http.StatusInternalServerError, "database down")

	s := NewDashboard(f.d)
	s.Mount(context.Background(), nil)

	assert.Equal(t, "database down", s.Err())
	assert.False(t, s.Empty())
	assert.Contains(t, render(s), "! database down")
}

func TestDashboard_TransportErrorUsesFallback(t *testing.T) {
	f := newFixture(t)
	f.signIn(t, "Ann", "a@b.com")
	f.srv.Close()

	s := NewDashboard(f.d)
	s.Mount(context.Background(), nil)
	assert.Equal(t, "Failed to load PDFs", s.Err())
}

func TestDashboard_View(t *testing.T) {
	f := newFixture(t)
	f.signIn(t, "Ann", "a@b.com")
	p := f.srv.AddPDF("a@b.com", "doc", false, pdfBytes(16))

	s := NewDashboard(f.d)
	s.Mount(context.Background(), nil)

	require.True(t, s.Handle(context.Background(), "view", []string{"1"}))
	assert.Equal(t, "/pdf/"+p.ID, f.nav.Last())

	require.True(t, s.Handle(context.Background(), "view", []string{"9"}))
	assert.Equal(t, []string{"no item 9"}, f.toast.Errors)
	assert.False(t, s.Handle(context.Background(), "bogus", nil))
}

func TestDashboard_Delete(t *testing.T) {
	f := newFixture(t)
	f.signIn(t, "Ann", "a@b.com")
	f.srv.AddPDF("a@b.com", "doc", false, pdfBytes(16))

	s := NewDashboard(f.d)
	s.Mount(context.Background(), nil)

	f.answer("n")
	s.Handle(context.Background(), "delete", []string{"1"})
	assert.Len(t, f.srv.PDFs(), 1)

	f.answer("y")
	s.Handle(context.Background(), "delete", []string{"1"})
	assert.Empty(t, f.srv.PDFs())
	assert.True(t, s.Empty())
	assert.Contains(t, f.toast.Successes, "PDF deleted successfully")
}

func TestDashboard_Edit(t *testing.T) {
	f := newFixture(t)
	f.signIn(t, "Ann", "a@b.com")
	f.srv.AddPDF("a@b.com", "doc", false, pdfBytes(16))

	s := NewDashboard(f.d)
	s.Mount(context.Background(), nil)

	f.answer("Renamed", "", "x, y", "y")
	s.Handle(context.Background(), "edit", []string{"1"})

	got := f.srv.PDFs()[0]
	assert.Equal(t, "Renamed", got.Title)
	assert.True(t, got.IsPublic)
	assert.Equal(t, []string{"x", "y"}, got.Tags)
	assert.Equal(t, "Renamed", s.PDFs()[0].Title)
}

func TestDashboard_StaleResultIsDropped(t *testing.T) {
	f := newFixture(t)
	f.signIn(t, "Ann", "a@b.com")
	f.srv.AddPDF("a@b.com", "doc", false, pdfBytes(16))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := NewDashboard(f.d)
	s.Mount(ctx, nil)

	assert.Empty(t, s.Err())
	assert.Empty(t, s.PDFs())
	assert.NotContains(t, render(s), "Loading documents...")
}

func TestDashboard_InterruptedReloadKeepsList(t *testing.T) {
	f := newFixture(t)
	f.signIn(t, "Ann", "a@b.com")
	f.srv.AddPDF("a@b.com", "doc", false, pdfBytes(16))

	s := NewDashboard(f.d)
	s.Mount(context.Background(), nil)
	require.Len(t, s.PDFs(), 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.True(t, s.Handle(ctx, "reload", nil))

	out := render(s)
	assert.NotContains(t, out, "Loading documents...")
	assert.Contains(t, out, "doc")
	assert.Len(t, s.PDFs(), 1)
}
