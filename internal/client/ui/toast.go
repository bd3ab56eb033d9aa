package ui

import (
	"fmt"
	"io"
	"sync"
)

// Toaster prints transient notices, one per line.
type Toaster struct {
	mu sync.Mutex
	w  io.Writer
}

func NewToaster(w io.Writer) *Toaster {
	return &Toaster{w: w}
}

func (t *Toaster) Success(msg string) { t.print("✓", msg) }

func (t *Toaster) Error(msg string) { t.print("✗", msg) }

func (t *Toaster) print(mark, msg string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.w, "%s %s\n", mark, msg)
}
