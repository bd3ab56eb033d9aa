package views

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/dmitrijs2005/pdfnotes/internal/filex"
)

// startViewer is a test seam for launching the external document viewer.
var startViewer = func(command, path string) error {
	args := strings.Fields(command)
	cmd := exec.Command(args[0], append(args[1:], path)...)
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() { _ = cmd.Wait() }()
	return nil
}

// Files stores downloaded documents and hands them to a viewer.
type Files struct {
	Dir           string
	ViewerCommand string
}

// Save writes data under Dir and returns the written path.
func (f Files) Save(name string, data []byte) (string, error) {
	return filex.SaveFile(f.Dir, name, data)
}

// Open launches the viewer on path. Without a viewer command it does
// nothing and reports false.
func (f Files) Open(path string) (bool, error) {
	if strings.TrimSpace(f.ViewerCommand) == "" {
		return false, nil
	}
	if err := startViewer(f.ViewerCommand, path); err != nil {
		return false, fmt.Errorf("start viewer: %w", err)
	}
	return true, nil
}
