package forms

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/dmitrijs2005/pdfnotes/internal/common"
)

var (
	ErrNoFile       = errors.New("Please select a file")
	ErrNotPDF       = errors.New("Please select a PDF file")
	ErrFileTooLarge = errors.New("File size must be less than 10MB")
)

// PDFFile is a local document that passed CheckPDF.
type PDFFile struct {
	Path string
	Name string
	Size int64
}

// CheckPDF accepts path only if its content is a PDF of at most
// common.MaxUploadSize bytes. The type is checked first; the media type is
// sniffed from the file header, not taken from the extension.
func CheckPDF(path string) (PDFFile, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return PDFFile{}, ErrNoFile
	}
	fi, err := os.Stat(path)
	if err != nil || fi.IsDir() {
		return PDFFile{}, fmt.Errorf("%w: %s", ErrNoFile, path)
	}

	mt, err := mimetype.DetectFile(path)
	if err != nil {
		return PDFFile{}, fmt.Errorf("detect type of %s: %w", path, err)
	}
	if !mt.Is(common.PDFMediaType) {
		return PDFFile{}, ErrNotPDF
	}
	if fi.Size() > common.MaxUploadSize {
		return PDFFile{}, ErrFileTooLarge
	}
	return PDFFile{Path: path, Name: filepath.Base(path), Size: fi.Size()}, nil
}

// DefaultTitle derives a document title from its file name.
func DefaultTitle(name string) string {
	return strings.Replace(filepath.Base(name), ".pdf", "", 1)
}
