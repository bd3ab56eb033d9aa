package netx

import (
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("disk gone") }

func TestMultipartBody_FileAndFields(t *testing.T) {
	body, ct, err := MultipartBody(
		FilePart{Field: "pdf", FileName: "report.pdf", ContentType: "application/pdf", Content: strings.NewReader("%PDF-1.4")},
		Field{Name: "title", Value: "report"},
		Field{Name: "isPublic", Value: "true"},
	)
	require.NoError(t, err)

	mt, params, err := mime.ParseMediaType(ct)
	require.NoError(t, err)
	assert.Equal(t, "multipart/form-data", mt)

	r := multipart.NewReader(body, params["boundary"])
	form, err := r.ReadForm(1 << 20)
	require.NoError(t, err)

	assert.Equal(t, []string{"report"}, form.Value["title"])
	assert.Equal(t, []string{"true"}, form.Value["isPublic"])
	require.Len(t, form.File["pdf"], 1)
	fh := form.File["pdf"][0]
	assert.Equal(t, "report.pdf", fh.Filename)
	assert.Equal(t, "application/pdf", fh.Header.Get("Content-Type"))

	f, err := fh.Open()
	require.NoError(t, err)
	b, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(b))
}

func TestMultipartBody_DefaultsContentType(t *testing.T) {
	body, ct, err := MultipartBody(FilePart{Field: "f", FileName: `a"b.bin`, Content: strings.NewReader("x")})
	require.NoError(t, err)
	_, params, _ := mime.ParseMediaType(ct)

	form, err := multipart.NewReader(body, params["boundary"]).ReadForm(1 << 20)
	require.NoError(t, err)
	assert.Equal(t, "application/octet-stream", form.File["f"][0].Header.Get("Content-Type"))
}

func TestMultipartBody_ReaderError(t *testing.T) {
	_, _, err := MultipartBody(FilePart{Field: "pdf", FileName: "x.pdf", Content: failingReader{}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk gone")
}
