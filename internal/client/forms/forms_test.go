package forms

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/pdfnotes/internal/client/models"
)

func writeFile(t *testing.T, name string, content []byte, size int64) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, content, 0o600))
	if size > 0 {
		require.NoError(t, os.Truncate(p, size))
	}
	return p
}

func TestCheckPDF_Accepts(t *testing.T) {
	p := writeFile(t, "report.pdf", []byte("%PDF-1.4\n1 0 obj\n"), 0)

	f, err := CheckPDF(p)
	require.NoError(t, err)
	assert.Equal(t, "report.pdf", f.Name)
	assert.EqualValues(t, 17, f.Size)
}

func TestCheckPDF_ExactlyTenMegabytesIsAllowed(t *testing.T) {
	p := writeFile(t, "big.pdf", []byte("%PDF-1.7\n"), 10*1024*1024)

	_, err := CheckPDF(p)
	require.NoError(t, err)
}

func TestCheckPDF_TooLarge(t *testing.T) {
	p := writeFile(t, "huge.pdf", []byte("%PDF-1.7\n"), 12*1024*1024)

	_, err := CheckPDF(p)
	require.ErrorIs(t, err, ErrFileTooLarge)
	assert.Equal(t, "File size must be less than 10MB", err.Error())
}

func TestCheckPDF_SniffsContentNotExtension(t *testing.T) {
	p := writeFile(t, "fake.pdf", []byte("just some text"), 0)

	_, err := CheckPDF(p)
	require.ErrorIs(t, err, ErrNotPDF)
	assert.Equal(t, "Please select a PDF file", err.Error())
}

func TestCheckPDF_TypeCheckedBeforeSize(t *testing.T) {
	p := writeFile(t, "huge.txt", []byte("plain text"), 12*1024*1024)

	_, err := CheckPDF(p)
	require.ErrorIs(t, err, ErrNotPDF)
}

func TestCheckPDF_Missing(t *testing.T) {
	_, err := CheckPDF("")
	require.ErrorIs(t, err, ErrNoFile)

	_, err = CheckPDF(filepath.Join(t.TempDir(), "nope.pdf"))
	require.ErrorIs(t, err, ErrNoFile)

	_, err = CheckPDF(t.TempDir())
	require.ErrorIs(t, err, ErrNoFile)
}

func TestDefaultTitle(t *testing.T) {
	assert.Equal(t, "report", DefaultTitle("/tmp/report.pdf"))
	assert.Equal(t, "notes.pdf.bak", DefaultTitle("notes.pdf.pdf.bak"))
	assert.Equal(t, "scan", DefaultTitle("scan"))
}

func TestValidate_Login(t *testing.T) {
	err := Validate(models.LoginRequest{Email: "not-an-email"})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "Invalid email format", ve.For("email"))
	assert.Equal(t, "This field is required", ve.For("password"))

	require.NoError(t, Validate(models.LoginRequest{Email: "a@b.com", Password: "x"}))
}

func TestValidate_Register(t *testing.T) {
	err := Validate(models.RegisterRequest{Name: "Ann", Email: "a@b.com", Password: "123"})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	require.Len(t, ve.Fields, 1)
	assert.Equal(t, "password", ve.Fields[0].Field)
	assert.Equal(t, "Must be at least 6 characters", ve.Fields[0].Message)
	assert.Equal(t, "password: Must be at least 6 characters", ve.Error())
}

func TestValidate_PasswordMustChange(t *testing.T) {
	err := Validate(models.PasswordUpdate{CurrentPassword: "secret1", NewPassword: "secret1"})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "Must differ from CurrentPassword", ve.For("newPassword"))
}

func TestValidate_ProfileOptionalFields(t *testing.T) {
	require.NoError(t, Validate(models.ProfileUpdate{}))
	require.Error(t, Validate(models.ProfileUpdate{Email: "bad"}))
}

func TestValidate_AnnotationCreate(t *testing.T) {
	err := Validate(models.AnnotationCreate{PDFID: "p1", Page: 0, Type: "scribble"})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "Must be greater than or equal to 1", ve.For("page"))
	assert.Equal(t, "Must be one of: highlight note comment underline drawing", ve.For("type"))

	require.NoError(t, Validate(models.AnnotationCreate{PDFID: "p1", Page: 1, Type: models.AnnotationNote}))
}
