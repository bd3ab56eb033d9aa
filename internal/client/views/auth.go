package views

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/dmitrijs2005/pdfnotes/internal/client/forms"
	"github.com/dmitrijs2005/pdfnotes/internal/client/models"
)

const msgPasswordsMismatch = "Passwords do not match"

// Login is the sign-in form. A successful login only changes the session;
// the route guard then moves the user on.
type Login struct {
	d      *Deps
	email  string
	errMsg string
	fields *forms.ValidationError
}

func NewLogin(d *Deps) *Login { return &Login{d: d} }

func (l *Login) Mount(context.Context, map[string]string) {}

func (l *Login) Submit(ctx context.Context) {
	email, err := l.d.Prompt.Line("Email")
	if err != nil {
		return
	}
	password, err := l.d.Prompt.Password("Password")
	if err != nil {
		return
	}
	req := models.LoginRequest{Email: email, Password: password}
	l.email, l.errMsg, l.fields = email, "", nil
	if err := forms.Validate(req); err != nil {
		l.fields = asFields(err)
		return
	}

	err = l.d.Session.Login(ctx, req.Email, req.Password)
	if stale(ctx) || err == nil {
		return
	}
	l.errMsg = errMessage(err, "Login failed")
}

func (l *Login) Render(w io.Writer) {
	fmt.Fprintln(w, "Sign in to your account")
	renderFormErrors(w, l.errMsg, l.fields)
	if l.email != "" {
		fmt.Fprintf(w, "Email: %s\n", l.email)
	}
	fmt.Fprintln(w, "Type 'submit' to sign in or 'register' to create an account.")
}

func (l *Login) Handle(ctx context.Context, cmd string, _ []string) bool {
	if cmd != "submit" {
		return false
	}
	l.Submit(ctx)
	return true
}

func (l *Login) Commands() string { return "submit" }

type Register struct {
	d      *Deps
	name   string
	email  string
	errMsg string
	fields *forms.ValidationError
}

func NewRegister(d *Deps) *Register { return &Register{d: d} }

func (r *Register) Mount(context.Context, map[string]string) {}

func (r *Register) Submit(ctx context.Context) {
	var req models.RegisterRequest
	var confirm string
	err := collect(
		func() (err error) { req.Name, err = r.d.Prompt.Line("Full name"); return },
		func() (err error) { req.Email, err = r.d.Prompt.Line("Email"); return },
		func() (err error) { req.Password, err = r.d.Prompt.Password("Password"); return },
		func() (err error) { confirm, err = r.d.Prompt.Password("Confirm password"); return },
	)
	if err != nil {
		return
	}
	r.name, r.email, r.errMsg, r.fields = req.Name, req.Email, "", nil
	if err := forms.Validate(req); err != nil {
		r.fields = asFields(err)
		return
	}
	if confirm != req.Password {
		r.errMsg = msgPasswordsMismatch
		return
	}

	err = r.d.Session.Register(ctx, req.Name, req.Email, req.Password)
	if stale(ctx) || err == nil {
		return
	}
	r.errMsg = errMessage(err, "Registration failed")
}

func (r *Register) Render(w io.Writer) {
	fmt.Fprintln(w, "Create your account")
	renderFormErrors(w, r.errMsg, r.fields)
	if r.name != "" || r.email != "" {
		fmt.Fprintf(w, "Name: %s\nEmail: %s\n", r.name, r.email)
	}
	fmt.Fprintln(w, "Type 'submit' to sign up or 'login' if you already have an account.")
}

func (r *Register) Handle(ctx context.Context, cmd string, _ []string) bool {
	if cmd != "submit" {
		return false
	}
	r.Submit(ctx)
	return true
}

func (r *Register) Commands() string { return "submit" }

// collect runs prompts in order and stops at the first error.
func collect(steps ...func() error) error {
	for _, s := range steps {
		if err := s(); err != nil {
			return err
		}
	}
	return nil
}

func asFields(err error) *forms.ValidationError {
	var ve *forms.ValidationError
	if errors.As(err, &ve) {
		return ve
	}
	return &forms.ValidationError{Fields: []forms.FieldError{{Field: "form", Message: err.Error()}}}
}

func renderFormErrors(w io.Writer, msg string, fields *forms.ValidationError) {
	if msg != "" {
		fmt.Fprintf(w, "! %s\n", msg)
	}
	if fields == nil {
		return
	}
	for _, f := range fields.Fields {
		fmt.Fprintf(w, "! %s: %s\n", f.Field, f.Message)
	}
}
