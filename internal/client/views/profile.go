package views

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/pdfnotes/internal/client/forms"
	"github.com/dmitrijs2005/pdfnotes/internal/client/models"
)

type Profile struct {
	d         *Deps
	expiry    time.Time
	hasExpiry bool
	errMsg    string
	fields    *forms.ValidationError
}

func NewProfile(d *Deps) *Profile { return &Profile{d: d} }

func (p *Profile) Mount(ctx context.Context, _ map[string]string) {
	p.expiry, p.hasExpiry = p.d.Session.Expiry(ctx)
}

func (p *Profile) Render(w io.Writer) {
	u := p.d.Session.Snapshot().User
	if u == nil {
		return
	}
	fmt.Fprintln(w, "Profile")
	renderFormErrors(w, p.errMsg, p.fields)
	fmt.Fprintf(w, "Name:         %s\n", u.Name)
	fmt.Fprintf(w, "Email:        %s\n", u.Email)
	fmt.Fprintf(w, "Member since: %s\n", date(u.CreatedAt))
	if p.hasExpiry {
		fmt.Fprintf(w, "Session ends: %s\n", p.expiry.Local().Format(time.DateTime))
	}
}

func (p *Profile) Handle(ctx context.Context, cmd string, _ []string) bool {
	switch cmd {
	case "edit":
		p.edit(ctx)
	case "password":
		p.password(ctx)
	default:
		return false
	}
	return true
}

func (p *Profile) Commands() string { return "edit, password" }

func (p *Profile) edit(ctx context.Context) {
	u := p.d.Session.Snapshot().User
	if u == nil {
		return
	}
	var name, email string
	err := collect(
		func() (err error) { name, err = p.d.Prompt.Line(fmt.Sprintf("Name [%s]", u.Name)); return },
		func() (err error) { email, err = p.d.Prompt.Line(fmt.Sprintf("Email [%s]", u.Email)); return },
	)
	if err != nil {
		return
	}

	var req models.ProfileUpdate
	if name != "" && name != u.Name {
		req.Name = name
	}
	if email != "" && email != u.Email {
		req.Email = email
	}
	p.errMsg, p.fields = "", nil
	if req == (models.ProfileUpdate{}) {
		return
	}
	if err := forms.Validate(req); err != nil {
		p.fields = asFields(err)
		return
	}
	if err := p.d.Session.UpdateProfile(ctx, req); err != nil && !stale(ctx) {
		p.errMsg = errMessage(err, "Failed to update profile")
	}
}

func (p *Profile) password(ctx context.Context) {
	var req models.PasswordUpdate
	var confirm string
	err := collect(
		func() (err error) { req.CurrentPassword, err = p.d.Prompt.Password("Current password"); return },
		func() (err error) { req.NewPassword, err = p.d.Prompt.Password("New password"); return },
		func() (err error) { confirm, err = p.d.Prompt.Password("Confirm new password"); return },
	)
	if err != nil {
		return
	}
	p.errMsg, p.fields = "", nil
	if err := forms.Validate(req); err != nil {
		p.fields = asFields(err)
		return
	}
	if confirm != req.NewPassword {
		p.errMsg = msgPasswordsMismatch
		return
	}
	err = p.d.Session.UpdatePassword(ctx, req.CurrentPassword, req.NewPassword)
	if stale(ctx) {
		return
	}
	if err != nil {
		p.errMsg = errMessage(err, "Failed to update password")
		return
	}
	p.expiry, p.hasExpiry = p.d.Session.Expiry(ctx)
}
