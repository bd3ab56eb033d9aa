package api

import (
	"context"

	"github.com/dmitrijs2005/pdfnotes/internal/client/models"
)

type AuthAPI struct {
	t Transport
}

func NewAuthAPI(t Transport) *AuthAPI { return &AuthAPI{t: t} }

func (a *AuthAPI) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	var out models.AuthResponse
	if err := a.t.Post(ctx, "/auth/register", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *AuthAPI) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	var out models.AuthResponse
	if err := a.t.Post(ctx, "/auth/login", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *AuthAPI) Logout(ctx context.Context) error {
	return a.t.Post(ctx, "/auth/logout", nil, nil)
}

// Me asks the service who the current token belongs to.
func (a *AuthAPI) Me(ctx context.Context) (*models.UserResponse, error) {
	var out models.UserResponse
	if err := a.t.Get(ctx, "/auth/me", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *AuthAPI) UpdateProfile(ctx context.Context, req models.ProfileUpdate) (*models.UserResponse, error) {
	var out models.UserResponse
	if err := a.t.Put(ctx, "/auth/profile", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdatePassword changes the password; the reply carries a rotated token.
func (a *AuthAPI) UpdatePassword(ctx context.Context, req models.PasswordUpdate) (*models.AuthResponse, error) {
	var out models.AuthResponse
	if err := a.t.Put(ctx, "/auth/updatepassword", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
