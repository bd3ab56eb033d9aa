package models

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// ProfileUpdate carries the fields to change; empty fields are left alone.
type ProfileUpdate struct {
	Name  string `json:"name,omitempty" validate:"omitempty,max=50"`
	Email string `json:"email,omitempty" validate:"omitempty,email"`
}

type PasswordUpdate struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6,nefield=CurrentPassword"`
}

// AuthResponse is returned by register, login and password update.
type AuthResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
	User    *User  `json:"user"`
	Message string `json:"message,omitempty"`
}

// UserResponse is returned by "who am I" and profile update.
type UserResponse struct {
	Success bool   `json:"success"`
	User    *User  `json:"user"`
	Message string `json:"message,omitempty"`
}

// Ack is a bare acknowledgement.
type Ack struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
