package dto

import (
	"time"

	"github.com/betulabla/foundation/internal/domain/user"
	ierr "github.com/betulabla/foundation/internal/errors"
	"github.com/betulabla/foundation/internal/types"
	"github.com/betulabla/foundation/internal/validator"
)

type RegisterRequest struct {
	Username        string         `json:"username" validate:"required,max=150"`
	Email           string         `json:"email" validate:"required,email"`
	Password        string         `json:"password" validate:"required,min=8"`
	PasswordConfirm string         `json:"password_confirm" validate:"required"`
	Role            types.UserRole `json:"role"`
	FullName        string         `json:"full_name" validate:"omitempty,max=150"`
	PhoneNumber     string         `json:"phone_number" validate:"omitempty,phone"`
	Location        string         `json:"location" validate:"omitempty,max=100"`
}

func (r *RegisterRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}

	if err := validatePasswordConfirm(r.Password, r.PasswordConfirm); err != nil {
		return err
	}

	if r.Role != "" {
		if err := r.Role.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (r *RegisterRequest) ToUser() *user.User {
	u := user.NewUser(r.Username, r.Email, r.Role)
	u.FullName = r.FullName
	u.PhoneNumber = r.PhoneNumber
	u.Location = r.Location
	return u
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// RefreshTokenRequest carries a refresh token, used by token refresh and logout
type RefreshTokenRequest struct {
	Refresh string `json:"refresh" validate:"required"`
}

func (r *RefreshTokenRequest) Validate() error {
	return validator.ValidateRequest(r)
}

type ChangePasswordRequest struct {
	OldPassword     string `json:"old_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}

func (r *ChangePasswordRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	return validatePasswordConfirm(r.NewPassword, r.ConfirmPassword)
}

type AuthResponse struct {
	User            *UserResponse `json:"user"`
	Access          string        `json:"access"`
	Refresh         string        `json:"refresh"`
	AccessExpiresAt time.Time     `json:"access_expires_at"`
}

type RefreshTokenResponse struct {
	Access          string    `json:"access"`
	AccessExpiresAt time.Time `json:"access_expires_at"`
}

func validatePasswordConfirm(password, confirm string) error {
	if password == confirm {
		return nil
	}
	return ierr.NewError("password confirmation does not match").
		WithHint("Passwords don't match").
		WithReportableDetails(map[string]any{
			"password_confirm": "Passwords don't match",
		}).
		Mark(ierr.ErrValidation)
}
