package dto

import (
	"time"

	"github.com/betulabla/foundation/internal/domain/user"
	"github.com/betulabla/foundation/internal/rbac"
	"github.com/betulabla/foundation/internal/types"
	"github.com/betulabla/foundation/internal/validator"
)

type UserResponse struct {
	ID          string         `json:"id"`
	Username    string         `json:"username"`
	Email       string         `json:"email"`
	FullName    string         `json:"full_name"`
	Role        types.UserRole `json:"role"`
	RoleDisplay string         `json:"role_display"`
	PhoneNumber string         `json:"phone_number"`
	Location    string         `json:"location"`
	IsActive    bool           `json:"is_active"`
	CreatedAt   time.Time      `json:"created_at"`
}

// ListUsersResponse represents the response for listing users
type ListUsersResponse = types.ListResponse[*UserResponse]

func NewUserResponse(u *user.User) *UserResponse {
	return &UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		FullName:    u.FullName,
		Role:        u.Role,
		RoleDisplay: u.Role.DisplayName(),
		PhoneNumber: u.PhoneNumber,
		Location:    u.Location,
		IsActive:    u.IsActive,
		CreatedAt:   u.CreatedAt,
	}
}

// UpdateProfileRequest only covers the fields a user may change about themselves
type UpdateProfileRequest struct {
	Email       *string `json:"email" validate:"omitempty,email"`
	FullName    *string `json:"full_name" validate:"omitempty,max=150"`
	PhoneNumber *string `json:"phone_number" validate:"omitempty,phone"`
	Location    *string `json:"location" validate:"omitempty,max=100"`
}

func (r *UpdateProfileRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// Apply copies the supplied fields onto the user
func (r *UpdateProfileRequest) Apply(u *user.User) {
	if r.Email != nil {
		u.Email = *r.Email
	}
	if r.FullName != nil {
		u.FullName = *r.FullName
	}
	if r.PhoneNumber != nil {
		u.PhoneNumber = *r.PhoneNumber
	}
	if r.Location != nil {
		u.Location = *r.Location
	}
}

// DashboardResponse greets the caller on the landing page
type DashboardResponse struct {
	Message string         `json:"message"`
	User    string         `json:"user"`
	Role    types.UserRole `json:"role"`
}

type ListRolesResponse struct {
	Roles []*rbac.Role `json:"roles"`
}
