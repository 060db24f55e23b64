package user

import (
	"time"

	"github.com/betulabla/foundation/internal/types"
)

// User is a staff account. The password hash lives in the auths table.
type User struct {
	ID          string         `db:"id" json:"id"`
	Username    string         `db:"username" json:"username"`
	Email       string         `db:"email" json:"email"`
	Role        types.UserRole `db:"role" json:"role"`
	PhoneNumber string         `db:"phone_number" json:"phone_number"`
	FullName    string         `db:"full_name" json:"full_name"`
	Location    string         `db:"location" json:"location"`
	IsActive    bool           `db:"is_active" json:"is_active"`
	CreatedAt   time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at" json:"updated_at"`
}

func NewUser(username, email string, role types.UserRole) *User {
	now := time.Now().UTC()
	if role == "" {
		role = types.UserRoleStaff
	}
	return &User{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_USER),
		Username:  username,
		Email:     email,
		Role:      role,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsAdmin reports whether the user may manage other accounts
func (u *User) IsAdmin() bool {
	return u.Role == types.UserRoleAdmin
}
