package auth

import (
	"time"

	"github.com/betulabla/foundation/internal/types"
)

type Auth struct {
	UserID    string             `db:"user_id" json:"user_id"`
	Provider  types.AuthProvider `db:"provider" json:"provider"`
	Token     string             `db:"token" json:"token"` // bcrypt hash for the password provider
	Status    types.Status       `db:"status" json:"status"`
	CreatedAt time.Time          `db:"created_at" json:"created_at"`
	UpdatedAt time.Time          `db:"updated_at" json:"updated_at"`
}

// Claims is the verified content of a bearer token
type Claims struct {
	UserID    string
	Role      types.UserRole
	TokenType types.TokenType
	TokenID   string
	ExpiresAt time.Time
}

func NewAuth(userID string, provider types.AuthProvider, token string) *Auth {
	now := time.Now().UTC()
	return &Auth{
		UserID:    userID,
		Provider:  provider,
		Token:     token,
		Status:    types.StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
