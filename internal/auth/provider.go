package auth

import (
	"context"
	"time"

	"github.com/betulabla/foundation/internal/config"
	"github.com/betulabla/foundation/internal/domain/auth"
	"github.com/betulabla/foundation/internal/types"
)

// TokenPair is what login and registration hand back to the client
type TokenPair struct {
	AccessToken      string
	RefreshToken     string
	AccessExpiresAt  time.Time
	RefreshExpiresAt time.Time
}

type Provider interface {
	GetProvider() types.AuthProvider

	// Credentials
	HashPassword(password string) (string, error)
	VerifyPassword(credential *auth.Auth, password string) error

	// Tokens
	GenerateTokens(userID string, role types.UserRole) (*TokenPair, error)
	GenerateAccessToken(userID string, role types.UserRole) (string, time.Time, error)
	ValidateToken(ctx context.Context, token string, expected types.TokenType) (*auth.Claims, error)
}

func NewProvider(cfg *config.Configuration) Provider {
	return NewPasswordAuth(cfg)
}
