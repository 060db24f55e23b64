package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/betulabla/foundation/internal/config"
	"github.com/betulabla/foundation/internal/domain/auth"
	ierr "github.com/betulabla/foundation/internal/errors"
	"github.com/betulabla/foundation/internal/types"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

type passwordAuth struct {
	AuthConfig config.AuthConfig
	now        func() time.Time
}

func NewPasswordAuth(cfg *config.Configuration) *passwordAuth {
	return &passwordAuth{
		AuthConfig: cfg.Auth,
		now:        time.Now,
	}
}

func (p *passwordAuth) GetProvider() types.AuthProvider {
	return types.AuthProviderPassword
}

func (p *passwordAuth) HashPassword(password string) (string, error) {
	if password == "" {
		return "", ierr.NewError("password is required").
			WithHint("Password is required").
			Mark(ierr.ErrValidation)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", ierr.WithError(err).
			WithHint("Failed to hash password").
			Mark(ierr.ErrSystem)
	}
	return string(hashed), nil
}

func (p *passwordAuth) VerifyPassword(credential *auth.Auth, password string) error {
	if credential == nil || credential.Status != types.StatusActive {
		return ierr.NewError("credential is not active").
			WithHint("Invalid credentials").
			Mark(ierr.ErrUnauthenticated)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(credential.Token), []byte(password)); err != nil {
		return ierr.NewError("invalid password").
			WithHint("Invalid credentials").
			Mark(ierr.ErrUnauthenticated)
	}
	return nil
}

func (p *passwordAuth) GenerateTokens(userID string, role types.UserRole) (*TokenPair, error) {
	access, accessExp, err := p.GenerateAccessToken(userID, role)
	if err != nil {
		return nil, err
	}

	refreshExp := p.now().Add(p.AuthConfig.RefreshTokenTTL)
	refresh, err := p.sign(userID, role, types.TokenTypeRefresh, refreshExp)
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:      access,
		RefreshToken:     refresh,
		AccessExpiresAt:  accessExp,
		RefreshExpiresAt: refreshExp,
	}, nil
}

func (p *passwordAuth) GenerateAccessToken(userID string, role types.UserRole) (string, time.Time, error) {
	exp := p.now().Add(p.AuthConfig.AccessTokenTTL)
	token, err := p.sign(userID, role, types.TokenTypeAccess, exp)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, exp, nil
}

func (p *passwordAuth) ValidateToken(ctx context.Context, token string, expected types.TokenType) (*auth.Claims, error) {
	parsedToken, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ierr.NewError("unexpected signing method").
				WithHint(fmt.Sprintf("unexpected signing method: %v", token.Header["alg"])).
				Mark(ierr.ErrUnauthenticated)
		}
		return []byte(p.AuthConfig.Secret), nil
	})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Token is invalid or expired").
			Mark(ierr.ErrUnauthenticated)
	}

	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	if !ok || !parsedToken.Valid {
		return nil, ierr.NewError("invalid token claims").
			WithHint("Token is invalid or expired").
			Mark(ierr.ErrUnauthenticated)
	}

	userID, _ := claims["user_id"].(string)
	if userID == "" {
		return nil, ierr.NewError("token missing user ID").
			WithHint("Token is invalid or expired").
			Mark(ierr.ErrUnauthenticated)
	}

	tokenType, _ := claims["token_type"].(string)
	if types.TokenType(tokenType) != expected {
		return nil, ierr.NewErrorf("expected %s token, got %q", expected, tokenType).
			WithHintf("Token has wrong type, expected %s token", expected).
			Mark(ierr.ErrUnauthenticated)
	}

	role, _ := claims["role"].(string)
	jti, _ := claims["jti"].(string)

	var expiresAt time.Time
	if exp, ok := claims["exp"].(float64); ok {
		expiresAt = time.Unix(int64(exp), 0)
	}

	return &auth.Claims{
		UserID:    userID,
		Role:      types.UserRole(role),
		TokenType: types.TokenType(tokenType),
		TokenID:   jti,
		ExpiresAt: expiresAt,
	}, nil
}

func (p *passwordAuth) sign(userID string, role types.UserRole, tokenType types.TokenType, exp time.Time) (string, error) {
	claims := jwt.MapClaims{
		"user_id":    userID,
		"role":       string(role),
		"token_type": string(tokenType),
		"jti":        types.GenerateUUID(),
		"exp":        exp.Unix(),
		"iat":        p.now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(p.AuthConfig.Secret))
	if err != nil {
		return "", ierr.WithError(err).
			WithHint("Failed to generate token").
			Mark(ierr.ErrSystem)
	}
	return signed, nil
}
