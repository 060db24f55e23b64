package service

import (
	"context"
	"time"

	"github.com/betulabla/foundation/internal/api/dto"
	"github.com/betulabla/foundation/internal/cache"
	"github.com/betulabla/foundation/internal/domain/auth"
	"github.com/betulabla/foundation/internal/domain/user"
	ierr "github.com/betulabla/foundation/internal/errors"
	"github.com/betulabla/foundation/internal/types"
)

type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.RefreshTokenResponse, error)
	Logout(ctx context.Context, req *dto.RefreshTokenRequest) error
	ChangePassword(ctx context.Context, req *dto.ChangePasswordRequest) error

	// Authenticate resolves a bearer access token to its active user
	Authenticate(ctx context.Context, token string) (*user.User, error)
}

type authService struct {
	ServiceParams
}

func NewAuthService(params ServiceParams) AuthService {
	return &authService{
		ServiceParams: params,
	}
}

// Register creates a user with a password credential and signs them in
func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.UserRepo.GetByUsername(ctx, req.Username)
	if err != nil && !ierr.IsNotFound(err) {
		return nil, err
	}
	if existing != nil {
		return nil, usernameTakenError(req.Username)
	}

	hashed, err := s.AuthProvider.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	u := req.ToUser()
	err = s.DB.WithTx(ctx, func(ctx context.Context) error {
		if err := s.UserRepo.Create(ctx, u); err != nil {
			if ierr.IsAlreadyExists(err) {
				return usernameTakenError(req.Username)
			}
			return err
		}

		credential := auth.NewAuth(u.ID, s.AuthProvider.GetProvider(), hashed)
		return s.AuthRepo.CreateAuth(ctx, credential)
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("user registered", "user_id", u.ID, "username", u.Username, "role", u.Role)
	return s.signIn(u)
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	u, err := s.UserRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		if ierr.IsNotFound(err) {
			return nil, invalidCredentialsError()
		}
		return nil, err
	}

	credential, err := s.AuthRepo.GetAuthByUserID(ctx, u.ID)
	if err != nil {
		if ierr.IsNotFound(err) {
			return nil, invalidCredentialsError()
		}
		return nil, err
	}

	if err := s.AuthProvider.VerifyPassword(credential, req.Password); err != nil {
		return nil, err
	}

	if !u.IsActive {
		return nil, ierr.NewError("user account is disabled").
			WithHint("User account is disabled").
			WithReportableDetails(map[string]any{"username": u.Username}).
			Mark(ierr.ErrUnauthenticated)
	}

	return s.signIn(u)
}

// RefreshToken exchanges a refresh token for a new access token carrying the user's current role
func (s *authService) RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.RefreshTokenResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	claims, err := s.AuthProvider.ValidateToken(ctx, req.Refresh, types.TokenTypeRefresh)
	if err != nil {
		return nil, err
	}

	if _, revoked := s.Cache.Get(ctx, revokedTokenKey(claims.TokenID)); revoked {
		return nil, ierr.NewError("refresh token has been revoked").
			WithHint("Token is blacklisted").
			Mark(ierr.ErrUnauthenticated)
	}

	u, err := s.activeUser(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}

	access, exp, err := s.AuthProvider.GenerateAccessToken(u.ID, u.Role)
	if err != nil {
		return nil, err
	}

	return &dto.RefreshTokenResponse{
		Access:          access,
		AccessExpiresAt: exp,
	}, nil
}

// Logout revokes the refresh token until it would have expired anyway
func (s *authService) Logout(ctx context.Context, req *dto.RefreshTokenRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	claims, err := s.AuthProvider.ValidateToken(ctx, req.Refresh, types.TokenTypeRefresh)
	if err != nil {
		return ierr.NewError("logout with an unusable refresh token").
			WithHint("Invalid token").
			WithMessage(err.Error()).
			Mark(ierr.ErrValidation)
	}

	if callerID := types.GetUserID(ctx); callerID != "" && callerID != claims.UserID {
		return ierr.NewError("refresh token belongs to another user").
			WithHint("Invalid token").
			Mark(ierr.ErrValidation)
	}

	ttl := time.Until(claims.ExpiresAt)
	if ttl <= 0 {
		return nil
	}

	s.Cache.Set(ctx, revokedTokenKey(claims.TokenID), claims.UserID, ttl)
	s.Logger.Infow("refresh token revoked", "user_id", claims.UserID, "token_id", claims.TokenID)
	return nil
}

func (s *authService) ChangePassword(ctx context.Context, req *dto.ChangePasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	credential, err := s.AuthRepo.GetAuthByUserID(ctx, types.GetUserID(ctx))
	if err != nil {
		return err
	}

	if err := s.AuthProvider.VerifyPassword(credential, req.OldPassword); err != nil {
		// a wrong old password is a form error, not a reason to drop the session
		return ierr.NewError("old password does not match").
			WithHint("Old password is incorrect").
			WithReportableDetails(map[string]any{"old_password": "Old password is incorrect"}).
			Mark(ierr.ErrValidation)
	}

	hashed, err := s.AuthProvider.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}

	credential.Token = hashed
	credential.UpdatedAt = time.Now().UTC()
	return s.AuthRepo.UpdateAuth(ctx, credential)
}

func (s *authService) Authenticate(ctx context.Context, token string) (*user.User, error) {
	claims, err := s.AuthProvider.ValidateToken(ctx, token, types.TokenTypeAccess)
	if err != nil {
		return nil, err
	}
	return s.activeUser(ctx, claims.UserID)
}

func (s *authService) activeUser(ctx context.Context, userID string) (*user.User, error) {
	u, err := s.UserRepo.GetByID(ctx, userID)
	if err != nil {
		if ierr.IsNotFound(err) {
			return nil, ierr.NewErrorf("user %s no longer exists", userID).
				WithHint("User not found").
				Mark(ierr.ErrUnauthenticated)
		}
		return nil, err
	}

	if !u.IsActive {
		return nil, ierr.NewError("user account is disabled").
			WithHint("User is inactive").
			Mark(ierr.ErrUnauthenticated)
	}
	return u, nil
}

func (s *authService) signIn(u *user.User) (*dto.AuthResponse, error) {
	tokens, err := s.AuthProvider.GenerateTokens(u.ID, u.Role)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		User:            dto.NewUserResponse(u),
		Access:          tokens.AccessToken,
		Refresh:         tokens.RefreshToken,
		AccessExpiresAt: tokens.AccessExpiresAt,
	}, nil
}

func revokedTokenKey(tokenID string) string {
	return cache.GenerateKey(cache.PrefixRevokedToken, tokenID)
}

func usernameTakenError(username string) error {
	return ierr.NewErrorf("username %s already exists", username).
		WithHint("A user with that username already exists.").
		WithReportableDetails(map[string]any{
			"username": "A user with that username already exists.",
		}).
		Mark(ierr.ErrValidation)
}

func invalidCredentialsError() error {
	return ierr.NewError("invalid username or password").
		WithHint("Invalid credentials").
		Mark(ierr.ErrUnauthenticated)
}
