package postgres

import (
	"context"
	"time"

	"github.com/betulabla/foundation/internal/domain/auth"
	ierr "github.com/betulabla/foundation/internal/errors"
	"github.com/betulabla/foundation/internal/logger"
	"github.com/betulabla/foundation/internal/postgres"
	"github.com/betulabla/foundation/internal/types"
)

type authRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewAuthRepository(db *postgres.DB, logger *logger.Logger) auth.Repository {
	return &authRepository{db: db, logger: logger}
}

func (r *authRepository) CreateAuth(ctx context.Context, a *auth.Auth) error {
	if err := validateProvider(a.Provider); err != nil {
		return err
	}

	query := `INSERT INTO auths (user_id, provider, token, status, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.db.GetQuerier(ctx).ExecContext(ctx, query, a.UserID, a.Provider, a.Token, a.Status, a.CreatedAt, a.UpdatedAt)
	return postgres.WrapError(err, "credential")
}

func (r *authRepository) GetAuthByUserID(ctx context.Context, userID string) (*auth.Auth, error) {
	query := `SELECT user_id, provider, token, status, created_at, updated_at FROM auths WHERE user_id = $1`
	var a auth.Auth
	if err := r.db.GetQuerier(ctx).GetContext(ctx, &a, query, userID); err != nil {
		return nil, postgres.WrapError(err, "credential")
	}
	return &a, nil
}

func (r *authRepository) UpdateAuth(ctx context.Context, a *auth.Auth) error {
	if err := validateProvider(a.Provider); err != nil {
		return err
	}

	a.UpdatedAt = time.Now().UTC()
	query := `UPDATE auths SET provider = $1, token = $2, status = $3, updated_at = $4 WHERE user_id = $5`
	result, err := r.db.GetQuerier(ctx).ExecContext(ctx, query, a.Provider, a.Token, a.Status, a.UpdatedAt, a.UserID)
	if err != nil {
		return postgres.WrapError(err, "credential")
	}
	return expectAffected(result, "credential")
}

func (r *authRepository) DeleteAuth(ctx context.Context, userID string) error {
	_, err := r.db.GetQuerier(ctx).ExecContext(ctx, `DELETE FROM auths WHERE user_id = $1`, userID)
	return postgres.WrapError(err, "credential")
}

// only self managed providers are stored here
func validateProvider(provider types.AuthProvider) error {
	if provider != types.AuthProviderPassword {
		return ierr.NewErrorf("invalid auth provider: %s", provider).
			WithHint("Invalid auth provider").
			Mark(ierr.ErrValidation)
	}
	return nil
}
