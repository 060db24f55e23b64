package auth

import (
	"context"
	"testing"
	"time"

	"github.com/betulabla/foundation/internal/config"
	"github.com/betulabla/foundation/internal/domain/auth"
	ierr "github.com/betulabla/foundation/internal/errors"
	"github.com/betulabla/foundation/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProvider() *passwordAuth {
	cfg := config.GetDefaultConfig()
	cfg.Auth.Secret = "test-secret"
	return NewPasswordAuth(cfg)
}

func TestPasswordRoundTrip(t *testing.T) {
	p := newTestProvider()

	hash, err := p.HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)

	credential := auth.NewAuth("user_1", types.AuthProviderPassword, hash)
	assert.NoError(t, p.VerifyPassword(credential, "s3cret-pass"))

	err = p.VerifyPassword(credential, "wrong")
	assert.True(t, ierr.IsUnauthenticated(err))

	credential.Status = types.StatusInactive
	assert.True(t, ierr.IsUnauthenticated(p.VerifyPassword(credential, "s3cret-pass")))
}

func TestTokensCarryTypeAndRole(t *testing.T) {
	p := newTestProvider()

	pair, err := p.GenerateTokens("user_1", types.UserRoleCoordinator)
	require.NoError(t, err)
	assert.True(t, pair.RefreshExpiresAt.After(pair.AccessExpiresAt))

	claims, err := p.ValidateToken(context.Background(), pair.AccessToken, types.TokenTypeAccess)
	require.NoError(t, err)
	assert.Equal(t, "user_1", claims.UserID)
	assert.Equal(t, types.UserRoleCoordinator, claims.Role)
	assert.NotEmpty(t, claims.TokenID)

	refreshClaims, err := p.ValidateToken(context.Background(), pair.RefreshToken, types.TokenTypeRefresh)
	require.NoError(t, err)
	assert.NotEqual(t, claims.TokenID, refreshClaims.TokenID)
}

func TestValidateTokenRejectsWrongType(t *testing.T) {
	p := newTestProvider()
	pair, err := p.GenerateTokens("user_1", types.UserRoleStaff)
	require.NoError(t, err)

	_, err = p.ValidateToken(context.Background(), pair.AccessToken, types.TokenTypeRefresh)
	assert.True(t, ierr.IsUnauthenticated(err))

	_, err = p.ValidateToken(context.Background(), pair.RefreshToken, types.TokenTypeAccess)
	assert.True(t, ierr.IsUnauthenticated(err))
}

func TestValidateTokenRejectsExpiredAndForeign(t *testing.T) {
	p := newTestProvider()
	p.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	access, _, err := p.GenerateAccessToken("user_1", types.UserRoleStaff)
	require.NoError(t, err)

	p.now = time.Now
	_, err = p.ValidateToken(context.Background(), access, types.TokenTypeAccess)
	assert.True(t, ierr.IsUnauthenticated(err))

	other := newTestProvider()
	other.AuthConfig.Secret = "another-secret"
	token, _, err := other.GenerateAccessToken("user_1", types.UserRoleStaff)
	require.NoError(t, err)

	_, err = p.ValidateToken(context.Background(), token, types.TokenTypeAccess)
	assert.True(t, ierr.IsUnauthenticated(err))

	_, err = p.ValidateToken(context.Background(), "not-a-token", types.TokenTypeAccess)
	assert.True(t, ierr.IsUnauthenticated(err))
}
