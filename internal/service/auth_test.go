package service

import (
	"testing"

	"github.com/betulabla/foundation/internal/api/dto"
	ierr "github.com/betulabla/foundation/internal/errors"
	"github.com/betulabla/foundation/internal/testutil"
	"github.com/betulabla/foundation/internal/types"
	"github.com/stretchr/testify/suite"
)

type AuthServiceSuite struct {
	testutil.BaseServiceTestSuite
	service AuthService
}

func TestAuthService(t *testing.T) {
	suite.Run(t, new(AuthServiceSuite))
}

func (s *AuthServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewAuthService(newTestParams(&s.BaseServiceTestSuite))
}

func (s *AuthServiceSuite) registerRequest(username string) *dto.RegisterRequest {
	return &dto.RegisterRequest{
		Username:        username,
		Email:           username + "@example.org",
		Password:        "s3cretpass",
		PasswordConfirm: "s3cretpass",
		FullName:        "Amina Yusuf",
	}
}

func (s *AuthServiceSuite) TestRegister() {
	resp, err := s.service.Register(s.GetContext(), s.registerRequest("amina"))
	s.Require().NoError(err)
	s.Equal("amina", resp.User.Username)
	s.Equal(types.UserRoleStaff, resp.User.Role)
	s.True(resp.User.IsActive)
	s.NotEmpty(resp.Access)
	s.NotEmpty(resp.Refresh)

	credential, err := s.GetStores().AuthRepo.GetAuthByUserID(s.GetContext(), resp.User.ID)
	s.Require().NoError(err)
	s.NotEqual("s3cretpass", credential.Token)
}

func (s *AuthServiceSuite) TestRegisterValidation() {
	testCases := []struct {
		name   string
		mutate func(r *dto.RegisterRequest)
	}{
		{
			name:   "password_mismatch",
			mutate: func(r *dto.RegisterRequest) { r.PasswordConfirm = "different1" },
		},
		{
			name: "short_password",
			mutate: func(r *dto.RegisterRequest) {
				r.Password = "short"
				r.PasswordConfirm = "short"
			},
		},
		{
			name:   "unknown_role",
			mutate: func(r *dto.RegisterRequest) { r.Role = "director" },
		},
		{
			name:   "missing_email",
			mutate: func(r *dto.RegisterRequest) { r.Email = "" },
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			req := s.registerRequest("user_" + tc.name)
			tc.mutate(req)
			_, err := s.service.Register(s.GetContext(), req)
			s.Require().Error(err)
			s.True(ierr.IsValidation(err))
		})
	}
}

func (s *AuthServiceSuite) TestRegisterDuplicateUsername() {
	_, err := s.service.Register(s.GetContext(), s.registerRequest("amina"))
	s.Require().NoError(err)

	_, err = s.service.Register(s.GetContext(), s.registerRequest("amina"))
	s.Require().Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *AuthServiceSuite) TestLogin() {
	u := s.CreateUser("coordinator1", "s3cretpass", types.UserRoleCoordinator)

	resp, err := s.service.Login(s.GetContext(), &dto.LoginRequest{Username: "coordinator1", Password: "s3cretpass"})
	s.Require().NoError(err)
	s.Equal(u.ID, resp.User.ID)
	s.Equal(types.UserRoleCoordinator, resp.User.Role)

	claims, err := s.GetAuthProvider().ValidateToken(s.GetContext(), resp.Access, types.TokenTypeAccess)
	s.Require().NoError(err)
	s.Equal(u.ID, claims.UserID)
	s.Equal(types.UserRoleCoordinator, claims.Role)
}

func (s *AuthServiceSuite) TestLoginFailures() {
	inactive := s.CreateUser("gone", "s3cretpass", types.UserRoleStaff)
	inactive.IsActive = false
	s.Require().NoError(s.GetStores().UserRepo.Update(s.GetContext(), inactive))
	s.CreateUser("staff1", "s3cretpass", types.UserRoleStaff)

	testCases := []struct {
		name     string
		username string
		password string
	}{
		{"wrong_password", "staff1", "wrongpass"},
		{"unknown_user", "nobody", "s3cretpass"},
		{"inactive_user", "gone", "s3cretpass"},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := s.service.Login(s.GetContext(), &dto.LoginRequest{Username: tc.username, Password: tc.password})
			s.Require().Error(err)
			s.True(ierr.IsUnauthenticated(err))
		})
	}
}

func (s *AuthServiceSuite) TestRefreshToken() {
	s.CreateUser("staff1", "s3cretpass", types.UserRoleStaff)
	login, err := s.service.Login(s.GetContext(), &dto.LoginRequest{Username: "staff1", Password: "s3cretpass"})
	s.Require().NoError(err)

	resp, err := s.service.RefreshToken(s.GetContext(), &dto.RefreshTokenRequest{Refresh: login.Refresh})
	s.Require().NoError(err)
	s.NotEmpty(resp.Access)

	_, err = s.service.Authenticate(s.GetContext(), resp.Access)
	s.NoError(err)

	// access tokens cannot be used as refresh tokens
	_, err = s.service.RefreshToken(s.GetContext(), &dto.RefreshTokenRequest{Refresh: login.Access})
	s.Require().Error(err)
	s.True(ierr.IsUnauthenticated(err))

	_, err = s.service.RefreshToken(s.GetContext(), &dto.RefreshTokenRequest{Refresh: "not-a-token"})
	s.Require().Error(err)
	s.True(ierr.IsUnauthenticated(err))
}

func (s *AuthServiceSuite) TestRefreshTokenInactiveUser() {
	u := s.CreateUser("staff1", "s3cretpass", types.UserRoleStaff)
	login, err := s.service.Login(s.GetContext(), &dto.LoginRequest{Username: "staff1", Password: "s3cretpass"})
	s.Require().NoError(err)

	u.IsActive = false
	s.Require().NoError(s.GetStores().UserRepo.Update(s.GetContext(), u))

	_, err = s.service.RefreshToken(s.GetContext(), &dto.RefreshTokenRequest{Refresh: login.Refresh})
	s.Require().Error(err)
	s.True(ierr.IsUnauthenticated(err))
}

func (s *AuthServiceSuite) TestLogoutRevokesRefreshToken() {
	u := s.CreateUser("staff1", "s3cretpass", types.UserRoleStaff)
	login, err := s.service.Login(s.GetContext(), &dto.LoginRequest{Username: "staff1", Password: "s3cretpass"})
	s.Require().NoError(err)

	ctx := testutil.AsUser(s.GetContext(), u.ID, u.Role)
	s.Require().NoError(s.service.Logout(ctx, &dto.RefreshTokenRequest{Refresh: login.Refresh}))

	_, err = s.service.RefreshToken(ctx, &dto.RefreshTokenRequest{Refresh: login.Refresh})
	s.Require().Error(err)
	s.True(ierr.IsUnauthenticated(err))
}

func (s *AuthServiceSuite) TestLogoutRejectsForeignToken() {
	s.CreateUser("staff1", "s3cretpass", types.UserRoleStaff)
	other := s.CreateUser("staff2", "s3cretpass", types.UserRoleStaff)
	login, err := s.service.Login(s.GetContext(), &dto.LoginRequest{Username: "staff1", Password: "s3cretpass"})
	s.Require().NoError(err)

	ctx := testutil.AsUser(s.GetContext(), other.ID, other.Role)
	err = s.service.Logout(ctx, &dto.RefreshTokenRequest{Refresh: login.Refresh})
	s.Require().Error(err)
	s.True(ierr.IsValidation(err))

	err = s.service.Logout(ctx, &dto.RefreshTokenRequest{Refresh: "garbage"})
	s.Require().Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *AuthServiceSuite) TestChangePassword() {
	u := s.CreateUser("staff1", "s3cretpass", types.UserRoleStaff)
	ctx := testutil.AsUser(s.GetContext(), u.ID, u.Role)

	err := s.service.ChangePassword(ctx, &dto.ChangePasswordRequest{
		OldPassword:     "wrongpass",
		NewPassword:     "n3wpassword",
		ConfirmPassword: "n3wpassword",
	})
	s.Require().Error(err)
	s.True(ierr.IsValidation(err))

	err = s.service.ChangePassword(ctx, &dto.ChangePasswordRequest{
		OldPassword:     "s3cretpass",
		NewPassword:     "n3wpassword",
		ConfirmPassword: "other-password",
	})
	s.Require().Error(err)
	s.True(ierr.IsValidation(err))

	s.Require().NoError(s.service.ChangePassword(ctx, &dto.ChangePasswordRequest{
		OldPassword:     "s3cretpass",
		NewPassword:     "n3wpassword",
		ConfirmPassword: "n3wpassword",
	}))

	_, err = s.service.Login(ctx, &dto.LoginRequest{Username: "staff1", Password: "s3cretpass"})
	s.True(ierr.IsUnauthenticated(err))

	_, err = s.service.Login(ctx, &dto.LoginRequest{Username: "staff1", Password: "n3wpassword"})
	s.NoError(err)
}

func (s *AuthServiceSuite) TestAuthenticate() {
	u := s.CreateUser("staff1", "s3cretpass", types.UserRoleStaff)
	tokens, err := s.GetAuthProvider().GenerateTokens(u.ID, u.Role)
	s.Require().NoError(err)

	got, err := s.service.Authenticate(s.GetContext(), tokens.AccessToken)
	s.Require().NoError(err)
	s.Equal(u.ID, got.ID)

	_, err = s.service.Authenticate(s.GetContext(), tokens.RefreshToken)
	s.True(ierr.IsUnauthenticated(err))

	s.Require().NoError(s.GetStores().UserRepo.Delete(s.GetContext(), u.ID))
	_, err = s.service.Authenticate(s.GetContext(), tokens.AccessToken)
	s.True(ierr.IsUnauthenticated(err))
}
