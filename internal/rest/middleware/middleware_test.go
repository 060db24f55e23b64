package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/betulabla/foundation/internal/rbac"
	"github.com/betulabla/foundation/internal/service"
	"github.com/betulabla/foundation/internal/testutil"
	"github.com/betulabla/foundation/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
)

type MiddlewareSuite struct {
	testutil.BaseServiceTestSuite
	authService service.AuthService
	permissions *PermissionMiddleware
}

func TestMiddleware(t *testing.T) {
	suite.Run(t, new(MiddlewareSuite))
}

func (s *MiddlewareSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	gin.SetMode(gin.TestMode)

	stores := s.GetStores()
	params := service.NewServiceParams(
		s.GetLogger(),
		s.GetConfig(),
		s.GetDB(),
		s.GetCache(),
		s.GetAuthProvider(),
		s.GetS3(),
		stores.AuthRepo,
		stores.UserRepo,
		stores.OrphanRepo,
		stores.BoreholeRepo,
		stores.ReportRepo,
	)
	s.authService = service.NewAuthService(params)

	rbacService, err := rbac.NewRBACService(s.GetConfig())
	s.Require().NoError(err)
	s.permissions = NewPermissionMiddleware(rbacService, s.GetLogger())
}

// router mounts a probe endpoint behind the authentication chain
func (s *MiddlewareSuite) router(extra ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(RequestIDMiddleware, ErrorHandler(s.GetLogger()))

	chain := append([]gin.HandlerFunc{AuthenticateMiddleware(s.authService, s.GetLogger())}, extra...)
	chain = append(chain, func(c *gin.Context) {
		ctx := c.Request.Context()
		c.JSON(http.StatusOK, gin.H{
			"user_id": types.GetUserID(ctx),
			"role":    types.GetUserRole(ctx),
			"jwt":     types.GetJWT(ctx) != "",
		})
	})
	r.GET("/probe", chain...)
	return r
}

func (s *MiddlewareSuite) accessToken(userID string, role types.UserRole) string {
	tokens, err := s.GetAuthProvider().GenerateTokens(userID, role)
	s.Require().NoError(err)
	return tokens.AccessToken
}

func (s *MiddlewareSuite) do(r http.Handler, header string) (*httptest.ResponseRecorder, map[string]any) {
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	if header != "" {
		req.Header.Set(types.HeaderAuthorization, header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var body map[string]any
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func (s *MiddlewareSuite) TestAuthenticateSetsCaller() {
	u := s.CreateUser("amina", "s3cret-pass", types.UserRoleCoordinator)

	w, body := s.do(s.router(), "Bearer "+s.accessToken(u.ID, u.Role))
	s.Equal(http.StatusOK, w.Code)
	s.Equal(u.ID, body["user_id"])
	s.Equal(string(types.UserRoleCoordinator), body["role"])
	s.Equal(true, body["jwt"])
	s.NotEmpty(w.Header().Get(types.HeaderRequestID))
}

func (s *MiddlewareSuite) TestAuthenticateRejects() {
	u := s.CreateUser("amina", "s3cret-pass", types.UserRoleStaff)
	refresh, err := s.GetAuthProvider().GenerateTokens(u.ID, u.Role)
	s.Require().NoError(err)

	tests := []struct {
		name   string
		header string
	}{
		{name: "missing header", header: ""},
		{name: "wrong scheme", header: "Token " + s.accessToken(u.ID, u.Role)},
		{name: "garbage token", header: "Bearer not-a-jwt"},
		{name: "refresh token", header: "Bearer " + refresh.RefreshToken},
		{name: "unknown user", header: "Bearer " + s.accessToken("missing-user", types.UserRoleAdmin)},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			w, body := s.do(s.router(), tt.header)
			s.Equal(http.StatusUnauthorized, w.Code)
			s.Equal(false, body["success"])
			s.NotEmpty(body["error"].(map[string]any)["message"])
		})
	}
}

func (s *MiddlewareSuite) TestRequirePermission() {
	admin := s.CreateUser("root", "s3cret-pass", types.UserRoleAdmin)
	staff := s.CreateUser("field", "s3cret-pass", types.UserRoleStaff)
	r := s.router(s.permissions.RequirePermission(rbac.EntityUser, rbac.ActionList))

	w, _ := s.do(r, "Bearer "+s.accessToken(admin.ID, admin.Role))
	s.Equal(http.StatusOK, w.Code)

	w, body := s.do(r, "Bearer "+s.accessToken(staff.ID, staff.Role))
	s.Equal(http.StatusForbidden, w.Code)
	details := body["error"].(map[string]any)["details"].(map[string]any)
	s.Equal(rbac.EntityUser, details["entity"])
	s.Equal(rbac.ActionList, details["action"])
}

func (s *MiddlewareSuite) TestRequestIDIsPropagated() {
	r := gin.New()
	r.Use(RequestIDMiddleware)
	r.GET("/id", func(c *gin.Context) {
		c.String(http.StatusOK, types.GetRequestID(c.Request.Context()))
	})

	req := httptest.NewRequest(http.MethodGet, "/id", nil)
	req.Header.Set(types.HeaderRequestID, "req-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	s.Equal("req-123", w.Body.String())
	s.Equal("req-123", w.Header().Get(types.HeaderRequestID))
}

func (s *MiddlewareSuite) TestCORSPreflight() {
	r := gin.New()
	r.Use(CORSMiddleware)
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	s.Equal(http.StatusNoContent, w.Code)
	s.Equal("*", w.Header().Get("Access-Control-Allow-Origin"))
	s.Contains(w.Header().Get("Access-Control-Allow-Methods"), http.MethodPatch)
}
