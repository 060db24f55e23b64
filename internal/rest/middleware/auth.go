package middleware

import (
	"context"
	"strings"

	ierr "github.com/betulabla/foundation/internal/errors"
	"github.com/betulabla/foundation/internal/logger"
	"github.com/betulabla/foundation/internal/service"
	"github.com/betulabla/foundation/internal/types"
	"github.com/gin-gonic/gin"
)

const bearerPrefix = "Bearer "

// AuthenticateMiddleware resolves the bearer access token to an active user
// and stores the caller identity in the request context
func AuthenticateMiddleware(authService service.AuthService, logger *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(types.HeaderAuthorization)
		if header == "" {
			abortUnauthenticated(c, ierr.NewError("missing authorization header").
				WithHint("Authentication credentials were not provided.").
				Mark(ierr.ErrUnauthenticated))
			return
		}

		if !strings.HasPrefix(header, bearerPrefix) {
			abortUnauthenticated(c, ierr.NewError("authorization header is not a bearer token").
				WithHint("Authorization header must use the Bearer scheme").
				Mark(ierr.ErrUnauthenticated))
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
		u, err := authService.Authenticate(c.Request.Context(), token)
		if err != nil {
			logger.Debugw("rejected access token", "error", err, "path", c.Request.URL.Path)
			abortUnauthenticated(c, err)
			return
		}

		ctx := c.Request.Context()
		ctx = types.SetUserID(ctx, u.ID)
		ctx = types.SetUserRole(ctx, u.Role)
		ctx = context.WithValue(ctx, types.CtxJWT, token)
		c.Request = c.Request.WithContext(ctx)

		c.Set(string(types.CtxUserID), u.ID)
		c.Next()
	}
}

func abortUnauthenticated(c *gin.Context, err error) {
	c.Error(err)
	c.Abort()
}
