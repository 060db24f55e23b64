package middleware

import (
	ierr "github.com/betulabla/foundation/internal/errors"
	"github.com/betulabla/foundation/internal/logger"
	"github.com/betulabla/foundation/internal/rbac"
	"github.com/betulabla/foundation/internal/types"
	"github.com/gin-gonic/gin"
)

// PermissionMiddleware checks the caller role against the RBAC matrix
type PermissionMiddleware struct {
	rbacService *rbac.RBACService
	logger      *logger.Logger
}

func NewPermissionMiddleware(rbacService *rbac.RBACService, logger *logger.Logger) *PermissionMiddleware {
	return &PermissionMiddleware{
		rbacService: rbacService,
		logger:      logger,
	}
}

// RequirePermission must run after AuthenticateMiddleware
func (pm *PermissionMiddleware) RequirePermission(entity string, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		role := types.GetUserRole(ctx)

		if role == "" {
			c.Error(ierr.NewError("no authenticated caller").
				WithHint("Authentication credentials were not provided.").
				Mark(ierr.ErrUnauthenticated))
			c.Abort()
			return
		}

		if !pm.rbacService.HasPermission(role, entity, action) {
			pm.logger.Infow("permission denied",
				"user_id", types.GetUserID(ctx),
				"role", role,
				"entity", entity,
				"action", action,
			)
			c.Error(ierr.NewErrorf("role %s may not %s %s", role, action, entity).
				WithHint("You do not have permission to perform this action.").
				WithReportableDetails(map[string]any{
					"entity": entity,
					"action": action,
				}).
				Mark(ierr.ErrPermissionDenied))
			c.Abort()
			return
		}

		c.Next()
	}
}
