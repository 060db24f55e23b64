package middleware

import (
	"time"

	"github.com/betulabla/foundation/internal/config"
	"github.com/betulabla/foundation/internal/types"
	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
)

// SentryMiddleware captures panics and performance data when Sentry is enabled
func SentryMiddleware(cfg *config.Configuration) gin.HandlerFunc {
	if !cfg.Sentry.Enabled {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return sentrygin.New(sentrygin.Options{
		Repanic:         true,
		WaitForDelivery: false,
		Timeout:         2 * time.Second,
	})
}

// SentryScopeMiddleware tags the request hub with the caller, run it after authentication
func SentryScopeMiddleware(cfg *config.Configuration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !cfg.Sentry.Enabled {
			c.Next()
			return
		}

		if hub := sentrygin.GetHubFromContext(c); hub != nil {
			ctx := c.Request.Context()
			hub.Scope().SetUser(sentry.User{ID: types.GetUserID(ctx)})
			hub.Scope().SetTag("role", string(types.GetUserRole(ctx)))
			hub.Scope().SetTag("request_id", types.GetRequestID(ctx))
		}
		c.Next()
	}
}
