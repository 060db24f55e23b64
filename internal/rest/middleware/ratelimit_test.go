package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/betulabla/foundation/internal/config"
	"github.com/betulabla/foundation/internal/logger"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newLimitedRouter(cfg *config.Configuration, now func() time.Time) *gin.Engine {
	gin.SetMode(gin.TestMode)
	rl := NewRateLimiter(cfg)
	rl.now = now

	r := gin.New()
	r.Use(ErrorHandler(logger.NewNopLogger()))
	r.POST("/login", rl.Middleware(), func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func post(r http.Handler, ip string) int {
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = ip + ":4242"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Code
}

func TestRateLimiter(t *testing.T) {
	cfg := config.GetDefaultConfig()
	cfg.RateLimit = config.RateLimitConfig{Enabled: true, RequestsPerMinute: 6, Burst: 2}

	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	r := newLimitedRouter(cfg, func() time.Time { return now })

	assert.Equal(t, http.StatusOK, post(r, "10.0.0.1"))
	assert.Equal(t, http.StatusOK, post(r, "10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, post(r, "10.0.0.1"))

	// buckets are per client
	assert.Equal(t, http.StatusOK, post(r, "10.0.0.2"))

	// one token refills every ten seconds
	now = now.Add(10 * time.Second)
	assert.Equal(t, http.StatusOK, post(r, "10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, post(r, "10.0.0.1"))
}

func TestRateLimiterDisabled(t *testing.T) {
	cfg := config.GetDefaultConfig()
	cfg.RateLimit = config.RateLimitConfig{Enabled: false, RequestsPerMinute: 1, Burst: 1}
	r := newLimitedRouter(cfg, time.Now)

	for range 5 {
		assert.Equal(t, http.StatusOK, post(r, "10.0.0.1"))
	}
}
