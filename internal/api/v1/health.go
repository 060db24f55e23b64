package v1

import (
	"context"
	"net/http"
	"time"

	"github.com/betulabla/foundation/internal/api/dto"
	"github.com/betulabla/foundation/internal/logger"
	"github.com/betulabla/foundation/internal/postgres"
	"github.com/gin-gonic/gin"
)

const (
	apiMessage = "Betul Abla Foundation API"
	apiVersion = "1.0"

	pingTimeout = 2 * time.Second
)

type HealthHandler struct {
	db     postgres.IClient
	logger *logger.Logger
}

func NewHealthHandler(db postgres.IClient, logger *logger.Logger) *HealthHandler {
	return &HealthHandler{
		db:     db,
		logger: logger,
	}
}

// @Summary Health check
// @Description Reports ok while the database answers
// @Tags Health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Failure 503 {object} dto.HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), pingTimeout)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		h.logger.Errorw("health check failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, dto.HealthResponse{Status: "unavailable"})
		return
	}

	c.JSON(http.StatusOK, dto.HealthResponse{Status: "ok"})
}

// @Summary API root
// @Description Lists the endpoint groups
// @Tags Health
// @Produce json
// @Success 200 {object} dto.RootResponse
// @Router / [get]
func (h *HealthHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, dto.RootResponse{
		Message: apiMessage,
		Version: apiVersion,
		Endpoints: map[string]string{
			"auth":      "/api/auth/",
			"orphans":   "/api/orphans/",
			"boreholes": "/api/boreholes/",
			"reports":   "/api/reports/",
			"docs":      "/swagger/index.html",
		},
	})
}
