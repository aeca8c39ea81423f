package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports process liveness
type HealthHandler interface {
	Healthz(ctx *gin.Context)
}

type healthHandler struct {
	startedAt time.Time
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler() HealthHandler {
	return &healthHandler{
		startedAt: time.Now(),
	}
}

// Healthz returns the service status and uptime in seconds
func (handler *healthHandler) Healthz(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, HealthResponse{
		Status: "healthy",
		Uptime: time.Since(handler.startedAt).Seconds(),
	})
}
