package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"legalteam/internal/bootstrap"
)

type HealthHandler struct {
	app *bootstrap.App
}

func NewHealthHandler(app *bootstrap.App) *HealthHandler {
	return &HealthHandler{app: app}
}

// Check reports process health. Model and vector store credentials are
// supplied per session, so there are no shared dependencies to ping.
func (h *HealthHandler) Check(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"app":           h.app.Config.App.Name,
		"env":           h.app.Config.App.Env,
		"uptime_sec":    int(time.Since(h.app.StartedAt).Seconds()),
		"live_sessions": h.app.Sessions.Count(),
	})
}
