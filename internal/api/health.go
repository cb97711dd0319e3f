// Package api exposes the HTTP liveness surface. The bot itself talks
// Telegram; container orchestrators talk to these endpoints.
package api

import (
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthResponse is the /health payload
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Uptime  string `json:"uptime"`
}

// Handler holds the health endpoint dependencies
type Handler struct {
	version      string
	registryPath string
	started      time.Time
}

// NewHandler creates a new health Handler
func NewHandler(version, registryPath string) *Handler {
	return &Handler{
		version:      version,
		registryPath: registryPath,
		started:      time.Now(),
	}
}

// SetupRoutes registers the health routes on the router
func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.GET("/health", h.health)
	router.GET("/readyz", h.ready)
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: h.version,
		Uptime:  time.Since(h.started).Round(time.Second).String(),
	})
}

// ready reports 503 until the registry file is in place, so orchestrators
// hold traffic off a half-provisioned instance.
func (h *Handler) ready(c *gin.Context) {
	if _, err := os.Stat(h.registryPath); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
