package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	pingDB    func() error
	pingQueue func() error
}

func NewHealthHandler(pingDB, pingQueue func() error) *HealthHandler {
	return &HealthHandler{pingDB: pingDB, pingQueue: pingQueue}
}

func (h *HealthHandler) Healthz(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readyz checks the dependencies the request path actually needs.
func (h *HealthHandler) Readyz(ctx *gin.Context) {
	if h.pingDB != nil {
		if err := h.pingDB(); err != nil {
			ctx.JSON(http.StatusServiceUnavailable, gin.H{"status": "db unavailable"})
			return
		}
	}

	if h.pingQueue != nil {
		if err := h.pingQueue(); err != nil {
			ctx.JSON(http.StatusServiceUnavailable, gin.H{"status": "queue unavailable"})
			return
		}
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "ready"})
}
