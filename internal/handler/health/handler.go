package health

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	started time.Time
}

func NewHandler() *Handler {
	return &Handler{started: time.Now()}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/health", h.Health)
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"uptime": time.Since(h.started).String(),
	})
}
