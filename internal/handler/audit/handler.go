package audit

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/patasfelizes/clinic-api/internal/handler"
	"github.com/patasfelizes/clinic-api/internal/service/audit"
)

type Handler struct {
	service *audit.Service
}

func NewHandler(service *audit.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/audit", h.Recent)
}

func (h *Handler) Recent(c *gin.Context) {
	limit := 100
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid limit"))
			return
		}
		limit = parsed
	}

	entries := h.service.Recent(c.Request.Context(), limit)
	c.JSON(http.StatusOK, handler.NewSuccessResponse(entries))
}
