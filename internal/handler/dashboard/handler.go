package dashboard

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/patasfelizes/clinic-api/internal/handler"
	"github.com/patasfelizes/clinic-api/internal/service/dashboard"
	"github.com/patasfelizes/clinic-api/pkg/auth"
)

type Handler struct {
	service *dashboard.Service
}

func NewHandler(service *dashboard.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/dashboard/stats", h.Stats)
}

// Stats returns the figures the caller's role may see. The role gate
// lives in the service: every authenticated user can hit the route.
func (h *Handler) Stats(c *gin.Context) {
	claims, ok := auth.ClaimsFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("not authenticated"))
		return
	}

	stats, err := h.service.Stats(c.Request.Context(), claims.Role)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(stats))
}
