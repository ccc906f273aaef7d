package sale

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/patasfelizes/clinic-api/internal/handler"
	"github.com/patasfelizes/clinic-api/internal/model"
	"github.com/patasfelizes/clinic-api/internal/service/sale"
)

type Handler struct {
	service sale.SaleService
}

func NewHandler(service sale.SaleService) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	sales := r.Group("/sales")
	{
		sales.POST("", h.CreateSale)
		sales.GET("", h.ListSales)
		sales.GET("/:id", h.GetSale)
	}
}

func (h *Handler) CreateSale(c *gin.Context) {
	var req model.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	s, err := h.service.CreateSale(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(s))
}

func (h *Handler) GetSale(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid sale ID"))
		return
	}

	s, err := h.service.GetSale(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(s))
}

func (h *Handler) ListSales(c *gin.Context) {
	sales, err := h.service.ListSales(c.Request.Context())
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(sales))
}
