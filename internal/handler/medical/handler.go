package medical

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/patasfelizes/clinic-api/internal/handler"
	"github.com/patasfelizes/clinic-api/internal/model"
	"github.com/patasfelizes/clinic-api/internal/service/medical"
)

type Handler struct {
	service medical.MedicalService
}

func NewHandler(service medical.MedicalService) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	records := r.Group("/medical-records")
	{
		records.POST("", h.CreateRecord)
		records.GET("", h.ListRecords)
		records.GET("/:id", h.GetRecord)
	}
}

func (h *Handler) CreateRecord(c *gin.Context) {
	var req model.CreateMedicalRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	record, err := h.service.CreateRecord(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(record))
}

func (h *Handler) GetRecord(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid record ID"))
		return
	}

	record, err := h.service.GetRecord(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(record))
}

func (h *Handler) ListRecords(c *gin.Context) {
	records, err := h.service.ListRecords(c.Request.Context())
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(records))
}
