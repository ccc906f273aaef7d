package tutor

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/patasfelizes/clinic-api/internal/handler"
	"github.com/patasfelizes/clinic-api/internal/model"
	"github.com/patasfelizes/clinic-api/internal/service/patient"
	"github.com/patasfelizes/clinic-api/internal/service/tutor"
)

type Handler struct {
	service    tutor.TutorService
	patientSvc patient.PatientService
}

func NewHandler(service tutor.TutorService, patientSvc patient.PatientService) *Handler {
	return &Handler{service: service, patientSvc: patientSvc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	tutors := r.Group("/tutors")
	{
		tutors.POST("", h.CreateTutor)
		tutors.GET("", h.ListTutors)
		tutors.GET("/:id", h.GetTutor)
		tutors.GET("/:id/patients", h.ListPatients)
	}
}

func (h *Handler) CreateTutor(c *gin.Context) {
	var req model.CreateTutorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	tutor, err := h.service.CreateTutor(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(tutor))
}

func (h *Handler) GetTutor(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid tutor ID"))
		return
	}

	tutor, err := h.service.GetTutor(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(tutor))
}

func (h *Handler) ListTutors(c *gin.Context) {
	tutors, err := h.service.ListTutors(c.Request.Context())
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(tutors))
}

func (h *Handler) ListPatients(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid tutor ID"))
		return
	}

	patients, err := h.patientSvc.ListByTutor(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(patients))
}
