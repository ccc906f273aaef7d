package patient

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/patasfelizes/clinic-api/internal/handler"
	"github.com/patasfelizes/clinic-api/internal/model"
	"github.com/patasfelizes/clinic-api/internal/service/appointment"
	"github.com/patasfelizes/clinic-api/internal/service/medical"
	"github.com/patasfelizes/clinic-api/internal/service/patient"
)

type Handler struct {
	service        patient.PatientService
	appointmentSvc appointment.AppointmentService
	medicalSvc     medical.MedicalService
}

func NewHandler(service patient.PatientService, appointmentSvc appointment.AppointmentService, medicalSvc medical.MedicalService) *Handler {
	return &Handler{service: service, appointmentSvc: appointmentSvc, medicalSvc: medicalSvc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	patients := r.Group("/patients")
	{
		patients.POST("", h.CreatePatient)
		patients.GET("", h.ListPatients)
		patients.GET("/:id", h.GetPatient)
		patients.GET("/:id/appointments", h.ListAppointments)
	}
}

// RegisterRecordRoutes mounts the medical history endpoints, gated
// separately because only clinical roles may read records.
func (h *Handler) RegisterRecordRoutes(r *gin.RouterGroup) {
	r.GET("/patients/:id/records", h.ListRecords)
}

func (h *Handler) CreatePatient(c *gin.Context) {
	var req model.CreatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	p, err := h.service.CreatePatient(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(p))
}

func (h *Handler) GetPatient(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid patient ID"))
		return
	}

	p, err := h.service.GetPatient(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(p))
}

func (h *Handler) ListPatients(c *gin.Context) {
	patients, err := h.service.ListPatients(c.Request.Context())
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(patients))
}

func (h *Handler) ListAppointments(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid patient ID"))
		return
	}

	appointments, err := h.appointmentSvc.ListByPatient(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(appointments))
}

func (h *Handler) ListRecords(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid patient ID"))
		return
	}

	records, err := h.medicalSvc.ListByPatient(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(records))
}
