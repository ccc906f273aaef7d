package appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/patasfelizes/clinic-api/internal/email"
	"github.com/patasfelizes/clinic-api/internal/model"
	"github.com/patasfelizes/clinic-api/internal/repository"
	"github.com/patasfelizes/clinic-api/internal/service/audit"
	apperrors "github.com/patasfelizes/clinic-api/pkg/errors"
	"github.com/patasfelizes/clinic-api/pkg/logger"
)

type AppointmentService interface {
	CreateAppointment(ctx context.Context, req *model.CreateAppointmentRequest) (*model.Appointment, error)
	GetAppointment(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
	ListAppointments(ctx context.Context) ([]*model.Appointment, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.Appointment, error)
}

type Service struct {
	repo        repository.AppointmentRepository
	patientRepo repository.PatientRepository
	tutorRepo   repository.TutorRepository
	userRepo    repository.UserRepository
	emailSvc    email.Service
	auditor     *audit.Service
	logger      *logger.Logger
}

func NewService(
	repo repository.AppointmentRepository,
	patientRepo repository.PatientRepository,
	tutorRepo repository.TutorRepository,
	userRepo repository.UserRepository,
	emailSvc email.Service,
	auditor *audit.Service,
	log *logger.Logger,
) *Service {
	return &Service{
		repo:        repo,
		patientRepo: patientRepo,
		tutorRepo:   tutorRepo,
		userRepo:    userRepo,
		emailSvc:    emailSvc,
		auditor:     auditor,
		logger:      log,
	}
}

func (s *Service) CreateAppointment(ctx context.Context, req *model.CreateAppointmentRequest) (*model.Appointment, error) {
	patientID, err := uuid.Parse(req.PatientID)
	if err != nil {
		return nil, apperrors.NewValidation("invalid patient id")
	}
	vetID, err := uuid.Parse(req.VeterinarianID)
	if err != nil {
		return nil, apperrors.NewValidation("invalid veterinarian id")
	}

	status := model.AppointmentStatus(req.Status)
	if status == "" {
		status = model.AppointmentStatusScheduled
	}
	if !model.ValidAppointmentStatus(status) {
		return nil, apperrors.NewValidation("invalid appointment status")
	}

	patient, err := s.patientRepo.Get(ctx, patientID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewValidation("patient not found")
		}
		return nil, fmt.Errorf("failed to look up patient: %w", err)
	}

	vet, err := s.userRepo.Get(ctx, vetID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewValidation("veterinarian not found")
		}
		return nil, fmt.Errorf("failed to look up veterinarian: %w", err)
	}
	if vet.Role != model.RoleVeterinarian {
		return nil, apperrors.NewValidation("user is not a veterinarian")
	}

	appointment := &model.Appointment{
		PatientID:      patientID,
		VeterinarianID: vetID,
		Date:           req.Date,
		Time:           req.Time,
		Service:        req.Service,
		Status:         status,
		Observations:   req.Observations,
	}
	if err := s.repo.Create(ctx, appointment); err != nil {
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}

	s.auditor.Log(ctx, "create", "appointment", appointment.ID, map[string]interface{}{
		"patient_id": patientID.String(),
		"service":    appointment.Service,
	})

	s.sendConfirmation(ctx, patient, appointment)
	return appointment, nil
}

// sendConfirmation mails the tutor. Best effort: a mail failure never
// fails the appointment.
func (s *Service) sendConfirmation(ctx context.Context, patient *model.Patient, appointment *model.Appointment) {
	tutor, err := s.tutorRepo.Get(ctx, patient.TutorID)
	if err != nil {
		s.logger.Error(err, "failed to look up tutor for confirmation email")
		return
	}
	if err := s.emailSvc.SendAppointmentConfirmation(ctx, tutor.Email, patient.Name, appointment.Date, appointment.Time); err != nil {
		s.logger.Error(err, "failed to send confirmation email")
	}
}

func (s *Service) GetAppointment(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	appointment, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, apperrors.NewNotFound("appointment", err)
	}
	return appointment, nil
}

func (s *Service) ListAppointments(ctx context.Context) ([]*model.Appointment, error) {
	return s.repo.List(ctx)
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.Appointment, error) {
	return s.repo.ListByPatient(ctx, patientID)
}
