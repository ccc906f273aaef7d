package medical

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/patasfelizes/clinic-api/internal/model"
	"github.com/patasfelizes/clinic-api/internal/repository"
	"github.com/patasfelizes/clinic-api/internal/service/audit"
	apperrors "github.com/patasfelizes/clinic-api/pkg/errors"
)

type MedicalService interface {
	CreateRecord(ctx context.Context, req *model.CreateMedicalRecordRequest) (*model.MedicalRecord, error)
	GetRecord(ctx context.Context, id uuid.UUID) (*model.MedicalRecord, error)
	ListRecords(ctx context.Context) ([]*model.MedicalRecord, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.MedicalRecord, error)
}

type Service struct {
	repo            repository.MedicalRecordRepository
	patientRepo     repository.PatientRepository
	appointmentRepo repository.AppointmentRepository
	auditor         *audit.Service
}

func NewService(
	repo repository.MedicalRecordRepository,
	patientRepo repository.PatientRepository,
	appointmentRepo repository.AppointmentRepository,
	auditor *audit.Service,
) *Service {
	return &Service{
		repo:            repo,
		patientRepo:     patientRepo,
		appointmentRepo: appointmentRepo,
		auditor:         auditor,
	}
}

func (s *Service) CreateRecord(ctx context.Context, req *model.CreateMedicalRecordRequest) (*model.MedicalRecord, error) {
	patientID, err := uuid.Parse(req.PatientID)
	if err != nil {
		return nil, apperrors.NewValidation("invalid patient id")
	}
	vetID, err := uuid.Parse(req.VeterinarianID)
	if err != nil {
		return nil, apperrors.NewValidation("invalid veterinarian id")
	}

	if _, err := s.patientRepo.Get(ctx, patientID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewValidation("patient not found")
		}
		return nil, fmt.Errorf("failed to look up patient: %w", err)
	}

	var appointmentID *uuid.UUID
	if req.AppointmentID != "" {
		id, err := uuid.Parse(req.AppointmentID)
		if err != nil {
			return nil, apperrors.NewValidation("invalid appointment id")
		}
		if _, err := s.appointmentRepo.Get(ctx, id); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, apperrors.NewValidation("appointment not found")
			}
			return nil, fmt.Errorf("failed to look up appointment: %w", err)
		}
		appointmentID = &id
	}

	date := req.Date
	if date.IsZero() {
		date = time.Now()
	}

	// prescription order is preserved as given
	prescriptions := make([]model.Prescription, 0, len(req.Prescriptions))
	for _, p := range req.Prescriptions {
		prescriptions = append(prescriptions, model.Prescription{
			ID:           uuid.New(),
			Medication:   p.Medication,
			Dosage:       p.Dosage,
			Frequency:    p.Frequency,
			Duration:     p.Duration,
			Instructions: p.Instructions,
		})
	}

	record := &model.MedicalRecord{
		PatientID:      patientID,
		VeterinarianID: vetID,
		AppointmentID:  appointmentID,
		Date:           date,
		Anamnesis:      req.Anamnesis,
		Diagnosis:      req.Diagnosis,
		Treatment:      req.Treatment,
		Prescriptions:  prescriptions,
		Observations:   req.Observations,
	}
	if err := s.repo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create medical record: %w", err)
	}

	s.auditor.Log(ctx, "create", "medical_record", record.ID, map[string]interface{}{
		"patient_id": patientID.String(),
	})
	return record, nil
}

func (s *Service) GetRecord(ctx context.Context, id uuid.UUID) (*model.MedicalRecord, error) {
	record, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, apperrors.NewNotFound("medical record", err)
	}
	return record, nil
}

func (s *Service) ListRecords(ctx context.Context) ([]*model.MedicalRecord, error) {
	return s.repo.List(ctx)
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.MedicalRecord, error) {
	return s.repo.ListByPatient(ctx, patientID)
}
