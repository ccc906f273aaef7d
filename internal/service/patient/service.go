package patient

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

type PatientService interface {
	CreatePatient(ctx context.Context, req *model.CreatePatientRequest) (*model.Patient, error)
	GetPatient(ctx context.Context, id uuid.UUID) (*model.Patient, error)
	ListPatients(ctx context.Context) ([]*model.Patient, error)
	ListByTutor(ctx context.Context, tutorID uuid.UUID) ([]*model.Patient, error)
}

type Service struct {
	repo      repository.PatientRepository
	tutorRepo repository.TutorRepository
	auditor   *audit.Service
}

func NewService(repo repository.PatientRepository, tutorRepo repository.TutorRepository, auditor *audit.Service) *Service {
	return &Service{repo: repo, tutorRepo: tutorRepo, auditor: auditor}
}

func (s *Service) CreatePatient(ctx context.Context, req *model.CreatePatientRequest) (*model.Patient, error) {
	tutorID, err := uuid.Parse(req.TutorID)
	if err != nil {
		return nil, apperrors.NewValidation("invalid tutor id")
	}

	if err := validatePatient(req); err != nil {
		return nil, err
	}

	if _, err := s.tutorRepo.Get(ctx, tutorID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewValidation("tutor not found")
		}
		return nil, fmt.Errorf("failed to look up tutor: %w", err)
	}

	patient := &model.Patient{
		Name:         req.Name,
		TutorID:      tutorID,
		Species:      req.Species,
		Breed:        req.Breed,
		Gender:       req.Gender,
		BirthDate:    req.BirthDate,
		Weight:       req.Weight,
		Color:        req.Color,
		Observations: req.Observations,
		Allergies:    req.Allergies,
	}
	if err := s.repo.Create(ctx, patient); err != nil {
		return nil, fmt.Errorf("failed to create patient: %w", err)
	}

	s.auditor.Log(ctx, "create", "patient", patient.ID, map[string]interface{}{"name": patient.Name})
	return patient, nil
}

func (s *Service) GetPatient(ctx context.Context, id uuid.UUID) (*model.Patient, error) {
	patient, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, apperrors.NewNotFound("patient", err)
	}
	return patient, nil
}

func (s *Service) ListPatients(ctx context.Context) ([]*model.Patient, error) {
	return s.repo.List(ctx)
}

func (s *Service) ListByTutor(ctx context.Context, tutorID uuid.UUID) ([]*model.Patient, error) {
	return s.repo.ListByTutor(ctx, tutorID)
}

func validatePatient(req *model.CreatePatientRequest) error {
	if req.Name == "" {
		return apperrors.NewValidation("name is required")
	}
	if req.Species == "" {
		return apperrors.NewValidation("species is required")
	}
	if req.Gender != model.GenderMale && req.Gender != model.GenderFemale {
		return apperrors.NewValidation("gender must be male or female")
	}
	if req.Weight <= 0 {
		return apperrors.NewValidation("weight must be positive")
	}
	if req.BirthDate.After(time.Now()) {
		return apperrors.NewValidation("birth date cannot be in the future")
	}
	return nil
}
