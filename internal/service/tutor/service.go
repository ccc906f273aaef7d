package tutor

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/patasfelizes/clinic-api/internal/model"
	"github.com/patasfelizes/clinic-api/internal/repository"
	"github.com/patasfelizes/clinic-api/internal/service/audit"
	apperrors "github.com/patasfelizes/clinic-api/pkg/errors"
	"github.com/patasfelizes/clinic-api/pkg/validator"
)

type TutorService interface {
	CreateTutor(ctx context.Context, req *model.CreateTutorRequest) (*model.Tutor, error)
	GetTutor(ctx context.Context, id uuid.UUID) (*model.Tutor, error)
	ListTutors(ctx context.Context) ([]*model.Tutor, error)
}

type Service struct {
	repo    repository.TutorRepository
	auditor *audit.Service
}

func NewService(repo repository.TutorRepository, auditor *audit.Service) *Service {
	return &Service{repo: repo, auditor: auditor}
}

func (s *Service) CreateTutor(ctx context.Context, req *model.CreateTutorRequest) (*model.Tutor, error) {
	if err := validateTutor(req); err != nil {
		return nil, err
	}

	tutor := &model.Tutor{
		Name:    req.Name,
		CPF:     validator.FormatCPF(req.CPF),
		RG:      req.RG,
		Phone:   validator.FormatPhone(req.Phone),
		Email:   req.Email,
		Address: req.Address,
	}
	if err := s.repo.Create(ctx, tutor); err != nil {
		return nil, fmt.Errorf("failed to create tutor: %w", err)
	}

	s.auditor.Log(ctx, "create", "tutor", tutor.ID, map[string]interface{}{"name": tutor.Name})
	return tutor, nil
}

func (s *Service) GetTutor(ctx context.Context, id uuid.UUID) (*model.Tutor, error) {
	tutor, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, apperrors.NewNotFound("tutor", err)
	}
	return tutor, nil
}

func (s *Service) ListTutors(ctx context.Context) ([]*model.Tutor, error) {
	return s.repo.List(ctx)
}

func validateTutor(req *model.CreateTutorRequest) error {
	if req.Name == "" {
		return apperrors.NewValidation("name is required")
	}
	if !validator.ValidateCPF(req.CPF) {
		return apperrors.NewValidation("malformed cpf")
	}
	if !validator.ValidateEmail(req.Email) {
		return apperrors.NewValidation("malformed email")
	}
	if req.Phone == "" {
		return apperrors.NewValidation("phone is required")
	}
	return nil
}
