package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/patasfelizes/clinic-api/internal/model"
	"github.com/patasfelizes/clinic-api/internal/repository"
)

type PatientRepository struct {
	s *Store
}

func NewPatientRepository(s *Store) *PatientRepository {
	return &PatientRepository{s: s}
}

func clonePatient(p model.Patient) *model.Patient {
	if p.Allergies != nil {
		p.Allergies = append([]string(nil), p.Allergies...)
	}
	return &p
}

func (r *PatientRepository) Create(ctx context.Context, patient *model.Patient) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.stamp(&patient.Base)
	r.s.patients = append(r.s.patients, *clonePatient(*patient))
	r.s.observe("patients", "create", len(r.s.patients))
	return nil
}

func (r *PatientRepository) Get(ctx context.Context, id uuid.UUID) (*model.Patient, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for i := range r.s.patients {
		if r.s.patients[i].ID == id {
			return clonePatient(r.s.patients[i]), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *PatientRepository) List(ctx context.Context) ([]*model.Patient, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*model.Patient, 0, len(r.s.patients))
	for i := range r.s.patients {
		out = append(out, clonePatient(r.s.patients[i]))
	}
	return out, nil
}

func (r *PatientRepository) ListByTutor(ctx context.Context, tutorID uuid.UUID) ([]*model.Patient, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []*model.Patient
	for i := range r.s.patients {
		if r.s.patients[i].TutorID == tutorID {
			out = append(out, clonePatient(r.s.patients[i]))
		}
	}
	return out, nil
}
