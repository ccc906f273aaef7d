package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/patasfelizes/clinic-api/internal/model"
	"github.com/patasfelizes/clinic-api/internal/repository"
)

type AppointmentRepository struct {
	s *Store
}

func NewAppointmentRepository(s *Store) *AppointmentRepository {
	return &AppointmentRepository{s: s}
}

func (r *AppointmentRepository) Create(ctx context.Context, appointment *model.Appointment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.stamp(&appointment.Base)
	r.s.appointments = append(r.s.appointments, *appointment)
	r.s.observe("appointments", "create", len(r.s.appointments))
	return nil
}

func (r *AppointmentRepository) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for i := range r.s.appointments {
		if r.s.appointments[i].ID == id {
			a := r.s.appointments[i]
			return &a, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *AppointmentRepository) List(ctx context.Context) ([]*model.Appointment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*model.Appointment, 0, len(r.s.appointments))
	for i := range r.s.appointments {
		a := r.s.appointments[i]
		out = append(out, &a)
	}
	return out, nil
}

func (r *AppointmentRepository) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.Appointment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []*model.Appointment
	for i := range r.s.appointments {
		if r.s.appointments[i].PatientID == patientID {
			a := r.s.appointments[i]
			out = append(out, &a)
		}
	}
	return out, nil
}
