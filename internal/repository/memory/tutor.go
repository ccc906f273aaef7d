package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/patasfelizes/clinic-api/internal/model"
	"github.com/patasfelizes/clinic-api/internal/repository"
)

type TutorRepository struct {
	s *Store
}

func NewTutorRepository(s *Store) *TutorRepository {
	return &TutorRepository{s: s}
}

func (r *TutorRepository) Create(ctx context.Context, tutor *model.Tutor) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.stamp(&tutor.Base)
	r.s.tutors = append(r.s.tutors, *tutor)
	r.s.observe("tutors", "create", len(r.s.tutors))
	return nil
}

func (r *TutorRepository) Get(ctx context.Context, id uuid.UUID) (*model.Tutor, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for i := range r.s.tutors {
		if r.s.tutors[i].ID == id {
			t := r.s.tutors[i]
			return &t, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *TutorRepository) List(ctx context.Context) ([]*model.Tutor, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*model.Tutor, 0, len(r.s.tutors))
	for i := range r.s.tutors {
		t := r.s.tutors[i]
		out = append(out, &t)
	}
	return out, nil
}
