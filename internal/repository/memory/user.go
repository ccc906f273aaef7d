package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/patasfelizes/clinic-api/internal/model"
	"github.com/patasfelizes/clinic-api/internal/repository"
)

type UserRepository struct {
	s *Store
}

func NewUserRepository(s *Store) *UserRepository {
	return &UserRepository{s: s}
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.stamp(&user.Base)
	r.s.users = append(r.s.users, *user)
	r.s.observe("users", "create", len(r.s.users))
	return nil
}

func (r *UserRepository) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for i := range r.s.users {
		if r.s.users[i].ID == id {
			u := r.s.users[i]
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

// GetByEmail matches the email exactly, case-sensitive.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for i := range r.s.users {
		if r.s.users[i].Email == email {
			u := r.s.users[i]
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *UserRepository) List(ctx context.Context) ([]*model.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*model.User, 0, len(r.s.users))
	for i := range r.s.users {
		u := r.s.users[i]
		out = append(out, &u)
	}
	return out, nil
}
