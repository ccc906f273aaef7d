package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/patasfelizes/clinic-api/internal/model"
	"github.com/patasfelizes/clinic-api/internal/repository"
)

type ProductRepository struct {
	s *Store
}

func NewProductRepository(s *Store) *ProductRepository {
	return &ProductRepository{s: s}
}

func (r *ProductRepository) Create(ctx context.Context, product *model.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.stamp(&product.Base)
	r.s.products = append(r.s.products, *product)
	r.s.observe("products", "create", len(r.s.products))
	return nil
}

func (r *ProductRepository) Get(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for i := range r.s.products {
		if r.s.products[i].ID == id {
			p := r.s.products[i]
			return &p, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *ProductRepository) List(ctx context.Context) ([]*model.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*model.Product, 0, len(r.s.products))
	for i := range r.s.products {
		p := r.s.products[i]
		out = append(out, &p)
	}
	return out, nil
}

// AdjustStock clamps the result at zero so an oversized decrement can
// never drive stock negative. An unknown id leaves the collection
// untouched and reports found=false.
func (r *ProductRepository) AdjustStock(ctx context.Context, id uuid.UUID, delta int) (*model.Product, bool) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for i := range r.s.products {
		if r.s.products[i].ID == id {
			stock := r.s.products[i].Stock + delta
			if stock < 0 {
				stock = 0
			}
			r.s.products[i].Stock = stock
			r.s.products[i].UpdatedAt = r.s.now()
			r.s.observe("products", "adjust_stock", len(r.s.products))
			p := r.s.products[i]
			return &p, true
		}
	}
	return nil, false
}
