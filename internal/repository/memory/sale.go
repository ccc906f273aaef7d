package memory

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/patasfelizes/clinic-api/internal/model"
	"github.com/patasfelizes/clinic-api/internal/repository"
)

type SaleRepository struct {
	s *Store
}

func NewSaleRepository(s *Store) *SaleRepository {
	return &SaleRepository{s: s}
}

func cloneSale(sale model.Sale) *model.Sale {
	sale.Items = append([]model.SaleItem(nil), sale.Items...)
	if sale.PatientID != nil {
		id := *sale.PatientID
		sale.PatientID = &id
	}
	return &sale
}

// CreateWithStock commits the sale and all stock decrements as one
// atomic step: every line is checked against current stock first, and
// nothing is written unless all lines fit.
func (r *SaleRepository) CreateWithStock(ctx context.Context, sale *model.Sale) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	index := make(map[uuid.UUID]int, len(r.s.products))
	for i := range r.s.products {
		index[r.s.products[i].ID] = i
	}

	for _, item := range sale.Items {
		i, ok := index[item.ProductID]
		if !ok {
			return fmt.Errorf("product %s: %w", item.ProductID, repository.ErrNotFound)
		}
		if r.s.products[i].Stock < item.Quantity {
			return fmt.Errorf("%w: %s", repository.ErrInsufficientStock, r.s.products[i].Name)
		}
	}

	now := r.s.now()
	for _, item := range sale.Items {
		i := index[item.ProductID]
		r.s.products[i].Stock -= item.Quantity
		r.s.products[i].UpdatedAt = now
	}

	r.s.stamp(&sale.Base)
	r.s.sales = append(r.s.sales, *cloneSale(*sale))
	r.s.observe("sales", "create", len(r.s.sales))
	r.s.observe("products", "adjust_stock", len(r.s.products))
	return nil
}

func (r *SaleRepository) Get(ctx context.Context, id uuid.UUID) (*model.Sale, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for i := range r.s.sales {
		if r.s.sales[i].ID == id {
			return cloneSale(r.s.sales[i]), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *SaleRepository) List(ctx context.Context) ([]*model.Sale, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*model.Sale, 0, len(r.s.sales))
	for i := range r.s.sales {
		out = append(out, cloneSale(r.s.sales[i]))
	}
	return out, nil
}
