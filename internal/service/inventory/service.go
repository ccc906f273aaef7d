package inventory

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/patasfelizes/clinic-api/internal/model"
	"github.com/patasfelizes/clinic-api/internal/repository"
	"github.com/patasfelizes/clinic-api/internal/service/audit"
	"github.com/patasfelizes/clinic-api/internal/service/notification"
	apperrors "github.com/patasfelizes/clinic-api/pkg/errors"
	"github.com/patasfelizes/clinic-api/pkg/metrics"
)

type InventoryService interface {
	CreateProduct(ctx context.Context, req *model.CreateProductRequest) (*model.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*model.Product, error)
	ListProducts(ctx context.Context) ([]*model.Product, error)
	ListLowStock(ctx context.Context) ([]*model.Product, error)
	AdjustStock(ctx context.Context, id uuid.UUID, delta int) (*model.Product, error)
}

type Service struct {
	repo     repository.ProductRepository
	notifier *notification.Service
	auditor  *audit.Service
	metrics  *metrics.Metrics
}

func NewService(repo repository.ProductRepository, notifier *notification.Service, auditor *audit.Service, m *metrics.Metrics) *Service {
	return &Service{repo: repo, notifier: notifier, auditor: auditor, metrics: m}
}

func (s *Service) CreateProduct(ctx context.Context, req *model.CreateProductRequest) (*model.Product, error) {
	if err := validateProduct(req); err != nil {
		return nil, err
	}

	product := &model.Product{
		Name:           req.Name,
		Description:    req.Description,
		Category:       req.Category,
		Supplier:       req.Supplier,
		Stock:          req.Stock,
		MinStock:       req.MinStock,
		CostPrice:      req.CostPrice,
		SellPrice:      req.SellPrice,
		ExpirationDate: req.ExpirationDate,
		Batch:          req.Batch,
	}
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.auditor.Log(ctx, "create", "product", product.ID, map[string]interface{}{"name": product.Name})
	return product, nil
}

func (s *Service) GetProduct(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	product, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, apperrors.NewNotFound("product", err)
	}
	return product, nil
}

func (s *Service) ListProducts(ctx context.Context) ([]*model.Product, error) {
	return s.repo.List(ctx)
}

func (s *Service) ListLowStock(ctx context.Context) ([]*model.Product, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	low := make([]*model.Product, 0)
	for _, p := range products {
		if p.LowStock() {
			low = append(low, p)
		}
	}
	s.metrics.LowStockProducts.Set(float64(len(low)))
	return low, nil
}

// AdjustStock applies a clamped stock delta. Crossing the minimum on
// the way down raises a low stock alert.
func (s *Service) AdjustStock(ctx context.Context, id uuid.UUID, delta int) (*model.Product, error) {
	before, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, apperrors.NewNotFound("product", err)
	}

	after, found := s.repo.AdjustStock(ctx, id, delta)
	if !found {
		return nil, apperrors.NewNotFound("product", nil)
	}

	s.auditor.Log(ctx, "adjust_stock", "product", id, map[string]interface{}{
		"delta": delta,
		"stock": after.Stock,
	})

	if !before.LowStock() && after.LowStock() {
		s.notifier.LowStockAlert(ctx, after)
	}
	return after, nil
}

func validateProduct(req *model.CreateProductRequest) error {
	if req.Name == "" {
		return apperrors.NewValidation("name is required")
	}
	if req.Category == "" {
		return apperrors.NewValidation("category is required")
	}
	if req.Stock < 0 {
		return apperrors.NewValidation("stock cannot be negative")
	}
	if req.MinStock < 0 {
		return apperrors.NewValidation("minimum stock cannot be negative")
	}
	if req.CostPrice < 0 || req.SellPrice < 0 {
		return apperrors.NewValidation("prices cannot be negative")
	}
	return nil
}
