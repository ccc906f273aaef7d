package sale

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/patasfelizes/clinic-api/internal/model"
	"github.com/patasfelizes/clinic-api/internal/repository"
	"github.com/patasfelizes/clinic-api/internal/service/audit"
	"github.com/patasfelizes/clinic-api/internal/service/notification"
	apperrors "github.com/patasfelizes/clinic-api/pkg/errors"
	"github.com/patasfelizes/clinic-api/pkg/metrics"
)

type SaleService interface {
	CreateSale(ctx context.Context, req *model.CreateSaleRequest) (*model.Sale, error)
	GetSale(ctx context.Context, id uuid.UUID) (*model.Sale, error)
	ListSales(ctx context.Context) ([]*model.Sale, error)
}

type Service struct {
	repo        repository.SaleRepository
	productRepo repository.ProductRepository
	tutorRepo   repository.TutorRepository
	patientRepo repository.PatientRepository
	notifier    *notification.Service
	auditor     *audit.Service
	metrics     *metrics.Metrics
}

func NewService(
	repo repository.SaleRepository,
	productRepo repository.ProductRepository,
	tutorRepo repository.TutorRepository,
	patientRepo repository.PatientRepository,
	notifier *notification.Service,
	auditor *audit.Service,
	m *metrics.Metrics,
) *Service {
	return &Service{
		repo:        repo,
		productRepo: productRepo,
		tutorRepo:   tutorRepo,
		patientRepo: patientRepo,
		notifier:    notifier,
		auditor:     auditor,
		metrics:     m,
	}
}

// CreateSale validates every line against the registry, recomputes all
// totals from current sell prices and commits sale plus stock
// decrements as one atomic operation. A line exceeding available stock
// fails the whole sale.
func (s *Service) CreateSale(ctx context.Context, req *model.CreateSaleRequest) (*model.Sale, error) {
	tutorID, err := uuid.Parse(req.TutorID)
	if err != nil {
		return nil, apperrors.NewValidation("invalid tutor id")
	}
	if _, err := s.tutorRepo.Get(ctx, tutorID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewValidation("tutor not found")
		}
		return nil, fmt.Errorf("failed to look up tutor: %w", err)
	}

	var patientID *uuid.UUID
	if req.PatientID != "" {
		id, err := uuid.Parse(req.PatientID)
		if err != nil {
			return nil, apperrors.NewValidation("invalid patient id")
		}
		if _, err := s.patientRepo.Get(ctx, id); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, apperrors.NewValidation("patient not found")
			}
			return nil, fmt.Errorf("failed to look up patient: %w", err)
		}
		patientID = &id
	}

	if len(req.Items) == 0 {
		return nil, apperrors.NewValidation("sale requires at least one item")
	}

	status := model.SaleStatus(req.Status)
	if status == "" {
		status = model.SaleStatusPending
	}

	items := make([]model.SaleItem, 0, len(req.Items))
	wasLow := make(map[uuid.UUID]bool, len(req.Items))
	total := 0.0
	for _, item := range req.Items {
		productID, err := uuid.Parse(item.ProductID)
		if err != nil {
			return nil, apperrors.NewValidation("invalid product id")
		}
		if item.Quantity <= 0 {
			return nil, apperrors.NewValidation("quantity must be positive")
		}
		product, err := s.productRepo.Get(ctx, productID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, apperrors.NewValidation("product not found")
			}
			return nil, fmt.Errorf("failed to look up product: %w", err)
		}
		wasLow[productID] = product.LowStock()

		lineTotal := float64(item.Quantity) * product.SellPrice
		items = append(items, model.SaleItem{
			ProductID: productID,
			Quantity:  item.Quantity,
			UnitPrice: product.SellPrice,
			Total:     lineTotal,
		})
		total += lineTotal
	}

	sale := &model.Sale{
		TutorID:       tutorID,
		PatientID:     patientID,
		Items:         items,
		Total:         total,
		PaymentMethod: model.PaymentMethod(req.PaymentMethod),
		Status:        status,
	}

	if err := s.repo.CreateWithStock(ctx, sale); err != nil {
		if errors.Is(err, repository.ErrInsufficientStock) {
			s.metrics.SalesRejected.Inc()
			return nil, apperrors.NewInsufficientStock(err)
		}
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewValidation("product not found")
		}
		return nil, fmt.Errorf("failed to create sale: %w", err)
	}
	s.metrics.SalesTotal.Inc()

	s.auditor.Log(ctx, "create", "sale", sale.ID, map[string]interface{}{
		"tutor_id": tutorID.String(),
		"total":    sale.Total,
	})

	// alert on products the sale pushed below their minimum
	for _, item := range sale.Items {
		if wasLow[item.ProductID] {
			continue
		}
		product, err := s.productRepo.Get(ctx, item.ProductID)
		if err == nil && product.LowStock() {
			s.notifier.LowStockAlert(ctx, product)
		}
	}

	return sale, nil
}

func (s *Service) GetSale(ctx context.Context, id uuid.UUID) (*model.Sale, error) {
	sale, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, apperrors.NewNotFound("sale", err)
	}
	return sale, nil
}

func (s *Service) ListSales(ctx context.Context) ([]*model.Sale, error) {
	return s.repo.List(ctx)
}
