package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/patasfelizes/clinic-api/internal/model"
	"github.com/patasfelizes/clinic-api/internal/repository"
	"github.com/patasfelizes/clinic-api/pkg/validator"
)

const statsTTL = 30 * time.Second

// Service computes the landing page statistics over the registry.
// Results are memoized per role for a short window: the figures feed a
// dashboard, not an invoice.
type Service struct {
	patientRepo      repository.PatientRepository
	appointmentRepo  repository.AppointmentRepository
	productRepo      repository.ProductRepository
	saleRepo         repository.SaleRepository
	notificationRepo repository.NotificationRepository
	cache            *cache.Cache
	now              func() time.Time
}

func NewService(
	patientRepo repository.PatientRepository,
	appointmentRepo repository.AppointmentRepository,
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
	notificationRepo repository.NotificationRepository,
) *Service {
	return &Service{
		patientRepo:      patientRepo,
		appointmentRepo:  appointmentRepo,
		productRepo:      productRepo,
		saleRepo:         saleRepo,
		notificationRepo: notificationRepo,
		cache:            cache.New(statsTTL, 2*statsTTL),
		now:              time.Now,
	}
}

// Stats returns the figures the given role is allowed to see:
// patient and appointment counts for clinical staff, inventory figures
// for admin and stockkeeper, revenue for admin only. Unread
// notification count is visible to everyone.
func (s *Service) Stats(ctx context.Context, role string) (*model.DashboardStats, error) {
	key := fmt.Sprintf("stats:%s", role)
	if cached, found := s.cache.Get(key); found {
		return cached.(*model.DashboardStats), nil
	}

	stats := &model.DashboardStats{}

	notifications, err := s.notificationRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, n := range notifications {
		if !n.Read {
			stats.UnreadNotifications++
		}
	}

	if role == model.RoleReceptionist || role == model.RoleVeterinarian || role == model.RoleAdmin {
		patients, err := s.patientRepo.List(ctx)
		if err != nil {
			return nil, err
		}
		count := len(patients)
		stats.Patients = &count

		appointments, err := s.appointmentRepo.List(ctx)
		if err != nil {
			return nil, err
		}
		today := 0
		y, m, d := s.now().Date()
		for _, a := range appointments {
			ay, am, ad := a.Date.Date()
			if ay == y && am == m && ad == d {
				today++
			}
		}
		stats.AppointmentsToday = &today
	}

	if role == model.RoleAdmin || role == model.RoleStockkeeper {
		products, err := s.productRepo.List(ctx)
		if err != nil {
			return nil, err
		}
		count := len(products)
		stats.Products = &count

		low := 0
		for _, p := range products {
			if p.LowStock() {
				low++
			}
		}
		stats.LowStockProducts = &low
	}

	if role == model.RoleAdmin {
		sales, err := s.saleRepo.List(ctx)
		if err != nil {
			return nil, err
		}
		revenue := 0.0
		for _, sale := range sales {
			revenue += sale.Total
		}
		stats.Revenue = &revenue
		stats.RevenueFormatted = validator.FormatCurrency(revenue)
	}

	s.cache.SetDefault(key, stats)
	return stats, nil
}
