package notification

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/patasfelizes/clinic-api/internal/model"
	"github.com/patasfelizes/clinic-api/internal/repository"
	apperrors "github.com/patasfelizes/clinic-api/pkg/errors"
	"github.com/patasfelizes/clinic-api/pkg/logger"
	"github.com/patasfelizes/clinic-api/pkg/messaging"
	"github.com/patasfelizes/clinic-api/pkg/metrics"
)

type Service struct {
	repo    repository.NotificationRepository
	broker  messaging.Broker
	metrics *metrics.Metrics
	logger  *logger.Logger
}

func NewService(repo repository.NotificationRepository, broker messaging.Broker, m *metrics.Metrics, log *logger.Logger) *Service {
	return &Service{repo: repo, broker: broker, metrics: m, logger: log}
}

func (s *Service) List(ctx context.Context) ([]*model.Notification, error) {
	return s.repo.List(ctx)
}

// MarkRead flips the read flag, surfacing a typed error for unknown
// ids at the API boundary. The underlying registry operation stays a
// silent no-op.
func (s *Service) MarkRead(ctx context.Context, id uuid.UUID) error {
	if !s.repo.MarkRead(ctx, id) {
		return apperrors.NewNotFound("notification", nil)
	}
	return nil
}

// Notify creates an unread notification and publishes it to the
// message broker. Broker failures are logged, never surfaced: the
// notification itself is already committed.
func (s *Service) Notify(ctx context.Context, typ model.NotificationType, title, message string) (*model.Notification, error) {
	n := &model.Notification{
		Type:    typ,
		Title:   title,
		Message: message,
	}
	if err := s.repo.Create(ctx, n); err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}
	s.metrics.NotificationsSent.Inc()

	if err := s.broker.Publish(ctx, messaging.ChannelNotifications, messaging.Message{
		Type:    string(typ),
		Payload: n,
	}); err != nil {
		s.logger.Error(err, "failed to publish notification")
	}
	return n, nil
}

// LowStockAlert emits the standard low stock warning for a product.
func (s *Service) LowStockAlert(ctx context.Context, product *model.Product) {
	msg := fmt.Sprintf("%s is below minimum stock (%d units)", product.Name, product.Stock)
	if _, err := s.Notify(ctx, model.NotificationWarning, "Low stock", msg); err != nil {
		s.logger.Error(err, "failed to create low stock alert")
	}
}
