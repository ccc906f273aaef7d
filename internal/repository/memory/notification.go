package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/patasfelizes/clinic-api/internal/model"
)

type NotificationRepository struct {
	s *Store
}

func NewNotificationRepository(s *Store) *NotificationRepository {
	return &NotificationRepository{s: s}
}

func (r *NotificationRepository) Create(ctx context.Context, notification *model.Notification) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	notification.Read = false
	r.s.stamp(&notification.Base)
	r.s.notifications = append(r.s.notifications, *notification)
	r.s.observe("notifications", "create", len(r.s.notifications))
	return nil
}

func (r *NotificationRepository) List(ctx context.Context) ([]*model.Notification, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*model.Notification, 0, len(r.s.notifications))
	for i := range r.s.notifications {
		n := r.s.notifications[i]
		out = append(out, &n)
	}
	return out, nil
}

// MarkRead flips the read flag. An unknown id is a silent no-op.
func (r *NotificationRepository) MarkRead(ctx context.Context, id uuid.UUID) bool {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for i := range r.s.notifications {
		if r.s.notifications[i].ID == id {
			r.s.notifications[i].Read = true
			r.s.notifications[i].UpdatedAt = r.s.now()
			r.s.observe("notifications", "mark_read", len(r.s.notifications))
			return true
		}
	}
	return false
}
