package worker

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/patasfelizes/clinic-api/internal/repository"
	"github.com/patasfelizes/clinic-api/internal/service/notification"
	"github.com/patasfelizes/clinic-api/pkg/logger"
)

// LowStockWorker periodically sweeps the product registry and raises a
// warning for anything at or below its minimum. Each product is
// alerted once per dip: the mark clears when stock recovers.
type LowStockWorker struct {
	repo     repository.ProductRepository
	notifier *notification.Service
	logger   *logger.Logger
	interval time.Duration
	alerted  map[uuid.UUID]bool
}

func NewLowStockWorker(repo repository.ProductRepository, notifier *notification.Service, log *logger.Logger, interval time.Duration) *LowStockWorker {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &LowStockWorker{
		repo:     repo,
		notifier: notifier,
		logger:   log,
		interval: interval,
		alerted:  make(map[uuid.UUID]bool),
	}
}

func (w *LowStockWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

func (w *LowStockWorker) sweep(ctx context.Context) {
	products, err := w.repo.List(ctx)
	if err != nil {
		w.logger.Error(err, "low stock sweep failed")
		return
	}

	for _, p := range products {
		if !p.LowStock() {
			delete(w.alerted, p.ID)
			continue
		}
		if w.alerted[p.ID] {
			continue
		}
		w.notifier.LowStockAlert(ctx, p)
		w.alerted[p.ID] = true
	}
}
