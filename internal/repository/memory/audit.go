package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/patasfelizes/clinic-api/internal/model"
)

const auditTrailCap = 1000

// AuditRepository keeps a bounded in-memory trail of mutations. It has
// its own lock: audit writes must not contend with registry reads.
type AuditRepository struct {
	mu      sync.Mutex
	entries []*model.AuditEntry
	now     func() time.Time
}

func NewAuditRepository() *AuditRepository {
	return &AuditRepository{now: time.Now}
}

func (r *AuditRepository) Append(ctx context.Context, entry *model.AuditEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry.ID = uuid.New()
	entry.CreatedAt = r.now()
	r.entries = append(r.entries, entry)
	if len(r.entries) > auditTrailCap {
		r.entries = r.entries[len(r.entries)-auditTrailCap:]
	}
}

// Recent returns up to limit entries, newest first.
func (r *AuditRepository) Recent(ctx context.Context, limit int) []*model.AuditEntry {
	r.mu.Lock()
	defer r.mu.Unlock()

	if limit <= 0 || limit > len(r.entries) {
		limit = len(r.entries)
	}
	out := make([]*model.AuditEntry, 0, limit)
	for i := len(r.entries) - 1; i >= len(r.entries)-limit; i-- {
		e := *r.entries[i]
		out = append(out, &e)
	}
	return out
}
