package memory

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/patasfelizes/clinic-api/internal/model"
	"github.com/patasfelizes/clinic-api/pkg/metrics"
)

// Store is the single in-memory source of truth for every domain
// collection. All access goes through one RWMutex so each mutation is
// atomic; nothing is persisted and a restart resets to the demo seed.
type Store struct {
	mu      sync.RWMutex
	now     func() time.Time
	metrics *metrics.Metrics

	tutors        []model.Tutor
	patients      []model.Patient
	appointments  []model.Appointment
	records       []model.MedicalRecord
	products      []model.Product
	sales         []model.Sale
	notifications []model.Notification
	users         []model.User
}

// NewStore returns a store preloaded with the demo seed.
func NewStore() (*Store, error) {
	s := &Store{now: time.Now}
	if err := s.seed(); err != nil {
		return nil, err
	}
	return s, nil
}

// NewEmptyStore returns a store with no seed, for tests that want full
// control over contents.
func NewEmptyStore() *Store {
	return &Store{now: time.Now}
}

// SetMetrics attaches the registry gauges and counters, seeding the
// record gauges with current collection sizes.
func (s *Store) SetMetrics(m *metrics.Metrics) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.metrics = m
	for collection, size := range map[string]int{
		"tutors":          len(s.tutors),
		"patients":        len(s.patients),
		"appointments":    len(s.appointments),
		"medical_records": len(s.records),
		"products":        len(s.products),
		"sales":           len(s.sales),
		"notifications":   len(s.notifications),
		"users":           len(s.users),
	} {
		m.RegistryRecords.WithLabelValues(collection).Set(float64(size))
	}
}

// observe records a mutation. Callers hold the write lock.
func (s *Store) observe(collection, operation string, size int) {
	if s.metrics == nil {
		return
	}
	s.metrics.RegistryMutations.WithLabelValues(collection, operation).Inc()
	s.metrics.RegistryRecords.WithLabelValues(collection).Set(float64(size))
}

// stamp fills in identity and timestamps for a new record.
func (s *Store) stamp(b *model.Base) {
	now := s.now()
	b.ID = uuid.New()
	b.CreatedAt = now
	b.UpdatedAt = now
}
