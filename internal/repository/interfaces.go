package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/patasfelizes/clinic-api/internal/model"
)

// Sentinel errors surfaced by repository implementations. Services wrap
// them into application errors at the API boundary.
var (
	ErrNotFound          = errors.New("record not found")
	ErrInsufficientStock = errors.New("insufficient stock")
)

type TutorRepository interface {
	Create(ctx context.Context, tutor *model.Tutor) error
	Get(ctx context.Context, id uuid.UUID) (*model.Tutor, error)
	List(ctx context.Context) ([]*model.Tutor, error)
}

type PatientRepository interface {
	Create(ctx context.Context, patient *model.Patient) error
	Get(ctx context.Context, id uuid.UUID) (*model.Patient, error)
	List(ctx context.Context) ([]*model.Patient, error)
	ListByTutor(ctx context.Context, tutorID uuid.UUID) ([]*model.Patient, error)
}

type AppointmentRepository interface {
	Create(ctx context.Context, appointment *model.Appointment) error
	Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
	List(ctx context.Context) ([]*model.Appointment, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.Appointment, error)
}

type MedicalRecordRepository interface {
	Create(ctx context.Context, record *model.MedicalRecord) error
	Get(ctx context.Context, id uuid.UUID) (*model.MedicalRecord, error)
	List(ctx context.Context) ([]*model.MedicalRecord, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.MedicalRecord, error)
}

type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	Get(ctx context.Context, id uuid.UUID) (*model.Product, error)
	List(ctx context.Context) ([]*model.Product, error)
	// AdjustStock sets stock = max(0, stock+delta). An unknown id is a
	// silent no-op reported through found=false; it never errors.
	AdjustStock(ctx context.Context, id uuid.UUID, delta int) (product *model.Product, found bool)
}

type SaleRepository interface {
	Get(ctx context.Context, id uuid.UUID) (*model.Sale, error)
	List(ctx context.Context) ([]*model.Sale, error)
	// CreateWithStock appends the sale and decrements stock for every
	// line under a single lock. If any line exceeds available stock the
	// whole operation fails with ErrInsufficientStock and nothing is
	// written.
	CreateWithStock(ctx context.Context, sale *model.Sale) error
}

type NotificationRepository interface {
	Create(ctx context.Context, notification *model.Notification) error
	List(ctx context.Context) ([]*model.Notification, error)
	// MarkRead flips the read flag. An unknown id is a silent no-op.
	MarkRead(ctx context.Context, id uuid.UUID) (found bool)
}

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	Get(ctx context.Context, id uuid.UUID) (*model.User, error)
	// GetByEmail does a case-sensitive exact match.
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context) ([]*model.User, error)
}

type AuditRepository interface {
	Append(ctx context.Context, entry *model.AuditEntry)
	Recent(ctx context.Context, limit int) []*model.AuditEntry
}
