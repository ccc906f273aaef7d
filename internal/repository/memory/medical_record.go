package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/patasfelizes/clinic-api/internal/model"
	"github.com/patasfelizes/clinic-api/internal/repository"
)

type MedicalRecordRepository struct {
	s *Store
}

func NewMedicalRecordRepository(s *Store) *MedicalRecordRepository {
	return &MedicalRecordRepository{s: s}
}

func cloneRecord(rec model.MedicalRecord) *model.MedicalRecord {
	if rec.Prescriptions != nil {
		rec.Prescriptions = append([]model.Prescription(nil), rec.Prescriptions...)
	}
	return &rec
}

func (r *MedicalRecordRepository) Create(ctx context.Context, record *model.MedicalRecord) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.stamp(&record.Base)
	r.s.records = append(r.s.records, *cloneRecord(*record))
	r.s.observe("medical_records", "create", len(r.s.records))
	return nil
}

func (r *MedicalRecordRepository) Get(ctx context.Context, id uuid.UUID) (*model.MedicalRecord, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for i := range r.s.records {
		if r.s.records[i].ID == id {
			return cloneRecord(r.s.records[i]), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *MedicalRecordRepository) List(ctx context.Context) ([]*model.MedicalRecord, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*model.MedicalRecord, 0, len(r.s.records))
	for i := range r.s.records {
		out = append(out, cloneRecord(r.s.records[i]))
	}
	return out, nil
}

func (r *MedicalRecordRepository) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.MedicalRecord, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []*model.MedicalRecord
	for i := range r.s.records {
		if r.s.records[i].PatientID == patientID {
			out = append(out, cloneRecord(r.s.records[i]))
		}
	}
	return out, nil
}
