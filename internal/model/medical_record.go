package model

import (
	"time"

	"github.com/google/uuid"
)

// Prescription is one medication line inside a medical record. Order of
// prescriptions is preserved.
type Prescription struct {
	ID           uuid.UUID `json:"id"`
	Medication   string    `json:"medication"`
	Dosage       string    `json:"dosage"`
	Frequency    string    `json:"frequency"`
	Duration     string    `json:"duration"`
	Instructions string    `json:"instructions"`
}

// MedicalRecord documents one clinical encounter.
type MedicalRecord struct {
	Base
	PatientID      uuid.UUID      `json:"patient_id"`
	VeterinarianID uuid.UUID      `json:"veterinarian_id"`
	AppointmentID  *uuid.UUID     `json:"appointment_id,omitempty"`
	Date           time.Time      `json:"date"`
	Anamnesis      string         `json:"anamnesis"`
	Diagnosis      string         `json:"diagnosis"`
	Treatment      string         `json:"treatment"`
	Prescriptions  []Prescription `json:"prescriptions,omitempty"`
	Observations   string         `json:"observations,omitempty"`
}

type PrescriptionRequest struct {
	Medication   string `json:"medication" binding:"required"`
	Dosage       string `json:"dosage" binding:"required"`
	Frequency    string `json:"frequency"`
	Duration     string `json:"duration"`
	Instructions string `json:"instructions"`
}

type CreateMedicalRecordRequest struct {
	PatientID      string                `json:"patient_id" binding:"required,uuid"`
	VeterinarianID string                `json:"veterinarian_id" binding:"required,uuid"`
	AppointmentID  string                `json:"appointment_id" binding:"omitempty,uuid"`
	Date           time.Time             `json:"date"`
	Anamnesis      string                `json:"anamnesis" binding:"required"`
	Diagnosis      string                `json:"diagnosis" binding:"required"`
	Treatment      string                `json:"treatment"`
	Prescriptions  []PrescriptionRequest `json:"prescriptions"`
	Observations   string                `json:"observations"`
}
