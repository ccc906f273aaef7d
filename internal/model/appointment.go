package model

import (
	"time"

	"github.com/google/uuid"
)

type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "scheduled"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

func ValidAppointmentStatus(s AppointmentStatus) bool {
	switch s {
	case AppointmentStatusScheduled, AppointmentStatusConfirmed,
		AppointmentStatusCompleted, AppointmentStatusCancelled:
		return true
	}
	return false
}

// Appointment is a scheduled visit of a patient to a veterinarian.
// Status transitions are unconstrained in current scope.
type Appointment struct {
	Base
	PatientID      uuid.UUID         `json:"patient_id"`
	VeterinarianID uuid.UUID         `json:"veterinarian_id"`
	Date           time.Time         `json:"date"`
	Time           string            `json:"time"`
	Service        string            `json:"service"`
	Status         AppointmentStatus `json:"status"`
	Observations   string            `json:"observations,omitempty"`
}

type CreateAppointmentRequest struct {
	PatientID      string    `json:"patient_id" binding:"required,uuid"`
	VeterinarianID string    `json:"veterinarian_id" binding:"required,uuid"`
	Date           time.Time `json:"date" binding:"required"`
	Time           string    `json:"time" binding:"required"`
	Service        string    `json:"service" binding:"required"`
	Status         string    `json:"status"`
	Observations   string    `json:"observations"`
}
