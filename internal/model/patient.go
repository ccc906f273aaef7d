package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	GenderMale   = "male"
	GenderFemale = "female"
)

// Patient is an animal under clinical care, owned by exactly one tutor.
type Patient struct {
	Base
	Name         string    `json:"name"`
	TutorID      uuid.UUID `json:"tutor_id"`
	Species      string    `json:"species"`
	Breed        string    `json:"breed"`
	Gender       string    `json:"gender"`
	BirthDate    time.Time `json:"birth_date"`
	Weight       float64   `json:"weight"`
	Color        string    `json:"color"`
	Observations string    `json:"observations,omitempty"`
	Allergies    []string  `json:"allergies,omitempty"`
}

type CreatePatientRequest struct {
	Name         string    `json:"name" binding:"required"`
	TutorID      string    `json:"tutor_id" binding:"required,uuid"`
	Species      string    `json:"species" binding:"required"`
	Breed        string    `json:"breed" binding:"required"`
	Gender       string    `json:"gender" binding:"required,oneof=male female"`
	BirthDate    time.Time `json:"birth_date" binding:"required"`
	Weight       float64   `json:"weight" binding:"required,gt=0"`
	Color        string    `json:"color"`
	Observations string    `json:"observations"`
	Allergies    []string  `json:"allergies"`
}
