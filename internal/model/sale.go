package model

import "github.com/google/uuid"

type PaymentMethod string

const (
	PaymentCash PaymentMethod = "cash"
	PaymentCard PaymentMethod = "card"
	PaymentPix  PaymentMethod = "pix"
)

func ValidPaymentMethod(m PaymentMethod) bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentPix:
		return true
	}
	return false
}

type SaleStatus string

const (
	SaleStatusPending   SaleStatus = "pending"
	SaleStatusPaid      SaleStatus = "paid"
	SaleStatusCancelled SaleStatus = "cancelled"
)

// SaleItem is one line of a sale. Total is always quantity times unit
// price, recomputed by the sale service rather than trusted from input.
type SaleItem struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
	UnitPrice float64   `json:"unit_price"`
	Total     float64   `json:"total"`
}

// Sale records a purchase by a tutor, optionally tied to a patient.
type Sale struct {
	Base
	TutorID       uuid.UUID     `json:"tutor_id"`
	PatientID     *uuid.UUID    `json:"patient_id,omitempty"`
	Items         []SaleItem    `json:"items"`
	Total         float64       `json:"total"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	Status        SaleStatus    `json:"status"`
}

type SaleItemRequest struct {
	ProductID string `json:"product_id" binding:"required,uuid"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
}

type CreateSaleRequest struct {
	TutorID       string            `json:"tutor_id" binding:"required,uuid"`
	PatientID     string            `json:"patient_id" binding:"omitempty,uuid"`
	Items         []SaleItemRequest `json:"items" binding:"required,min=1,dive"`
	PaymentMethod string            `json:"payment_method" binding:"required,oneof=cash card pix"`
	Status        string            `json:"status" binding:"omitempty,oneof=pending paid cancelled"`
}
