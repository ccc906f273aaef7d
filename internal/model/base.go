package model

import (
	"time"

	"github.com/google/uuid"
)

// Base contains common fields for all registry records. Records are
// never deleted in current scope, so there is no soft-delete marker.
type Base struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
