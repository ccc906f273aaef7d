package model

import (
	"time"

	"github.com/google/uuid"
)

// AuditEntry records one mutation against the registry. Entries live in
// a bounded in-memory trail and reset with the process, like everything
// else in the registry.
type AuditEntry struct {
	ID         uuid.UUID              `json:"id"`
	ActorID    uuid.UUID              `json:"actor_id"`
	Action     string                 `json:"action"`
	Resource   string                 `json:"resource"`
	ResourceID uuid.UUID              `json:"resource_id"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt  time.Time              `json:"created_at"`
}
