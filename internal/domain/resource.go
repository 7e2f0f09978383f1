package domain

import (
	"time"

	"github.com/google/uuid"
)

// Resource is owned by exactly one agency. Its lifecycle belongs to the
// resource subsystem; this service only reads it.
type Resource struct {
	ID            uuid.UUID `json:"id" db:"id"`
	Name          string    `json:"name" db:"name"`
	Type          string    `json:"type" db:"type"`
	Quantity      int       `json:"quantity" db:"quantity"`
	OwnerAgencyID uuid.UUID `json:"ownerAgency" db:"owner_agency_id"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
}
