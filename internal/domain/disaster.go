package domain

import (
	"time"

	"github.com/google/uuid"
)

// Disaster statuses. The storage layer enforces the enum with a CHECK
// constraint; inactive is the default.
const (
	DisasterStatusActive   = "active"
	DisasterStatusInactive = "inactive"
)

// DefaultDisasterDescription is stored when no description is supplied.
const DefaultDisasterDescription = "No description available"

// Disaster is owned by the disaster subsystem and referenced read-only here.
// Agencies relate to disasters many-to-many via the agencies set.
type Disaster struct {
	ID             uuid.UUID   `json:"id" db:"id"`
	TypeOfDisaster string      `json:"typeOfDisaster" db:"type_of_disaster"`
	Timestamp      time.Time   `json:"timestamp" db:"timestamp"`
	Severity       string      `json:"severity" db:"severity"`
	Status         string      `json:"status" db:"status"`
	Address        Address     `json:"address" db:"address"`
	Location       *GeoPoint   `json:"location,omitempty"`
	Description    string      `json:"description" db:"description"`
	Agencies       []uuid.UUID `json:"agencies"`
}
