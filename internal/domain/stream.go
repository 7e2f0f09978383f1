package domain

import (
	"time"

	"github.com/google/uuid"
)

// Stream names shared between the API and the worker binary.
const (
	StreamAgencyEvents = "stream:agency:events"
)

// Agency lifecycle event types.
const (
	EventAgencyRegistered      = "agency.registered"
	EventAgencyUpdated         = "agency.updated"
	EventAgencyPasswordChanged = "agency.password_changed"
)

// AgencyEvent is published to the events stream after a successful
// lifecycle operation.
type AgencyEvent struct {
	Type       string    `json:"type"`
	AgencyID   uuid.UUID `json:"agency_id"`
	Email      string    `json:"email"`
	OccurredAt time.Time `json:"occurred_at"`
}

// StreamMessage is one raw message read from a Redis stream.
type StreamMessage struct {
	ID   string
	Data string
}
