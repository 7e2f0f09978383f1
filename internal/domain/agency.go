package domain

import (
	"time"

	"github.com/google/uuid"
)

// Agency is a responder organization account. The password is persisted only
// as a bcrypt hash and is never serialized into responses.
type Agency struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Contact      Address   `json:"contact" db:"contact"`
	PhoneNumber  string    `json:"phoneNumber" db:"phone_number"`
	Expertise    []string  `json:"expertise"`
	Location     *GeoPoint `json:"location,omitempty"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

// Address is the structured postal contact of an agency.
type Address struct {
	Street     string `json:"street" db:"street"`
	City       string `json:"city" db:"city"`
	State      string `json:"state" db:"state"`
	PostalCode string `json:"postalCode" db:"postal_code"`
	Country    string `json:"country" db:"country"`
}

// AgencyLocation is the public projection returned by the locations listing.
// It deliberately omits credential and phone data.
type AgencyLocation struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Contact   Address   `json:"contact"`
	Expertise []string  `json:"expertise"`
	Location  *GeoPoint `json:"location,omitempty"`
}

// AgencyUpdate carries the fill-if-provided profile changes. A nil field
// means "keep the stored value"; a present-but-empty value is a replacement.
type AgencyUpdate struct {
	Name        *string
	Email       *string
	Contact     *Address
	PhoneNumber *string
	Expertise   *[]string
	Location    *GeoPoint
}
