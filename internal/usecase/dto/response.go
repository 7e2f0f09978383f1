package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/agency-service/internal/domain"
)

// AgencyResponse is the boundary projection of an agency. The password hash
// never appears here.
type AgencyResponse struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Email       string          `json:"email"`
	Contact     domain.Address  `json:"contact"`
	PhoneNumber string          `json:"phoneNumber"`
	Expertise   []string        `json:"expertise"`
	Location    *domain.GeoPoint `json:"location,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

func NewAgencyResponse(agency *domain.Agency) *AgencyResponse {
	return &AgencyResponse{
		ID:          agency.ID,
		Name:        agency.Name,
		Email:       agency.Email,
		Contact:     agency.Contact,
		PhoneNumber: agency.PhoneNumber,
		Expertise:   agency.Expertise,
		Location:    agency.Location,
		CreatedAt:   agency.CreatedAt,
		UpdatedAt:   agency.UpdatedAt,
	}
}

// LoginResponse delivers the session token in the response body.
type LoginResponse struct {
	Token string `json:"token"`
}

// LocationsResponse lists the public projection of every agency.
type LocationsResponse struct {
	Agencies []domain.AgencyLocation `json:"agencies"`
	Total    int                     `json:"total"`
}

// AssociationsResponse joins an agency with its owned resources and the
// disasters it works.
type AssociationsResponse struct {
	Agency    *AgencyResponse   `json:"agency"`
	Resources []domain.Resource `json:"resources"`
	Disasters []domain.Disaster `json:"disasters"`
}
