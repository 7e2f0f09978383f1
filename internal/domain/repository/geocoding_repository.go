package repository

import (
	"context"

	"github.com/agency-service/internal/domain"
)

// GeocodingRepository resolves a single-line postal address into coordinate
// candidates via the external provider. Transport failures, malformed
// responses and the zero-candidate case all surface as the geocoding error;
// coordinates are never silently defaulted.
type GeocodingRepository interface {
	Forward(ctx context.Context, address string) ([]domain.GeocodeCandidate, error)
}
