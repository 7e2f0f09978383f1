package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/agency-service/internal/domain"
)

// ResourceRepository reads resource records owned by agencies. Read-only
// from this service's perspective.
type ResourceRepository interface {
	// FindByOwnerAgency returns every resource owned by the agency.
	FindByOwnerAgency(ctx context.Context, agencyID uuid.UUID) ([]domain.Resource, error)
}
