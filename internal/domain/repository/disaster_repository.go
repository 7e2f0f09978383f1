package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/agency-service/internal/domain"
)

// DisasterRepository reads disaster records. The disaster lifecycle is owned
// by another subsystem; this service never mutates it.
type DisasterRepository interface {
	// FindByAgencyID returns every disaster whose agency set contains the id.
	FindByAgencyID(ctx context.Context, agencyID uuid.UUID) ([]domain.Disaster, error)
}
