package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/agency-service/internal/domain"
	"github.com/agency-service/internal/domain/repository"
)

type resourceRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewResourceRepository creates the read-only resource store.
func NewResourceRepository(db *DB, logger *zap.Logger) repository.ResourceRepository {
	return &resourceRepository{
		db:     db,
		logger: logger,
	}
}

func (r *resourceRepository) FindByOwnerAgency(ctx context.Context, agencyID uuid.UUID) ([]domain.Resource, error) {
	query := `
		SELECT id, name, type, quantity, owner_agency_id, created_at
		FROM resources
		WHERE owner_agency_id = $1
		ORDER BY created_at
	`

	resources := make([]domain.Resource, 0)
	if err := r.db.SelectContext(ctx, &resources, query, agencyID); err != nil {
		r.logger.Error("failed to query resources by owner agency", zap.Error(err))
		return nil, fmt.Errorf("query resources by owner agency: %w", err)
	}

	return resources, nil
}
