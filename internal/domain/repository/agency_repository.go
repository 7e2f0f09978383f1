package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/agency-service/internal/domain"
)

// AgencyRepository persists agency accounts.
type AgencyRepository interface {
	// Create inserts a new agency. The storage layer's unique email index is
	// the backstop for concurrent registrations: the losing writer gets the
	// email-conflict error, never a duplicate row.
	Create(ctx context.Context, agency *domain.Agency) error

	GetByID(ctx context.Context, id uuid.UUID) (*domain.Agency, error)

	GetByEmail(ctx context.Context, email string) (*domain.Agency, error)

	// GetByName resolves the first matching agency by insertion order. Names
	// are not unique; colliding names are a known ambiguity of this lookup.
	GetByName(ctx context.Context, name string) (*domain.Agency, error)

	// Update applies the provided partial changes to one agency row
	// atomically and returns the updated record.
	Update(ctx context.Context, id uuid.UUID, update domain.AgencyUpdate) (*domain.Agency, error)

	// UpdatePassword replaces the stored hash for one agency id.
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error

	// ListLocations returns the public projection of every agency.
	ListLocations(ctx context.Context) ([]domain.AgencyLocation, error)
}
