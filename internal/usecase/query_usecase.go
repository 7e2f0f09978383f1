package usecase

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/agency-service/internal/domain"
	"github.com/agency-service/internal/domain/repository"
	"github.com/agency-service/internal/pkg/errors"
	"github.com/agency-service/internal/usecase/dto"
)

// LocationsCacheKey holds the cached public locations projection. The
// worker deletes it when a lifecycle event lands.
const LocationsCacheKey = "agency:locations"

// AgencyQueryUseCase serves the read-side joins from the agency's
// perspective. It never mutates disaster or resource records.
type AgencyQueryUseCase struct {
	agencyRepo   repository.AgencyRepository
	resourceRepo repository.ResourceRepository
	disasterRepo repository.DisasterRepository
	cacheRepo    repository.CacheRepository
	logger       *zap.Logger
	cacheTTL     time.Duration
}

func NewAgencyQueryUseCase(
	agencyRepo repository.AgencyRepository,
	resourceRepo repository.ResourceRepository,
	disasterRepo repository.DisasterRepository,
	cacheRepo repository.CacheRepository,
	logger *zap.Logger,
	cacheTTL time.Duration,
) *AgencyQueryUseCase {
	return &AgencyQueryUseCase{
		agencyRepo:   agencyRepo,
		resourceRepo: resourceRepo,
		disasterRepo: disasterRepo,
		cacheRepo:    cacheRepo,
		logger:       logger,
		cacheTTL:     cacheTTL,
	}
}

// Locations returns the public projection of every agency, served from the
// Redis cache when warm. Cache failures degrade to the database read.
func (uc *AgencyQueryUseCase) Locations(ctx context.Context) (*dto.LocationsResponse, error) {
	if uc.cacheRepo != nil {
		cached, err := uc.cacheRepo.Get(ctx, LocationsCacheKey)
		if err != nil {
			uc.logger.Warn("Failed to read locations cache", zap.Error(err))
		} else if cached != nil {
			var resp dto.LocationsResponse
			if err := json.Unmarshal(cached, &resp); err == nil {
				return &resp, nil
			}
			uc.logger.Warn("Discarding malformed locations cache entry", zap.Error(err))
		}
	}

	locations, err := uc.agencyRepo.ListLocations(ctx)
	if err != nil {
		return nil, err
	}

	resp := &dto.LocationsResponse{
		Agencies: locations,
		Total:    len(locations),
	}

	if uc.cacheRepo != nil {
		if payload, err := json.Marshal(resp); err == nil {
			if err := uc.cacheRepo.Set(ctx, LocationsCacheKey, payload, uc.cacheTTL); err != nil {
				uc.logger.Warn("Failed to write locations cache", zap.Error(err))
			}
		}
	}

	return resp, nil
}

// ByAgencyName joins an agency with its owned resources and the disasters
// it participates in. No resource or disaster query runs when the agency
// does not exist.
func (uc *AgencyQueryUseCase) ByAgencyName(ctx context.Context, name string) (*dto.AssociationsResponse, error) {
	agency, err := uc.agencyRepo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if agency == nil {
		return nil, errors.ErrAgencyNotFound
	}

	resources, err := uc.resourceRepo.FindByOwnerAgency(ctx, agency.ID)
	if err != nil {
		return nil, err
	}

	disasters, err := uc.disasterRepo.FindByAgencyID(ctx, agency.ID)
	if err != nil {
		return nil, err
	}

	if resources == nil {
		resources = []domain.Resource{}
	}
	if disasters == nil {
		disasters = []domain.Disaster{}
	}

	return &dto.AssociationsResponse{
		Agency:    dto.NewAgencyResponse(agency),
		Resources: resources,
		Disasters: disasters,
	}, nil
}
