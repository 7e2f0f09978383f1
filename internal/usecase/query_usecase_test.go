package usecase

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/agency-service/internal/domain"
	"github.com/agency-service/internal/pkg/errors"
	"github.com/agency-service/internal/usecase/dto"
)

type queryMocks struct {
	agencyRepo   *mockAgencyRepo
	resourceRepo *mockResourceRepo
	disasterRepo *mockDisasterRepo
	cacheRepo    *mockCacheRepo
}

func newQueryUseCase(t *testing.T) (*AgencyQueryUseCase, *queryMocks) {
	t.Helper()
	m := &queryMocks{
		agencyRepo:   new(mockAgencyRepo),
		resourceRepo: new(mockResourceRepo),
		disasterRepo: new(mockDisasterRepo),
		cacheRepo:    new(mockCacheRepo),
	}
	uc := NewAgencyQueryUseCase(m.agencyRepo, m.resourceRepo, m.disasterRepo, m.cacheRepo, zap.NewNop(), time.Minute)
	return uc, m
}

func testLocations() []domain.AgencyLocation {
	return []domain.AgencyLocation{
		{
			ID:    uuid.New(),
			Name:  "Red Relief",
			Email: "ops@redrelief.org",
			Contact: domain.Address{
				Street: "123 Main St", City: "Springfield", State: "IL",
				PostalCode: "62701", Country: "USA",
			},
			Expertise: []string{"flood"},
			Location:  domain.NewGeoPoint(-89.65, 39.78),
		},
	}
}

func TestAgencyQueryUseCase_Locations(t *testing.T) {
	ctx := context.Background()

	t.Run("cache miss populates the cache", func(t *testing.T) {
		uc, m := newQueryUseCase(t)
		locations := testLocations()

		m.cacheRepo.On("Get", ctx, LocationsCacheKey).Return(nil, nil)
		m.agencyRepo.On("ListLocations", ctx).Return(locations, nil)
		m.cacheRepo.On("Set", ctx, LocationsCacheKey, mock.Anything, time.Minute).Return(nil)

		resp, err := uc.Locations(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, resp.Total)
		assert.Equal(t, "Red Relief", resp.Agencies[0].Name)

		m.cacheRepo.AssertExpectations(t)
	})

	t.Run("cache hit skips the database", func(t *testing.T) {
		uc, m := newQueryUseCase(t)

		cached, err := json.Marshal(&dto.LocationsResponse{
			Agencies: testLocations(),
			Total:    1,
		})
		require.NoError(t, err)

		m.cacheRepo.On("Get", ctx, LocationsCacheKey).Return(cached, nil)

		resp, err := uc.Locations(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, resp.Total)

		m.agencyRepo.AssertNotCalled(t, "ListLocations", mock.Anything)
	})

	t.Run("cache read failure degrades to the database", func(t *testing.T) {
		uc, m := newQueryUseCase(t)
		locations := testLocations()

		m.cacheRepo.On("Get", ctx, LocationsCacheKey).Return(nil, stderrors.New("redis down"))
		m.agencyRepo.On("ListLocations", ctx).Return(locations, nil)
		m.cacheRepo.On("Set", ctx, LocationsCacheKey, mock.Anything, time.Minute).
			Return(stderrors.New("redis down"))

		resp, err := uc.Locations(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, resp.Total)
	})

	t.Run("malformed cache entry falls through to the database", func(t *testing.T) {
		uc, m := newQueryUseCase(t)
		locations := testLocations()

		m.cacheRepo.On("Get", ctx, LocationsCacheKey).Return([]byte("not json"), nil)
		m.agencyRepo.On("ListLocations", ctx).Return(locations, nil)
		m.cacheRepo.On("Set", ctx, LocationsCacheKey, mock.Anything, time.Minute).Return(nil)

		resp, err := uc.Locations(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, resp.Total)
	})

	t.Run("database failure propagates", func(t *testing.T) {
		uc, m := newQueryUseCase(t)

		m.cacheRepo.On("Get", ctx, LocationsCacheKey).Return(nil, nil)
		m.agencyRepo.On("ListLocations", ctx).Return(nil, stderrors.New("connection reset"))

		resp, err := uc.Locations(ctx)
		assert.Nil(t, resp)
		assert.Error(t, err)
	})

	t.Run("empty table yields zero total", func(t *testing.T) {
		uc, m := newQueryUseCase(t)

		m.cacheRepo.On("Get", ctx, LocationsCacheKey).Return(nil, nil)
		m.agencyRepo.On("ListLocations", ctx).Return([]domain.AgencyLocation{}, nil)
		m.cacheRepo.On("Set", ctx, LocationsCacheKey, mock.Anything, time.Minute).Return(nil)

		resp, err := uc.Locations(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, resp.Total)
		assert.Empty(t, resp.Agencies)
	})
}

func TestAgencyQueryUseCase_ByAgencyName(t *testing.T) {
	ctx := context.Background()

	t.Run("joins resources and disasters", func(t *testing.T) {
		uc, m := newQueryUseCase(t)
		agency := storedAgency()

		resources := []domain.Resource{
			{ID: uuid.New(), Name: "Water pallets", Type: "supplies", Quantity: 40, OwnerAgencyID: agency.ID},
		}
		disasters := []domain.Disaster{
			{
				ID:             uuid.New(),
				TypeOfDisaster: "flood",
				Severity:       "high",
				Status:         domain.DisasterStatusActive,
				Agencies:       []uuid.UUID{agency.ID},
			},
		}

		m.agencyRepo.On("GetByName", ctx, agency.Name).Return(agency, nil)
		m.resourceRepo.On("FindByOwnerAgency", ctx, agency.ID).Return(resources, nil)
		m.disasterRepo.On("FindByAgencyID", ctx, agency.ID).Return(disasters, nil)

		resp, err := uc.ByAgencyName(ctx, agency.Name)
		require.NoError(t, err)
		assert.Equal(t, agency.Name, resp.Agency.Name)
		assert.Len(t, resp.Resources, 1)
		assert.Len(t, resp.Disasters, 1)
	})

	t.Run("unknown name stops before resource and disaster queries", func(t *testing.T) {
		uc, m := newQueryUseCase(t)

		m.agencyRepo.On("GetByName", ctx, "Nobody").Return(nil, nil)

		resp, err := uc.ByAgencyName(ctx, "Nobody")
		assert.Nil(t, resp)
		assert.ErrorIs(t, err, errors.ErrAgencyNotFound)

		m.resourceRepo.AssertNotCalled(t, "FindByOwnerAgency", mock.Anything, mock.Anything)
		m.disasterRepo.AssertNotCalled(t, "FindByAgencyID", mock.Anything, mock.Anything)
	})

	t.Run("nil slices normalize to empty", func(t *testing.T) {
		uc, m := newQueryUseCase(t)
		agency := storedAgency()

		m.agencyRepo.On("GetByName", ctx, agency.Name).Return(agency, nil)
		m.resourceRepo.On("FindByOwnerAgency", ctx, agency.ID).Return(nil, nil)
		m.disasterRepo.On("FindByAgencyID", ctx, agency.ID).Return(nil, nil)

		resp, err := uc.ByAgencyName(ctx, agency.Name)
		require.NoError(t, err)
		assert.NotNil(t, resp.Resources)
		assert.NotNil(t, resp.Disasters)
		assert.Empty(t, resp.Resources)
		assert.Empty(t, resp.Disasters)
	})

	t.Run("resource query failure propagates", func(t *testing.T) {
		uc, m := newQueryUseCase(t)
		agency := storedAgency()

		m.agencyRepo.On("GetByName", ctx, agency.Name).Return(agency, nil)
		m.resourceRepo.On("FindByOwnerAgency", ctx, agency.ID).Return(nil, stderrors.New("timeout"))

		resp, err := uc.ByAgencyName(ctx, agency.Name)
		assert.Nil(t, resp)
		assert.Error(t, err)
	})
}
