package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/agency-service/internal/domain"
)

type mockAgencyRepo struct {
	mock.Mock
}

func (m *mockAgencyRepo) Create(ctx context.Context, agency *domain.Agency) error {
	args := m.Called(ctx, agency)
	return args.Error(0)
}

func (m *mockAgencyRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Agency, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Agency), args.Error(1)
}

func (m *mockAgencyRepo) GetByEmail(ctx context.Context, email string) (*domain.Agency, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Agency), args.Error(1)
}

func (m *mockAgencyRepo) GetByName(ctx context.Context, name string) (*domain.Agency, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Agency), args.Error(1)
}

func (m *mockAgencyRepo) Update(ctx context.Context, id uuid.UUID, update domain.AgencyUpdate) (*domain.Agency, error) {
	args := m.Called(ctx, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Agency), args.Error(1)
}

func (m *mockAgencyRepo) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	args := m.Called(ctx, id, passwordHash)
	return args.Error(0)
}

func (m *mockAgencyRepo) ListLocations(ctx context.Context) ([]domain.AgencyLocation, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AgencyLocation), args.Error(1)
}

type mockGeocoder struct {
	mock.Mock
}

func (m *mockGeocoder) Forward(ctx context.Context, address string) ([]domain.GeocodeCandidate, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GeocodeCandidate), args.Error(1)
}

type mockHasher struct {
	mock.Mock
}

func (m *mockHasher) Hash(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

func (m *mockHasher) Compare(hashedPassword, password string) error {
	args := m.Called(hashedPassword, password)
	return args.Error(0)
}

type mockTokenIssuer struct {
	mock.Mock
}

func (m *mockTokenIssuer) Issue(agencyID uuid.UUID) (string, error) {
	args := m.Called(agencyID)
	return args.String(0), args.Error(1)
}

func (m *mockTokenIssuer) Validate(tokenString string) (uuid.UUID, error) {
	args := m.Called(tokenString)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

type mockStreamRepo struct {
	mock.Mock
}

func (m *mockStreamRepo) PublishToStream(ctx context.Context, stream string, data interface{}) error {
	args := m.Called(ctx, stream, data)
	return args.Error(0)
}

func (m *mockStreamRepo) CreateConsumerGroup(ctx context.Context, stream, group string) error {
	args := m.Called(ctx, stream, group)
	return args.Error(0)
}

func (m *mockStreamRepo) ConsumeBatch(ctx context.Context, stream, group, consumer string, count int) ([]domain.StreamMessage, error) {
	args := m.Called(ctx, stream, group, consumer, count)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StreamMessage), args.Error(1)
}

func (m *mockStreamRepo) AckMessage(ctx context.Context, stream, group, messageID string) error {
	args := m.Called(ctx, stream, group, messageID)
	return args.Error(0)
}

type mockResourceRepo struct {
	mock.Mock
}

func (m *mockResourceRepo) FindByOwnerAgency(ctx context.Context, agencyID uuid.UUID) ([]domain.Resource, error) {
	args := m.Called(ctx, agencyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Resource), args.Error(1)
}

type mockDisasterRepo struct {
	mock.Mock
}

func (m *mockDisasterRepo) FindByAgencyID(ctx context.Context, agencyID uuid.UUID) ([]domain.Disaster, error) {
	args := m.Called(ctx, agencyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Disaster), args.Error(1)
}

type mockCacheRepo struct {
	mock.Mock
}

func (m *mockCacheRepo) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *mockCacheRepo) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *mockCacheRepo) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}
