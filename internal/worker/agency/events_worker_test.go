package agency_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/agency-service/internal/domain"
	"github.com/agency-service/internal/usecase"
	"github.com/agency-service/internal/worker/agency"
)

type MockStreamRepository struct {
	mock.Mock
}

func (m *MockStreamRepository) PublishToStream(ctx context.Context, stream string, data interface{}) error {
	args := m.Called(ctx, stream, data)
	return args.Error(0)
}

func (m *MockStreamRepository) CreateConsumerGroup(ctx context.Context, stream, group string) error {
	args := m.Called(ctx, stream, group)
	return args.Error(0)
}

func (m *MockStreamRepository) ConsumeBatch(ctx context.Context, stream, group, consumer string, count int) ([]domain.StreamMessage, error) {
	args := m.Called(ctx, stream, group, consumer, count)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StreamMessage), args.Error(1)
}

func (m *MockStreamRepository) AckMessage(ctx context.Context, stream, group, messageID string) error {
	args := m.Called(ctx, stream, group, messageID)
	return args.Error(0)
}

type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func eventMessage(t *testing.T, id, eventType string) domain.StreamMessage {
	t.Helper()
	payload, err := json.Marshal(domain.AgencyEvent{
		Type:       eventType,
		AgencyID:   uuid.New(),
		Email:      "ops@redrelief.org",
		OccurredAt: time.Now().UTC(),
	})
	require.NoError(t, err)
	return domain.StreamMessage{ID: id, Data: string(payload)}
}

func TestEventsWorker_Name(t *testing.T) {
	worker := agency.NewEventsWorker(
		&MockStreamRepository{},
		&MockCacheRepository{},
		"test-group",
		zap.NewNop(),
	)

	assert.Equal(t, "agency-events", worker.Name())
}

func TestEventsWorker_Stop(t *testing.T) {
	worker := agency.NewEventsWorker(
		&MockStreamRepository{},
		&MockCacheRepository{},
		"test-group",
		zap.NewNop(),
	)

	// Stop should not error even if not started
	err := worker.Stop()
	assert.NoError(t, err)

	// Second stop is a no-op
	err = worker.Stop()
	assert.NoError(t, err)
}

func TestEventsWorker_ContextCancellation(t *testing.T) {
	mockStream := &MockStreamRepository{}
	mockCache := &MockCacheRepository{}

	worker := agency.NewEventsWorker(mockStream, mockCache, "test-group", zap.NewNop())

	mockStream.On("CreateConsumerGroup", mock.Anything, domain.StreamAgencyEvents, "test-group").
		Return(nil)
	mockStream.On("ConsumeBatch", mock.Anything, domain.StreamAgencyEvents, "test-group", mock.AnythingOfType("string"), 20).
		Return([]domain.StreamMessage{}, nil)

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- worker.Start(ctx)
	}()

	time.Sleep(200 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.Equal(t, context.Canceled, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Worker did not stop on context cancellation")
	}

	mockStream.AssertExpectations(t)
}

func TestEventsWorker_InvalidatesLocationsCache(t *testing.T) {
	mockStream := &MockStreamRepository{}
	mockCache := &MockCacheRepository{}

	worker := agency.NewEventsWorker(mockStream, mockCache, "test-group", zap.NewNop())

	messages := []domain.StreamMessage{
		eventMessage(t, "1234567890-0", domain.EventAgencyRegistered),
		eventMessage(t, "1234567890-1", domain.EventAgencyUpdated),
	}

	mockStream.On("CreateConsumerGroup", mock.Anything, domain.StreamAgencyEvents, "test-group").
		Return(nil)
	mockStream.On("ConsumeBatch", mock.Anything, domain.StreamAgencyEvents, "test-group", mock.AnythingOfType("string"), 20).
		Return(messages, nil).Once()
	mockStream.On("ConsumeBatch", mock.Anything, domain.StreamAgencyEvents, "test-group", mock.AnythingOfType("string"), 20).
		Return([]domain.StreamMessage{}, nil)
	mockStream.On("AckMessage", mock.Anything, domain.StreamAgencyEvents, "test-group", "1234567890-0").
		Return(nil)
	mockStream.On("AckMessage", mock.Anything, domain.StreamAgencyEvents, "test-group", "1234567890-1").
		Return(nil)
	mockCache.On("Delete", mock.Anything, usecase.LocationsCacheKey).Return(nil).Once()

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- worker.Start(ctx)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Worker did not stop in time")
	}

	mockStream.AssertExpectations(t)
	mockCache.AssertExpectations(t)
}

func TestEventsWorker_PasswordChangeKeepsCache(t *testing.T) {
	mockStream := &MockStreamRepository{}
	mockCache := &MockCacheRepository{}

	worker := agency.NewEventsWorker(mockStream, mockCache, "test-group", zap.NewNop())

	messages := []domain.StreamMessage{
		eventMessage(t, "1234567890-0", domain.EventAgencyPasswordChanged),
	}

	mockStream.On("CreateConsumerGroup", mock.Anything, domain.StreamAgencyEvents, "test-group").
		Return(nil)
	mockStream.On("ConsumeBatch", mock.Anything, domain.StreamAgencyEvents, "test-group", mock.AnythingOfType("string"), 20).
		Return(messages, nil).Once()
	mockStream.On("ConsumeBatch", mock.Anything, domain.StreamAgencyEvents, "test-group", mock.AnythingOfType("string"), 20).
		Return([]domain.StreamMessage{}, nil)
	mockStream.On("AckMessage", mock.Anything, domain.StreamAgencyEvents, "test-group", "1234567890-0").
		Return(nil)

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- worker.Start(ctx)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Worker did not stop in time")
	}

	mockCache.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestEventsWorker_PoisonMessageIsAcked(t *testing.T) {
	mockStream := &MockStreamRepository{}
	mockCache := &MockCacheRepository{}

	worker := agency.NewEventsWorker(mockStream, mockCache, "test-group", zap.NewNop())

	messages := []domain.StreamMessage{
		{ID: "1234567890-0", Data: "not json"},
	}

	mockStream.On("CreateConsumerGroup", mock.Anything, domain.StreamAgencyEvents, "test-group").
		Return(nil)
	mockStream.On("ConsumeBatch", mock.Anything, domain.StreamAgencyEvents, "test-group", mock.AnythingOfType("string"), 20).
		Return(messages, nil).Once()
	mockStream.On("ConsumeBatch", mock.Anything, domain.StreamAgencyEvents, "test-group", mock.AnythingOfType("string"), 20).
		Return([]domain.StreamMessage{}, nil)
	mockStream.On("AckMessage", mock.Anything, domain.StreamAgencyEvents, "test-group", "1234567890-0").
		Return(nil)

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- worker.Start(ctx)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Worker did not stop in time")
	}

	mockStream.AssertExpectations(t)
	mockCache.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
