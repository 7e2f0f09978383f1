package agency

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/agency-service/internal/domain"
	"github.com/agency-service/internal/domain/repository"
	"github.com/agency-service/internal/usecase"
	"github.com/agency-service/internal/worker"
)

const (
	maxBatchSize    = 20
	emptyQueueSleep = 100 * time.Millisecond
)

// EventsWorker consumes agency lifecycle events: it drops the cached
// locations projection so read-side queries see fresh data, and writes an
// audit log line per event.
type EventsWorker struct {
	*worker.BaseWorker
	streamRepo   repository.StreamRepository
	cacheRepo    repository.CacheRepository
	consumerName string
}

func NewEventsWorker(
	streamRepo repository.StreamRepository,
	cacheRepo repository.CacheRepository,
	consumerGroup string,
	logger *zap.Logger,
) *EventsWorker {
	hostname, _ := os.Hostname()
	consumerName := fmt.Sprintf("%s-%d", hostname, os.Getpid())

	return &EventsWorker{
		BaseWorker:   worker.NewBaseWorker("agency-events", consumerGroup, logger),
		streamRepo:   streamRepo,
		cacheRepo:    cacheRepo,
		consumerName: consumerName,
	}
}

func (w *EventsWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting agency events worker",
		zap.String("consumer_group", w.ConsumerGroup()),
		zap.String("consumer_name", w.consumerName),
		zap.Int("max_batch_size", maxBatchSize))

	if err := w.streamRepo.CreateConsumerGroup(ctx, domain.StreamAgencyEvents, w.ConsumerGroup()); err != nil {
		logger.Error("Failed to create consumer group", zap.Error(err))
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil

		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()

		default:
			processed, err := w.processBatch(ctx)
			if err != nil {
				logger.Error("Failed to process batch", zap.Error(err))
				time.Sleep(time.Second)
				continue
			}

			if processed == 0 {
				time.Sleep(emptyQueueSleep)
			}
		}
	}
}

// processBatch drains up to maxBatchSize messages and returns how many were
// read. Unparseable messages are acked so they cannot wedge the group.
func (w *EventsWorker) processBatch(ctx context.Context) (int, error) {
	logger := w.Logger()

	messages, err := w.streamRepo.ConsumeBatch(
		ctx,
		domain.StreamAgencyEvents,
		w.ConsumerGroup(),
		w.consumerName,
		maxBatchSize,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to consume batch: %w", err)
	}

	if len(messages) == 0 {
		return 0, nil
	}

	invalidate := false
	for _, msg := range messages {
		var event domain.AgencyEvent
		if err := json.Unmarshal([]byte(msg.Data), &event); err != nil {
			logger.Warn("Failed to parse agency event, skipping",
				zap.String("message_id", msg.ID),
				zap.Error(err))
			_ = w.streamRepo.AckMessage(ctx, domain.StreamAgencyEvents, w.ConsumerGroup(), msg.ID)
			continue
		}

		logger.Info("agency event",
			zap.String("type", event.Type),
			zap.String("agency_id", event.AgencyID.String()),
			zap.Time("occurred_at", event.OccurredAt))

		// Registration and profile updates change the locations
		// projection; password changes do not.
		if event.Type == domain.EventAgencyRegistered || event.Type == domain.EventAgencyUpdated {
			invalidate = true
		}

		if err := w.streamRepo.AckMessage(ctx, domain.StreamAgencyEvents, w.ConsumerGroup(), msg.ID); err != nil {
			logger.Warn("Failed to ack message",
				zap.String("message_id", msg.ID),
				zap.Error(err))
		}
	}

	if invalidate {
		if err := w.cacheRepo.Delete(ctx, usecase.LocationsCacheKey); err != nil {
			logger.Warn("Failed to invalidate locations cache", zap.Error(err))
		} else {
			logger.Debug("Locations cache invalidated")
		}
	}

	return len(messages), nil
}
