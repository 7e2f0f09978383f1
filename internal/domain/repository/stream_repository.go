package repository

import (
	"context"

	"github.com/agency-service/internal/domain"
)

// StreamRepository publishes and consumes agency lifecycle events over
// Redis streams.
type StreamRepository interface {
	// PublishToStream serializes data as JSON and appends it to the stream.
	PublishToStream(ctx context.Context, stream string, data interface{}) error

	// CreateConsumerGroup creates the consumer group, tolerating the
	// already-exists case.
	CreateConsumerGroup(ctx context.Context, stream, group string) error

	// ConsumeBatch reads up to count pending messages for the consumer
	// without blocking. An empty slice means the queue is drained.
	ConsumeBatch(ctx context.Context, stream, group, consumer string, count int) ([]domain.StreamMessage, error)

	// AckMessage acknowledges one processed message.
	AckMessage(ctx context.Context, stream, group, messageID string) error
}
