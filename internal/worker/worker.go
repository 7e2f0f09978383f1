package worker

import (
	"context"
)

// Worker is the common lifecycle contract for stream consumers.
type Worker interface {
	// Start runs the worker loop until the context is cancelled or Stop
	// is called.
	Start(ctx context.Context) error

	Stop() error

	Name() string
}
