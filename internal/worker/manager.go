package worker

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Manager starts registered workers in their own goroutines and stops them
// together on shutdown.
type Manager struct {
	workers []Worker
	logger  *zap.Logger
	wg      sync.WaitGroup
}

func NewManager(logger *zap.Logger) *Manager {
	return &Manager{logger: logger}
}

func (m *Manager) Register(w Worker) {
	m.workers = append(m.workers, w)
}

func (m *Manager) Start(ctx context.Context) error {
	for _, w := range m.workers {
		m.wg.Add(1)
		go func(w Worker) {
			defer m.wg.Done()
			if err := w.Start(ctx); err != nil && ctx.Err() == nil {
				m.logger.Error("Worker exited with error",
					zap.String("name", w.Name()),
					zap.Error(err))
			}
		}(w)
		m.logger.Info("Worker started", zap.String("name", w.Name()))
	}
	return nil
}

// Stop signals every worker and waits for the loops to drain.
func (m *Manager) Stop() error {
	for _, w := range m.workers {
		if err := w.Stop(); err != nil {
			m.logger.Error("Failed to stop worker",
				zap.String("name", w.Name()),
				zap.Error(err))
		}
	}
	m.wg.Wait()
	return nil
}
