package workers

import (
	"context"
	"sync"

	"github.com/MKhiriev/go-video-fetcher/internal/config"
	"github.com/MKhiriev/go-video-fetcher/internal/logger"
	"github.com/MKhiriev/go-video-fetcher/internal/service"
)

type Workers struct {
	workers []Worker

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewWorkers builds the download and cleanup workers. queue must be the
// same queue the download service enqueues into.
func NewWorkers(cfg config.Workers, services *service.Services, queue *TaskQueue, logger *logger.Logger) *Workers {
	return &Workers{
		workers: []Worker{
			NewDownloadWorker(queue, services.DownloadService, cfg.Downloaders, logger),
			NewCleanupWorker(services.CleanupService, cfg.CleanupInterval, logger),
		},
	}
}

// Start runs every worker in its own goroutine. Calling Start on running
// workers is a no-op.
func (w *Workers) Start(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.cancel != nil {
		return
	}

	ctx, w.cancel = context.WithCancel(ctx)
	for _, worker := range w.workers {
		w.wg.Add(1)
		go func(worker Worker) {
			defer w.wg.Done()
			worker.Run(ctx)
		}(worker)
	}
}

// Stop cancels the workers and waits for them to return.
func (w *Workers) Stop() {
	w.mu.Lock()
	cancel := w.cancel
	w.cancel = nil
	w.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	w.wg.Wait()
}
