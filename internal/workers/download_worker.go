package workers

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"

	"github.com/MKhiriev/go-video-fetcher/internal/logger"
	"github.com/MKhiriev/go-video-fetcher/internal/service"
)

// DownloadWorker drains the task queue with a fixed number of goroutines.
type DownloadWorker struct {
	queue       *TaskQueue
	service     service.DownloadService
	concurrency int

	logger *logger.Logger
}

func NewDownloadWorker(queue *TaskQueue, downloadService service.DownloadService, concurrency int, logger *logger.Logger) *DownloadWorker {
	if concurrency < 1 {
		concurrency = 1
	}
	return &DownloadWorker{
		queue:       queue,
		service:     downloadService,
		concurrency: concurrency,
		logger:      logger,
	}
}

func (w *DownloadWorker) Run(ctx context.Context) {
	w.logger.Info().Int("concurrency", w.concurrency).Int("queue_size", w.queue.Cap()).Msg("download worker started")

	var wg sync.WaitGroup
	for i := 0; i < w.concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w.loop(ctx)
		}()
	}
	wg.Wait()

	w.logger.Info().Int("pending", w.queue.Len()).Msg("download worker stopped")
}

func (w *DownloadWorker) loop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case taskID := <-w.queue.receive():
			if err := w.process(ctx, taskID); err != nil {
				w.logger.WithTask(taskID).Err(err).Msg("task processing failed")
			}
		}
	}
}

// process runs one task. A panic inside the service is turned into an error
// so the goroutine keeps serving the queue.
func (w *DownloadWorker) process(ctx context.Context, taskID string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			w.logger.WithTask(taskID).Error().Str("stack", string(debug.Stack())).Msg("panic while processing task")
			err = fmt.Errorf("panic while processing task %s: %v", taskID, r)
		}
	}()

	return w.service.ProcessTask(ctx, taskID)
}
