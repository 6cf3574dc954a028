package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-video-fetcher/internal/logger"
	"github.com/MKhiriev/go-video-fetcher/internal/service"
)

// CleanupWorker runs the cleanup service once at start and then on every
// tick of its interval.
type CleanupWorker struct {
	service  service.CleanupService
	interval time.Duration
	now      func() time.Time

	logger *logger.Logger
}

func NewCleanupWorker(cleanupService service.CleanupService, interval time.Duration, logger *logger.Logger) *CleanupWorker {
	return &CleanupWorker{
		service:  cleanupService,
		interval: interval,
		now:      time.Now,
		logger:   logger,
	}
}

func (w *CleanupWorker) Run(ctx context.Context) {
	if w.interval <= 0 {
		w.logger.Warn().Msg("cleanup interval is not positive, cleanup worker disabled")
		return
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.sweep(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

func (w *CleanupWorker) sweep(ctx context.Context) {
	if _, err := w.service.Sweep(ctx, w.now()); err != nil {
		w.logger.Err(err).Msg("cleanup sweep failed")
	}
}
