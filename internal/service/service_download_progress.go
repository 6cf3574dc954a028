package service

import (
	"context"
	"math"
	"sync"

	"github.com/MKhiriev/go-video-fetcher/internal/logger"
	"github.com/MKhiriev/go-video-fetcher/internal/store"
	"github.com/MKhiriev/go-video-fetcher/internal/ytdlp"
	"github.com/MKhiriev/go-video-fetcher/models"
)

// progressStep is the smallest change in percent that is written to the
// task store.
const progressStep = 1.0

// progressTracker receives downloader progress events and persists them.
// Writes happen when the value moves by at least progressStep, when it
// switches between known and indeterminate, and on completion.
type progressTracker struct {
	ctx    context.Context
	tasks  store.TaskRepository
	taskID string
	logger *logger.Logger

	mu        sync.Mutex
	last      float64
	persisted float64
}

func newProgressTracker(ctx context.Context, tasks store.TaskRepository, taskID string, logger *logger.Logger) *progressTracker {
	return &progressTracker{
		ctx:    ctx,
		tasks:  tasks,
		taskID: taskID,
		logger: logger,
	}
}

// Update is the progress callback handed to MediaFetcher.Download.
func (p *progressTracker) Update(event models.Progress) {
	percent, ok := ytdlp.ProgressPercent(event)
	if !ok {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.last = percent
	if !p.shouldPersist(percent) {
		return
	}

	if err := p.tasks.UpdateProgress(p.ctx, p.taskID, models.TaskStatusDownloading, percent); err != nil {
		p.logger.Warn().Err(err).Float64("progress", percent).Msg("error saving progress")
		return
	}
	p.persisted = percent
}

// Last returns the most recent percentage reported by the downloader.
func (p *progressTracker) Last() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.last
}

func (p *progressTracker) shouldPersist(percent float64) bool {
	if percent == p.persisted {
		return false
	}
	indeterminate := percent == models.IndeterminateProgress
	wasIndeterminate := p.persisted == models.IndeterminateProgress
	if indeterminate != wasIndeterminate || percent == 100 {
		return true
	}
	return math.Abs(percent-p.persisted) >= progressStep
}
