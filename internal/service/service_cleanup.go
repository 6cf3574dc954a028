package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-video-fetcher/internal/config"
	"github.com/MKhiriev/go-video-fetcher/internal/logger"
	"github.com/MKhiriev/go-video-fetcher/internal/store"
	"github.com/MKhiriev/go-video-fetcher/models"
)

type cleanupService struct {
	tasks store.TaskRepository
	files store.FileStorage

	fileTTL       time.Duration
	taskRetention time.Duration

	logger *logger.Logger
}

func NewCleanupService(tasks store.TaskRepository, files store.FileStorage, filesCfg config.Files, workersCfg config.Workers, logger *logger.Logger) CleanupService {
	return &cleanupService{
		tasks:         tasks,
		files:         files,
		fileTTL:       filesCfg.FileTTL,
		taskRetention: workersCfg.TaskRetention,
		logger:        logger,
	}
}

// Sweep deletes files older than the file TTL and finished tasks older than
// the task retention. Both steps run even if the first one fails.
func (s *cleanupService) Sweep(ctx context.Context, now time.Time) (models.SweepReport, error) {
	var (
		report models.SweepReport
		errs   []error
	)

	removed, err := s.files.RemoveOlderThan(ctx, now.Add(-s.fileTTL))
	report.RemovedFiles = removed
	if err != nil {
		errs = append(errs, fmt.Errorf("error removing expired files: %w", err))
	}

	if s.taskRetention > 0 {
		deleted, err := s.tasks.DeleteFinishedBefore(ctx, now.Add(-s.taskRetention))
		report.RemovedTasks = deleted
		if err != nil {
			errs = append(errs, fmt.Errorf("error removing expired tasks: %w", err))
		}
	}

	if report.RemovedFiles > 0 || report.RemovedTasks > 0 {
		s.logger.Info().
			Int("files", report.RemovedFiles).
			Int64("tasks", report.RemovedTasks).
			Msg("cleanup removed expired entries")
	}

	return report, errors.Join(errs...)
}
