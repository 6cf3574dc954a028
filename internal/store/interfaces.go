package store

import (
	"context"
	"os"
	"time"

	"github.com/MKhiriev/go-video-fetcher/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// TaskRepository persists download tasks.
type TaskRepository interface {
	// Create stores a new task. A task with the same ID yields ErrTaskAlreadyExists.
	Create(ctx context.Context, task models.Task) error
	// Get returns the task with the given ID or ErrTaskNotFound.
	Get(ctx context.Context, taskID string) (models.Task, error)
	// Update replaces every mutable field of an existing task.
	Update(ctx context.Context, task models.Task) error
	// UpdateProgress changes only the status and progress of a task.
	UpdateProgress(ctx context.Context, taskID string, status models.TaskStatus, progress float64) error
	// DeleteFinishedBefore removes complete and failed tasks last updated
	// before cutoff and reports how many were removed.
	DeleteFinishedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// FileStorage manages the directory downloaded media is written into.
type FileStorage interface {
	// Dir returns the download directory.
	Dir() string
	// EnsureDir creates the directory and checks that it is writable.
	EnsureDir() error
	// OutputTemplate returns the yt-dlp output template for a task.
	OutputTemplate(taskID string) string
	// FindByPrefix returns the finished file written for taskID or ErrFileNotFound.
	FindByPrefix(ctx context.Context, taskID string) (models.StoredFile, error)
	// Open opens a file by its base name or returns ErrFileNotFound.
	Open(name string) (*os.File, error)
	// RemoveOlderThan deletes regular files modified before cutoff.
	RemoveOlderThan(ctx context.Context, cutoff time.Time) (int, error)
}
