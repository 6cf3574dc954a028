package service

import (
	"context"
	"os"
	"time"

	"github.com/MKhiriev/go-video-fetcher/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// DownloadService accepts download requests and runs them.
type DownloadService interface {
	// StartDownload validates rawURL, stores a queued task and hands it to
	// the download queue.
	StartDownload(ctx context.Context, rawURL string) (models.Task, error)
	// GetStatus returns the current state of a task.
	GetStatus(ctx context.Context, taskID string) (models.Task, error)
	// OpenFile opens the downloaded file of a complete task and returns it
	// with the name the client should save it under.
	OpenFile(ctx context.Context, taskID string) (*os.File, string, error)
	// ProcessTask downloads the media of a queued task. It always leaves the
	// task in a terminal state unless the task cannot be loaded.
	ProcessTask(ctx context.Context, taskID string) error
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	CheckDependencies(ctx context.Context) models.HealthResponse
}

// CleanupService removes expired files and task records.
type CleanupService interface {
	Sweep(ctx context.Context, now time.Time) (models.SweepReport, error)
}

// MediaFetcher extracts metadata and downloads media. It is implemented by
// the yt-dlp client.
type MediaFetcher interface {
	ExtractInfo(ctx context.Context, url string) (models.MediaInfo, error)
	Download(ctx context.Context, url, outputTemplate string, onProgress func(models.Progress)) error
}

// TaskQueue hands accepted task IDs to the download workers. Enqueue must
// not block; it returns ErrQueueFull when no slot is free.
type TaskQueue interface {
	Enqueue(taskID string) error
}
