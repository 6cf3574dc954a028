package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"regexp"
	"time"

	"github.com/MKhiriev/go-video-fetcher/internal/app"
	"github.com/MKhiriev/go-video-fetcher/internal/config"
	"github.com/MKhiriev/go-video-fetcher/internal/logger"
	"github.com/MKhiriev/go-video-fetcher/internal/store"
	"github.com/MKhiriev/go-video-fetcher/internal/utils"
	"github.com/MKhiriev/go-video-fetcher/internal/validators"
	"github.com/MKhiriev/go-video-fetcher/internal/ytdlp"
	"github.com/MKhiriev/go-video-fetcher/models"
)

// createAttempts bounds retries after a task ID collision.
const createAttempts = 3

// persistTimeout bounds the final task update once the task context is done.
const persistTimeout = 5 * time.Second

var taskIDPrefix = regexp.MustCompile(`^[a-f0-9]+_`)

type downloadService struct {
	tasks   store.TaskRepository
	files   store.FileStorage
	fetcher MediaFetcher
	queue   TaskQueue

	timeout time.Duration
	newID   func() string
	now     func() time.Time

	logger *logger.Logger
}

// NewDownloadService expects URLs that were already normalized and
// validated, see NewDownloadValidationService.
func NewDownloadService(tasks store.TaskRepository, files store.FileStorage, fetcher MediaFetcher, queue TaskQueue, cfg config.Downloader, logger *logger.Logger) DownloadService {
	return &downloadService{
		tasks:   tasks,
		files:   files,
		fetcher: fetcher,
		queue:   queue,
		timeout: cfg.Timeout,
		newID:   utils.NewTaskID,
		now:     time.Now,
		logger:  logger,
	}
}

func (s *downloadService) StartDownload(ctx context.Context, url string) (models.Task, error) {
	log := logger.FromContext(ctx)

	var (
		task models.Task
		err  error
	)
	for attempt := 0; attempt < createAttempts; attempt++ {
		task = models.NewQueuedTask(s.newID(), url, validators.DetectPlatform(url), s.now())
		err = s.tasks.Create(ctx, task)
		if !errors.Is(err, store.ErrTaskAlreadyExists) {
			break
		}
		log.Warn().Str("task_id", task.ID).Msg("task id collision, generating a new one")
	}
	if err != nil {
		log.Err(err).Str("func", "*downloadService.StartDownload").Msg("error creating task")
		return models.Task{}, fmt.Errorf("error creating task: %w", err)
	}

	if err := s.queue.Enqueue(task.ID); err != nil {
		log.Warn().Err(err).Str("task_id", task.ID).Msg("task was not enqueued")

		task.Fail(app.MsgQueueFull)
		task.UpdatedAt = s.now()
		if updErr := s.tasks.Update(ctx, task); updErr != nil {
			log.Err(updErr).Str("task_id", task.ID).Msg("error marking rejected task")
		}
		return models.Task{}, err
	}

	log.Info().Str("task_id", task.ID).Str("platform", string(task.Platform)).Msg("download task queued")
	return task, nil
}

func (s *downloadService) GetStatus(ctx context.Context, taskID string) (models.Task, error) {
	return s.tasks.Get(ctx, taskID)
}

func (s *downloadService) OpenFile(ctx context.Context, taskID string) (*os.File, string, error) {
	task, err := s.tasks.Get(ctx, taskID)
	if err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			return nil, "", ErrFileNotReady
		}
		return nil, "", err
	}

	if task.Status != models.TaskStatusComplete || task.FilenameValue() == "" {
		return nil, "", ErrFileNotReady
	}

	f, err := s.files.Open(task.FilenameValue())
	if err != nil {
		if errors.Is(err, store.ErrInvalidFileName) {
			return nil, "", store.ErrFileNotFound
		}
		return nil, "", err
	}

	return f, CleanDownloadName(task.FilenameValue()), nil
}

func (s *downloadService) ProcessTask(ctx context.Context, taskID string) error {
	log := s.logger.WithTask(taskID)

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	task, err := s.tasks.Get(ctx, taskID)
	if err != nil {
		log.Err(err).Msg("error loading task")
		return fmt.Errorf("error loading task %s: %w", taskID, err)
	}

	task.Status = models.TaskStatusDownloading
	task.Progress = 0
	task.UpdatedAt = s.now()
	if err := s.tasks.Update(ctx, task); err != nil {
		log.Err(err).Msg("error marking task as downloading")
		return fmt.Errorf("error updating task %s: %w", taskID, err)
	}

	info, err := s.fetcher.ExtractInfo(ctx, task.URL)
	if err != nil {
		return s.fail(ctx, log, task, err)
	}
	if info.Title == "" {
		info.Title = models.DefaultMediaTitle
	}
	task.ApplyMediaInfo(info)
	task.UpdatedAt = s.now()
	if err := s.tasks.Update(ctx, task); err != nil {
		log.Warn().Err(err).Msg("error saving media info")
	}

	tracker := newProgressTracker(ctx, s.tasks, taskID, log)
	err = s.fetcher.Download(ctx, task.URL, s.files.OutputTemplate(taskID), tracker.Update)
	task.Progress = tracker.Last()
	if err != nil {
		return s.fail(ctx, log, task, err)
	}

	file, err := s.files.FindByPrefix(ctx, taskID)
	if err != nil {
		if errors.Is(err, store.ErrFileNotFound) {
			task.Fail(app.MsgFileMissingAfterDownload)
			return s.finish(ctx, log, task)
		}
		return s.fail(ctx, log, task, err)
	}

	task.Complete(file.Name, file.Size)
	log.Info().Str("file", file.Name).Int64("size", file.Size).Msg("download complete")
	return s.finish(ctx, log, task)
}

func (s *downloadService) fail(ctx context.Context, log *logger.Logger, task models.Task, cause error) error {
	log.Warn().Err(cause).Msg("download failed")
	task.Fail(TaskErrorMessage(cause))
	return s.finish(ctx, log, task)
}

// finish persists a terminal task state. The task context may already be
// cancelled or past its deadline at this point.
func (s *downloadService) finish(ctx context.Context, log *logger.Logger, task models.Task) error {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), persistTimeout)
	defer cancel()

	task.UpdatedAt = s.now()
	if err := s.tasks.Update(ctx, task); err != nil {
		log.Err(err).Str("status", string(task.Status)).Msg("error saving final task state")
		return fmt.Errorf("error updating task %s: %w", task.ID, err)
	}

	return nil
}

// TaskErrorMessage converts a processing error into the message stored on
// the failed task.
func TaskErrorMessage(err error) string {
	var downloadErr *ytdlp.DownloadError
	switch {
	case errors.Is(err, ytdlp.ErrPrivateContent):
		return app.MsgPrivateContent
	case errors.Is(err, ytdlp.ErrVideoNotFound):
		return app.MsgVideoNotFound
	case errors.As(err, &downloadErr):
		return app.MsgDownloadFailed
	case errors.Is(err, context.DeadlineExceeded):
		return app.MsgUnexpectedErrorPrefix + "download timed out"
	default:
		return app.MsgUnexpectedErrorPrefix + err.Error()
	}
}

// CleanDownloadName strips the "<task id>_" prefix from a stored file name.
// The stored name is returned when nothing would be left.
func CleanDownloadName(name string) string {
	clean := taskIDPrefix.ReplaceAllString(name, "")
	if clean == "" {
		return name
	}
	return clean
}
