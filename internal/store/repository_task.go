package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-video-fetcher/internal/logger"
	"github.com/MKhiriev/go-video-fetcher/models"
)

// taskRepository is the SQL implementation of [TaskRepository] used for
// both PostgreSQL and SQLite. Dialect differences are carried by [DB].
//
// All methods obtain a context-scoped logger via [logger.FromContext].
type taskRepository struct {
	db     *DB
	logger *logger.Logger
	now    func() time.Time
}

// NewTaskRepository constructs a [TaskRepository] backed by db.
func NewTaskRepository(db *DB, logger *logger.Logger) TaskRepository {
	logger.Debug().Str("dialect", db.Dialect()).Msg("creating task repository")
	return &taskRepository{
		db:     db,
		logger: logger,
		now:    time.Now,
	}
}

// Create inserts task.
//
// Error handling:
//   - duplicate primary key → [ErrTaskAlreadyExists].
//   - any other driver-level error → wrapped [ErrExecutingStatement].
func (r *taskRepository) Create(ctx context.Context, task models.Task) error {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertTaskQuery(r.db.placeholder, task)
	if err != nil {
		log.Err(err).Str("func", "*taskRepository.Create").Msg("error building query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	err = r.db.withRetry(ctx, func() error {
		_, execErr := r.db.ExecContext(ctx, query, args...)
		return execErr
	})
	if err != nil {
		log.Err(err).Str("func", "*taskRepository.Create").Str("task_id", task.ID).Msg("error inserting task")
		if r.db.errorClassificator.IsDuplicateKey(err) {
			return ErrTaskAlreadyExists
		}
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// Get returns the task with taskID or [ErrTaskNotFound].
func (r *taskRepository) Get(ctx context.Context, taskID string) (models.Task, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectTaskQuery(r.db.placeholder, taskID)
	if err != nil {
		log.Err(err).Str("func", "*taskRepository.Get").Msg("error building query")
		return models.Task{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var task models.Task
	err = r.db.withRetry(ctx, func() error {
		var scanErr error
		task, scanErr = scanTask(r.db.QueryRowContext(ctx, query, args...))
		return scanErr
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Task{}, ErrTaskNotFound
		}
		log.Err(err).Str("func", "*taskRepository.Get").Str("task_id", taskID).Msg("error selecting task")
		return models.Task{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return task, nil
}

// Update writes every mutable field of task. UpdatedAt is set to now when
// the caller left it empty.
func (r *taskRepository) Update(ctx context.Context, task models.Task) error {
	log := logger.FromContext(ctx)

	if task.UpdatedAt.IsZero() {
		task.UpdatedAt = r.now()
	}

	query, args, err := buildUpdateTaskQuery(r.db.placeholder, task)
	if err != nil {
		log.Err(err).Str("func", "*taskRepository.Update").Msg("error building query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.execAffectingTask(ctx, "*taskRepository.Update", task.ID, query, args)
}

// UpdateProgress changes status and progress of the task with taskID.
func (r *taskRepository) UpdateProgress(ctx context.Context, taskID string, status models.TaskStatus, progress float64) error {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateProgressQuery(r.db.placeholder, taskID, status, progress, r.now())
	if err != nil {
		log.Err(err).Str("func", "*taskRepository.UpdateProgress").Msg("error building query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.execAffectingTask(ctx, "*taskRepository.UpdateProgress", taskID, query, args)
}

// DeleteFinishedBefore removes finished tasks last updated before cutoff.
func (r *taskRepository) DeleteFinishedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteFinishedQuery(r.db.placeholder, cutoff)
	if err != nil {
		log.Err(err).Str("func", "*taskRepository.DeleteFinishedBefore").Msg("error building query")
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var result sql.Result
	err = r.db.withRetry(ctx, func() error {
		var execErr error
		result, execErr = r.db.ExecContext(ctx, query, args...)
		return execErr
	})
	if err != nil {
		log.Err(err).Str("func", "*taskRepository.DeleteFinishedBefore").Msg("error deleting tasks")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return deleted, nil
}

// execAffectingTask runs a single-row UPDATE and maps zero affected rows to
// [ErrTaskNotFound].
func (r *taskRepository) execAffectingTask(ctx context.Context, funcName, taskID, query string, args []any) error {
	log := logger.FromContext(ctx)

	var result sql.Result
	err := r.db.withRetry(ctx, func() error {
		var execErr error
		result, execErr = r.db.ExecContext(ctx, query, args...)
		return execErr
	})
	if err != nil {
		log.Err(err).Str("func", funcName).Str("task_id", taskID).Msg("error updating task")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrTaskNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (models.Task, error) {
	var (
		task     models.Task
		status   string
		platform string
		filename sql.NullString
		errMsg   sql.NullString
	)

	err := row.Scan(
		&task.ID,
		&status,
		&task.Progress,
		&filename,
		&errMsg,
		&task.URL,
		&platform,
		&task.Title,
		&task.Thumbnail,
		&task.Duration,
		&task.Uploader,
		&task.Filesize,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		return models.Task{}, err
	}

	task.Status = models.TaskStatus(status)
	task.Platform = models.Platform(platform)
	if filename.Valid {
		task.Filename = &filename.String
	}
	if errMsg.Valid {
		task.Error = &errMsg.String
	}

	return task, nil
}
