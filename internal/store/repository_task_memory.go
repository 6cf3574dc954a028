package store

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-video-fetcher/internal/logger"
	"github.com/MKhiriev/go-video-fetcher/models"
)

// memoryTaskRepository keeps tasks in process memory. Tasks are lost on
// restart and are not shared between server processes.
type memoryTaskRepository struct {
	mu     sync.RWMutex
	tasks  map[string]models.Task
	logger *logger.Logger
	now    func() time.Time
}

// NewMemoryTaskRepository constructs an in-memory [TaskRepository].
func NewMemoryTaskRepository(logger *logger.Logger) TaskRepository {
	logger.Debug().Msg("creating in-memory task repository")
	return &memoryTaskRepository{
		tasks:  make(map[string]models.Task),
		logger: logger,
		now:    time.Now,
	}
}

func (r *memoryTaskRepository) Create(ctx context.Context, task models.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tasks[task.ID]; ok {
		return ErrTaskAlreadyExists
	}
	r.tasks[task.ID] = cloneTask(task)
	return nil
}

func (r *memoryTaskRepository) Get(ctx context.Context, taskID string) (models.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	task, ok := r.tasks[taskID]
	if !ok {
		return models.Task{}, ErrTaskNotFound
	}
	return cloneTask(task), nil
}

func (r *memoryTaskRepository) Update(ctx context.Context, task models.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.tasks[task.ID]
	if !ok {
		return ErrTaskNotFound
	}

	// immutable fields stay as created
	task.URL = stored.URL
	task.Platform = stored.Platform
	task.CreatedAt = stored.CreatedAt
	if task.UpdatedAt.IsZero() {
		task.UpdatedAt = r.now()
	}

	r.tasks[task.ID] = cloneTask(task)
	return nil
}

func (r *memoryTaskRepository) UpdateProgress(ctx context.Context, taskID string, status models.TaskStatus, progress float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	task, ok := r.tasks[taskID]
	if !ok {
		return ErrTaskNotFound
	}

	task.Status = status
	task.Progress = progress
	task.UpdatedAt = r.now()
	r.tasks[taskID] = task
	return nil
}

func (r *memoryTaskRepository) DeleteFinishedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var deleted int64
	for id, task := range r.tasks {
		if task.Status.IsFinished() && task.UpdatedAt.Before(cutoff) {
			delete(r.tasks, id)
			deleted++
		}
	}
	return deleted, nil
}

// cloneTask copies the pointer fields so callers cannot mutate stored state.
func cloneTask(task models.Task) models.Task {
	if task.Filename != nil {
		filename := *task.Filename
		task.Filename = &filename
	}
	if task.Error != nil {
		msg := *task.Error
		task.Error = &msg
	}
	return task
}
