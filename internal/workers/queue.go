package workers

import (
	"github.com/MKhiriev/go-video-fetcher/internal/service"
)

// TaskQueue is a bounded FIFO of task IDs waiting for a download worker.
type TaskQueue struct {
	tasks chan string
}

// NewTaskQueue returns a queue holding up to size task IDs. Sizes below one
// are raised to one.
func NewTaskQueue(size int) *TaskQueue {
	if size < 1 {
		size = 1
	}
	return &TaskQueue{tasks: make(chan string, size)}
}

// Enqueue adds a task ID without blocking. It returns service.ErrQueueFull
// when the queue has no free slot.
func (q *TaskQueue) Enqueue(taskID string) error {
	select {
	case q.tasks <- taskID:
		return nil
	default:
		return service.ErrQueueFull
	}
}

// Len returns the number of waiting task IDs.
func (q *TaskQueue) Len() int {
	return len(q.tasks)
}

// Cap returns the queue capacity.
func (q *TaskQueue) Cap() int {
	return cap(q.tasks)
}

func (q *TaskQueue) receive() <-chan string {
	return q.tasks
}
