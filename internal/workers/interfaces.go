// Package workers provides abstractions for managing and running
// background workers in the application.
// It defines the Worker interface, the Workers aggregate that starts and
// stops them together, and the bounded task queue connecting the HTTP API
// with the download workers.
package workers

import "context"

// Worker is the interface that must be implemented by any background worker.
// It defines a single Run method that starts the worker's execution.
//
// Implementations are expected to block until ctx is done and to return
// only after every goroutine they started has finished.
//
// Example implementation:
//
//	type MyWorker struct{}
//
//	func (w *MyWorker) Run(ctx context.Context) {
//	    <-ctx.Done()
//	}
type Worker interface {
	Run(ctx context.Context)
}
