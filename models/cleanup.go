package models

// SweepReport summarizes one cleanup pass.
type SweepReport struct {
	RemovedFiles int
	RemovedTasks int64
}
