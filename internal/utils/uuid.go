package utils

import "github.com/google/uuid"

// TaskIDLength is the number of hexadecimal characters in a task ID.
const TaskIDLength = 8

// NewTaskID returns the first TaskIDLength characters of a random UUIDv4.
func NewTaskID() string {
	return uuid.NewString()[:TaskIDLength]
}
