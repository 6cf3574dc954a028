package service

import "errors"

var (
	ErrVersionIsNotSpecified = errors.New("app version is not specified")

	ErrQueueFull    = errors.New("download queue is full")
	ErrFileNotReady = errors.New("file not ready")

	ErrNoTaskID = errors.New("no task ID was given")
)
