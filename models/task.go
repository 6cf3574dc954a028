// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// TaskStatus is the lifecycle state of a download task.
type TaskStatus string

const (
	// TaskStatusQueued is assigned when the task is accepted but no worker
	// has picked it up yet.
	TaskStatusQueued TaskStatus = "queued"
	// TaskStatusDownloading is assigned while yt-dlp is running.
	TaskStatusDownloading TaskStatus = "downloading"
	// TaskStatusComplete is assigned once the file is present in the
	// download directory.
	TaskStatusComplete TaskStatus = "complete"
	// TaskStatusError is terminal; Task.Error carries a user-facing message.
	TaskStatusError TaskStatus = "error"
)

// IsFinished reports whether the status is terminal.
func (s TaskStatus) IsFinished() bool {
	return s == TaskStatusComplete || s == TaskStatusError
}

// IndeterminateProgress is reported while the total size of the media is unknown.
const IndeterminateProgress float64 = -1

// Task is a single download job as seen by API clients polling its status.
//
// Filename and Error are pointers so that they serialize as JSON null until
// they are set.
type Task struct {
	// ID is the short hexadecimal task identifier handed out by POST /api/download.
	ID string `json:"task_id"`

	// Status is the current lifecycle state.
	Status TaskStatus `json:"status"`

	// Progress is a percentage in [0, 100] with one decimal place, or
	// IndeterminateProgress when the total size is unknown.
	Progress float64 `json:"progress"`

	// Filename is the name of the downloaded file inside the download directory.
	Filename *string `json:"filename"`

	// Error is a human readable failure description.
	Error *string `json:"error"`

	URL      string   `json:"url"`
	Platform Platform `json:"platform"`

	// Media metadata filled in after the info extraction step.
	Title     string  `json:"title"`
	Thumbnail string  `json:"thumbnail"`
	Duration  float64 `json:"duration"`
	Uploader  string  `json:"uploader"`

	// Filesize is the size of the downloaded file in bytes.
	Filesize int64 `json:"filesize"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// NewQueuedTask returns a task in its initial state.
func NewQueuedTask(id, url string, platform Platform, now time.Time) Task {
	return Task{
		ID:        id,
		Status:    TaskStatusQueued,
		URL:       url,
		Platform:  platform,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Fail moves the task into the error state with the given message.
func (t *Task) Fail(message string) {
	t.Status = TaskStatusError
	t.Error = &message
}

// Complete moves the task into the complete state.
func (t *Task) Complete(filename string, size int64) {
	t.Status = TaskStatusComplete
	t.Filename = &filename
	t.Filesize = size
}

// ApplyMediaInfo copies extracted metadata into the task.
func (t *Task) ApplyMediaInfo(info MediaInfo) {
	t.Title = info.Title
	t.Thumbnail = info.Thumbnail
	t.Duration = info.Duration
	t.Uploader = info.Uploader
}

// FilenameValue returns the filename or an empty string.
func (t Task) FilenameValue() string {
	if t.Filename == nil {
		return ""
	}
	return *t.Filename
}

// ErrorValue returns the error message or an empty string.
func (t Task) ErrorValue() string {
	if t.Error == nil {
		return ""
	}
	return *t.Error
}
