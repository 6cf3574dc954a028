package store

import (
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-video-fetcher/models"
)

const tasksTable = "tasks"

// taskColumns is the column order used by every SELECT and INSERT on tasks;
// scanTask relies on it.
var taskColumns = []string{
	"task_id",
	"status",
	"progress",
	"filename",
	"error",
	"url",
	"platform",
	"title",
	"thumbnail",
	"duration",
	"uploader",
	"filesize",
	"created_at",
	"updated_at",
}

var finishedStatuses = []string{
	string(models.TaskStatusComplete),
	string(models.TaskStatusError),
}

func buildInsertTaskQuery(ph sq.PlaceholderFormat, task models.Task) (string, []any, error) {
	return sq.Insert(tasksTable).
		Columns(taskColumns...).
		Values(
			task.ID,
			string(task.Status),
			task.Progress,
			task.Filename,
			task.Error,
			task.URL,
			string(task.Platform),
			task.Title,
			task.Thumbnail,
			task.Duration,
			task.Uploader,
			task.Filesize,
			task.CreatedAt.UTC(),
			task.UpdatedAt.UTC(),
		).
		PlaceholderFormat(ph).
		ToSql()
}

func buildSelectTaskQuery(ph sq.PlaceholderFormat, taskID string) (string, []any, error) {
	return sq.Select(taskColumns...).
		From(tasksTable).
		Where(sq.Eq{"task_id": taskID}).
		PlaceholderFormat(ph).
		ToSql()
}

func buildUpdateTaskQuery(ph sq.PlaceholderFormat, task models.Task) (string, []any, error) {
	return sq.Update(tasksTable).
		SetMap(map[string]any{
			"status":     string(task.Status),
			"progress":   task.Progress,
			"filename":   task.Filename,
			"error":      task.Error,
			"title":      task.Title,
			"thumbnail":  task.Thumbnail,
			"duration":   task.Duration,
			"uploader":   task.Uploader,
			"filesize":   task.Filesize,
			"updated_at": task.UpdatedAt.UTC(),
		}).
		Where(sq.Eq{"task_id": task.ID}).
		PlaceholderFormat(ph).
		ToSql()
}

func buildUpdateProgressQuery(ph sq.PlaceholderFormat, taskID string, status models.TaskStatus, progress float64, now time.Time) (string, []any, error) {
	return sq.Update(tasksTable).
		Set("status", string(status)).
		Set("progress", progress).
		Set("updated_at", now.UTC()).
		Where(sq.Eq{"task_id": taskID}).
		PlaceholderFormat(ph).
		ToSql()
}

func buildDeleteFinishedQuery(ph sq.PlaceholderFormat, cutoff time.Time) (string, []any, error) {
	return sq.Delete(tasksTable).
		Where(sq.Eq{"status": finishedStatuses}).
		Where(sq.Lt{"updated_at": cutoff.UTC()}).
		PlaceholderFormat(ph).
		ToSql()
}
