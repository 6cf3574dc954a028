// Package tui renders live download progress in the terminal with
// bubbletea.
package tui

import (
	"context"
	"errors"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-video-fetcher/internal/logger"
	"github.com/MKhiriev/go-video-fetcher/models"
)

var ErrUserQuit = errors.New("cancelled by user")

// StatusSource returns the current state of a task.
type StatusSource interface {
	GetStatus(ctx context.Context, taskID string) (models.Task, error)
}

type TUI struct {
	source   StatusSource
	interval time.Duration
	output   io.Writer
	logger   *logger.Logger
}

func New(source StatusSource, interval time.Duration, output io.Writer, logger *logger.Logger) *TUI {
	return &TUI{source: source, interval: interval, output: output, logger: logger}
}

// Follow polls taskID until it finishes and returns its final state.
func (t *TUI) Follow(ctx context.Context, taskID string) (models.Task, error) {
	model := newFollowModel(ctx, t.source, taskID, t.interval)

	finalModel, err := tea.NewProgram(model, tea.WithContext(ctx), tea.WithOutput(t.output)).Run()
	if err != nil {
		return models.Task{}, err
	}

	result, ok := finalModel.(followModel)
	if !ok {
		return models.Task{}, tea.ErrProgramKilled
	}
	if result.quitByUser {
		return result.task, ErrUserQuit
	}
	if result.err != nil {
		t.logger.Err(result.err).Str("task_id", taskID).Msg("status polling failed")
		return result.task, result.err
	}

	return result.task, nil
}
