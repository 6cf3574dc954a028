package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-video-fetcher/models"
)

const (
	maxProgressWidth = 60

	// maxPollFailures is how many status requests in a row may fail before
	// following gives up.
	maxPollFailures = 3
)

type followModel struct {
	ctx      context.Context
	source   StatusSource
	taskID   string
	interval time.Duration

	task       models.Task
	failures   int
	err        error
	quitByUser bool

	progress progress.Model
	spinner  spinner.Model
}

func newFollowModel(ctx context.Context, source StatusSource, taskID string, interval time.Duration) followModel {
	return followModel{
		ctx:      ctx,
		source:   source,
		taskID:   taskID,
		interval: interval,
		task:     models.Task{ID: taskID, Status: models.TaskStatusQueued},
		progress: progress.New(progress.WithDefaultGradient(), progress.WithWidth(maxProgressWidth)),
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
}

func (m followModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.poll())
}

func (m followModel) poll() tea.Cmd {
	return func() tea.Msg {
		task, err := m.source.GetStatus(m.ctx, m.taskID)
		return statusMsg{task: task, err: err}
	}
}

func (m followModel) scheduleNext() tea.Cmd {
	return tea.Tick(m.interval, func(time.Time) tea.Msg { return pollMsg{} })
}

func (m followModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, keys.quit) {
			m.quitByUser = true
			return m, tea.Quit
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.progress.Width = min(msg.Width-4, maxProgressWidth)
		return m, nil

	case pollMsg:
		return m, m.poll()

	case statusMsg:
		if msg.err != nil {
			m.failures++
			if m.failures >= maxPollFailures {
				m.err = msg.err
				return m, tea.Quit
			}
			return m, m.scheduleNext()
		}

		m.failures = 0
		m.task = msg.task
		if m.task.Status.IsFinished() {
			return m, tea.Quit
		}
		return m, m.scheduleNext()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m followModel) View() string {
	var b strings.Builder

	b.WriteString(StatusLabel(m.task.Status))
	b.WriteString("\n\n")

	switch {
	case m.task.Status == models.TaskStatusError:
		b.WriteString(errorStyle.Render(valueOrDash(m.task.Error)))
	case m.task.Status == models.TaskStatusComplete:
		b.WriteString(m.progress.ViewAs(1))
		b.WriteString("\n")
		b.WriteString(valueOrDash(m.task.Filename))
	case m.task.Status == models.TaskStatusQueued:
		b.WriteString(m.spinner.View())
		b.WriteString(" waiting for a worker...")
	case m.task.Progress == models.IndeterminateProgress:
		b.WriteString(m.spinner.View())
		b.WriteString(" downloading, size unknown...")
	default:
		b.WriteString(m.progress.ViewAs(m.task.Progress / 100))
		b.WriteString(fmt.Sprintf(" %.1f%%", m.task.Progress))
	}

	if desc := DescribeTask(m.task); desc != "" {
		b.WriteString("\n")
		b.WriteString(subtleStyle.Render(desc))
	}

	return renderPage("vfetch  "+m.taskID, b.String(), keys.quit.Help().Key+": "+keys.quit.Help().Desc)
}
