package client

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"github.com/MKhiriev/go-video-fetcher/internal/adapter"
	"github.com/MKhiriev/go-video-fetcher/internal/config"
	"github.com/MKhiriev/go-video-fetcher/internal/logger"
	"github.com/MKhiriev/go-video-fetcher/internal/tui"
	"github.com/MKhiriev/go-video-fetcher/models"
)

const defaultPollInterval = 500 * time.Millisecond

type App struct {
	server   adapter.ServerAdapter
	follower Follower

	cfg       config.ClientConfig
	buildInfo models.AppBuildInfo
	out       io.Writer

	readClipboard func() (string, error)

	logger *logger.Logger
}

// NewApp wires the client. Progress is drawn with the terminal UI when out
// is a terminal and printed as plain lines otherwise.
func NewApp(server adapter.ServerAdapter, cfg config.ClientConfig, buildInfo models.AppBuildInfo, out *os.File, logger *logger.Logger) *App {
	app := &App{
		server:        server,
		cfg:           cfg,
		buildInfo:     buildInfo,
		out:           out,
		readClipboard: clipboard.ReadAll,
		logger:        logger,
	}

	if isTerminal(out) {
		app.follower = tui.New(server, cfg.PollInterval, out, logger)
	} else {
		app.follower = &lineFollower{server: server, interval: cfg.PollInterval, out: out}
	}

	return app
}

func isTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Get submits rawURL, follows the task and saves the file. An empty rawURL
// is taken from the clipboard.
func (a *App) Get(ctx context.Context, rawURL string) (string, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		clip, err := a.readClipboard()
		if err != nil {
			a.logger.Err(err).Msg("read clipboard")
		}
		rawURL = strings.TrimSpace(clip)
		if rawURL == "" {
			return "", ErrNoURL
		}
		fmt.Fprintf(a.out, "Using URL from clipboard: %s\n", rawURL)
	}

	submitted, err := a.server.SubmitDownload(ctx, rawURL)
	if err != nil {
		return "", err
	}
	a.logger.Info().Str("task_id", submitted.TaskID).Str("url", rawURL).Msg("task submitted")
	fmt.Fprintf(a.out, "Task %s accepted (%s)\n", submitted.TaskID, submitted.Platform)

	task, err := a.follower.Follow(ctx, submitted.TaskID)
	if err != nil {
		return "", err
	}
	if task.Status == models.TaskStatusError {
		return "", fmt.Errorf("%w: %s", ErrTaskFailed, deref(task.Error))
	}

	return a.Fetch(ctx, submitted.TaskID)
}

// Status prints the current state of taskID.
func (a *App) Status(ctx context.Context, taskID string) error {
	task, err := a.server.GetStatus(ctx, taskID)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%s  %s  %s\n", task.ID, tui.StatusLabel(task.Status), formatProgress(task.Progress))
	if desc := tui.DescribeTask(task); desc != "" {
		fmt.Fprintln(a.out, desc)
	}
	if task.Filename != nil {
		fmt.Fprintf(a.out, "file: %s\n", *task.Filename)
	}
	if task.Error != nil {
		fmt.Fprintf(a.out, "error: %s\n", *task.Error)
	}

	return nil
}

// Fetch saves the finished file of taskID into the output directory and
// returns its path.
func (a *App) Fetch(ctx context.Context, taskID string) (string, error) {
	path, size, err := a.server.DownloadFile(ctx, taskID, a.cfg.OutputDir)
	if err != nil {
		return "", err
	}

	a.logger.Info().Str("task_id", taskID).Str("path", path).Int64("size", size).Msg("file saved")
	fmt.Fprintf(a.out, "Saved %s (%s)\n", path, humanize.Bytes(uint64(size)))

	return path, nil
}

// Version prints client build information and the server version.
func (a *App) Version(ctx context.Context) error {
	serverVersion, err := a.server.Version(ctx)
	if err != nil {
		a.logger.Err(err).Msg("get server version")
		serverVersion = ""
	}

	fmt.Fprintln(a.out, tui.RenderBuildInfo(a.buildInfo, serverVersion))
	return nil
}

// Health prints the server dependency report. A degraded server is reported
// as an error after the report is printed.
func (a *App) Health(ctx context.Context) error {
	health, err := a.server.Health(ctx)
	if health.Status == "" {
		return err
	}

	fmt.Fprintf(a.out, "server %s (%s)\n", health.Status, health.Version)
	for _, dep := range health.Dependencies {
		state := "ok"
		if !dep.Available {
			state = "missing"
		}
		if dep.Optional {
			state += ", optional"
		}
		fmt.Fprintf(a.out, "  %-8s %s\n", dep.Name, state)
	}

	return err
}

// lineFollower polls task status and prints a line whenever it changes.
type lineFollower struct {
	server   tui.StatusSource
	interval time.Duration
	out      io.Writer
}

func (f *lineFollower) Follow(ctx context.Context, taskID string) (models.Task, error) {
	interval := f.interval
	if interval <= 0 {
		interval = defaultPollInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var last string
	for {
		task, err := f.server.GetStatus(ctx, taskID)
		if err != nil {
			return models.Task{}, err
		}

		line := fmt.Sprintf("%s %s", task.Status, formatProgress(task.Progress))
		if line != last {
			fmt.Fprintln(f.out, line)
			last = line
		}
		if task.Status.IsFinished() {
			return task, nil
		}

		select {
		case <-ctx.Done():
			return task, ctx.Err()
		case <-ticker.C:
		}
	}
}

func formatProgress(p float64) string {
	if p == models.IndeterminateProgress {
		return "--"
	}
	return fmt.Sprintf("%.1f%%", p)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
