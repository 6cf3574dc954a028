package ytdlp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/MKhiriev/go-video-fetcher/models"
)

// Config holds the yt-dlp invocation settings.
type Config struct {
	Binary            string
	FFmpegLocation    string
	Format            string
	MergeOutputFormat string
	SocketTimeout     time.Duration
	Retries           int
	UserAgent         string
}

// Option configures the client.
type Option func(*Client)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(c *Client) {
		if exec != nil {
			c.exec = exec
		}
	}
}

// Client wraps yt-dlp CLI interactions.
type Client struct {
	cfg  Config
	exec Executor
}

// New constructs a yt-dlp client.
func New(cfg Config, opts ...Option) (*Client, error) {
	cfg.Binary = strings.TrimSpace(cfg.Binary)
	if cfg.Binary == "" {
		return nil, ErrBinaryRequired
	}

	client := &Client{
		cfg:  cfg,
		exec: commandExecutor{},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

type infoDocument struct {
	Title     string  `json:"title"`
	Thumbnail string  `json:"thumbnail"`
	Duration  float64 `json:"duration"`
	Uploader  string  `json:"uploader"`
}

// ExtractInfo reads the metadata of url without downloading it.
// An empty title is reported as models.DefaultMediaTitle.
func (c *Client) ExtractInfo(ctx context.Context, url string) (models.MediaInfo, error) {
	args := append([]string{"--dump-single-json", "--no-playlist", "--no-warnings"}, c.networkArgs()...)
	args = append(args, "--", url)

	var document string
	var messages []string
	err := c.exec.Run(ctx, c.cfg.Binary, args, func(line string) {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "{"):
			document = trimmed
		case isErrorLine(trimmed):
			messages = append(messages, trimmed)
		}
	})
	if err != nil {
		return models.MediaInfo{}, c.runError(ctx, "extract info", messages, err)
	}
	if document == "" {
		return models.MediaInfo{}, ErrEmptyInfo
	}

	var info infoDocument
	if err := json.Unmarshal([]byte(document), &info); err != nil {
		return models.MediaInfo{}, fmt.Errorf("decode media info: %w", err)
	}
	if info.Title == "" {
		info.Title = models.DefaultMediaTitle
	}

	return models.MediaInfo{
		Title:     info.Title,
		Thumbnail: info.Thumbnail,
		Duration:  info.Duration,
		Uploader:  info.Uploader,
	}, nil
}

// Download fetches url into outputTemplate, reporting progress events to
// onProgress (which may be nil). A finished event is always delivered once
// yt-dlp exits successfully.
func (c *Client) Download(ctx context.Context, url, outputTemplate string, onProgress func(models.Progress)) error {
	args := c.downloadArgs(url, outputTemplate)

	finished := false
	var messages []string
	err := c.exec.Run(ctx, c.cfg.Binary, args, func(line string) {
		trimmed := strings.TrimSpace(line)
		if isErrorLine(trimmed) {
			messages = append(messages, trimmed)
			return
		}
		progress, ok := parseProgress(trimmed)
		if !ok {
			return
		}
		if progress.Status == models.ProgressFinished {
			finished = true
		}
		if onProgress != nil {
			onProgress(progress)
		}
	})
	if err != nil {
		return c.runError(ctx, "download", messages, err)
	}

	if !finished && onProgress != nil {
		onProgress(models.Progress{Status: models.ProgressFinished})
	}
	return nil
}

func (c *Client) downloadArgs(url, outputTemplate string) []string {
	args := []string{
		"-f", c.cfg.Format,
		"-o", outputTemplate,
		"--no-playlist",
		"--quiet",
		"--progress",
		"--newline",
		"--no-warnings",
		"--progress-template", progressTemplate,
	}
	if c.cfg.MergeOutputFormat != "" {
		args = append(args, "--merge-output-format", c.cfg.MergeOutputFormat)
	}
	if c.cfg.FFmpegLocation != "" {
		args = append(args, "--ffmpeg-location", c.cfg.FFmpegLocation)
	}
	args = append(args, c.networkArgs()...)
	return append(args, "--", url)
}

func (c *Client) networkArgs() []string {
	var args []string
	if c.cfg.SocketTimeout > 0 {
		args = append(args, "--socket-timeout", strconv.Itoa(int(c.cfg.SocketTimeout.Seconds())))
	}
	if c.cfg.Retries > 0 {
		args = append(args, "--retries", strconv.Itoa(c.cfg.Retries))
	}
	if c.cfg.UserAgent != "" {
		args = append(args, "--user-agent", c.cfg.UserAgent)
	}
	return args
}

// runError keeps context cancellation distinguishable from yt-dlp failures.
func (c *Client) runError(ctx context.Context, op string, messages []string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("yt-dlp %s: %w", op, ctxErr)
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, exec.ErrNotFound) {
		return fmt.Errorf("yt-dlp %s: %w", op, err)
	}
	return newDownloadError(messages, err)
}

func isErrorLine(line string) bool {
	return strings.HasPrefix(line, "ERROR:")
}
