package adapter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/MKhiriev/go-video-fetcher/internal/config"
	"github.com/MKhiriev/go-video-fetcher/internal/logger"
	"github.com/MKhiriev/go-video-fetcher/internal/utils"
	"github.com/MKhiriev/go-video-fetcher/models"
)

// maxErrorBody bounds how much of a failed file response is read.
const maxErrorBody = 4 << 10

type httpServerAdapter struct {
	client *utils.HTTPClient
	logger *logger.Logger
}

// NewHTTPServerAdapter returns a [ServerAdapter] talking to cfg.ServerURL.
// The address may omit the scheme, in which case http is assumed.
func NewHTTPServerAdapter(cfg config.ClientConfig, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(cfg.ServerURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidAddress, err)
	}

	return &httpServerAdapter{
		client: utils.NewHTTPClient(baseURL, cfg.Timeout),
		logger: logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", errors.New("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", errors.New("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpServerAdapter) SubmitDownload(ctx context.Context, videoURL string) (models.DownloadResponse, error) {
	var result models.DownloadResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.DownloadRequest{URL: videoURL}).
		SetResult(&result).
		Post("/api/download")
	if err != nil {
		return models.DownloadResponse{}, fmt.Errorf("submit download request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.DownloadResponse{}, err
	}

	h.logger.Debug().Str("task_id", result.TaskID).Str("platform", string(result.Platform)).Msg("download submitted")
	return result, nil
}

func (h *httpServerAdapter) GetStatus(ctx context.Context, taskID string) (models.Task, error) {
	var task models.Task

	resp, err := h.client.R().
		SetContext(ctx).
		SetPathParam("taskID", taskID).
		SetResult(&task).
		Get("/api/status/{taskID}")
	if err != nil {
		return models.Task{}, fmt.Errorf("get status request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Task{}, err
	}

	return task, nil
}

func (h *httpServerAdapter) DownloadFile(ctx context.Context, taskID, dir string) (string, int64, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetPathParam("taskID", taskID).
		SetDoNotParseResponse(true).
		Get("/api/file/{taskID}")
	if err != nil {
		return "", 0, fmt.Errorf("download file request: %w", err)
	}
	body := resp.RawBody()
	defer body.Close()

	if resp.IsError() {
		data, _ := io.ReadAll(io.LimitReader(body, maxErrorBody))
		return "", 0, mapStatusError(resp.StatusCode(), data)
	}

	name := attachmentName(resp.Header().Get("Content-Disposition"), taskID)
	if err = os.MkdirAll(dir, 0o755); err != nil {
		return "", 0, fmt.Errorf("create output dir: %w", err)
	}

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", 0, fmt.Errorf("create output file: %w", err)
	}

	written, err := io.Copy(f, body)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(path)
		return "", 0, fmt.Errorf("write output file: %w", err)
	}

	h.logger.Debug().Str("task_id", taskID).Str("path", path).Int64("size", written).Msg("file saved")
	return path, written, nil
}

// attachmentName returns the base name from a Content-Disposition header, or
// fallback when the header carries no usable file name.
func attachmentName(header, fallback string) string {
	_, params, err := mime.ParseMediaType(header)
	if err == nil {
		name := filepath.Base(filepath.Clean("/" + strings.ReplaceAll(params["filename"], `\`, "/")))
		if name != "" && name != "/" && name != "." {
			return name
		}
	}
	return fallback
}

func (h *httpServerAdapter) Version(ctx context.Context) (string, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Accept", "text/plain").
		Get("/api/version/")
	if err != nil {
		return "", fmt.Errorf("version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	return strings.TrimSpace(resp.String()), nil
}

func (h *httpServerAdapter) Health(ctx context.Context) (models.HealthResponse, error) {
	var health models.HealthResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetResult(&health).
		SetError(&health).
		Get("/api/health")
	if err != nil {
		return models.HealthResponse{}, fmt.Errorf("health request: %w", err)
	}
	if resp.StatusCode() == http.StatusServiceUnavailable && health.Status != "" {
		return health, fmt.Errorf("%w: status %s", ErrServiceUnavailable, health.Status)
	}

	return health, mapHTTPError(resp)
}
