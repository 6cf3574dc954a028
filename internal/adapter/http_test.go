// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-video-fetcher/internal/config"
	"github.com/MKhiriev/go-video-fetcher/internal/logger"
	"github.com/MKhiriev/go-video-fetcher/models"
)

const testTaskID = "a1b2c3d4"

// newTestAdapter creates an httpServerAdapter pointed at the test server.
func newTestAdapter(t *testing.T, serverURL string) *httpServerAdapter {
	t.Helper()
	a, err := NewHTTPServerAdapter(config.ClientConfig{ServerURL: serverURL, Timeout: 5 * time.Second}, logger.Nop())
	require.NoError(t, err)

	h := a.(*httpServerAdapter)
	h.client.SetRetryWaitTime(time.Millisecond).SetRetryMaxWaitTime(time.Millisecond)
	return h
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(models.ErrorResponse{Error: msg})
}

// ── SubmitDownload ──────────────────────────────────────────────────────────

func TestSubmitDownload_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/download", r.URL.Path)

		var req models.DownloadRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "https://www.tiktok.com/@u/video/1", req.URL)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(models.DownloadResponse{TaskID: testTaskID, Platform: models.PlatformTikTok})
	}))
	defer srv.Close()

	got, err := newTestAdapter(t, srv.URL).SubmitDownload(context.Background(), "https://www.tiktok.com/@u/video/1")

	require.NoError(t, err)
	assert.Equal(t, testTaskID, got.TaskID)
	assert.Equal(t, models.PlatformTikTok, got.Platform)
}

func TestSubmitDownload_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		message string
		wantErr error
	}{
		{"invalid url", http.StatusBadRequest, "Please enter a valid TikTok or Instagram URL.", ErrBadRequest},
		{"queue full", http.StatusServiceUnavailable, "Server is busy. Please try again in a moment.", ErrServiceUnavailable},
		{"throttled", http.StatusTooManyRequests, "Too Many Requests", ErrTooManyRequests},
		{"internal", http.StatusInternalServerError, "Internal server error.", ErrInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				writeError(w, tt.status, tt.message)
			}))
			defer srv.Close()

			_, err := newTestAdapter(t, srv.URL).SubmitDownload(context.Background(), "x")

			require.ErrorIs(t, err, tt.wantErr)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

// ── GetStatus ───────────────────────────────────────────────────────────────

func TestGetStatus_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/status/"+testTaskID, r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"task_id":"a1b2c3d4","status":"downloading","progress":42.5,"filename":null,"error":null}`))
	}))
	defer srv.Close()

	task, err := newTestAdapter(t, srv.URL).GetStatus(context.Background(), testTaskID)

	require.NoError(t, err)
	assert.Equal(t, models.TaskStatusDownloading, task.Status)
	assert.Equal(t, 42.5, task.Progress)
	assert.Nil(t, task.Filename)
}

func TestGetStatus_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "Task not found.")
	}))
	defer srv.Close()

	_, err := newTestAdapter(t, srv.URL).GetStatus(context.Background(), "missing")

	require.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "Task not found.")
}

// ── DownloadFile ────────────────────────────────────────────────────────────

func TestDownloadFile_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/file/"+testTaskID, r.URL.Path)
		w.Header().Set("Content-Disposition", `attachment; filename="My Video.mp4"`)
		_, _ = w.Write([]byte("video-bytes"))
	}))
	defer srv.Close()

	dir := filepath.Join(t.TempDir(), "out")
	path, size, err := newTestAdapter(t, srv.URL).DownloadFile(context.Background(), testTaskID, dir)

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "My Video.mp4"), path)
	assert.Equal(t, int64(len("video-bytes")), size)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "video-bytes", string(data))
}

func TestDownloadFile_NotReady(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "File not ready.")
	}))
	defer srv.Close()

	dir := t.TempDir()
	_, _, err := newTestAdapter(t, srv.URL).DownloadFile(context.Background(), testTaskID, dir)

	require.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "File not ready.")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestAttachmentName(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"quoted", `attachment; filename="clip.mp4"`, "clip.mp4"},
		{"token", `attachment; filename=clip.mp4`, "clip.mp4"},
		{"path traversal", `attachment; filename="../../etc/clip.mp4"`, "clip.mp4"},
		{"windows path", `attachment; filename="C:\\temp\\clip.mp4"`, "clip.mp4"},
		{"no filename", `attachment`, testTaskID},
		{"empty", ``, testTaskID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, attachmentName(tt.header, testTaskID))
		})
	}
}

// ── Version / Health ────────────────────────────────────────────────────────

func TestVersion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/version/", r.URL.Path)
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("1.2.3\n"))
	}))
	defer srv.Close()

	v, err := newTestAdapter(t, srv.URL).Version(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "1.2.3", v)
}

func TestHealth(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		health  models.HealthResponse
		wantErr error
	}{
		{
			name:   "healthy",
			status: http.StatusOK,
			health: models.HealthResponse{Status: "ok", Version: "1.0.0", Dependencies: []models.DependencyStatus{
				{Name: "yt-dlp", Command: "yt-dlp", Available: true},
			}},
		},
		{
			name:   "degraded",
			status: http.StatusServiceUnavailable,
			health: models.HealthResponse{Status: "degraded", Version: "1.0.0", Dependencies: []models.DependencyStatus{
				{Name: "yt-dlp", Command: "yt-dlp"},
			}},
			wantErr: ErrServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_ = json.NewEncoder(w).Encode(tt.health)
			}))
			defer srv.Close()

			got, err := newTestAdapter(t, srv.URL).Health(context.Background())

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.health, got)
		})
	}
}

// ── helpers ─────────────────────────────────────────────────────────────────

func TestNewHTTPServerAdapter_InvalidAddress(t *testing.T) {
	_, err := NewHTTPServerAdapter(config.ClientConfig{ServerURL: "  "}, logger.Nop())
	require.ErrorIs(t, err, ErrInvalidAddress)
}

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"valid http", "http://localhost:10000", "http://localhost:10000", false},
		{"no scheme", "localhost:10000", "http://localhost:10000", false},
		{"trailing slash", "https://fetch.example.com/", "https://fetch.example.com", false},
		{"empty", "", "", true},
		{"no host", "http://", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeBaseURL(tt.input)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestMapStatusError(t *testing.T) {
	assert.NoError(t, mapStatusError(http.StatusOK, nil))
	assert.ErrorIs(t, mapStatusError(http.StatusNotFound, []byte(`{"error":"Task not found."}`)), ErrNotFound)

	err := mapStatusError(http.StatusTeapot, []byte("short and stout"))
	require.Error(t, err)
	assert.Equal(t, "http 418: short and stout", err.Error())

	err = mapStatusError(http.StatusBadGateway, nil)
	assert.Equal(t, "http 502: Bad Gateway", err.Error())
}
