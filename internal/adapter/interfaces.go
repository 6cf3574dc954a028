// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the client-side transport for the video fetcher
// server.
//
// [ServerAdapter] hides the REST API behind typed calls. The HTTP
// implementation ([NewHTTPServerAdapter]) maps non-2xx answers to the
// sentinel errors in errors.go, wrapping the server's error message, so
// callers can branch with [errors.Is].
package adapter

import (
	"context"

	"github.com/MKhiriev/go-video-fetcher/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter defines communication with the video fetcher server.
type ServerAdapter interface {
	// SubmitDownload asks the server to fetch url and returns the new task id
	// together with the detected platform.
	SubmitDownload(ctx context.Context, url string) (models.DownloadResponse, error)

	// GetStatus returns the current state of a task.
	GetStatus(ctx context.Context, taskID string) (models.Task, error)

	// DownloadFile saves the finished file of taskID into dir under the
	// name suggested by the server and returns the written path and size.
	DownloadFile(ctx context.Context, taskID, dir string) (string, int64, error)

	// Version returns the server version string.
	Version(ctx context.Context) (string, error)

	// Health returns the server dependency report. A degraded server still
	// yields a report together with ErrServiceUnavailable.
	Health(ctx context.Context) (models.HealthResponse, error)
}
