// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the
// video fetcher server. It aggregates all sub-configurations and is
// populated by merging values from environment variables, command-line flags,
// an optional JSON file and finally the built-in defaults.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as the reported version.
	App App `envPrefix:"APP_"`

	// Storage holds configuration for the task store and the download
	// directory.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds network address, concurrency and timeout settings for the
	// HTTP server.
	Server Server `envPrefix:"SERVER_"`

	// Downloader holds the yt-dlp invocation settings.
	Downloader Downloader `envPrefix:"DOWNLOADER_"`

	// Workers holds configuration for the background download and cleanup
	// workers.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// Version is the version string exposed via the /api/version/ endpoint.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Storage groups the configuration for all storage backends used by the
// application.
type Storage struct {
	// DB holds the task store connection settings.
	DB DB `envPrefix:"DB_"`

	// Files holds the download directory settings.
	Files Files `envPrefix:"FILES_"`
}

// DB holds connection settings for the task store.
type DB struct {
	// DSN selects the backend: empty or "memory" keeps tasks in process
	// memory, a postgres:// URI uses PostgreSQL, anything else is treated
	// as a SQLite database file path.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Files holds file-system settings for downloaded media.
type Files struct {
	// DownloadDir is the directory yt-dlp writes into and files are served from.
	// Env: STORAGE_FILES_DOWNLOAD_DIR
	DownloadDir string `env:"DOWNLOAD_DIR"`

	// FileTTL is how long a downloaded file is kept before the sweeper
	// removes it (e.g. "30m").
	// Env: STORAGE_FILES_FILE_TTL
	FileTTL time.Duration `env:"FILE_TTL"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens,
	// in "host:port" format (e.g. "0.0.0.0:10000").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single inbound
	// request before the server cancels it (e.g. "120s").
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// MaxConcurrentRequests caps the number of requests served at once.
	// Requests above the cap wait for a free slot.
	// Env: SERVER_MAX_CONCURRENT_REQUESTS
	MaxConcurrentRequests int `env:"MAX_CONCURRENT_REQUESTS"`

	// StaticDir holds the web front-end; index.html is served at "/".
	// Env: SERVER_STATIC_DIR
	StaticDir string `env:"STATIC_DIR"`
}

// Downloader holds the settings used to invoke yt-dlp.
type Downloader struct {
	// Binary is the yt-dlp executable name or path.
	// Env: DOWNLOADER_BINARY
	Binary string `env:"BINARY"`

	// FFmpegLocation is passed to yt-dlp as --ffmpeg-location when set.
	// Env: DOWNLOADER_FFMPEG_LOCATION
	FFmpegLocation string `env:"FFMPEG_LOCATION"`

	// FFmpegBinary is checked for availability at startup.
	// Env: DOWNLOADER_FFMPEG_BINARY
	FFmpegBinary string `env:"FFMPEG_BINARY"`

	// Format is the yt-dlp format selector.
	// Env: DOWNLOADER_FORMAT
	Format string `env:"FORMAT"`

	// MergeOutputFormat is the container used when audio and video are merged.
	// Env: DOWNLOADER_MERGE_OUTPUT_FORMAT
	MergeOutputFormat string `env:"MERGE_OUTPUT_FORMAT"`

	// SocketTimeout is passed to yt-dlp as --socket-timeout.
	// Env: DOWNLOADER_SOCKET_TIMEOUT
	SocketTimeout time.Duration `env:"SOCKET_TIMEOUT"`

	// Retries is passed to yt-dlp as --retries.
	// Env: DOWNLOADER_RETRIES
	Retries int `env:"RETRIES"`

	// UserAgent is sent with every request yt-dlp makes.
	// Env: DOWNLOADER_USER_AGENT
	UserAgent string `env:"USER_AGENT"`

	// Timeout bounds a whole task (info extraction plus download).
	// Env: DOWNLOADER_TIMEOUT
	Timeout time.Duration `env:"TIMEOUT"`
}

// Workers holds configuration for background worker processes.
type Workers struct {
	// Downloaders is the number of tasks processed concurrently.
	// Env: WORKERS_DOWNLOADERS
	Downloaders int `env:"DOWNLOADERS"`

	// QueueSize is the number of accepted tasks that may wait for a downloader.
	// Env: WORKERS_QUEUE_SIZE
	QueueSize int `env:"QUEUE_SIZE"`

	// CleanupInterval is how often the sweeper runs.
	// Env: WORKERS_CLEANUP_INTERVAL
	CleanupInterval time.Duration `env:"CLEANUP_INTERVAL"`

	// TaskRetention is how long finished task records are kept.
	// Env: WORKERS_TASK_RETENTION
	TaskRetention time.Duration `env:"TASK_RETENTION"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (last source wins for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//
// Fields left empty by every source are filled from [Defaults].
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}
