package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] and
// [ClientConfig.validate] when required configuration groups are incomplete
// or invalid.
var (
	// ErrInvalidServerConfigs indicates invalid HTTP server settings
	// (for example, missing address or non-positive timeout).
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
	// ErrInvalidStorageConfigs indicates invalid storage settings
	// (for example, an empty download directory).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidDownloaderConfigs indicates invalid yt-dlp settings.
	ErrInvalidDownloaderConfigs = errors.New("invalid downloader configuration")
	// ErrInvalidWorkerConfigs indicates invalid background worker settings
	// (for example, zero downloaders or cleanup interval).
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")
	// ErrInvalidClientConfigs indicates invalid CLI client settings.
	ErrInvalidClientConfigs = errors.New("invalid client configuration")
)
