// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"strings"
)

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or an error wrapping one of the
// ErrInvalid* sentinels otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.Server.HTTPAddress == "" || cfg.Server.RequestTimeout <= 0 {
		return fmt.Errorf("%w: address and request timeout are required", ErrInvalidServerConfigs)
	}
	if cfg.Server.MaxConcurrentRequests <= 0 {
		return fmt.Errorf("%w: max concurrent requests must be positive", ErrInvalidServerConfigs)
	}

	if strings.TrimSpace(cfg.Storage.Files.DownloadDir) == "" {
		return fmt.Errorf("%w: download dir is required", ErrInvalidStorageConfigs)
	}
	if cfg.Storage.Files.FileTTL <= 0 {
		return fmt.Errorf("%w: file ttl must be positive", ErrInvalidStorageConfigs)
	}

	if strings.TrimSpace(cfg.Downloader.Binary) == "" {
		return fmt.Errorf("%w: downloader binary is required", ErrInvalidDownloaderConfigs)
	}
	if cfg.Downloader.Retries < 0 || cfg.Downloader.SocketTimeout < 0 || cfg.Downloader.Timeout <= 0 {
		return fmt.Errorf("%w: retries and timeouts must not be negative", ErrInvalidDownloaderConfigs)
	}

	if cfg.Workers.Downloaders <= 0 || cfg.Workers.QueueSize <= 0 {
		return fmt.Errorf("%w: downloaders and queue size must be positive", ErrInvalidWorkerConfigs)
	}
	if cfg.Workers.CleanupInterval <= 0 || cfg.Workers.TaskRetention <= 0 {
		return fmt.Errorf("%w: cleanup interval and task retention must be positive", ErrInvalidWorkerConfigs)
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if strings.TrimSpace(cfg.ServerURL) == "" {
		return fmt.Errorf("%w: server url is required", ErrInvalidClientConfigs)
	}
	if cfg.Timeout <= 0 || cfg.PollInterval <= 0 {
		return fmt.Errorf("%w: timeout and poll interval must be positive", ErrInvalidClientConfigs)
	}

	return nil
}
