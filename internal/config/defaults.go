package config

import "time"

// Default values. The server settings mirror the container deployment:
// port 10000, 2 workers x 4 threads and a 120 second request timeout.
const (
	DefaultHTTPAddress           = "0.0.0.0:10000"
	DefaultRequestTimeout        = 120 * time.Second
	DefaultMaxConcurrentRequests = 2 * 4
	DefaultStaticDir             = "static"

	DefaultDownloadDir = "downloads"
	DefaultFileTTL     = 30 * time.Minute

	DefaultDownloaderBinary  = "yt-dlp"
	DefaultFFmpegBinary      = "ffmpeg"
	DefaultFormat            = "best[ext=mp4]/best"
	DefaultMergeOutputFormat = "mp4"
	DefaultSocketTimeout     = 30 * time.Second
	DefaultRetries           = 3
	DefaultDownloadTimeout   = 10 * time.Minute
	DefaultUserAgent         = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
		"AppleWebKit/537.36 (KHTML, like Gecko) " +
		"Chrome/120.0.0.0 Safari/537.36"

	DefaultDownloaders     = 4
	DefaultQueueSize       = 64
	DefaultCleanupInterval = 5 * time.Minute
	DefaultTaskRetention   = 24 * time.Hour

	DefaultAppVersion = "dev"
)

// Defaults returns the configuration used for every field no source sets.
func Defaults() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			Version: DefaultAppVersion,
		},
		Storage: Storage{
			Files: Files{
				DownloadDir: DefaultDownloadDir,
				FileTTL:     DefaultFileTTL,
			},
		},
		Server: Server{
			HTTPAddress:           DefaultHTTPAddress,
			RequestTimeout:        DefaultRequestTimeout,
			MaxConcurrentRequests: DefaultMaxConcurrentRequests,
			StaticDir:             DefaultStaticDir,
		},
		Downloader: Downloader{
			Binary:            DefaultDownloaderBinary,
			FFmpegBinary:      DefaultFFmpegBinary,
			Format:            DefaultFormat,
			MergeOutputFormat: DefaultMergeOutputFormat,
			SocketTimeout:     DefaultSocketTimeout,
			Retries:           DefaultRetries,
			UserAgent:         DefaultUserAgent,
			Timeout:           DefaultDownloadTimeout,
		},
		Workers: Workers{
			Downloaders:     DefaultDownloaders,
			QueueSize:       DefaultQueueSize,
			CleanupInterval: DefaultCleanupInterval,
			TaskRetention:   DefaultTaskRetention,
		},
	}
}
