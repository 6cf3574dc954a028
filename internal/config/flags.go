package config

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"strconv"
	"time"
)

var errInvalidNetAddress = errors.New("need address in a form `host:port`")

// NetAddress is the flag.Value behind -a.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-d task store DSN
//	-f download directory
//	-c/-config json file path with configs
//	-request-timeout request timeout (e.g., "120s")
//	-max-requests maximum number of concurrently served requests
//	-static-dir directory with the web front-end
//	-file-ttl how long downloaded files are kept (e.g., "30m")
//	-yt-dlp yt-dlp binary
//	-ffmpeg-location ffmpeg location passed to yt-dlp
//	-download-timeout per task timeout (e.g., "10m")
//	-downloaders number of concurrent downloads
//	-queue-size number of queued tasks
//	-cleanup-interval sweeper interval (e.g., "5m")
func ParseFlags() *StructuredConfig {
	var serverAddress NetAddress
	var databaseDSN string
	var downloadDir string
	var jsonConfigPath string
	var requestTimeout time.Duration
	var maxRequests int
	var staticDir string
	var fileTTL time.Duration
	var downloaderBinary string
	var ffmpegLocation string
	var downloadTimeout time.Duration
	var downloaders int
	var queueSize int
	var cleanupInterval time.Duration

	flag.Var(&serverAddress, "a", "Net address host:port")
	flag.StringVar(&databaseDSN, "d", "", "Task store DSN")
	flag.StringVar(&downloadDir, "f", "", "Download directory")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 120s)")
	flag.IntVar(&maxRequests, "max-requests", 0, "Maximum concurrently served requests")
	flag.StringVar(&staticDir, "static-dir", "", "Static front-end directory")
	flag.DurationVar(&fileTTL, "file-ttl", 0, "Downloaded file lifetime (e.g., 30m)")
	flag.StringVar(&downloaderBinary, "yt-dlp", "", "yt-dlp binary")
	flag.StringVar(&ffmpegLocation, "ffmpeg-location", "", "ffmpeg location passed to yt-dlp")
	flag.DurationVar(&downloadTimeout, "download-timeout", 0, "Per task timeout (e.g., 10m)")
	flag.IntVar(&downloaders, "downloaders", 0, "Number of concurrent downloads")
	flag.IntVar(&queueSize, "queue-size", 0, "Number of queued tasks")
	flag.DurationVar(&cleanupInterval, "cleanup-interval", 0, "Sweeper interval (e.g., 5m)")

	flag.Parse()

	return &StructuredConfig{
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
			Files: Files{
				DownloadDir: downloadDir,
				FileTTL:     fileTTL,
			},
		},
		Server: Server{
			HTTPAddress:           serverAddress.String(),
			RequestTimeout:        requestTimeout,
			MaxConcurrentRequests: maxRequests,
			StaticDir:             staticDir,
		},
		Downloader: Downloader{
			Binary:         downloaderBinary,
			FFmpegLocation: ffmpegLocation,
			Timeout:        downloadTimeout,
		},
		Workers: Workers{
			Downloaders:     downloaders,
			QueueSize:       queueSize,
			CleanupInterval: cleanupInterval,
		},
		JSONFilePath: jsonConfigPath,
	}
}

// String returns host:port, or "" when the address is unset.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}
	return net.JoinHostPort(a.Host, strconv.Itoa(a.Port))
}

// Set parses host:port. The host may be empty (all interfaces), "localhost"
// or an IP literal; IPv6 literals go in brackets.
func (a *NetAddress) Set(s string) error {
	host, rawPort, err := net.SplitHostPort(s)
	if err != nil {
		return fmt.Errorf("%w: %w", errInvalidNetAddress, err)
	}

	port, err := strconv.Atoi(rawPort)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("%w: port %q is not in 1..65535", errInvalidNetAddress, rawPort)
	}

	if host != "" && host != "localhost" && net.ParseIP(host) == nil {
		return fmt.Errorf("%w: host %q is neither localhost nor an IP", errInvalidNetAddress, host)
	}

	a.Host = host
	a.Port = port
	return nil
}
