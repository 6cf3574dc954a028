package service

import (
	"context"
	"os"
	"path/filepath"

	"github.com/MKhiriev/go-video-fetcher/internal/config"
	"github.com/MKhiriev/go-video-fetcher/internal/deps"
	"github.com/MKhiriev/go-video-fetcher/internal/logger"
	"github.com/MKhiriev/go-video-fetcher/models"
)

const (
	healthStatusOK       = "ok"
	healthStatusDegraded = "degraded"
)

type appInfoService struct {
	appVersion   string
	requirements []deps.Requirement

	logger *logger.Logger
}

func NewAppInfoService(cfg config.App, downloader config.Downloader, logger *logger.Logger) (AppInfoService, error) {
	if cfg.Version == "" {
		return nil, ErrVersionIsNotSpecified
	}

	return &appInfoService{
		appVersion:   cfg.Version,
		requirements: requirementsFor(downloader),
		logger:       logger,
	}, nil
}

func (s *appInfoService) GetAppVersion(ctx context.Context) string {
	return s.appVersion
}

// CheckDependencies runs the downloader and media tool once each with their
// version flag.
func (s *appInfoService) CheckDependencies(ctx context.Context) models.HealthResponse {
	statuses := deps.CheckBinaries(ctx, s.requirements, deps.DefaultProbeTimeout)

	resp := models.HealthResponse{
		Status:       healthStatusOK,
		Version:      s.appVersion,
		Dependencies: statuses,
	}
	if missing := deps.Missing(statuses); len(missing) > 0 {
		resp.Status = healthStatusDegraded
		for _, dep := range missing {
			logger.FromContext(ctx).Warn().Str("dependency", dep.Name).Str("detail", dep.Detail).Msg("required dependency unavailable")
		}
	}

	return resp
}

// requirementsFor lists yt-dlp and ffmpeg. FFmpegLocation may name either
// the binary or the directory holding it, as yt-dlp accepts both.
func requirementsFor(cfg config.Downloader) []deps.Requirement {
	ffmpeg := cfg.FFmpegBinary
	if loc := cfg.FFmpegLocation; loc != "" {
		ffmpeg = loc
		if info, err := os.Stat(loc); err == nil && info.IsDir() {
			ffmpeg = filepath.Join(loc, cfg.FFmpegBinary)
		}
	}

	return []deps.Requirement{
		{
			Name:        "yt-dlp",
			Command:     cfg.Binary,
			VersionArgs: []string{"--version"},
			Description: "extracts and downloads media",
		},
		{
			Name:        "ffmpeg",
			Command:     ffmpeg,
			VersionArgs: []string{"-version"},
			Description: "merges audio and video streams",
		},
	}
}
