package http

import (
	"time"

	"github.com/MKhiriev/go-video-fetcher/internal/config"
	"github.com/MKhiriev/go-video-fetcher/internal/logger"
	"github.com/MKhiriev/go-video-fetcher/internal/service"
)

type Handler struct {
	services *service.Services

	staticDir      string
	requestTimeout time.Duration
	maxConcurrent  int

	logger *logger.Logger
}

func NewHandler(services *service.Services, cfg config.Server, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:       services,
		staticDir:      cfg.StaticDir,
		requestTimeout: cfg.RequestTimeout,
		maxConcurrent:  cfg.MaxConcurrentRequests,
		logger:         logger,
	}
}
