package service

import (
	"github.com/MKhiriev/go-video-fetcher/internal/config"
	"github.com/MKhiriev/go-video-fetcher/internal/logger"
	"github.com/MKhiriev/go-video-fetcher/internal/store"
)

type Services struct {
	DownloadService DownloadService
	AppInfoService  AppInfoService
	CleanupService  CleanupService
}

func NewServices(storages *store.Storages, fetcher MediaFetcher, queue TaskQueue, cfg config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	appInfoService, err := NewAppInfoService(cfg.App, cfg.Downloader, logger)
	if err != nil {
		return nil, err
	}

	downloadService := NewDownloadValidationService().
		Wrap(NewDownloadService(storages.TaskRepository, storages.FileStorage, fetcher, queue, cfg.Downloader, logger))

	return &Services{
		DownloadService: downloadService,
		AppInfoService:  appInfoService,
		CleanupService:  NewCleanupService(storages.TaskRepository, storages.FileStorage, cfg.Storage.Files, cfg.Workers, logger),
	}, nil
}
