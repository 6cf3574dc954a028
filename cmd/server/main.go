package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-video-fetcher/internal/config"
	"github.com/MKhiriev/go-video-fetcher/internal/handler"
	"github.com/MKhiriev/go-video-fetcher/internal/logger"
	"github.com/MKhiriev/go-video-fetcher/internal/server"
	"github.com/MKhiriev/go-video-fetcher/internal/service"
	"github.com/MKhiriev/go-video-fetcher/internal/store"
	"github.com/MKhiriev/go-video-fetcher/internal/workers"
	"github.com/MKhiriev/go-video-fetcher/internal/ytdlp"
	"github.com/MKhiriev/go-video-fetcher/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	fmt.Println(buildInfo)

	log := logger.NewLogger("video-fetcher-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if cfg.App.Version == config.DefaultAppVersion && buildInfo.HasVersion() {
		cfg.App.Version = buildInfo.Version
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	ctx := context.Background()

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer storages.Close()

	fetcher, err := ytdlp.New(ytdlp.Config{
		Binary:            cfg.Downloader.Binary,
		FFmpegLocation:    cfg.Downloader.FFmpegLocation,
		Format:            cfg.Downloader.Format,
		MergeOutputFormat: cfg.Downloader.MergeOutputFormat,
		SocketTimeout:     cfg.Downloader.SocketTimeout,
		Retries:           cfg.Downloader.Retries,
		UserAgent:         cfg.Downloader.UserAgent,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("error creating downloader")
	}

	queue := workers.NewTaskQueue(cfg.Workers.QueueSize)

	services, err := service.NewServices(storages, fetcher, queue, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	health := services.AppInfoService.CheckDependencies(ctx)
	for _, dep := range health.Dependencies {
		if !dep.Available {
			log.Warn().Str("dependency", dep.Name).Bool("optional", dep.Optional).Str("detail", dep.Detail).
				Msg("external dependency is not available")
		}
	}

	handlers, err := handler.NewHandlers(services, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	background := workers.NewWorkers(cfg.Workers, services, queue, log)

	srv, err := server.NewServer(handlers, background, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}
