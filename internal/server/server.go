package server

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-video-fetcher/internal/config"
	"github.com/MKhiriev/go-video-fetcher/internal/handler"
	"github.com/MKhiriev/go-video-fetcher/internal/logger"
)

type server struct {
	httpServer *httpServer
	background Background
	logger     *logger.Logger
}

// NewServer builds the HTTP server for handlers. background is started with
// the server and stopped after the listener has drained; it may be nil.
func NewServer(handlers *handler.Handlers, background Background, cfg config.Server, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")

	if handlers == nil || handlers.HTTP == nil || cfg.HTTPAddress == "" {
		return nil, errNoServersAreCreated
	}

	return &server{
		httpServer: newHTTPServer(handlers.HTTP.Init(), cfg, logger),
		background: background,
		logger:     logger,
	}, nil
}

func (s *server) RunServer() {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	s.run(ctx)
}

// Shutdown stops accepting requests, waits for in-flight ones and then stops
// the background jobs.
func (s *server) Shutdown() {
	s.httpServer.Shutdown()

	if s.background != nil {
		s.background.Stop()
	}
}

func (s *server) run(ctx context.Context) {
	if s.background != nil {
		s.background.Start(ctx)
	}

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		s.logger.Info().Msg("Launching HTTP server")
		s.httpServer.RunServer()
	}()

	select {
	case <-ctx.Done():
		s.logger.Info().Msg("shutdown signal received")
	case <-stopped:
		s.logger.Warn().Msg("HTTP server stopped unexpectedly")
	}

	s.Shutdown()
	<-stopped

	s.logger.Info().Msg("server Shutdown gracefully")
}
