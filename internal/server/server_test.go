package server

import (
	"context"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-video-fetcher/internal/config"
	"github.com/MKhiriev/go-video-fetcher/internal/handler"
	"github.com/MKhiriev/go-video-fetcher/internal/logger"
)

type fakeBackground struct {
	started atomic.Int32
	stopped atomic.Int32
}

func (f *fakeBackground) Start(context.Context) { f.started.Add(1) }
func (f *fakeBackground) Stop()                 { f.stopped.Add(1) }

func testServerConfig() config.Server {
	return config.Server{
		HTTPAddress:    "127.0.0.1:0",
		RequestTimeout: time.Second,
	}
}

func TestNewServer_NoHandlers(t *testing.T) {
	s, err := NewServer(nil, nil, testServerConfig(), logger.Nop())
	require.ErrorIs(t, err, errNoServersAreCreated)
	assert.Nil(t, s)

	s, err = NewServer(&handler.Handlers{}, nil, testServerConfig(), logger.Nop())
	require.ErrorIs(t, err, errNoServersAreCreated)
	assert.Nil(t, s)
}

func TestNewServer_AppliesTimeouts(t *testing.T) {
	handlers, err := handler.NewHandlers(nil, testServerConfig(), logger.Nop())
	require.NoError(t, err)

	s, err := NewServer(handlers, nil, testServerConfig(), logger.Nop())
	require.NoError(t, err)

	srv := s.(*server).httpServer.server
	assert.Equal(t, "127.0.0.1:0", srv.Addr)
	assert.Equal(t, time.Second, srv.ReadTimeout)
	assert.Equal(t, time.Second, srv.WriteTimeout)
	assert.Equal(t, readHeaderTimeout, srv.ReadHeaderTimeout)
}

func TestServer_RunStopsOnContextCancel(t *testing.T) {
	handlers, err := handler.NewHandlers(nil, testServerConfig(), logger.Nop())
	require.NoError(t, err)

	bg := &fakeBackground{}
	s, err := NewServer(handlers, bg, testServerConfig(), logger.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.(*server).run(ctx)
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop after context cancel")
	}

	assert.Equal(t, int32(1), bg.started.Load())
	assert.Equal(t, int32(1), bg.stopped.Load())
}

func TestHTTPServer_ShutdownBeforeServe(t *testing.T) {
	srv := newHTTPServer(http.NotFoundHandler(), testServerConfig(), logger.Nop())

	srv.Shutdown()

	// ListenAndServe returns http.ErrServerClosed right away after Shutdown.
	done := make(chan struct{})
	go func() {
		srv.RunServer()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("RunServer did not return on a closed server")
	}
}
