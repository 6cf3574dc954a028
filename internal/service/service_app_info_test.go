package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/MKhiriev/go-video-fetcher/internal/config"
	"github.com/MKhiriev/go-video-fetcher/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// NewAppInfoService
// ─────────────────────────────────────────────

func TestNewAppInfoService_Success(t *testing.T) {
	cfg := config.App{Version: "1.0.0"}

	svc, err := NewAppInfoService(cfg, config.Downloader{}, logger.Nop())

	require.NoError(t, err)
	require.NotNil(t, svc)
}

func TestNewAppInfoService_EmptyVersion_ReturnsError(t *testing.T) {
	cfg := config.App{Version: ""}

	svc, err := NewAppInfoService(cfg, config.Downloader{}, logger.Nop())

	assert.Nil(t, svc)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrVersionIsNotSpecified))
}

func TestNewAppInfoService_ReturnsAppInfoServiceInterface(t *testing.T) {
	cfg := config.App{Version: "2.5.1"}

	svc, err := NewAppInfoService(cfg, config.Downloader{}, logger.Nop())

	require.NoError(t, err)
	// compile-time check: returned value must satisfy the interface
	var _ AppInfoService = svc
}

// ─────────────────────────────────────────────
// GetAppVersion
// ─────────────────────────────────────────────

func TestGetAppVersion_ReturnsConfiguredVersion(t *testing.T) {
	cfg := config.App{Version: "3.1.4"}
	svc, err := NewAppInfoService(cfg, config.Downloader{}, logger.Nop())
	require.NoError(t, err)

	got := svc.GetAppVersion(context.Background())

	assert.Equal(t, "3.1.4", got)
}

func TestGetAppVersion_VersionIsStable(t *testing.T) {
	cfg := config.App{Version: "0.0.1"}
	svc, err := NewAppInfoService(cfg, config.Downloader{}, logger.Nop())
	require.NoError(t, err)

	ctx := context.Background()
	first := svc.GetAppVersion(ctx)
	second := svc.GetAppVersion(ctx)

	assert.Equal(t, first, second, "version must not change between calls")
}

func TestGetAppVersion_DifferentInstances_IndependentVersions(t *testing.T) {
	svc1, err := NewAppInfoService(config.App{Version: "1.0.0"}, config.Downloader{}, logger.Nop())
	require.NoError(t, err)

	svc2, err := NewAppInfoService(config.App{Version: "2.0.0"}, config.Downloader{}, logger.Nop())
	require.NoError(t, err)

	assert.Equal(t, "1.0.0", svc1.GetAppVersion(context.Background()))
	assert.Equal(t, "2.0.0", svc2.GetAppVersion(context.Background()))
}

func TestGetAppVersion_VersionWithSpecialChars(t *testing.T) {
	version := "v1.2.3-beta+build.42"
	svc, err := NewAppInfoService(config.App{Version: version}, config.Downloader{}, logger.Nop())
	require.NoError(t, err)

	assert.Equal(t, version, svc.GetAppVersion(context.Background()))
}

func TestGetAppVersion_CancelledContext_StillReturnsVersion(t *testing.T) {
	svc, err := NewAppInfoService(config.App{Version: "1.0.0"}, config.Downloader{}, logger.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // cancel immediately

	// GetAppVersion does not use ctx, so it must still return the version
	assert.Equal(t, "1.0.0", svc.GetAppVersion(ctx))
}

// ─────────────────────────────────────────────
// CheckDependencies
// ─────────────────────────────────────────────

// testBinary writes a shell stub that answers any version flag.
func testBinary(t *testing.T) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell stubs are not executable on windows")
	}
	path := filepath.Join(t.TempDir(), "tool")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\necho tool version 1.0\n"), 0o755))
	return path
}

func TestCheckDependencies_AllAvailable(t *testing.T) {
	bin := testBinary(t)
	svc, err := NewAppInfoService(config.App{Version: "1.0.0"},
		config.Downloader{Binary: bin, FFmpegBinary: bin}, logger.Nop())
	require.NoError(t, err)

	resp := svc.CheckDependencies(context.Background())

	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "1.0.0", resp.Version)
	assert.True(t, resp.Healthy())
	require.Len(t, resp.Dependencies, 2)
	assert.Equal(t, "yt-dlp", resp.Dependencies[0].Name)
	assert.Equal(t, "ffmpeg", resp.Dependencies[1].Name)
	assert.Equal(t, "tool version 1.0", resp.Dependencies[0].Detail)
}

func TestCheckDependencies_BinaryCannotRun(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell stubs are not executable on windows")
	}
	broken := filepath.Join(t.TempDir(), "ffmpeg")
	require.NoError(t, os.WriteFile(broken, []byte("#!/nonexistent/interpreter\n"), 0o755))

	svc, err := NewAppInfoService(config.App{Version: "1.0.0"},
		config.Downloader{Binary: testBinary(t), FFmpegBinary: "ffmpeg", FFmpegLocation: broken}, logger.Nop())
	require.NoError(t, err)

	resp := svc.CheckDependencies(context.Background())

	assert.Equal(t, "degraded", resp.Status)
	assert.True(t, resp.Dependencies[0].Available)
	assert.False(t, resp.Dependencies[1].Available)
	assert.Contains(t, resp.Dependencies[1].Detail, "cannot run")
}

func TestCheckDependencies_MissingBinary(t *testing.T) {
	svc, err := NewAppInfoService(config.App{Version: "1.0.0"},
		config.Downloader{Binary: "definitely-not-installed-yt-dlp", FFmpegBinary: testBinary(t)}, logger.Nop())
	require.NoError(t, err)

	resp := svc.CheckDependencies(context.Background())

	assert.Equal(t, "degraded", resp.Status)
	assert.False(t, resp.Healthy())
	assert.False(t, resp.Dependencies[0].Available)
	assert.NotEmpty(t, resp.Dependencies[0].Detail)
}

func TestRequirementsFor_FFmpegLocation(t *testing.T) {
	bin := testBinary(t)

	reqs := requirementsFor(config.Downloader{Binary: "yt-dlp", FFmpegBinary: "ffmpeg", FFmpegLocation: bin})
	assert.Equal(t, bin, reqs[1].Command)

	dir := t.TempDir()
	reqs = requirementsFor(config.Downloader{Binary: "yt-dlp", FFmpegBinary: "ffmpeg", FFmpegLocation: dir})
	assert.Equal(t, filepath.Join(dir, "ffmpeg"), reqs[1].Command)

	reqs = requirementsFor(config.Downloader{Binary: "yt-dlp", FFmpegBinary: "ffmpeg"})
	assert.Equal(t, "ffmpeg", reqs[1].Command)
}
