package deps

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/go-video-fetcher/models"
)

func writeStub(t *testing.T, dir, name, script string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	return path
}

func TestCheckBinaries(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell stubs are not executable on windows")
	}
	binDir := t.TempDir()
	working := writeStub(t, binDir, "yt-dlp", "#!/bin/sh\n[ \"$1\" = \"--version\" ] || exit 2\necho\necho 2026.09.01\n")
	broken := writeStub(t, binDir, "ffmpeg", "#!/nonexistent/interpreter\n")
	failing := writeStub(t, binDir, "failing", "#!/bin/sh\necho unsupported build >&2\nexit 1\n")

	reqs := []Requirement{
		{Name: "yt-dlp", Command: working, VersionArgs: []string{"--version"}},
		{Name: "Missing", Command: "clearly-not-present-binary"},
		{Name: "Empty", Command: "  ", Optional: true},
		{Name: "ffmpeg", Command: broken, VersionArgs: []string{"-version"}},
		{Name: "Failing", Command: failing},
	}

	results := CheckBinaries(context.Background(), reqs, time.Second)
	if len(results) != len(reqs) {
		t.Fatalf("expected %d results, got %d", len(reqs), len(results))
	}

	if !results[0].Available {
		t.Fatalf("expected working binary to be available, got %#v", results[0])
	}
	if results[0].Detail != "2026.09.01" {
		t.Fatalf("expected version line in detail, got %q", results[0].Detail)
	}

	if results[1].Available || results[1].Detail == "" {
		t.Fatalf("expected missing binary to be unavailable with detail, got %#v", results[1])
	}
	if results[1].Command != "clearly-not-present-binary" {
		t.Fatalf("unexpected command recorded: %s", results[1].Command)
	}

	if results[2].Available || results[2].Detail != "command not configured" {
		t.Fatalf("expected unconfigured command, got %#v", results[2])
	}

	if results[3].Available {
		t.Fatalf("expected binary with missing interpreter to be unavailable, got %#v", results[3])
	}
	if !strings.Contains(results[3].Detail, "cannot run") {
		t.Fatalf("expected run failure in detail, got %q", results[3].Detail)
	}

	if results[4].Available || !strings.Contains(results[4].Detail, "unsupported build") {
		t.Fatalf("expected failing binary to be unavailable with its output, got %#v", results[4])
	}
}

func TestCheckBinaries_Timeout(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell stubs are not executable on windows")
	}
	slow := writeStub(t, t.TempDir(), "slow", "#!/bin/sh\nexec sleep 5\n")

	results := CheckBinaries(context.Background(), []Requirement{{Name: "slow", Command: slow}}, 100*time.Millisecond)

	if results[0].Available || !strings.Contains(results[0].Detail, "no answer within") {
		t.Fatalf("expected timed out probe, got %#v", results[0])
	}
}

func TestMissing(t *testing.T) {
	statuses := []models.DependencyStatus{
		{Name: "yt-dlp", Available: true},
		{Name: "ffmpeg", Available: false},
		{Name: "extra", Available: false, Optional: true},
	}

	missing := Missing(statuses)
	if len(missing) != 1 || missing[0].Name != "ffmpeg" {
		t.Fatalf("expected only ffmpeg to be missing, got %#v", missing)
	}
	if got := Missing(nil); len(got) != 0 {
		t.Fatalf("expected no missing dependencies, got %#v", got)
	}
}
