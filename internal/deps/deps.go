// Package deps checks that the external binaries the server drives are
// installed and can be started.
package deps

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/MKhiriev/go-video-fetcher/models"
)

// DefaultProbeTimeout bounds a single version probe.
const DefaultProbeTimeout = 5 * time.Second

// maxDetailLength caps the version line copied into Detail.
const maxDetailLength = 120

// Requirement is one external binary. VersionArgs are passed to it to prove
// it runs, e.g. "--version" for yt-dlp and "-version" for ffmpeg.
type Requirement struct {
	Name        string
	Command     string
	VersionArgs []string
	Description string
	Optional    bool
}

// CheckBinaries resolves every requirement on PATH and runs it once with its
// VersionArgs. A binary that is found but cannot be started or exits non-zero
// is reported unavailable. On success Detail holds the first output line.
func CheckBinaries(ctx context.Context, requirements []Requirement, timeout time.Duration) []models.DependencyStatus {
	if timeout <= 0 {
		timeout = DefaultProbeTimeout
	}

	results := make([]models.DependencyStatus, 0, len(requirements))
	for _, req := range requirements {
		results = append(results, check(ctx, req, timeout))
	}
	return results
}

func check(ctx context.Context, req Requirement, timeout time.Duration) models.DependencyStatus {
	status := models.DependencyStatus{
		Name:        req.Name,
		Command:     strings.TrimSpace(req.Command),
		Description: strings.TrimSpace(req.Description),
		Optional:    req.Optional,
	}
	if status.Command == "" {
		status.Detail = "command not configured"
		return status
	}

	path, err := exec.LookPath(status.Command)
	if err != nil {
		status.Detail = fmt.Sprintf("binary %q not found", status.Command)
		return status
	}

	version, err := probe(ctx, path, req.VersionArgs, timeout)
	if err != nil {
		status.Detail = fmt.Sprintf("binary %q cannot run: %v", status.Command, err)
		return status
	}

	status.Available = true
	status.Detail = version
	return status
}

// probe runs path with args and returns the first non-empty output line.
func probe(ctx context.Context, path string, args []string, timeout time.Duration) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, path, args...).CombinedOutput()
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", fmt.Errorf("no answer within %s", timeout)
		}
		if line := firstLine(out); line != "" {
			return "", fmt.Errorf("%w: %s", err, line)
		}
		return "", err
	}
	return firstLine(out), nil
}

func firstLine(out []byte) string {
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if len(line) > maxDetailLength {
			line = line[:maxDetailLength]
		}
		return line
	}
	return ""
}

// Missing returns the required dependencies that are not available.
func Missing(statuses []models.DependencyStatus) []models.DependencyStatus {
	var missing []models.DependencyStatus
	for _, status := range statuses {
		if !status.Optional && !status.Available {
			missing = append(missing, status)
		}
	}
	return missing
}
