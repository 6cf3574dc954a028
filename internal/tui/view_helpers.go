package tui

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/MKhiriev/go-video-fetcher/models"
)

const uiDivider = "────────────────────────────────────────────"

func renderPage(title, data, hotKeys string) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(subtleStyle.Render(uiDivider))
	b.WriteString("\n\n")

	if strings.TrimSpace(data) != "" {
		b.WriteString(data)
		b.WriteString("\n")
	}

	if strings.TrimSpace(hotKeys) != "" {
		b.WriteString("\n")
		b.WriteString(helpStyle.Render(hotKeys))
	}

	return appStyle.Render(b.String())
}

// DescribeTask renders the metadata lines shown under the progress bar and
// by the status command.
func DescribeTask(task models.Task) string {
	var lines []string

	if task.Title != "" {
		lines = append(lines, fitText(task.Title, 60))
	}
	if task.Uploader != "" {
		lines = append(lines, "by "+task.Uploader)
	}
	if task.Duration > 0 {
		lines = append(lines, fmt.Sprintf("%.0fs", task.Duration))
	}
	if task.Filesize > 0 {
		lines = append(lines, humanize.Bytes(uint64(task.Filesize)))
	}

	return strings.Join(lines, " · ")
}

func valueOrDash(v *string) string {
	if v == nil || *v == "" {
		return "-"
	}
	return *v
}

func fitText(v string, max int) string {
	r := []rune(v)
	if max <= 0 || len(r) <= max {
		return v
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}
