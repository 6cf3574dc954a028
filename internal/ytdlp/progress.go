package ytdlp

import (
	"math"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-video-fetcher/models"
)

// progressPrefix marks the lines produced by progressTemplate.
const progressPrefix = "vfetch-progress"

// progressTemplate asks yt-dlp for one space separated progress line per
// update. Missing values are printed as "NA".
const progressTemplate = "download:" + progressPrefix +
	" %(progress.status)s" +
	" %(progress.downloaded_bytes)s" +
	" %(progress.total_bytes)s" +
	" %(progress.total_bytes_estimate)s"

func parseProgress(line string) (models.Progress, bool) {
	fields := strings.Fields(strings.TrimSpace(line))
	if len(fields) != 5 || fields[0] != progressPrefix {
		return models.Progress{}, false
	}

	status := models.ProgressStatus(fields[1])
	switch status {
	case models.ProgressDownloading, models.ProgressFinished, models.ProgressError:
	default:
		return models.Progress{}, false
	}

	return models.Progress{
		Status:          status,
		DownloadedBytes: parseBytes(fields[2]),
		TotalBytes:      parseBytes(fields[3]),
		TotalEstimate:   parseBytes(fields[4]),
	}, true
}

// parseBytes accepts integers and floats (estimates are floats); anything
// else, including "NA", is zero.
func parseBytes(s string) int64 {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0
	}
	return int64(f)
}

// ProgressPercent converts a progress event into the percentage reported to
// clients: one decimal place while the total is known,
// models.IndeterminateProgress while it is not, and 100 once finished.
// ok is false for events that do not change the percentage.
func ProgressPercent(p models.Progress) (percent float64, ok bool) {
	switch p.Status {
	case models.ProgressFinished:
		return 100, true
	case models.ProgressDownloading:
		total := p.TotalBytes
		if total <= 0 {
			total = p.TotalEstimate
		}
		if total <= 0 {
			return models.IndeterminateProgress, true
		}
		percent = float64(p.DownloadedBytes) / float64(total) * 100
		return math.Round(percent*10) / 10, true
	default:
		return 0, false
	}
}
