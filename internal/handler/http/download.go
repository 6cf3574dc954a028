package http

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"golang.org/x/text/unicode/norm"

	"github.com/MKhiriev/go-video-fetcher/internal/app"
	"github.com/MKhiriev/go-video-fetcher/internal/logger"
	"github.com/MKhiriev/go-video-fetcher/internal/service"
	"github.com/MKhiriev/go-video-fetcher/models"
)

const (
	// maxRequestBody caps the POST /api/download body.
	maxRequestBody = 64 << 10

	defaultDownloadName = "video"
)

func (h *Handler) startDownload(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req models.DownloadRequest
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody)).Decode(&req)
	if err != nil && !errors.Is(err, io.EOF) {
		log.Err(err).Str("func", "*Handler.startDownload").Msg("Invalid JSON was passed")
		writeJSON(w, r, models.ErrorResponse{Error: app.MsgInvalidDataProvided}, http.StatusBadRequest)
		return
	}

	task, err := h.services.DownloadService.StartDownload(r.Context(), req.URL)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, models.DownloadResponse{TaskID: task.ID, Platform: task.Platform}, http.StatusOK)
}

func (h *Handler) getStatus(w http.ResponseWriter, r *http.Request) {
	task, err := h.services.DownloadService.GetStatus(r.Context(), chi.URLParam(r, "taskID"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, task, http.StatusOK)
}

func (h *Handler) getFile(w http.ResponseWriter, r *http.Request) {
	f, name, err := h.services.DownloadService.OpenFile(r.Context(), chi.URLParam(r, "taskID"))
	if err != nil {
		if errors.Is(err, service.ErrNoTaskID) {
			err = service.ErrFileNotReady
		}
		writeError(w, r, err)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Disposition", contentDisposition(name))
	http.ServeContent(w, r, name, info.ModTime(), f)
}

// contentDisposition names the attachment with a plain ASCII filename and,
// when name has other characters, an RFC 5987 filename* carrying it intact.
func contentDisposition(name string) string {
	fallback := asciiFilename(name)
	header := mime.FormatMediaType("attachment", map[string]string{"filename": fallback})
	if fallback == name {
		return header
	}

	extended := mime.FormatMediaType("attachment", map[string]string{"filename": name})
	return header + strings.TrimPrefix(extended, "attachment")
}

// asciiFilename decomposes name and drops every rune outside printable
// ASCII, so "café.mp4" becomes "cafe.mp4".
func asciiFilename(name string) string {
	var b strings.Builder
	for _, r := range norm.NFKD.String(name) {
		if r >= ' ' && r <= '~' {
			b.WriteRune(r)
		}
	}

	fallback := strings.TrimSpace(b.String())
	if fallback == "" || strings.HasPrefix(fallback, ".") {
		fallback = defaultDownloadName + fallback
	}
	return fallback
}
