package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/MKhiriev/go-video-fetcher/internal/app"
	"github.com/MKhiriev/go-video-fetcher/internal/logger"
	"github.com/MKhiriev/go-video-fetcher/internal/service"
	"github.com/MKhiriev/go-video-fetcher/internal/store"
	"github.com/MKhiriev/go-video-fetcher/internal/utils"
	"github.com/MKhiriev/go-video-fetcher/internal/validators"
	"github.com/MKhiriev/go-video-fetcher/models"
)

type errorResponse struct {
	status  int
	message string
}

var errorResponseMap = map[error]errorResponse{
	validators.ErrEmptyURL:       {http.StatusBadRequest, app.MsgProvideURL},
	validators.ErrUnsupportedURL: {http.StatusBadRequest, app.MsgInvalidURL},

	service.ErrQueueFull:    {http.StatusServiceUnavailable, app.MsgQueueFull},
	service.ErrNoTaskID:     {http.StatusNotFound, app.MsgTaskNotFound},
	service.ErrFileNotReady: {http.StatusNotFound, app.MsgFileNotReady},

	store.ErrTaskNotFound: {http.StatusNotFound, app.MsgTaskNotFound},
	store.ErrFileNotFound: {http.StatusNotFound, app.MsgFileNotFound},

	context.DeadlineExceeded: {http.StatusGatewayTimeout, app.MsgRequestTimeout},
}

func responseFromError(err error) errorResponse {
	for target, resp := range errorResponseMap {
		if errors.Is(err, target) {
			return resp
		}
	}
	return errorResponse{http.StatusInternalServerError, app.MsgInternalServerError}
}

// writeError answers with the JSON error envelope matching err. Unmapped
// errors are logged and reported as 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	resp := responseFromError(err)
	if resp.status == http.StatusInternalServerError {
		logger.FromRequest(r).Err(err).Msg("request failed")
	}
	writeJSON(w, r, models.ErrorResponse{Error: resp.message}, resp.status)
}

func writeJSON(w http.ResponseWriter, r *http.Request, data any, status int) {
	if _, err := utils.WriteJSON(w, data, status); err != nil {
		logger.FromRequest(r).Err(err).Msg("error writing response")
	}
}
