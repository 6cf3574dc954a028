package service

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/MKhiriev/go-video-fetcher/internal/validators"
	"github.com/MKhiriev/go-video-fetcher/models"
)

// DownloadValidationService normalizes and checks input before it reaches
// the wrapped DownloadService.
type DownloadValidationService struct {
	inner     DownloadService
	validator validators.Validator
}

func NewDownloadValidationService() DownloadServiceWrapper {
	return &DownloadValidationService{
		validator: validators.NewURLValidator(),
	}
}

func (v *DownloadValidationService) StartDownload(ctx context.Context, rawURL string) (models.Task, error) {
	req := &models.DownloadRequest{URL: rawURL}
	if err := v.validator.Validate(ctx, req, validators.FieldURL); err != nil {
		return models.Task{}, fmt.Errorf("error during url validation: %w", err)
	}

	return v.inner.StartDownload(ctx, req.URL)
}

func (v *DownloadValidationService) GetStatus(ctx context.Context, taskID string) (models.Task, error) {
	taskID = strings.TrimSpace(taskID)
	if taskID == "" {
		return models.Task{}, ErrNoTaskID
	}
	return v.inner.GetStatus(ctx, taskID)
}

func (v *DownloadValidationService) OpenFile(ctx context.Context, taskID string) (*os.File, string, error) {
	taskID = strings.TrimSpace(taskID)
	if taskID == "" {
		return nil, "", ErrNoTaskID
	}
	return v.inner.OpenFile(ctx, taskID)
}

func (v *DownloadValidationService) ProcessTask(ctx context.Context, taskID string) error {
	return v.inner.ProcessTask(ctx, taskID)
}

func (v *DownloadValidationService) Wrap(wrapped DownloadService) DownloadService {
	v.inner = wrapped
	return v
}
