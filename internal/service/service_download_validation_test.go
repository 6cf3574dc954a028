package service

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-video-fetcher/internal/mock"
	"github.com/MKhiriev/go-video-fetcher/internal/validators"
	"github.com/MKhiriev/go-video-fetcher/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestValidationService(t *testing.T) (DownloadService, *mock.MockDownloadService) {
	t.Helper()
	inner := mock.NewMockDownloadService(gomock.NewController(t))
	return NewDownloadValidationService().Wrap(inner), inner
}

func TestDownloadValidationService_StartDownload_NormalizesURL(t *testing.T) {
	svc, inner := newTestValidationService(t)

	inner.EXPECT().StartDownload(gomock.Any(), "https://vm.tiktok.com/ZMabc/").
		Return(models.Task{ID: testTaskID, Platform: models.PlatformTikTok}, nil)

	task, err := svc.StartDownload(context.Background(), "  vm.tiktok.com/ZMabc/ ")

	require.NoError(t, err)
	assert.Equal(t, testTaskID, task.ID)
}

func TestDownloadValidationService_StartDownload_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr error
	}{
		{name: "empty", url: "", wantErr: validators.ErrEmptyURL},
		{name: "blank", url: "   ", wantErr: validators.ErrEmptyURL},
		{name: "youtube", url: "https://www.youtube.com/watch?v=x", wantErr: validators.ErrUnsupportedURL},
		{name: "lookalike host", url: "https://eviltiktok.com/video/1", wantErr: validators.ErrUnsupportedURL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// inner must not be called: gomock fails on unexpected calls
			svc, _ := newTestValidationService(t)

			_, err := svc.StartDownload(context.Background(), tt.url)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestDownloadValidationService_TaskID(t *testing.T) {
	svc, inner := newTestValidationService(t)

	_, err := svc.GetStatus(context.Background(), " ")
	assert.ErrorIs(t, err, ErrNoTaskID)

	_, _, err = svc.OpenFile(context.Background(), "")
	assert.ErrorIs(t, err, ErrNoTaskID)

	inner.EXPECT().GetStatus(gomock.Any(), testTaskID).Return(models.Task{ID: testTaskID}, nil)
	task, err := svc.GetStatus(context.Background(), testTaskID+" ")
	require.NoError(t, err)
	assert.Equal(t, testTaskID, task.ID)

	inner.EXPECT().ProcessTask(gomock.Any(), testTaskID).Return(nil)
	assert.NoError(t, svc.ProcessTask(context.Background(), testTaskID))
}
