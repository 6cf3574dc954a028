package tui

import (
	"github.com/MKhiriev/go-video-fetcher/models"
)

type statusMsg struct {
	task models.Task
	err  error
}

type pollMsg struct{}
