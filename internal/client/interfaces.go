// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"

	"github.com/MKhiriev/go-video-fetcher/models"
)

// Follower waits for a task to finish and returns its final state.
type Follower interface {
	Follow(ctx context.Context, taskID string) (models.Task, error)
}
