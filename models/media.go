// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// DefaultMediaTitle is used when the extractor reports no title.
const DefaultMediaTitle = "video"

// MediaInfo is the subset of extractor metadata exposed through the task status.
type MediaInfo struct {
	Title     string  `json:"title"`
	Thumbnail string  `json:"thumbnail"`
	Duration  float64 `json:"duration"`
	Uploader  string  `json:"uploader"`
}

// ProgressStatus mirrors the status field of yt-dlp progress hooks.
type ProgressStatus string

const (
	ProgressDownloading ProgressStatus = "downloading"
	ProgressFinished    ProgressStatus = "finished"
	ProgressError       ProgressStatus = "error"
)

// Progress is a single progress event emitted while a download runs.
// Byte counters are zero when the downloader did not report them.
type Progress struct {
	Status          ProgressStatus
	DownloadedBytes int64
	TotalBytes      int64
	TotalEstimate   int64
}

// StoredFile describes a file present in the download directory.
type StoredFile struct {
	Name    string
	Size    int64
	ModTime time.Time
}
