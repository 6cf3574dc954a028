package models

// DownloadRequest is the body of POST /api/download.
type DownloadRequest struct {
	URL string `json:"url"`
}

// DownloadResponse is returned when a download task was accepted.
type DownloadResponse struct {
	TaskID   string   `json:"task_id"`
	Platform Platform `json:"platform"`
}

// ErrorResponse is the JSON error envelope used by every API endpoint.
type ErrorResponse struct {
	Error string `json:"error"`
}
