package ytdlp

import (
	"errors"
	"strings"
)

var (
	ErrPrivateContent = errors.New("content is private or requires login")
	ErrVideoNotFound  = errors.New("video not found")
	ErrUnavailable    = errors.New("video unavailable")

	ErrBinaryRequired = errors.New("yt-dlp binary required")
	ErrEmptyInfo      = errors.New("yt-dlp returned no media info")
)

// DownloadError is returned when yt-dlp itself reports a failure.
//
// errors.Is matches both the classified kind (ErrPrivateContent,
// ErrVideoNotFound or ErrUnavailable) and the underlying process error.
type DownloadError struct {
	Kind    error
	Message string
	Err     error
}

func (e *DownloadError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Kind.Error()
}

func (e *DownloadError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func newDownloadError(messages []string, err error) *DownloadError {
	message := strings.Join(messages, "\n")
	if message == "" && err != nil {
		message = err.Error()
	}

	return &DownloadError{
		Kind:    classify(message),
		Message: message,
		Err:     err,
	}
}

// classify maps a yt-dlp error message to one of the error kinds.
// "Private" is matched case-sensitively, "login" is not.
func classify(message string) error {
	lower := strings.ToLower(message)
	switch {
	case strings.Contains(message, "Private") || strings.Contains(lower, "login"):
		return ErrPrivateContent
	case strings.Contains(lower, "not found") || strings.Contains(message, "404"):
		return ErrVideoNotFound
	default:
		return ErrUnavailable
	}
}
