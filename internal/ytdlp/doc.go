// Package ytdlp drives the yt-dlp command-line downloader.
//
// The Client runs yt-dlp twice per video: once with --dump-single-json to
// read metadata and once to download the media into an output template.
// Progress is read from a machine-readable --progress-template line and
// reported as models.Progress events. Process failures are returned as
// *DownloadError, classified into ErrPrivateContent, ErrVideoNotFound or
// ErrUnavailable.
package ytdlp
