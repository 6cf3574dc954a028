package service

// DownloadServiceWrapper defines middleware composition for DownloadService.
// Implementations wrap an existing DownloadService to add behavior such as
// validating.
type DownloadServiceWrapper interface {
	Wrap(DownloadService) DownloadService // returns a decorated DownloadService applying additional behavior
}
