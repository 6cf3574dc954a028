package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"

	"github.com/MKhiriev/go-video-fetcher/internal/logger"
	"github.com/MKhiriev/go-video-fetcher/models"
)

// sweepLockName is the lock file taken while old files are removed. It is
// hidden so FindByPrefix never reports it.
const sweepLockName = ".sweep.lock"

// incompleteSuffixes mark files yt-dlp is still writing.
var incompleteSuffixes = []string{".part", ".ytdl", ".temp"}

// fileStorage is the local-directory implementation of [FileStorage].
type fileStorage struct {
	dir    string
	lock   *flock.Flock
	logger *logger.Logger
}

// NewFileStorage constructs a [FileStorage] rooted at dir. The directory is
// not touched until EnsureDir is called.
func NewFileStorage(dir string, logger *logger.Logger) FileStorage {
	dir = filepath.Clean(dir)
	logger.Debug().Str("dir", dir).Msg("creating file storage")
	return &fileStorage{
		dir:    dir,
		lock:   flock.New(filepath.Join(dir, sweepLockName)),
		logger: logger,
	}
}

func (s *fileStorage) Dir() string {
	return s.dir
}

// EnsureDir creates the download directory and probes it with a temporary
// file.
func (s *fileStorage) EnsureDir() error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("%w: %w", ErrDirNotWritable, err)
	}

	probe, err := os.CreateTemp(s.dir, ".probe-*")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDirNotWritable, err)
	}
	name := probe.Name()
	_ = probe.Close()
	if err := os.Remove(name); err != nil {
		return fmt.Errorf("%w: %w", ErrDirNotWritable, err)
	}

	return nil
}

// OutputTemplate returns <dir>/<taskID>_%(title).80s.%(ext)s.
func (s *fileStorage) OutputTemplate(taskID string) string {
	return filepath.Join(s.dir, taskID+"_%(title).80s.%(ext)s")
}

// FindByPrefix returns the newest complete file whose name starts with
// "<taskID>_".
func (s *fileStorage) FindByPrefix(ctx context.Context, taskID string) (models.StoredFile, error) {
	log := logger.FromContext(ctx)

	if taskID == "" {
		return models.StoredFile{}, ErrFileNotFound
	}

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		log.Err(err).Str("func", "*fileStorage.FindByPrefix").Msg("error reading download dir")
		return models.StoredFile{}, fmt.Errorf("read download dir: %w", err)
	}

	prefix := taskID + "_"
	var found *models.StoredFile
	for _, entry := range entries {
		name := entry.Name()
		if !entry.Type().IsRegular() || !strings.HasPrefix(name, prefix) || isIncomplete(name) {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}
		candidate := models.StoredFile{Name: name, Size: info.Size(), ModTime: info.ModTime()}
		if found == nil || candidate.ModTime.After(found.ModTime) {
			found = &candidate
		}
	}

	if found == nil {
		return models.StoredFile{}, ErrFileNotFound
	}
	return *found, nil
}

// Open opens name inside the download directory. Anything but a plain base
// name is rejected with ErrInvalidFileName.
func (s *fileStorage) Open(name string) (*os.File, error) {
	if name == "" || name != filepath.Base(name) || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return nil, ErrInvalidFileName
	}

	f, err := os.Open(filepath.Join(s.dir, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrFileNotFound
		}
		return nil, fmt.Errorf("open %s: %w", name, err)
	}

	info, err := f.Stat()
	if err != nil || !info.Mode().IsRegular() {
		_ = f.Close()
		return nil, ErrFileNotFound
	}

	return f, nil
}

// RemoveOlderThan deletes regular files modified before cutoff. When another
// process holds the sweep lock it returns immediately with zero removed.
func (s *fileStorage) RemoveOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	log := logger.FromContext(ctx)

	locked, err := s.lock.TryLock()
	if err != nil {
		return 0, fmt.Errorf("acquire sweep lock: %w", err)
	}
	if !locked {
		log.Debug().Str("func", "*fileStorage.RemoveOlderThan").Msg("sweep already running in another process")
		return 0, nil
	}
	defer func() {
		if err := s.lock.Unlock(); err != nil {
			log.Warn().Err(err).Msg("failed to release sweep lock")
		}
	}()

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return 0, fmt.Errorf("read download dir: %w", err)
	}

	removed := 0
	for _, entry := range entries {
		if ctx.Err() != nil {
			return removed, ctx.Err()
		}
		if !entry.Type().IsRegular() || entry.Name() == sweepLockName {
			continue
		}

		info, err := entry.Info()
		if err != nil || !info.ModTime().Before(cutoff) {
			continue
		}

		if err := os.Remove(filepath.Join(s.dir, entry.Name())); err != nil && !errors.Is(err, fs.ErrNotExist) {
			log.Warn().Err(err).Str("file", entry.Name()).Msg("failed to remove expired file")
			continue
		}
		removed++
	}

	return removed, nil
}

func isIncomplete(name string) bool {
	if strings.HasPrefix(name, ".") || strings.Contains(name, ".part-Frag") {
		return true
	}
	for _, suffix := range incompleteSuffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}
