package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-video-fetcher/internal/config"
	"github.com/MKhiriev/go-video-fetcher/internal/logger"
)

// Backend names the task store selected by the configured DSN.
type Backend string

const (
	BackendMemory   Backend = "memory"
	BackendPostgres Backend = "postgres"
	BackendSQLite   Backend = "sqlite"
)

// BackendFromDSN maps a DSN to its backend: empty or "memory" keeps tasks in
// memory, postgres:// and postgresql:// URIs use PostgreSQL and anything else
// is a SQLite file path.
func BackendFromDSN(dsn string) Backend {
	dsn = strings.TrimSpace(dsn)
	lower := strings.ToLower(dsn)
	switch {
	case dsn == "" || lower == "memory":
		return BackendMemory
	case strings.HasPrefix(lower, "postgres://"), strings.HasPrefix(lower, "postgresql://"):
		return BackendPostgres
	default:
		return BackendSQLite
	}
}

// Storages groups the task repository and the download directory.
type Storages struct {
	TaskRepository TaskRepository
	FileStorage    FileStorage
	Backend        Backend

	db *DB
}

// NewStorages initialises the storage layer:
//  1. prepares the download directory (created and probed for writability);
//  2. opens the task store chosen by [BackendFromDSN];
//  3. runs pending migrations for SQL backends.
func NewStorages(ctx context.Context, cfg config.Storage, logger *logger.Logger) (*Storages, error) {
	logger.Info().Msg("creating new storages...")

	files := NewFileStorage(cfg.Files.DownloadDir, logger)
	if err := files.EnsureDir(); err != nil {
		return nil, fmt.Errorf("download dir %q: %w", cfg.Files.DownloadDir, err)
	}

	storages := &Storages{
		FileStorage: files,
		Backend:     BackendFromDSN(cfg.DB.DSN),
	}

	var (
		db  *DB
		err error
	)
	switch storages.Backend {
	case BackendMemory:
		storages.TaskRepository = NewMemoryTaskRepository(logger)
		return storages, nil
	case BackendPostgres:
		db, err = NewConnectPostgres(ctx, cfg.DB, logger)
	default:
		db, err = NewConnectSQLite(ctx, cfg.DB, logger)
	}
	if err != nil {
		return nil, fmt.Errorf("%s connection error: %w", storages.Backend, err)
	}

	if err := db.Migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	storages.db = db
	storages.TaskRepository = NewTaskRepository(db, logger)
	return storages, nil
}

// Close releases the database connection, if any.
func (s *Storages) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
