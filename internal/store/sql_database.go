package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-video-fetcher/internal/logger"
	"github.com/MKhiriev/go-video-fetcher/migrations"
)

// Supported SQL dialects. The names match goose dialect names.
const (
	DialectPostgres = "pgx"
	DialectSQLite   = "sqlite3"
)

// retryDelays is the pause before each repeated attempt of a statement that
// failed with a Retryable error.
var retryDelays = []time.Duration{100 * time.Millisecond, 300 * time.Millisecond, 500 * time.Millisecond}

// ErrorClassification tells whether a failed statement may be repeated.
type ErrorClassification int

const (
	// NonRetryable failures are returned to the caller as is.
	NonRetryable ErrorClassification = iota
	// Retryable failures are transient: lost connections, deadlocks, busy
	// database files.
	Retryable
)

// ErrorClassificator decides how a driver error should be handled.
type ErrorClassificator interface {
	// Classify reports whether the failed operation may be retried.
	Classify(err error) ErrorClassification
	// IsDuplicateKey reports whether err is a primary key or unique violation.
	IsDuplicateKey(err error) bool
}

// DB is a *sql.DB bound to one dialect: its placeholder format, error
// classification and migrations.
type DB struct {
	*sql.DB
	dialect            string
	placeholder        sq.PlaceholderFormat
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

func newDB(conn *sql.DB, dialect string, log *logger.Logger) (*DB, error) {
	db := &DB{
		DB:      conn,
		dialect: dialect,
		logger:  log,
	}

	switch dialect {
	case DialectPostgres:
		db.placeholder = sq.Dollar
		db.errorClassificator = NewPostgresErrorClassifier()
	case DialectSQLite:
		db.placeholder = sq.Question
		db.errorClassificator = NewSQLiteErrorClassifier()
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDialect, dialect)
	}

	return db, nil
}

// Dialect returns the goose dialect name of the database.
func (db *DB) Dialect() string {
	return db.dialect
}

// Migrate applies pending schema migrations for the database dialect.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.dialect)
}

// withRetry runs fn and repeats it while it fails with a Retryable error,
// at most len(retryDelays) more times.
func (db *DB) withRetry(ctx context.Context, fn func() error) error {
	err := fn()
	for _, delay := range retryDelays {
		if err == nil || db.errorClassificator.Classify(err) != Retryable {
			return err
		}

		db.logger.Warn().Err(err).Dur("delay", delay).Msg("retrying database operation")
		select {
		case <-ctx.Done():
			return fmt.Errorf("%w (retry aborted: %w)", err, ctx.Err())
		case <-time.After(delay):
		}

		err = fn()
	}
	return err
}
