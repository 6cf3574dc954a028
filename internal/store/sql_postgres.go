package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/MKhiriev/go-video-fetcher/internal/config"
	"github.com/MKhiriev/go-video-fetcher/internal/logger"
)

const (
	postgresApplicationName = "video-fetcher"
	postgresMaxOpenConns    = 8
	postgresMaxIdleConns    = 2
	postgresConnMaxIdleTime = 5 * time.Minute
)

// NewConnectPostgres opens a pgx backed *sql.DB for cfg.DSN and checks it
// with a ping.
func NewConnectPostgres(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	connConfig, err := pgx.ParseConfig(cfg.DSN)
	if err != nil {
		log.Err(err).Str("func", "NewConnectPostgres").Msg("invalid postgres dsn")
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}
	connConfig.RuntimeParams["application_name"] = postgresApplicationName

	conn := stdlib.OpenDB(*connConfig)
	conn.SetMaxOpenConns(postgresMaxOpenConns)
	conn.SetMaxIdleConns(postgresMaxIdleConns)
	conn.SetConnMaxIdleTime(postgresConnMaxIdleTime)

	if err = conn.PingContext(ctx); err != nil {
		log.Err(err).Str("func", "NewConnectPostgres").Str("host", connConfig.Host).Msg("postgres is unreachable")
		_ = conn.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	log.Info().Str("func", "NewConnectPostgres").Str("host", connConfig.Host).Str("database", connConfig.Database).
		Msg("connected to postgres")

	return newDB(conn, DialectPostgres, log)
}

// PostgresErrorClassifier implements [ErrorClassificator] on top of the
// SQLSTATE codes reported by pgx.
type PostgresErrorClassifier struct{}

// NewPostgresErrorClassifier constructs a [PostgresErrorClassifier].
func NewPostgresErrorClassifier() *PostgresErrorClassifier {
	return &PostgresErrorClassifier{}
}

// Classify treats connection exceptions (class 08), transaction rollbacks
// (class 40) and 57P03 cannot_connect_now as Retryable.
func (c *PostgresErrorClassifier) Classify(err error) ErrorClassification {
	code := sqlState(err)
	switch {
	case code == "":
		return NonRetryable
	case pgerrcode.IsConnectionException(code),
		pgerrcode.IsTransactionRollback(code),
		code == pgerrcode.CannotConnectNow:
		return Retryable
	default:
		return NonRetryable
	}
}

// IsDuplicateKey reports 23505 unique_violation.
func (c *PostgresErrorClassifier) IsDuplicateKey(err error) bool {
	return sqlState(err) == pgerrcode.UniqueViolation
}

// sqlState returns the SQLSTATE of a wrapped *pgconn.PgError or "".
func sqlState(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}
