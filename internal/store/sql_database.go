package store

import (
	"context"
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/sethvargo/go-retry"

	"github.com/MKhiriev/go-note-sync/internal/logger"
	"github.com/MKhiriev/go-note-sync/migrations"
)

// DB wraps a database handle with the SQL dialect details the repositories
// need: the placeholder format for squirrel and the migration set.
type DB struct {
	*sql.DB
	errorClassificator ErrorClassificator
	logger             *logger.Logger

	placeholder sq.PlaceholderFormat
	migrate     func(ctx context.Context, db *sql.DB) error
}

// Builder returns a squirrel statement builder using the dialect's
// placeholders.
func (db *DB) Builder() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(db.placeholder)
}

// Migrate applies the embedded migrations of this database's role.
func (db *DB) Migrate(ctx context.Context) error {
	if db.migrate == nil {
		return migrations.MigrateClient(ctx, db.DB)
	}
	return db.migrate(ctx, db.DB)
}

const (
	statementRetries   = 3
	statementRetryBase = 50 * time.Millisecond
)

// Classify reports whether err is worth retrying.
func (db *DB) Classify(err error) ErrorClassification {
	if db.errorClassificator == nil {
		return NonRetryable
	}
	return db.errorClassificator.Classify(err)
}

// retry runs fn again, with exponential backoff, while it fails with an
// error Classify marks Retryable. fn must be idempotent.
func (db *DB) retry(ctx context.Context, fn func(ctx context.Context) error) error {
	backoff := retry.WithMaxRetries(statementRetries, retry.NewExponential(statementRetryBase))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := fn(ctx)
		if err != nil && db.Classify(err) == Retryable {
			db.logger.Warn().Err(err).Str("func", "DB.retry").Msg("retrying statement")
			return retry.RetryableError(err)
		}
		return err
	})
}
