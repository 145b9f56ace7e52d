package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"

	"github.com/MKhiriev/go-note-sync/internal/logger"
	"github.com/MKhiriev/go-note-sync/models"
)

// recordRepository is the Postgres implementation of [RecordRepository].
type recordRepository[T models.Syncable[T]] struct {
	db    *DB
	codec recordCodec[T]
}

func NewFolderRepository(db *DB) RecordRepository[*models.Folder] {
	return &recordRepository[*models.Folder]{db: db, codec: folderCodec}
}

func NewNoteRepository(db *DB) RecordRepository[*models.Note] {
	return &recordRepository[*models.Note]{db: db, codec: noteCodec(false)}
}

func (r *recordRepository[T]) List(ctx context.Context, ownerID int64) ([]T, error) {
	query := r.db.Builder().
		Select(r.codec.columns()...).
		From(r.codec.table).
		Where(sq.Eq{"user_id": ownerID, "deleted_at": nil}).
		OrderBy("created_at", "id")

	var items []T
	err := r.db.retry(ctx, func(ctx context.Context) (err error) {
		items, err = r.codec.queryAll(ctx, r.db, query)
		return err
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "recordRepository.List").
			Str("table", r.codec.table).
			Int64("user_id", ownerID).
			Msg("failed to list records")
		return nil, err
	}
	return items, nil
}

func (r *recordRepository[T]) Get(ctx context.Context, ownerID int64, id string) (T, error) {
	var zero T
	query, args, err := r.db.Builder().
		Select(r.codec.columns()...).
		From(r.codec.table).
		Where(sq.Eq{"id": id, "user_id": ownerID}).
		ToSql()
	if err != nil {
		return zero, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var item T
	err = r.db.retry(ctx, func(ctx context.Context) (err error) {
		item, err = r.codec.scanOne(r.db.QueryRowContext(ctx, query, args...))
		return err
	})
	if err != nil {
		return zero, r.mapError(ctx, "recordRepository.Get", id, err)
	}
	return item, nil
}

func (r *recordRepository[T]) Insert(ctx context.Context, item T) (T, error) {
	var zero T
	query, args, err := r.db.Builder().
		Insert(r.codec.table).
		Columns(r.codec.columns()...).
		Values(r.codec.rowValues(item)...).
		Suffix("RETURNING " + joinColumns(r.codec.columns())).
		ToSql()
	if err != nil {
		return zero, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	saved, err := r.codec.scanOne(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		return zero, r.mapError(ctx, "recordRepository.Insert", item.Meta().ID, err)
	}
	return saved, nil
}

func (r *recordRepository[T]) Update(ctx context.Context, item T) (T, error) {
	var zero T
	meta := item.Meta()
	query, args, err := r.db.Builder().
		Update(r.codec.table).
		SetMap(r.codec.setMap(item)).
		Where(sq.Eq{"id": meta.ID, "user_id": meta.OwnerID, "deleted_at": nil}).
		Suffix("RETURNING " + joinColumns(r.codec.columns())).
		ToSql()
	if err != nil {
		return zero, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	saved, err := r.codec.scanOne(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		return zero, r.mapError(ctx, "recordRepository.Update", meta.ID, err)
	}
	return saved, nil
}

func (r *recordRepository[T]) SoftDelete(ctx context.Context, ownerID int64, id string, at time.Time) error {
	at = models.Timestamp(at)
	query, args, err := r.db.Builder().
		Update(r.codec.table).
		Set("deleted_at", sq.Expr("COALESCE(deleted_at, ?)", at)).
		Set("last_modified", at).
		Set("sync_status", string(models.StatusTombstoned)).
		Where(sq.Eq{"id": id, "user_id": ownerID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var res sql.Result
	err = r.db.retry(ctx, func(ctx context.Context) (err error) {
		res, err = r.db.ExecContext(ctx, query, args...)
		return err
	})
	if err != nil {
		return r.mapError(ctx, "recordRepository.SoftDelete", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s %s: %w", r.codec.table, id, ErrRecordNotFound)
	}
	return nil
}

func (r *recordRepository[T]) mapError(ctx context.Context, fn, id string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s %s: %w", r.codec.table, id, ErrRecordNotFound)
	}

	logger.FromContext(ctx).Err(err).
		Str("func", fn).
		Str("table", r.codec.table).
		Str("id", id).
		Msg("database error")

	switch postgresError(err) {
	case pgerrcode.UniqueViolation:
		return fmt.Errorf("%s %s: %w", r.codec.table, id, ErrRecordExists)
	case pgerrcode.InvalidTextRepresentation:
		return fmt.Errorf("%s %s: %w", r.codec.table, id, ErrRecordNotFound)
	}
	return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
}

func joinColumns(cols []string) string {
	return strings.Join(cols, ", ")
}
