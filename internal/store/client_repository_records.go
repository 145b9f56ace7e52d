package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-note-sync/internal/logger"
	"github.com/MKhiriev/go-note-sync/models"
)

// localTable is the SQLite implementation of [LocalTable].
type localTable[T models.Syncable[T]] struct {
	db    *DB
	codec recordCodec[T]
}

func newLocalTable[T models.Syncable[T]](db *DB, codec recordCodec[T]) *localTable[T] {
	return &localTable[T]{db: db, codec: codec}
}

func (t *localTable[T]) Get(ctx context.Context, id string) (T, error) {
	return t.get(ctx, t.db, id)
}

func (t *localTable[T]) get(ctx context.Context, db runner, id string) (T, error) {
	var zero T
	query, args, err := t.db.Builder().
		Select(t.codec.columns()...).
		From(t.codec.table).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return zero, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	item, err := t.codec.scanOne(db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return zero, fmt.Errorf("%s %s: %w", t.codec.table, id, ErrRecordNotFound)
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "localTable.Get").
			Str("table", t.codec.table).
			Str("id", id).
			Msg("failed to read local record")
		return zero, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	return item, nil
}

func (t *localTable[T]) List(ctx context.Context, filter RecordFilter) ([]T, error) {
	return t.list(ctx, t.db, filter)
}

func (t *localTable[T]) list(ctx context.Context, db runner, filter RecordFilter) ([]T, error) {
	query := t.db.Builder().
		Select(t.codec.columns()...).
		From(t.codec.table).
		OrderBy("created_at", "id")

	if filter.OwnerID != 0 {
		query = query.Where(sq.Eq{"user_id": filter.OwnerID})
	}
	if len(filter.Statuses) > 0 {
		statuses := make([]string, 0, len(filter.Statuses))
		for _, s := range filter.Statuses {
			statuses = append(statuses, string(s))
		}
		query = query.Where(sq.Eq{"sync_status": statuses})
	}
	if !filter.IncludeDeleted {
		query = query.Where(sq.Eq{"deleted_at": nil})
	}
	if filter.FolderID != nil {
		query = query.Where(sq.Eq{"folder_id": *filter.FolderID})
	}

	items, err := t.codec.queryAll(ctx, db, query)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "localTable.List").
			Str("table", t.codec.table).
			Int64("user_id", filter.OwnerID).
			Msg("failed to list local records")
		return nil, err
	}
	return items, nil
}

func (t *localTable[T]) Upsert(ctx context.Context, items ...T) error {
	if len(items) == 0 {
		return nil
	}
	return t.inTx(ctx, func(tx *sql.Tx) error {
		return t.upsert(ctx, tx, items...)
	})
}

func (t *localTable[T]) upsert(ctx context.Context, db runner, items ...T) error {
	if len(items) == 0 {
		return nil
	}

	cols := t.codec.columns()
	updates := make([]string, 0, len(cols))
	for _, col := range cols {
		if col == "id" {
			continue
		}
		updates = append(updates, col+" = excluded."+col)
	}

	query := t.db.Builder().
		Insert(t.codec.table).
		Columns(cols...).
		Suffix("ON CONFLICT(id) DO UPDATE SET " + strings.Join(updates, ", "))
	for _, item := range items {
		query = query.Values(t.codec.rowValues(item)...)
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	if _, err := db.ExecContext(ctx, sqlStr, args...); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "localTable.Upsert").
			Str("table", t.codec.table).
			Int("count", len(items)).
			Msg("failed to upsert local records")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

func (t *localTable[T]) Delete(ctx context.Context, ids ...string) error {
	return t.delete(ctx, t.db, ids...)
}

func (t *localTable[T]) delete(ctx context.Context, db runner, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}

	sqlStr, args, err := t.db.Builder().
		Delete(t.codec.table).
		Where(sq.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	if _, err := db.ExecContext(ctx, sqlStr, args...); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "localTable.Delete").
			Str("table", t.codec.table).
			Strs("ids", ids).
			Msg("failed to delete local records")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

// modifiedAt reads the version stamp of id inside db. found is false when
// the row does not exist.
func (t *localTable[T]) modifiedAt(ctx context.Context, db runner, id string) (stamp versionStamp, err error) {
	sqlStr, args, err := t.db.Builder().
		Select("created_at", "last_modified", "deleted_at").
		From(t.codec.table).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return stamp, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var rec models.Record
	err = db.QueryRowContext(ctx, sqlStr, args...).Scan(&rec.CreatedAt, &rec.LastModified, &rec.DeletedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return stamp, nil
	}
	if err != nil {
		return stamp, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	normalizeTimes(&rec)
	return stampOf(&rec), nil
}

func (t *localTable[T]) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}
	return nil
}
