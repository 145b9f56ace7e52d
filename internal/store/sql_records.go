// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-note-sync/models"
)

const (
	foldersTable = "folders"
	notesTable   = "notes"
)

// recordColumns are shared by every syncable table, in scan order.
var recordColumns = []string{"id", "user_id", "created_at", "last_modified", "sync_status", "deleted_at"}

// runner is satisfied by both *sql.DB and *sql.Tx.
type runner interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// recordCodec maps one entity type onto its table.
type recordCodec[T models.Syncable[T]] struct {
	table string
	// fields are the entity-specific columns following recordColumns.
	fields []string
	// newItem returns an empty entity to scan into.
	newItem func() T
	// dest returns scan destinations for fields.
	dest func(item T) []any
	// values returns driver values for fields.
	values func(item T) []any
	// parent returns the folder a record belongs to; nil for folders.
	parent func(item T) *string
}

func (c recordCodec[T]) columns() []string {
	cols := make([]string, 0, len(recordColumns)+len(c.fields))
	cols = append(cols, recordColumns...)
	return append(cols, c.fields...)
}

func (c recordCodec[T]) scanDest(item T) []any {
	r := item.Meta()
	return append([]any{&r.ID, &r.OwnerID, &r.CreatedAt, &r.LastModified, &r.SyncStatus, &r.DeletedAt}, c.dest(item)...)
}

func (c recordCodec[T]) rowValues(item T) []any {
	r := item.Meta()
	return append([]any{r.ID, r.OwnerID, models.Timestamp(r.CreatedAt), nullTime(r.LastModified), string(r.SyncStatus), nullTime(r.DeletedAt)}, c.values(item)...)
}

// scanOne scans a single row produced by a query selecting c.columns().
func (c recordCodec[T]) scanOne(row interface{ Scan(dest ...any) error }) (T, error) {
	item := c.newItem()
	if err := row.Scan(c.scanDest(item)...); err != nil {
		var zero T
		return zero, err
	}
	normalizeTimes(item.Meta())
	return item, nil
}

// queryAll runs query and scans every row.
func (c recordCodec[T]) queryAll(ctx context.Context, db runner, query sq.Sqlizer) ([]T, error) {
	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	items := make([]T, 0, 32)
	for rows.Next() {
		item, scanErr := c.scanOne(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return items, nil
}

// setMap returns the column/value pairs of an update of every mutable
// column. id and user_id are never rewritten.
func (c recordCodec[T]) setMap(item T) map[string]any {
	cols := c.columns()
	vals := c.rowValues(item)
	set := make(map[string]any, len(cols)-2)
	for i, col := range cols {
		if col == "id" || col == "user_id" {
			continue
		}
		set[col] = vals[i]
	}
	return set
}

var folderCodec = recordCodec[*models.Folder]{
	table:   foldersTable,
	fields:  []string{"name", "color"},
	newItem: func() *models.Folder { return new(models.Folder) },
	dest: func(f *models.Folder) []any {
		return []any{&f.Name, &f.Color}
	},
	values: func(f *models.Folder) []any {
		return []any{f.Name, f.Color}
	},
	parent: func(*models.Folder) *string { return nil },
}

// noteCodec describes the notes table. The local table keeps binary content
// inline; the backend keeps it in blob storage.
func noteCodec(withBinary bool) recordCodec[*models.Note] {
	fields := []string{"folder_id", "title", "content", "has_binary", "binary_type"}
	if withBinary {
		fields = append(fields, "binary_data")
	}

	return recordCodec[*models.Note]{
		table:   notesTable,
		fields:  fields,
		newItem: func() *models.Note { return new(models.Note) },
		dest: func(n *models.Note) []any {
			dest := []any{&n.FolderID, &n.Title, &n.Content, &n.HasBinary, &n.BinaryType}
			if withBinary {
				dest = append(dest, &n.Binary)
			}
			return dest
		},
		values: func(n *models.Note) []any {
			vals := []any{nullString(n.FolderID), n.Title, n.Content, n.HasBinary, n.BinaryType}
			if withBinary {
				var data any
				if n.Binary != nil {
					data = n.Binary
				}
				vals = append(vals, data)
			}
			return vals
		},
		parent: func(n *models.Note) *string { return n.FolderID },
	}
}

func nullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return models.Timestamp(*t)
}

func nullString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func normalizeTimes(r *models.Record) {
	r.CreatedAt = models.Timestamp(r.CreatedAt)
	if r.LastModified != nil {
		t := models.Timestamp(*r.LastModified)
		r.LastModified = &t
	}
	if r.DeletedAt != nil {
		t := models.Timestamp(*r.DeletedAt)
		r.DeletedAt = &t
	}
}
