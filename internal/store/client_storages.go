package store

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-note-sync/internal/config"
	"github.com/MKhiriev/go-note-sync/internal/logger"
	"github.com/MKhiriev/go-note-sync/models"
)

// LocalStore is the client's SQLite database: the folder and note tables,
// sync metadata and the login session.
type LocalStore struct {
	db      *DB
	path    string
	folders *localTable[*models.Folder]
	notes   *localTable[*models.Note]
}

// NewLocalStore opens (creating if needed) and migrates the SQLite database
// at cfg.DB.DSN.
func NewLocalStore(ctx context.Context, cfg config.ClientStorage, log *logger.Logger) (*LocalStore, error) {
	log.Info().Str("path", cfg.DB.DSN).Msg("opening local store...")

	db, err := NewConnectSQLite(ctx, cfg.DB, log)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err := db.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return newLocalStore(db, cfg.DB.DSN), nil
}

func newLocalStore(db *DB, path string) *LocalStore {
	return &LocalStore{
		db:      db,
		path:    path,
		folders: newLocalTable(db, folderCodec),
		notes:   newLocalTable(db, noteCodec(true)),
	}
}

func (s *LocalStore) Folders() LocalTable[*models.Folder] { return s.folders }

func (s *LocalStore) Notes() LocalTable[*models.Note] { return s.notes }

// Begin opens a working copy on top of the store.
func (s *LocalStore) Begin() *WorkingCopy {
	return newWorkingCopy(s.db, s.folders, s.notes)
}

// Path is the database file.
func (s *LocalStore) Path() string { return s.path }

func (s *LocalStore) Close() error { return s.db.Close() }

// PendingChanges summarizes the unsynced local edits. Sync bookkeeping
// (sync_meta, sessions) is not part of it.
type PendingChanges struct {
	Count  int64
	Latest string
}

// Empty reports whether nothing is waiting to be pushed.
func (p PendingChanges) Empty() bool { return p.Count == 0 }

// PendingChanges returns the number of pending folders and notes and the
// newest last_modified among them. Two equal values mean no user edit
// happened in between.
func (s *LocalStore) PendingChanges(ctx context.Context) (PendingChanges, error) {
	var total PendingChanges
	for _, table := range []string{foldersTable, notesTable} {
		query, args, err := s.db.Builder().
			Select("count(*)", "coalesce(max(last_modified), '')").
			From(table).
			Where(sq.Eq{"sync_status": string(models.StatusPending)}).
			ToSql()
		if err != nil {
			return PendingChanges{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}

		var (
			count  int64
			latest sql.NullString
		)
		if err = s.db.QueryRowContext(ctx, query, args...).Scan(&count, &latest); err != nil {
			return PendingChanges{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		total.Count += count
		if latest.String > total.Latest {
			total.Latest = latest.String
		}
	}
	return total, nil
}
