package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-note-sync/internal/config"
	"github.com/MKhiriev/go-note-sync/internal/logger"
	"github.com/MKhiriev/go-note-sync/models"
)

// Storages groups the backend repositories handed to the service layer.
type Storages struct {
	UserRepository UserRepository
	Folders        RecordRepository[*models.Folder]
	Notes          RecordRepository[*models.Note]
	Binaries       BinaryStorage

	db *DB
}

// NewStorages connects to Postgres, applies the migrations and picks the
// binary backend: MinIO when an endpoint is configured, files otherwise.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	log.Info().Msg("creating new storages...")

	db, err := NewConnectPostgres(ctx, cfg.DB, log)
	if err != nil {
		return nil, fmt.Errorf("postgres connection error: %w", err)
	}

	if err := db.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	var binaries BinaryStorage
	if cfg.Minio.Endpoint != "" {
		log.Info().Str("endpoint", cfg.Minio.Endpoint).Str("bucket", cfg.Minio.Bucket).Msg("using object storage for binaries")
		binaries, err = NewMinioBinaryStorage(ctx, cfg.Minio)
	} else {
		log.Info().Str("dir", cfg.Files.BinaryDataDir).Msg("using file storage for binaries")
		binaries, err = NewFileBinaryStorage(cfg.Files.BinaryDataDir)
	}
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Storages{
		UserRepository: NewUserRepository(db, log),
		Folders:        NewFolderRepository(db),
		Notes:          NewNoteRepository(db),
		Binaries:       binaries,
		db:             db,
	}, nil
}

// Ping checks the database connection.
func (s *Storages) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Storages) Close() error {
	return s.db.Close()
}
