package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/gabriel-vasile/mimetype"

	"github.com/MKhiriev/go-note-sync/internal/logger"
	"github.com/MKhiriev/go-note-sync/internal/store"
	"github.com/MKhiriev/go-note-sync/models"
)

// MaxBinarySize is the largest binary content accepted for one note.
const MaxBinarySize = 32 << 20

type binaryService struct {
	notes    store.RecordRepository[*models.Note]
	binaries store.BinaryStorage

	logger *logger.Logger
}

func NewBinaryService(notes store.RecordRepository[*models.Note], binaries store.BinaryStorage, logger *logger.Logger) BinaryService {
	return &binaryService{notes: notes, binaries: binaries, logger: logger}
}

func (s *binaryService) Upload(ctx context.Context, ownerID int64, noteID string, data []byte) (string, error) {
	if err := validateScope(ownerID, noteID); err != nil {
		return "", err
	}
	if len(data) > MaxBinarySize {
		return "", fmt.Errorf("%w: %d bytes", ErrBinaryTooLarge, len(data))
	}

	note, err := s.liveNote(ctx, ownerID, noteID)
	if err != nil {
		return "", err
	}

	contentType := mimetype.Detect(data).String()
	if err := s.binaries.PutBinary(ctx, ownerID, noteID, contentType, data); err != nil {
		return "", fmt.Errorf("store binary of note %s: %w", noteID, err)
	}

	if !note.HasBinary || note.BinaryType != contentType {
		note.HasBinary = true
		note.BinaryType = contentType
		if _, err := s.notes.Update(ctx, note); err != nil {
			return "", fmt.Errorf("mark note %s as having binary: %w", noteID, err)
		}
	}

	logger.FromContext(ctx).Info().
		Str("func", "binaryService.Upload").
		Str("id", noteID).
		Str("content_type", contentType).
		Int("size", len(data)).
		Msg("binary stored")
	return contentType, nil
}

func (s *binaryService) Download(ctx context.Context, ownerID int64, noteID string) ([]byte, string, error) {
	if err := validateScope(ownerID, noteID); err != nil {
		return nil, "", err
	}

	note, err := s.liveNote(ctx, ownerID, noteID)
	if err != nil {
		return nil, "", err
	}
	if !note.HasBinary {
		return nil, "", ErrNoteHasNoBinary
	}

	data, err := s.binaries.GetBinary(ctx, ownerID, noteID)
	if errors.Is(err, store.ErrBinaryNotFound) {
		return nil, "", ErrNoteHasNoBinary
	}
	if err != nil {
		return nil, "", fmt.Errorf("read binary of note %s: %w", noteID, err)
	}
	return data, note.BinaryType, nil
}

func (s *binaryService) liveNote(ctx context.Context, ownerID int64, noteID string) (*models.Note, error) {
	note, err := s.notes.Get(ctx, ownerID, noteID)
	if err != nil {
		return nil, fmt.Errorf("get note %s: %w", noteID, err)
	}
	if note.IsDeleted() {
		return nil, fmt.Errorf("note %s: %w", noteID, store.ErrRecordNotFound)
	}
	return note, nil
}
