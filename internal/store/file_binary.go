package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"
)

// fileBinaryStorage keeps note binaries as files under dir/<owner>/<note>.bin.
type fileBinaryStorage struct {
	dir string
}

// NewFileBinaryStorage returns a [BinaryStorage] rooted at dir, creating it
// if needed.
func NewFileBinaryStorage(dir string) (BinaryStorage, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("error creating binary data dir: %w", err)
	}
	return &fileBinaryStorage{dir: dir}, nil
}

func (s *fileBinaryStorage) path(ownerID int64, noteID string) (string, error) {
	// the id becomes a file name, so only accept real uuids
	if _, err := uuid.Parse(noteID); err != nil {
		return "", fmt.Errorf("%w: %s", ErrBinaryNotFound, noteID)
	}
	return filepath.Join(s.dir, strconv.FormatInt(ownerID, 10), noteID+".bin"), nil
}

func (s *fileBinaryStorage) PutBinary(ctx context.Context, ownerID int64, noteID string, _ string, data []byte) error {
	path, err := s.path(ownerID, noteID)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("error creating owner dir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), noteID+".*.tmp")
	if err != nil {
		return fmt.Errorf("error creating temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("error writing binary: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("error closing binary: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("error storing binary: %w", err)
	}
	return nil
}

func (s *fileBinaryStorage) GetBinary(ctx context.Context, ownerID int64, noteID string) ([]byte, error) {
	path, err := s.path(ownerID, noteID)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrBinaryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error reading binary: %w", err)
	}
	return data, nil
}

func (s *fileBinaryStorage) DeleteBinary(ctx context.Context, ownerID int64, noteID string) error {
	path, err := s.path(ownerID, noteID)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("error deleting binary: %w", err)
	}
	return nil
}
