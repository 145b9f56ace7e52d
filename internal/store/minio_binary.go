package store

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/MKhiriev/go-note-sync/internal/config"
)

// minioBinaryStorage keeps note binaries as objects <owner>/<note> in one
// bucket of an S3-compatible store.
type minioBinaryStorage struct {
	client *minio.Client
	bucket string
}

// NewMinioBinaryStorage connects to cfg.Endpoint and makes sure the bucket
// exists.
func NewMinioBinaryStorage(ctx context.Context, cfg config.Minio) (BinaryStorage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("error creating minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("error checking bucket %s: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("error creating bucket %s: %w", cfg.Bucket, err)
		}
	}

	return &minioBinaryStorage{client: client, bucket: cfg.Bucket}, nil
}

func objectKey(ownerID int64, noteID string) string {
	return strconv.FormatInt(ownerID, 10) + "/" + noteID
}

func (s *minioBinaryStorage) PutBinary(ctx context.Context, ownerID int64, noteID string, contentType string, data []byte) error {
	_, err := s.client.PutObject(ctx, s.bucket, objectKey(ownerID, noteID),
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType},
	)
	if err != nil {
		return fmt.Errorf("error uploading binary: %w", err)
	}
	return nil
}

func (s *minioBinaryStorage) GetBinary(ctx context.Context, ownerID int64, noteID string) ([]byte, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, objectKey(ownerID, noteID), minio.GetObjectOptions{})
	if err != nil {
		return nil, translateMinioError(err)
	}
	defer func() {
		_ = obj.Close()
	}()

	// GetObject is lazy; missing objects only surface on Stat or Read
	if _, err := obj.Stat(); err != nil {
		return nil, translateMinioError(err)
	}

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, translateMinioError(err)
	}
	return data, nil
}

func (s *minioBinaryStorage) DeleteBinary(ctx context.Context, ownerID int64, noteID string) error {
	err := s.client.RemoveObject(ctx, s.bucket, objectKey(ownerID, noteID), minio.RemoveObjectOptions{})
	if err != nil {
		return translateMinioError(err)
	}
	return nil
}

func translateMinioError(err error) error {
	switch minio.ToErrorResponse(err).Code {
	case "NoSuchKey", "NoSuchBucket":
		return ErrBinaryNotFound
	}
	return fmt.Errorf("object storage error: %w", err)
}
