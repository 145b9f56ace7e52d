package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-note-sync/models"
)

// Keys kept in the sync_meta table.
const (
	MetaLastSyncAt     = "last_sync_at"
	MetaLastSyncStatus = "last_sync_status"
	MetaSchedulerStats = "scheduler_stats"
)

func (s *LocalStore) GetMeta(ctx context.Context, key string) (string, bool, error) {
	query, args, err := s.db.Builder().
		Select("value").
		From("sync_meta").
		Where(sq.Eq{"key": key}).
		ToSql()
	if err != nil {
		return "", false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var value string
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	return value, true, nil
}

func (s *LocalStore) SetMeta(ctx context.Context, key, value string) error {
	query, args, err := s.db.Builder().
		Insert("sync_meta").
		Columns("key", "value").
		Values(key, value).
		Suffix("ON CONFLICT(key) DO UPDATE SET value = excluded.value").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	err = s.db.retry(ctx, func(ctx context.Context) error {
		_, err := s.db.ExecContext(ctx, query, args...)
		return err
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

// LastSync returns the time of the last successful sync, if any.
func (s *LocalStore) LastSync(ctx context.Context) (time.Time, bool, error) {
	raw, ok, err := s.GetMeta(ctx, MetaLastSyncAt)
	if err != nil || !ok {
		return time.Time{}, false, err
	}
	at, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("malformed %s: %w", MetaLastSyncAt, err)
	}
	return at, true, nil
}

func (s *LocalStore) SaveSession(ctx context.Context, session models.Session) error {
	var expires any
	if !session.ExpiresAt.IsZero() {
		expires = session.ExpiresAt.UTC()
	}

	query, args, err := s.db.Builder().
		Insert("sessions").
		Columns("id", "user_id", "login", "token", "expires_at").
		Values(1, session.UserID, session.Login, session.Token, expires).
		Suffix("ON CONFLICT(id) DO UPDATE SET user_id = excluded.user_id, login = excluded.login, " +
			"token = excluded.token, expires_at = excluded.expires_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

func (s *LocalStore) LoadSession(ctx context.Context) (models.Session, error) {
	query, args, err := s.db.Builder().
		Select("user_id", "login", "token", "expires_at").
		From("sessions").
		Where(sq.Eq{"id": 1}).
		ToSql()
	if err != nil {
		return models.Session{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var (
		session models.Session
		expires sql.NullTime
	)
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&session.UserID, &session.Login, &session.Token, &expires)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Session{}, ErrLocalSessionNotFound
	}
	if err != nil {
		return models.Session{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	if expires.Valid {
		session.ExpiresAt = expires.Time.UTC()
	}
	return session, nil
}

func (s *LocalStore) ClearSession(ctx context.Context) error {
	query, args, err := s.db.Builder().Delete("sessions").ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}
