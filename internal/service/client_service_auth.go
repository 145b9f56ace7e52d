package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/go-note-sync/internal/adapter"
	"github.com/MKhiriev/go-note-sync/internal/logger"
	"github.com/MKhiriev/go-note-sync/internal/store"
	"github.com/MKhiriev/go-note-sync/models"
)

type clientAuthService struct {
	sessions store.SessionRepository
	adapter  adapter.ServerAdapter
	skew     time.Duration
	now      func() time.Time

	mu      sync.Mutex
	session *models.Session

	logger *logger.Logger
}

// NewClientAuthService keeps the session in sessions and in the adapter.
// Tokens are refreshed skew before they expire.
func NewClientAuthService(sessions store.SessionRepository, server adapter.ServerAdapter, skew time.Duration, log *logger.Logger) ClientAuthService {
	return &clientAuthService{
		sessions: sessions,
		adapter:  server,
		skew:     skew,
		now:      time.Now,
		logger:   log,
	}
}

func (a *clientAuthService) Session(ctx context.Context) (models.Session, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.sessionLocked(ctx)
}

func (a *clientAuthService) sessionLocked(ctx context.Context) (models.Session, error) {
	if a.session != nil {
		return *a.session, nil
	}

	session, err := a.sessions.LoadSession(ctx)
	if errors.Is(err, store.ErrLocalSessionNotFound) {
		return models.Session{}, ErrNotLoggedIn
	}
	if err != nil {
		return models.Session{}, fmt.Errorf("load session: %w", err)
	}

	a.adapter.SetToken(session.Token)
	a.session = &session
	return session, nil
}

func (a *clientAuthService) ValidateAndRefreshTokenIfNeeded(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	session, err := a.sessionLocked(ctx)
	if err != nil {
		return err
	}
	if !session.ExpiresWithin(a.now(), a.skew) {
		return nil
	}

	a.logger.Debug().
		Str("func", "clientAuthService.ValidateAndRefreshTokenIfNeeded").
		Time("expires_at", session.ExpiresAt).
		Msg("refreshing session token")

	token, err := a.adapter.Refresh(ctx)
	if err != nil {
		return authError("refresh token", err)
	}

	return a.storeLocked(ctx, session.Login, token)
}

func (a *clientAuthService) Register(ctx context.Context, user models.User) (models.Session, error) {
	token, err := a.adapter.Register(ctx, user)
	if err != nil {
		return models.Session{}, authError("register", err)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.storeLocked(ctx, user.Login, token); err != nil {
		return models.Session{}, err
	}
	return *a.session, nil
}

func (a *clientAuthService) Login(ctx context.Context, user models.User) (models.Session, error) {
	token, err := a.adapter.Login(ctx, user)
	if err != nil {
		return models.Session{}, authError("login", err)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.storeLocked(ctx, user.Login, token); err != nil {
		return models.Session{}, err
	}
	return *a.session, nil
}

func (a *clientAuthService) Logout(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.session = nil
	a.adapter.SetToken("")
	if err := a.sessions.ClearSession(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (a *clientAuthService) storeLocked(ctx context.Context, login string, token models.Token) error {
	session := models.Session{
		UserID:    token.UserID,
		Login:     login,
		Token:     token.String(),
		ExpiresAt: token.Expiry(),
	}
	if err := a.sessions.SaveSession(ctx, session); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	a.adapter.SetToken(session.Token)
	a.session = &session

	a.logger.Info().
		Str("func", "clientAuthService.storeLocked").
		Int64("user_id", session.UserID).
		Time("expires_at", session.ExpiresAt).
		Msg("session stored")
	return nil
}

// authError marks rejected credentials as ErrAuth. Transport failures are
// returned unchanged so they can be retried.
func authError(op string, err error) error {
	if errors.Is(err, adapter.ErrUnauthorized) ||
		errors.Is(err, adapter.ErrForbidden) ||
		errors.Is(err, adapter.ErrNoToken) {
		return fmt.Errorf("%w: %s: %w", ErrAuth, op, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
