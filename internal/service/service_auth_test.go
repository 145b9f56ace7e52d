// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/MKhiriev/go-note-sync/internal/config"
	"github.com/MKhiriev/go-note-sync/internal/logger"
	"github.com/MKhiriev/go-note-sync/internal/mock"
	"github.com/MKhiriev/go-note-sync/internal/store"
	"github.com/MKhiriev/go-note-sync/models"
)

var testAppConfig = config.App{
	TokenSignKey:  "test-sign-key",
	TokenIssuer:   "note-server-test",
	TokenDuration: time.Hour,
}

func newTestAuthService(t *testing.T) (*authService, *mock.MockUserRepository) {
	t.Helper()
	repo := mock.NewMockUserRepository(gomock.NewController(t))
	svc := NewAuthService(repo, testAppConfig, logger.Nop()).(*authService)
	svc.bcryptCost = bcrypt.MinCost
	return svc, repo
}

// ─────────────────────────────────────────────
// RegisterUser
// ─────────────────────────────────────────────

func TestAuthService_RegisterUser_HashesPassword(t *testing.T) {
	svc, repo := newTestAuthService(t)
	ctx := context.Background()

	repo.EXPECT().CreateUser(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, u models.User) (models.User, error) {
		assert.Empty(t, u.Password)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("s3cret")))
		u.UserID = 42
		return u, nil
	})

	user, err := svc.RegisterUser(ctx, models.User{Login: "alice", Password: "s3cret"})
	require.NoError(t, err)
	assert.Equal(t, int64(42), user.UserID)
}

func TestAuthService_RegisterUser_Invalid(t *testing.T) {
	svc, _ := newTestAuthService(t)

	for _, u := range []models.User{{Login: "alice"}, {Password: "pw"}, {}} {
		_, err := svc.RegisterUser(context.Background(), u)
		assert.ErrorIs(t, err, ErrInvalidDataProvided)
	}
}

func TestAuthService_RegisterUser_LoginTaken(t *testing.T) {
	svc, repo := newTestAuthService(t)

	repo.EXPECT().CreateUser(gomock.Any(), gomock.Any()).Return(models.User{}, store.ErrLoginAlreadyExists)

	_, err := svc.RegisterUser(context.Background(), models.User{Login: "alice", Password: "pw"})
	assert.ErrorIs(t, err, store.ErrLoginAlreadyExists)
}

// ─────────────────────────────────────────────
// Login
// ─────────────────────────────────────────────

func TestAuthService_Login(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("right"), bcrypt.MinCost)
	require.NoError(t, err)
	stored := models.User{UserID: 9, Login: "alice", PasswordHash: string(hash)}

	tests := []struct {
		name     string
		password string
		findErr  error
		wantErr  error
	}{
		{name: "correct password", password: "right"},
		{name: "wrong password", password: "wrong", wantErr: ErrWrongPassword},
		{name: "unknown user", password: "right", findErr: store.ErrUserNotFound, wantErr: store.ErrUserNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newTestAuthService(t)
			if tt.findErr != nil {
				repo.EXPECT().FindUserByLogin(gomock.Any(), "alice").Return(models.User{}, tt.findErr)
			} else {
				repo.EXPECT().FindUserByLogin(gomock.Any(), "alice").Return(stored, nil)
			}

			user, err := svc.Login(context.Background(), models.User{Login: "alice", Password: tt.password})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, int64(9), user.UserID)
		})
	}
}

func TestAuthService_Login_EmptyCredentials(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, err := svc.Login(context.Background(), models.User{Login: "alice"})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)

	// пробелы вокруг логина не считаются логином
	_, err = svc.Login(context.Background(), models.User{Login: "   ", Password: "pw"})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestAuthService_Login_TrimsLogin(t *testing.T) {
	svc, repo := newTestAuthService(t)
	hash, err := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.MinCost)
	require.NoError(t, err)

	repo.EXPECT().FindUserByLogin(gomock.Any(), "alice").Return(models.User{UserID: 3, Login: "alice", PasswordHash: string(hash)}, nil)

	user, err := svc.Login(context.Background(), models.User{Login: " alice\t", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), user.UserID)
}

func TestCheckCredentials_PasswordLimit(t *testing.T) {
	_, err := checkCredentials(models.User{Login: "alice", Password: strings.Repeat("x", maxPasswordBytes)})
	assert.NoError(t, err)

	_, err = checkCredentials(models.User{Login: "alice", Password: strings.Repeat("x", maxPasswordBytes+1)})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

// ─────────────────────────────────────────────
// Tokens
// ─────────────────────────────────────────────

func TestAuthService_TokenRoundTrip(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	token, err := svc.CreateToken(ctx, models.User{UserID: 42})
	require.NoError(t, err)
	require.NotEmpty(t, token.SignedString)
	assert.WithinDuration(t, time.Now().Add(time.Hour), token.Expiry(), time.Minute)

	parsed, err := svc.ParseToken(ctx, token.SignedString)
	require.NoError(t, err)

	assert.Equal(t, int64(42), parsed.UserID)
}

func TestAuthService_ParseToken_Rejects(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	other := NewAuthService(nil, config.App{TokenSignKey: "other-key", TokenIssuer: testAppConfig.TokenIssuer, TokenDuration: time.Hour}, logger.Nop())
	foreign, err := other.CreateToken(ctx, models.User{UserID: 1})
	require.NoError(t, err)

	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    testAppConfig.TokenIssuer,
		Subject:   "1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	}).SignedString([]byte(testAppConfig.TokenSignKey))
	require.NoError(t, err)

	for name, raw := range map[string]string{
		"garbage":     "not-a-jwt",
		"foreign key": foreign.SignedString,
		"expired":     expired,
	} {
		_, err := svc.ParseToken(ctx, raw)
		assert.True(t, errors.Is(err, ErrTokenIsExpiredOrInvalid), name)
	}
}
