package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/MKhiriev/go-note-sync/internal/config"
	"github.com/MKhiriev/go-note-sync/internal/logger"
	"github.com/MKhiriev/go-note-sync/internal/store"
	"github.com/MKhiriev/go-note-sync/internal/utils"
	"github.com/MKhiriev/go-note-sync/models"
)

// maxPasswordBytes is the bcrypt input limit.
const maxPasswordBytes = 72

// authService keeps bcrypt hashes of passwords and issues HS256 tokens.
type authService struct {
	users store.UserRepository

	signKey  string
	issuer   string
	tokenTTL time.Duration

	bcryptCost int

	// dummyHash is compared against when the login is unknown so both
	// failure paths cost one bcrypt comparison.
	dummyHash     []byte
	dummyHashOnce sync.Once

	logger *logger.Logger
}

func NewAuthService(userRepository store.UserRepository, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		users:      userRepository,
		signKey:    cfg.TokenSignKey,
		issuer:     cfg.TokenIssuer,
		tokenTTL:   cfg.TokenDuration,
		bcryptCost: bcrypt.DefaultCost,
		logger:     logger,
	}
}

// RegisterUser stores a new account. A taken login surfaces as
// store.ErrLoginAlreadyExists.
func (a *authService) RegisterUser(ctx context.Context, user models.User) (models.User, error) {
	user, err := checkCredentials(user)
	if err != nil {
		logger.FromContext(ctx).Warn().Err(err).Str("login", user.Login).Msg("registration rejected")
		return models.User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(user.Password), a.bcryptCost)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	user.PasswordHash, user.Password = string(hash), ""

	created, err := a.users.CreateUser(ctx, user)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("login", user.Login).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("create user %q: %w", user.Login, err)
	}

	return created, nil
}

// Login checks the password of an existing account. An unknown login wraps
// store.ErrUserNotFound, a wrong password is ErrWrongPassword.
func (a *authService) Login(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	user, err := checkCredentials(user)
	if err != nil {
		log.Warn().Err(err).Str("login", user.Login).Msg("login rejected")
		return models.User{}, err
	}

	found, err := a.users.FindUserByLogin(ctx, user.Login)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			_ = bcrypt.CompareHashAndPassword(a.fakeHash(), []byte(user.Password))
		}
		log.Err(err).Str("login", user.Login).Msg("user search by login failed")
		return models.User{}, fmt.Errorf("find user %q: %w", user.Login, err)
	}

	switch err = bcrypt.CompareHashAndPassword([]byte(found.PasswordHash), []byte(user.Password)); {
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		log.Warn().Int64("user_id", found.UserID).Msg("wrong password")
		return models.User{}, ErrWrongPassword
	case err != nil:
		return models.User{}, fmt.Errorf("compare password hash: %w", err)
	}

	return found, nil
}

// CreateToken issues a signed JWT for user.
func (a *authService) CreateToken(_ context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.issuer, user.UserID, a.tokenTTL, a.signKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}
	return token, nil
}

// ParseToken validates tokenString. Every failure is reported as
// ErrTokenIsExpiredOrInvalid.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.signKey, a.issuer)
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Msg("token rejected")
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}
	return token, nil
}

func (a *authService) fakeHash() []byte {
	a.dummyHashOnce.Do(func() {
		a.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("not-a-real-password"), a.bcryptCost)
	})
	return a.dummyHash
}

// checkCredentials trims the login and enforces the bcrypt password limit.
func checkCredentials(user models.User) (models.User, error) {
	user.Login = strings.TrimSpace(user.Login)

	switch {
	case user.Login == "" || user.Password == "":
		return user, ErrInvalidDataProvided
	case len(user.Password) > maxPasswordBytes:
		return user, fmt.Errorf("%w: password longer than %d bytes", ErrInvalidDataProvided, maxPasswordBytes)
	}
	return user, nil
}
