// services/auth_service.go - login, logout and token resolution
package services

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/AreaFiftyLAN/landev/models"
	"github.com/AreaFiftyLAN/landev/repository"
)

type AuthService struct {
	users  repository.UserRepo
	tokens repository.AuthTokenRepo
	log    *zap.Logger

	tokenTTL time.Duration
	now      func() time.Time
}

func NewAuthService(users repository.UserRepo, tokens repository.AuthTokenRepo, log *zap.Logger, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		users:    users,
		tokens:   tokens,
		log:      log,
		tokenTTL: tokenTTL,
		now:      time.Now,
	}
}

// Login verifies the credentials and mints a fresh opaque token. Locked
// accounts and bad passwords are indistinguishable to the caller.
func (s *AuthService) Login(username, password string) (*models.AuthenticationToken, error) {
	if username == "" || password == "" {
		return nil, models.ErrValidation
	}

	user, err := s.users.GetByUsername(username)
	if err != nil {
		// Same answer as a wrong password, usernames are not probeable.
		return nil, models.ErrInvalidCredentials
	}
	if user.Locked {
		return nil, models.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		return nil, models.ErrInvalidCredentials
	}

	token := &models.AuthenticationToken{
		Token:     uuid.New().String(),
		UserID:    user.ID,
		User:      user,
		Valid:     true,
		ExpiresAt: s.now().Add(s.tokenTTL),
	}
	if err := s.tokens.Create(token); err != nil {
		return nil, err
	}

	s.log.Info("user logged in", zap.String("username", user.Username))
	return token, nil
}

// Logout invalidates the presented token. Unknown tokens report
// ErrTokenNotFound so a replayed logout is visible as such.
func (s *AuthService) Logout(token string) error {
	t, err := s.tokens.GetByToken(token)
	if err != nil {
		return err
	}
	t.Valid = false
	return s.tokens.Save(t)
}

// Resolve maps a token string to its user. ErrTokenNotFound when no such
// token exists, ErrTokenExpired when it exists but is invalidated or past
// its expiry. Resolution never mutates the token.
func (s *AuthService) Resolve(token string) (*models.User, error) {
	t, err := s.tokens.GetByToken(token)
	if err != nil {
		return nil, err
	}
	if !t.Usable(s.now()) {
		return nil, models.ErrTokenExpired
	}
	return t.User, nil
}
