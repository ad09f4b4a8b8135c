// services/user_service.go - account lifecycle
package services

import (
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/AreaFiftyLAN/landev/models"
	"github.com/AreaFiftyLAN/landev/repository"
)

type UserInput struct {
	Username string
	Email    string
	Password string
}

type ProfileInput struct {
	FirstName   string
	LastName    string
	DisplayName string
	Birthday    *time.Time
	Gender      models.Gender
	Address     string
	Zipcode     string
	City        string
	PhoneNumber string
	Notes       string
}

type UserService struct {
	users repository.UserRepo
	mail  Mailer
	log   *zap.Logger
}

func NewUserService(users repository.UserRepo, mail Mailer, log *zap.Logger) *UserService {
	return &UserService{users: users, mail: mail, log: log}
}

func (s *UserService) validate(input UserInput) error {
	if input.Username == "" || input.Password == "" {
		return models.ErrValidation
	}
	if len(input.Password) < 6 {
		return models.ErrValidation
	}
	if !strings.Contains(input.Email, "@") {
		return models.ErrValidation
	}
	return nil
}

// Create registers a new account, with an optional initial profile.
// Validation happens before any persistence attempt; uniqueness races
// still surface as a conflict from the repository.
func (s *UserService) Create(input UserInput, profile *ProfileInput) (*models.User, error) {
	if err := s.validate(input); err != nil {
		return nil, err
	}

	if _, err := s.users.GetByUsername(input.Username); err == nil {
		return nil, models.ErrDuplicateUser
	}
	if _, err := s.users.GetByEmail(input.Email); err == nil {
		return nil, models.ErrDuplicateUser
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:       input.Username,
		Email:          input.Email,
		HashedPassword: string(hashed),
	}
	if profile != nil {
		user.Profile.SetAllFields(profile.FirstName, profile.LastName, profile.DisplayName,
			profile.Birthday, profile.Gender, profile.Address, profile.Zipcode, profile.City,
			profile.PhoneNumber, profile.Notes)
	}
	if err := s.users.Create(user); err != nil {
		return nil, err
	}

	if err := s.mail.SendWelcome(user.Email, user.Username); err != nil {
		s.log.Warn("welcome mail not queued", zap.String("recipient", user.Email), zap.Error(err))
	}

	return user, nil
}

func (s *UserService) Get(principal *models.User, userID uint) (*models.User, error) {
	if !CanAccessUser(principal, userID) {
		return nil, models.ErrForbidden
	}
	return s.users.GetByID(userID)
}

func (s *UserService) GetAll(principal *models.User) ([]models.User, error) {
	if !IsAdmin(principal) {
		return nil, models.ErrForbidden
	}
	return s.users.GetAll()
}

// Replace swaps username, email and password for the given user. All
// references to the user (team memberships, orders) stay intact.
func (s *UserService) Replace(principal *models.User, userID uint, input UserInput) (*models.User, error) {
	if !CanAccessUser(principal, userID) {
		return nil, models.ErrForbidden
	}
	if err := s.validate(input); err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(userID)
	if err != nil {
		return nil, err
	}

	if other, err := s.users.GetByUsername(input.Username); err == nil && other.ID != userID {
		return nil, models.ErrDuplicateUser
	}
	if other, err := s.users.GetByEmail(input.Email); err == nil && other.ID != userID {
		return nil, models.ErrDuplicateUser
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user.Username = input.Username
	user.Email = input.Email
	user.HashedPassword = string(hashed)
	if err := s.users.Save(user); err != nil {
		return nil, err
	}
	return user, nil
}

// ReplaceProfile replaces every profile field at once.
func (s *UserService) ReplaceProfile(principal *models.User, userID uint, input ProfileInput) (*models.User, error) {
	if !CanAccessUser(principal, userID) {
		return nil, models.ErrForbidden
	}

	user, err := s.users.GetByID(userID)
	if err != nil {
		return nil, err
	}

	user.Profile.SetAllFields(input.FirstName, input.LastName, input.DisplayName, input.Birthday,
		input.Gender, input.Address, input.Zipcode, input.City, input.PhoneNumber, input.Notes)
	if err := s.users.Save(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Lock disables an account. Users are never hard-deleted, a locked user
// simply cannot log in anymore while teams and orders keep their
// references.
func (s *UserService) Lock(principal *models.User, userID uint) error {
	if !IsAdmin(principal) {
		return models.ErrForbidden
	}
	user, err := s.users.GetByID(userID)
	if err != nil {
		return err
	}
	user.Locked = true
	if err := s.users.Save(user); err != nil {
		return err
	}
	s.log.Info("user disabled", zap.Uint("user_id", userID))
	return nil
}

// UsernameAvailable reports whether no account uses the username,
// case-insensitively.
func (s *UserService) UsernameAvailable(username string) (bool, error) {
	_, err := s.users.GetByUsername(username)
	if err == nil {
		return false, nil
	}
	if errors.Is(err, models.ErrUserNotFound) {
		return true, nil
	}
	return false, err
}

func (s *UserService) EmailAvailable(email string) (bool, error) {
	_, err := s.users.GetByEmail(email)
	if err == nil {
		return false, nil
	}
	if errors.Is(err, models.ErrUserNotFound) {
		return true, nil
	}
	return false, err
}
