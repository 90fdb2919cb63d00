package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/badoux/checkmail"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	maxEmailLength    = 254
	minEmailLength    = 3
	maxLoginLength    = 30
	minLoginLength    = 5
	minPasswordLength = 8
	bcryptCost        = 12
)

var (
	ErrInvalidEmail       = errors.New("email address is not valid")
	ErrEmailLength        = fmt.Errorf("email address is too long or too short, max length: %d, min length: %d", maxEmailLength, minEmailLength)
	ErrLoginLength        = fmt.Errorf("login is too long or too short, max length: %d, min length: %d", maxLoginLength, minLoginLength)
	ErrPasswordTooShort   = fmt.Errorf("password must be at least %d characters long", minPasswordLength)
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrLoginAlreadyExists = errors.New("login already exists")
	ErrInternalError      = errors.New("internal Server Error")
)

type User struct {
	ID               string    `json:"id"`
	Email            string    `json:"email"`
	Login            string    `json:"login"`
	PasswordHash     string    `json:"-"`
	TwoFactorEnabled bool      `json:"two_factor_enabled"`
	TwoFactorMethod  string    `json:"two_factor_method"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type Service interface {
	Register(ctx context.Context, email, login, password string) (*User, error)
	GetUserByID(ctx context.Context, userID string) (*User, error)
	GetUserByLoginOrEmail(ctx context.Context, loginOrEmail string) (*User, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewUserService(repo Repository, logger *zap.Logger) Service {
	return &service{
		repo:   repo,
		logger: logger,
	}
}

func hashPassword(password string) (string, error) {
	hashedPasswordBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	return string(hashedPasswordBytes), err
}

func validateEmailAddress(email string) error {
	if len(email) > maxEmailLength || len(email) < minEmailLength {
		return ErrEmailLength
	}
	if err := checkmail.ValidateFormat(email); err != nil {
		return ErrInvalidEmail
	}
	return nil
}

func (s *service) Register(ctx context.Context, email, login, password string) (*User, error) {
	email = strings.TrimSpace(email)
	if err := validateEmailAddress(email); err != nil {
		return nil, err
	}

	if login == "" {
		login = strings.SplitN(email, "@", 2)[0]
	}
	if len(login) > maxLoginLength || len(login) < minLoginLength {
		return nil, ErrLoginLength
	}

	if len(password) < minPasswordLength {
		return nil, ErrPasswordTooShort
	}

	existingUser, err := s.repo.FindByLoginOrEmail(ctx, login, email)
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		s.logger.Error("failed to check existing user", zap.Error(err))
		return nil, ErrInternalError
	}
	if existingUser != nil {
		if existingUser.Login == login {
			return nil, ErrLoginAlreadyExists
		}
		return nil, ErrEmailAlreadyExists
	}

	passwordHash, err := hashPassword(password)
	if err != nil {
		s.logger.Error("failed to hash password", zap.Error(err))
		return nil, ErrInternalError
	}

	user := &User{
		Email:        email,
		Login:        login,
		PasswordHash: passwordHash,
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		s.logger.Error("failed to create user", zap.String("login", login), zap.Error(err))
		return nil, ErrInternalError
	}

	s.logger.Info("user registered", zap.String("user_id", user.ID))
	return user, nil
}

func (s *service) GetUserByID(ctx context.Context, userID string) (*User, error) {
	return s.repo.GetUserByID(ctx, userID)
}

func (s *service) GetUserByLoginOrEmail(ctx context.Context, loginOrEmail string) (*User, error) {
	return s.repo.GetUserByLoginOrEmail(ctx, loginOrEmail)
}

// PasswordMatches reports whether password hashes to hashedPassword.
func PasswordMatches(hashedPassword, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	return err == nil
}
