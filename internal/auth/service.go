package auth

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/sebuszqo/FinanceTracker/internal/user"
)

const google2FAAuthMethod = "google_authenticator"

var (
	ErrUserNotFound           = errors.New("user not found")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrInternalError          = errors.New("internal Server Error")
	ErrInvalidTwoFactorMethod = errors.New("two factor auth method not supported")
	ErrUser2FANotEnabled      = errors.New("two factor auth is not enabled")
	ErrTwoFactorRequired      = errors.New("two factor code is required")
	ErrInvalid2FACode         = errors.New("2fa code is invalid")
	ErrUser2FAAlreadyEnabled  = errors.New("2fa auth already enabled")
)

// TwoFactorAuthenticator is implemented by Authenticator.
type TwoFactorAuthenticator interface {
	GenerateSecret(accountName string) (string, string, error)
	VerifyCode(secret, code string) bool
}

type UserProvider interface {
	GetUserByID(ctx context.Context, userID string) (*user.User, error)
	GetUserByLoginOrEmail(ctx context.Context, loginOrEmail string) (*user.User, error)
}

type LoginResult struct {
	User         *user.User
	SessionID    string
	AccessToken  string
	RefreshToken string
}

type Service interface {
	Login(ctx context.Context, emailOrLogin, password, twoFactorCode string) (*LoginResult, error)
	Logout(sessionID string)
	RefreshAccessToken(ctx context.Context, userID, sessionID string) (string, string, error)
	RegisterTwoFactor(ctx context.Context, userID, method string) (string, error)
	VerifyTwoFactorCode(ctx context.Context, userID, method, code string) error
	JWTAccessTokenMiddleware() func(http.Handler) http.Handler
	JWTRefreshTokenMiddleware() func(http.Handler) http.Handler
}

type service struct {
	repo           TwoFactorRepository
	userService    UserProvider
	sessionManager SessionManagerInterface
	jwtManager     JWTManagerInterface
	authenticator  TwoFactorAuthenticator
	logger         *zap.Logger
}

func NewAuthService(
	repo TwoFactorRepository,
	userService UserProvider,
	sessionManager SessionManagerInterface,
	jwtManager JWTManagerInterface,
	authenticator TwoFactorAuthenticator,
	logger *zap.Logger,
) Service {
	return &service{
		repo:           repo,
		userService:    userService,
		sessionManager: sessionManager,
		jwtManager:     jwtManager,
		authenticator:  authenticator,
		logger:         logger,
	}
}

func (s *service) lookupUser(ctx context.Context, userID string) (*user.User, error) {
	existingUser, err := s.userService.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("failed to load user", zap.String("user_id", userID), zap.Error(err))
		return nil, ErrInternalError
	}
	return existingUser, nil
}

func (s *service) Login(ctx context.Context, emailOrLogin, password, twoFactorCode string) (*LoginResult, error) {
	existingUser, err := s.userService.GetUserByLoginOrEmail(ctx, emailOrLogin)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("failed to load user for login", zap.Error(err))
		return nil, ErrInternalError
	}

	if !user.PasswordMatches(existingUser.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	if existingUser.TwoFactorEnabled {
		if existingUser.TwoFactorMethod != google2FAAuthMethod {
			return nil, ErrInvalidTwoFactorMethod
		}
		if twoFactorCode == "" {
			return nil, ErrTwoFactorRequired
		}
		secret, err := s.repo.GetTwoFactorSecret(ctx, existingUser.ID)
		if err != nil {
			s.logger.Error("failed to load two-factor secret", zap.String("user_id", existingUser.ID), zap.Error(err))
			return nil, ErrInternalError
		}
		if !s.authenticator.VerifyCode(secret, twoFactorCode) {
			return nil, ErrInvalid2FACode
		}
	}

	session, err := s.sessionManager.CreateSession(existingUser.ID, defaultSessionDuration)
	if err != nil {
		return nil, ErrInternalError
	}

	accessToken, refreshToken, err := s.issueTokens(existingUser.ID, session.ID, defaultJWTRefreshDuration)
	if err != nil {
		s.sessionManager.DeleteSession(session.ID)
		return nil, err
	}

	s.logger.Info("user logged in", zap.String("user_id", existingUser.ID), zap.String("session_id", session.ID))
	return &LoginResult{
		User:         existingUser,
		SessionID:    session.ID,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (s *service) issueTokens(userID, sessionID string, refreshDuration time.Duration) (string, string, error) {
	accessToken, err := s.jwtManager.GenerateAccessJWT(userID, sessionID, defaultJWTDuration)
	if err != nil {
		s.logger.Error("failed to sign access token", zap.Error(err))
		return "", "", ErrInternalError
	}
	refreshToken, err := s.jwtManager.GenerateRefreshJWT(userID, sessionID, refreshDuration)
	if err != nil {
		s.logger.Error("failed to sign refresh token", zap.Error(err))
		return "", "", ErrInternalError
	}
	return accessToken, refreshToken, nil
}

// Logout ends the session; every token carrying its id stops validating.
func (s *service) Logout(sessionID string) {
	s.sessionManager.DeleteSession(sessionID)
	s.logger.Info("session ended", zap.String("session_id", sessionID))
}

// RefreshAccessToken requests are already checked in refresh token middleware.
func (s *service) RefreshAccessToken(ctx context.Context, userID, sessionID string) (string, string, error) {
	if _, err := s.lookupUser(ctx, userID); err != nil {
		return "", "", err
	}

	session, err := s.sessionManager.VerifySession(sessionID)
	if err != nil {
		return "", "", err
	}

	return s.issueTokens(userID, sessionID, time.Until(session.ExpiresAt))
}

func (s *service) RegisterTwoFactor(ctx context.Context, userID, method string) (string, error) {
	existingUser, err := s.lookupUser(ctx, userID)
	if err != nil {
		return "", err
	}
	if existingUser.TwoFactorEnabled {
		return "", ErrUser2FAAlreadyEnabled
	}
	if method != google2FAAuthMethod {
		return "", ErrInvalidTwoFactorMethod
	}

	otpURI, secret, err := s.authenticator.GenerateSecret(existingUser.Email)
	if err != nil {
		s.logger.Error("failed to generate totp secret", zap.Error(err))
		return "", ErrInternalError
	}
	if err := s.repo.SaveTwoFactorSecret(ctx, userID, secret); err != nil {
		s.logger.Error("failed to store totp secret", zap.String("user_id", userID), zap.Error(err))
		return "", ErrInternalError
	}
	return otpURI, nil
}

func (s *service) VerifyTwoFactorCode(ctx context.Context, userID, method, code string) error {
	existingUser, err := s.lookupUser(ctx, userID)
	if err != nil {
		return err
	}
	if existingUser.TwoFactorEnabled {
		return ErrUser2FAAlreadyEnabled
	}
	if method != google2FAAuthMethod {
		return ErrInvalidTwoFactorMethod
	}

	secret, err := s.repo.GetTwoFactorSecret(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrUser2FANotEnabled) {
			return ErrUser2FANotEnabled
		}
		return ErrInternalError
	}
	if !s.authenticator.VerifyCode(secret, code) {
		return ErrInvalid2FACode
	}

	if err := s.repo.EnableTwoFactor(ctx, userID, method); err != nil {
		s.logger.Error("failed to enable two-factor", zap.String("user_id", userID), zap.Error(err))
		return ErrInternalError
	}
	return nil
}
