package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidJWTToken        = errors.New("JWT token is invalid")
	ErrExpiredJWTToken        = errors.New("JWT token is expired")
	ErrInvalidJWTRefreshToken = errors.New("JWT Refresh token is invalid")
)

const defaultJWTRefreshDuration = defaultSessionDuration
const defaultJWTDuration = 10 * time.Minute

const (
	tokenUseAccess  = "access"
	tokenUseRefresh = "refresh"
)

type JWTManagerInterface interface {
	GenerateAccessJWT(userID, sessionID string, duration time.Duration) (string, error)
	GenerateRefreshJWT(userID, sessionID string, duration time.Duration) (string, error)
	ValidateAccessToken(tokenString string) (*TokenClaims, error)
	ValidateRefreshToken(tokenString string) (*TokenClaims, error)
}

type TokenClaims struct {
	UserID    string `json:"user_id"`
	SessionID string `json:"sid"`
	TokenUse  string `json:"token_use"`
	jwt.RegisteredClaims
}

type JWTManager struct {
	secret []byte
	now    func() time.Time
}

func NewJWTManager(secret string) *JWTManager {
	return &JWTManager{
		secret: []byte(secret),
		now:    time.Now,
	}
}

func (j *JWTManager) generate(userID, sessionID, tokenUse string, duration time.Duration) (string, error) {
	now := j.now()
	claims := &TokenClaims{
		UserID:    userID,
		SessionID: sessionID,
		TokenUse:  tokenUse,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(duration)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.secret)
}

func (j *JWTManager) GenerateAccessJWT(userID, sessionID string, duration time.Duration) (string, error) {
	return j.generate(userID, sessionID, tokenUseAccess, duration)
}

func (j *JWTManager) GenerateRefreshJWT(userID, sessionID string, duration time.Duration) (string, error) {
	return j.generate(userID, sessionID, tokenUseRefresh, duration)
}

func (j *JWTManager) parse(tokenString, tokenUse string) (*TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		return j.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(j.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredJWTToken
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidJWTToken, err)
	}

	claims, ok := token.Claims.(*TokenClaims)
	if !ok || !token.Valid || claims.UserID == "" || claims.SessionID == "" {
		return nil, ErrInvalidJWTToken
	}
	if claims.TokenUse != tokenUse {
		return nil, ErrInvalidJWTToken
	}
	return claims, nil
}

func (j *JWTManager) ValidateAccessToken(tokenString string) (*TokenClaims, error) {
	return j.parse(tokenString, tokenUseAccess)
}

func (j *JWTManager) ValidateRefreshToken(tokenString string) (*TokenClaims, error) {
	claims, err := j.parse(tokenString, tokenUseRefresh)
	if errors.Is(err, ErrInvalidJWTToken) {
		return nil, ErrInvalidJWTRefreshToken
	}
	return claims, err
}
