package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/sebuszqo/FinanceTracker/internal/authctx"
)

const refreshTokenCookie = "refresh_token"

type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

func (s *service) JWTAccessTokenMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeJSONError(w, http.StatusUnauthorized, "Authorization header is required")
				return
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader {
				writeJSONError(w, http.StatusUnauthorized, "Invalid token format")
				return
			}

			claims, err := s.jwtManager.ValidateAccessToken(tokenString)
			if err != nil {
				writeJSONError(w, http.StatusUnauthorized, "Invalid or expired token")
				return
			}

			s.serveAuthenticated(w, r, next, claims)
		})
	}
}

func (s *service) JWTRefreshTokenMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(refreshTokenCookie)
			if err != nil {
				writeJSONError(w, http.StatusUnauthorized, "Refresh token is required")
				return
			}

			claims, err := s.jwtManager.ValidateRefreshToken(cookie.Value)
			if err != nil {
				if errors.Is(err, ErrExpiredJWTToken) {
					writeJSONError(w, http.StatusUnauthorized, ErrExpiredJWTToken.Error())
					return
				}
				writeJSONError(w, http.StatusUnauthorized, ErrInvalidJWTRefreshToken.Error())
				return
			}

			s.serveAuthenticated(w, r, next, claims)
		})
	}
}

// serveAuthenticated requires a live session owned by the token's user and an existing user row.
func (s *service) serveAuthenticated(w http.ResponseWriter, r *http.Request, next http.Handler, claims *TokenClaims) {
	session, err := s.sessionManager.VerifySession(claims.SessionID)
	if err != nil || session.UserID != claims.UserID {
		writeJSONError(w, http.StatusUnauthorized, "Session is no longer active")
		return
	}

	if _, err := s.lookupUser(r.Context(), claims.UserID); err != nil {
		if errors.Is(err, ErrUserNotFound) {
			writeJSONError(w, http.StatusUnauthorized, ErrUserNotFound.Error())
			return
		}
		writeJSONError(w, http.StatusInternalServerError, ErrInternalError.Error())
		return
	}

	ctx := authctx.WithUserID(r.Context(), claims.UserID)
	ctx = authctx.WithSessionID(ctx, claims.SessionID)
	next.ServeHTTP(w, r.WithContext(ctx))
}

// writeJSONError writes an error response in JSON format
func writeJSONError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{
		Status:  "error",
		Message: message,
		Code:    statusCode,
	})
}
