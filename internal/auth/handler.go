package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/sebuszqo/FinanceTracker/internal/authctx"
	"github.com/sebuszqo/FinanceTracker/internal/validation"
)

const refreshTokenPath = "/v1/identity/refresh"

type Handler struct {
	authService  Service
	validator    *validation.Validator
	cookieSecure bool
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string)
}

func NewHandler(
	authService Service,
	validator *validation.Validator,
	cookieSecure bool,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string),
) *Handler {
	return &Handler{
		authService:  authService,
		validator:    validator,
		cookieSecure: cookieSecure,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, req interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	if fieldErrors := h.validator.Validate(req); fieldErrors != nil {
		messages := make([]string, len(fieldErrors))
		for i, fe := range fieldErrors {
			messages[i] = fe.String()
		}
		h.respondError(w, http.StatusBadRequest, "Validation errors occurred", messages)
		return false
	}
	return true
}

func (h *Handler) setRefreshCookie(w http.ResponseWriter, value string, expires time.Time, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     refreshTokenCookie,
		Value:    value,
		Path:     refreshTokenPath,
		Expires:  expires,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteStrictMode,
	})
}

type loginRequest struct {
	EmailOrLogin  string `json:"email_or_login" validate:"required"`
	Password      string `json:"password" validate:"required"`
	TwoFactorCode string `json:"two_factor_code" validate:"omitempty,len=6,numeric"`
}

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !h.decode(w, r, &req) {
		return
	}

	result, err := h.authService.Login(r.Context(), req.EmailOrLogin, req.Password, req.TwoFactorCode)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			h.respondError(w, http.StatusUnauthorized, "Invalid credentials")
		case errors.Is(err, ErrTwoFactorRequired):
			h.respondError(w, http.StatusUnauthorized, "Two-factor authentication code required")
		case errors.Is(err, ErrInvalid2FACode):
			h.respondError(w, http.StatusUnauthorized, "Invalid 2fa code")
		case errors.Is(err, ErrInvalidTwoFactorMethod):
			h.respondError(w, http.StatusInternalServerError, "Invalid two-factor method")
		default:
			h.respondError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	h.setRefreshCookie(w, result.RefreshToken, time.Now().Add(defaultJWTRefreshDuration), int(defaultJWTRefreshDuration.Seconds()))
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data": map[string]string{
			"access_token": result.AccessToken,
		},
	})
}

func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := authctx.SessionID(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	h.authService.Logout(sessionID)
	h.setRefreshCookie(w, "", time.Unix(0, 0), -1)

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Logout successful",
	})
}

func (h *Handler) RefreshAccessToken(w http.ResponseWriter, r *http.Request) {
	userID, okUser := authctx.UserID(r.Context())
	sessionID, okSession := authctx.SessionID(r.Context())
	if !okUser || !okSession {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	accessToken, refreshToken, err := h.authService.RefreshAccessToken(r.Context(), userID, sessionID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) || errors.Is(err, ErrSessionNotFound) || errors.Is(err, ErrSessionExpired) {
			h.respondError(w, http.StatusUnauthorized, err.Error())
			return
		}
		h.respondError(w, http.StatusInternalServerError, "Could not refresh access token")
		return
	}

	h.setRefreshCookie(w, refreshToken, time.Now().Add(defaultJWTRefreshDuration), int(defaultJWTRefreshDuration.Seconds()))
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data": map[string]string{
			"access_token": accessToken,
		},
	})
}

type registerTwoFactorRequest struct {
	Method string `json:"method" validate:"required"`
}

func (h *Handler) HandleRegisterTwoFactor(w http.ResponseWriter, r *http.Request) {
	userID, ok := authctx.UserID(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	var req registerTwoFactorRequest
	if !h.decode(w, r, &req) {
		return
	}

	otpURI, err := h.authService.RegisterTwoFactor(r.Context(), userID, req.Method)
	if err != nil {
		if errors.Is(err, ErrInvalidTwoFactorMethod) || errors.Is(err, ErrUser2FAAlreadyEnabled) {
			h.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.respondError(w, http.StatusInternalServerError, "Could not register two-factor authentication")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Two-factor authentication initiated. Please verify to enable.",
		"data": map[string]string{
			"otp_uri": otpURI,
		},
	})
}

type verifyTwoFactorRequest struct {
	Method string `json:"method" validate:"required"`
	Code   string `json:"code" validate:"required,len=6,numeric"`
}

func (h *Handler) HandleVerifyTwoFactorCode(w http.ResponseWriter, r *http.Request) {
	userID, ok := authctx.UserID(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	var req verifyTwoFactorRequest
	if !h.decode(w, r, &req) {
		return
	}

	err := h.authService.VerifyTwoFactorCode(r.Context(), userID, req.Method, req.Code)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalid2FACode):
			h.respondError(w, http.StatusUnauthorized, "Invalid 2fa code")
		case errors.Is(err, ErrInvalidTwoFactorMethod), errors.Is(err, ErrUser2FAAlreadyEnabled),
			errors.Is(err, ErrUser2FANotEnabled):
			h.respondError(w, http.StatusBadRequest, err.Error())
		default:
			h.respondError(w, http.StatusInternalServerError, "Could not verify two-factor code")
		}
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Two-factor authentication enabled",
	})
}
