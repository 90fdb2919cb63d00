package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sebuszqo/FinanceTracker/internal/authctx"
	"github.com/sebuszqo/FinanceTracker/internal/validation"
)

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string, errors ...[]string) {
	payload := map[string]interface{}{
		"status":  "error",
		"message": message,
		"code":    status,
	}
	if len(errors) > 0 && len(errors[0]) > 0 {
		payload["errors"] = errors[0]
	}
	respondJSON(w, status, payload)
}

func newTestHandler(env *testEnv) *Handler {
	return NewHandler(env.service, validation.NewValidator(), false, respondJSON, respondError)
}

func protectedEcho(env *testEnv) http.Handler {
	return env.service.JWTAccessTokenMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, _ := authctx.UserID(r.Context())
		respondJSON(w, http.StatusOK, map[string]string{"user_id": userID})
	}))
}

func loginForTest(t *testing.T, env *testEnv) (string, *http.Cookie) {
	t.Helper()
	handler := newTestHandler(env)
	body := `{"email_or_login":"johnny","password":"s3cretpass"}`
	w := httptest.NewRecorder()
	handler.HandleLogin(w, httptest.NewRequest(http.MethodPost, "/v1/identity/login", bytes.NewBufferString(body)))
	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Data map[string]string `json:"data"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))

	var refresh *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == refreshTokenCookie {
			refresh = c
		}
	}
	require.NotNil(t, refresh)
	assert.True(t, refresh.HttpOnly)
	return response.Data["access_token"], refresh
}

func TestHandleLogin_Errors(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		expectedStatus int
	}{
		{"malformed", `{"email_or_login":`, http.StatusBadRequest},
		{"missing password", `{"email_or_login":"johnny"}`, http.StatusBadRequest},
		{"bad code format", `{"email_or_login":"johnny","password":"s3cretpass","two_factor_code":"abc"}`, http.StatusBadRequest},
		{"wrong password", `{"email_or_login":"johnny","password":"nope-nope"}`, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newTestHandler(newTestEnv())
			w := httptest.NewRecorder()
			handler.HandleLogin(w, httptest.NewRequest(http.MethodPost, "/v1/identity/login", bytes.NewBufferString(tt.body)))
			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestAccessMiddleware(t *testing.T) {
	env := newTestEnv()
	accessToken, _ := loginForTest(t, env)
	protected := protectedEcho(env)

	tests := []struct {
		name           string
		header         string
		expectedStatus int
	}{
		{"valid token", "Bearer " + accessToken, http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"no bearer prefix", accessToken, http.StatusUnauthorized},
		{"garbage token", "Bearer abc.def.ghi", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/v1/transactions", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			protected.ServeHTTP(w, req)
			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestHandleLogout_InvalidatesAccessToken(t *testing.T) {
	env := newTestEnv()
	handler := newTestHandler(env)
	accessToken, _ := loginForTest(t, env)

	logout := env.service.JWTAccessTokenMiddleware()(http.HandlerFunc(handler.HandleLogout))
	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.Header.Set("Authorization", "Bearer "+accessToken)
	w := httptest.NewRecorder()
	logout.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, refreshTokenCookie, cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.Less(t, cookies[0].MaxAge, 0)

	again := httptest.NewRequest(http.MethodGet, "/v1/categories", nil)
	again.Header.Set("Authorization", "Bearer "+accessToken)
	w = httptest.NewRecorder()
	protectedEcho(env).ServeHTTP(w, again)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHandleLogout_WithoutSession(t *testing.T) {
	handler := newTestHandler(newTestEnv())
	w := httptest.NewRecorder()

	handler.HandleLogout(w, httptest.NewRequest(http.MethodPost, "/logout", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRefreshFlow(t *testing.T) {
	env := newTestEnv()
	handler := newTestHandler(env)
	_, refreshCookie := loginForTest(t, env)

	refresh := env.service.JWTRefreshTokenMiddleware()(http.HandlerFunc(handler.RefreshAccessToken))

	req := httptest.NewRequest(http.MethodPut, "/v1/identity/refresh", nil)
	req.AddCookie(&http.Cookie{Name: refreshTokenCookie, Value: refreshCookie.Value})
	w := httptest.NewRecorder()
	refresh.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Data map[string]string `json:"data"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	claims, err := env.jwt.ValidateAccessToken(response.Data["access_token"])
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)

	w = httptest.NewRecorder()
	refresh.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/v1/identity/refresh", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHandleRegisterTwoFactor(t *testing.T) {
	env := newTestEnv()
	handler := newTestHandler(env)

	req := httptest.NewRequest(http.MethodPost, "/v1/identity/2fa/register", bytes.NewBufferString(`{"method":"google_authenticator"}`))
	req = req.WithContext(authctx.WithUserID(context.Background(), "user-1"))
	w := httptest.NewRecorder()
	handler.HandleRegisterTwoFactor(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "otpauth://")

	req = httptest.NewRequest(http.MethodPost, "/v1/identity/2fa/verify", bytes.NewBufferString(`{"method":"google_authenticator","code":"12"}`))
	req = req.WithContext(authctx.WithUserID(context.Background(), "user-1"))
	w = httptest.NewRecorder()
	handler.HandleVerifyTwoFactorCode(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
