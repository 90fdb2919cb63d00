package user

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sebuszqo/FinanceTracker/internal/authctx"
	"github.com/sebuszqo/FinanceTracker/internal/validation"
)

type Handler struct {
	userService  Service
	validator    *validation.Validator
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string)
}

func NewHandler(
	userService Service,
	validator *validation.Validator,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string),
) *Handler {
	return &Handler{
		userService:  userService,
		validator:    validator,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

type registerRequest struct {
	Email    string `json:"email" validate:"required"`
	Login    string `json:"login"`
	Password string `json:"password" validate:"required"`
}

func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if fieldErrors := h.validator.Validate(req); fieldErrors != nil {
		messages := make([]string, len(fieldErrors))
		for i, fe := range fieldErrors {
			messages[i] = fe.String()
		}
		h.respondError(w, http.StatusBadRequest, "Validation errors occurred", messages)
		return
	}

	user, err := h.userService.Register(r.Context(), req.Email, req.Login, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmailAlreadyExists), errors.Is(err, ErrLoginAlreadyExists):
			h.respondError(w, http.StatusConflict, err.Error())
		case errors.Is(err, ErrInvalidEmail), errors.Is(err, ErrEmailLength),
			errors.Is(err, ErrLoginLength), errors.Is(err, ErrPasswordTooShort):
			h.respondError(w, http.StatusBadRequest, err.Error())
		default:
			h.respondError(w, http.StatusInternalServerError, "Could not register user")
		}
		return
	}

	h.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"status":  "success",
		"message": "User registered successfully",
		"data": map[string]string{
			"user_id": user.ID,
			"login":   user.Login,
		},
	})
}

func (h *Handler) HandleGetUserProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := authctx.UserID(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	user, err := h.userService.GetUserByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			h.respondError(w, http.StatusNotFound, "User not found")
			return
		}
		h.respondError(w, http.StatusInternalServerError, "Could not fetch user data")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data": map[string]interface{}{
			"user_id":     user.ID,
			"email":       user.Email,
			"login":       user.Login,
			"2fa_enabled": user.TwoFactorEnabled,
			"2fa_method":  user.TwoFactorMethod,
			"created_at":  user.CreatedAt,
			"updated_at":  user.UpdatedAt,
		},
	})
}
