package interfaces

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sebuszqo/FinanceTracker/internal/authctx"
	"github.com/sebuszqo/FinanceTracker/internal/finance/domain"
	"github.com/sebuszqo/FinanceTracker/internal/validation"
)

type CategoryServiceInterface interface {
	Create(ctx context.Context, req domain.CreateCategoryRequest) *domain.Response[domain.Category]
	Update(ctx context.Context, req domain.UpdateCategoryRequest) *domain.Response[domain.Category]
	Delete(ctx context.Context, req domain.DeleteCategoryRequest) *domain.Response[domain.Category]
	GetByID(ctx context.Context, req domain.GetCategoryByIDRequest) *domain.Response[domain.Category]
	GetAll(ctx context.Context, req domain.GetAllCategoriesRequest) *domain.PagedResponse[domain.Category]
}

type CategoryHandler struct {
	service      CategoryServiceInterface
	validator    *validation.Validator
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string)
}

func NewCategoryHandler(
	service CategoryServiceInterface,
	validator *validation.Validator,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string),
) (*CategoryHandler, error) {
	if service == nil || validator == nil {
		return nil, fmt.Errorf("category handler: %w", ErrNilService)
	}
	if respondJSON == nil || respondError == nil {
		return nil, fmt.Errorf("category handler: %w", ErrNilResponder)
	}
	return &CategoryHandler{
		service:      service,
		validator:    validator,
		respondJSON:  respondJSON,
		respondError: respondError,
	}, nil
}

func (h *CategoryHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	userID, ok := authctx.UserID(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	page, size, err := pagingParams(r)
	if err != nil {
		writeRequestError(h.respondError, w, err)
		return
	}

	resp := h.service.GetAll(r.Context(), domain.GetAllCategoriesRequest{UserID: userID, PageNumber: page, PageSize: size})
	h.respondJSON(w, resp.Code, resp)
}

func (h *CategoryHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	userID, ok := authctx.UserID(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeRequestError(h.respondError, w, err)
		return
	}

	resp := h.service.GetByID(r.Context(), domain.GetCategoryByIDRequest{ID: id, UserID: userID})
	h.respondJSON(w, resp.Code, resp)
}

func (h *CategoryHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	userID, ok := authctx.UserID(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req domain.CreateCategoryRequest
	if err := decodeAndValidate(r, h.validator, &req); err != nil {
		writeRequestError(h.respondError, w, err)
		return
	}
	req.UserID = userID

	resp := h.service.Create(r.Context(), req)
	h.respondJSON(w, resp.Code, resp)
}

func (h *CategoryHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	userID, ok := authctx.UserID(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeRequestError(h.respondError, w, err)
		return
	}

	var req domain.UpdateCategoryRequest
	if err := decodeAndValidate(r, h.validator, &req); err != nil {
		writeRequestError(h.respondError, w, err)
		return
	}
	req.ID = id
	req.UserID = userID

	resp := h.service.Update(r.Context(), req)
	h.respondJSON(w, resp.Code, resp)
}

func (h *CategoryHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	userID, ok := authctx.UserID(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeRequestError(h.respondError, w, err)
		return
	}

	resp := h.service.Delete(r.Context(), domain.DeleteCategoryRequest{ID: id, UserID: userID})
	h.respondJSON(w, resp.Code, resp)
}
