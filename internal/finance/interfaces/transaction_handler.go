package interfaces

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sebuszqo/FinanceTracker/internal/authctx"
	"github.com/sebuszqo/FinanceTracker/internal/finance/domain"
	"github.com/sebuszqo/FinanceTracker/internal/validation"
)

type TransactionServiceInterface interface {
	Create(ctx context.Context, req domain.CreateTransactionRequest) *domain.Response[domain.Transaction]
	Update(ctx context.Context, req domain.UpdateTransactionRequest) *domain.Response[domain.Transaction]
	Delete(ctx context.Context, req domain.DeleteTransactionRequest) *domain.Response[domain.Transaction]
	GetByID(ctx context.Context, req domain.GetTransactionByIDRequest) *domain.Response[domain.Transaction]
	GetByPeriod(ctx context.Context, req domain.GetTransactionsByPeriodRequest) *domain.PagedResponse[domain.Transaction]
}

type TransactionHandler struct {
	service      TransactionServiceInterface
	validator    *validation.Validator
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string)
}

func NewTransactionHandler(
	service TransactionServiceInterface,
	validator *validation.Validator,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string),
) (*TransactionHandler, error) {
	if service == nil || validator == nil {
		return nil, fmt.Errorf("transaction handler: %w", ErrNilService)
	}
	if respondJSON == nil || respondError == nil {
		return nil, fmt.Errorf("transaction handler: %w", ErrNilResponder)
	}
	return &TransactionHandler{
		service:      service,
		validator:    validator,
		respondJSON:  respondJSON,
		respondError: respondError,
	}, nil
}

func (h *TransactionHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := authctx.UserID(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req domain.CreateTransactionRequest
	if err := decodeAndValidate(r, h.validator, &req); err != nil {
		writeRequestError(h.respondError, w, err)
		return
	}
	req.UserID = userID

	resp := h.service.Create(r.Context(), req)
	h.respondJSON(w, resp.Code, resp)
}

func (h *TransactionHandler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
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

	var req domain.UpdateTransactionRequest
	if err := decodeAndValidate(r, h.validator, &req); err != nil {
		writeRequestError(h.respondError, w, err)
		return
	}
	req.ID = id
	req.UserID = userID

	resp := h.service.Update(r.Context(), req)
	h.respondJSON(w, resp.Code, resp)
}

func (h *TransactionHandler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
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

	resp := h.service.Delete(r.Context(), domain.DeleteTransactionRequest{ID: id, UserID: userID})
	h.respondJSON(w, resp.Code, resp)
}

func (h *TransactionHandler) GetTransaction(w http.ResponseWriter, r *http.Request) {
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

	resp := h.service.GetByID(r.Context(), domain.GetTransactionByIDRequest{ID: id, UserID: userID})
	h.respondJSON(w, resp.Code, resp)
}

func (h *TransactionHandler) GetTransactionsByPeriod(w http.ResponseWriter, r *http.Request) {
	userID, ok := authctx.UserID(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	startDate, err := queryTime(r, "startDate", false)
	if err != nil {
		writeRequestError(h.respondError, w, err)
		return
	}
	endDate, err := queryTime(r, "endDate", true)
	if err != nil {
		writeRequestError(h.respondError, w, err)
		return
	}
	if startDate != nil && endDate != nil && endDate.Before(*startDate) {
		h.respondError(w, http.StatusBadRequest, "endDate must not be before startDate")
		return
	}
	page, size, err := pagingParams(r)
	if err != nil {
		writeRequestError(h.respondError, w, err)
		return
	}

	resp := h.service.GetByPeriod(r.Context(), domain.GetTransactionsByPeriodRequest{
		UserID:     userID,
		StartDate:  startDate,
		EndDate:    endDate,
		PageNumber: page,
		PageSize:   size,
	})
	h.respondJSON(w, resp.Code, resp)
}
