package interfaces

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/sebuszqo/FinanceTracker/internal/authctx"
	"github.com/sebuszqo/FinanceTracker/internal/finance/domain"
)

const testUserID = "8f7c1e9a-3b2d-4c5e-9f10-1a2b3c4d5e6f"

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

func withUser(r *http.Request) *http.Request {
	return r.WithContext(authctx.WithUserID(r.Context(), testUserID))
}

type MockTransactionService struct {
	CreateReq   domain.CreateTransactionRequest
	UpdateReq   domain.UpdateTransactionRequest
	DeleteReq   domain.DeleteTransactionRequest
	GetByIDReq  domain.GetTransactionByIDRequest
	PeriodReq   domain.GetTransactionsByPeriodRequest
	Response    *domain.Response[domain.Transaction]
	PagedResult *domain.PagedResponse[domain.Transaction]
}

func (m *MockTransactionService) Create(_ context.Context, req domain.CreateTransactionRequest) *domain.Response[domain.Transaction] {
	m.CreateReq = req
	return m.Response
}

func (m *MockTransactionService) Update(_ context.Context, req domain.UpdateTransactionRequest) *domain.Response[domain.Transaction] {
	m.UpdateReq = req
	return m.Response
}

func (m *MockTransactionService) Delete(_ context.Context, req domain.DeleteTransactionRequest) *domain.Response[domain.Transaction] {
	m.DeleteReq = req
	return m.Response
}

func (m *MockTransactionService) GetByID(_ context.Context, req domain.GetTransactionByIDRequest) *domain.Response[domain.Transaction] {
	m.GetByIDReq = req
	return m.Response
}

func (m *MockTransactionService) GetByPeriod(_ context.Context, req domain.GetTransactionsByPeriodRequest) *domain.PagedResponse[domain.Transaction] {
	m.PeriodReq = req
	return m.PagedResult
}

type MockCategoryService struct {
	CreateReq   domain.CreateCategoryRequest
	UpdateReq   domain.UpdateCategoryRequest
	DeleteReq   domain.DeleteCategoryRequest
	GetByIDReq  domain.GetCategoryByIDRequest
	GetAllReq   domain.GetAllCategoriesRequest
	Response    *domain.Response[domain.Category]
	PagedResult *domain.PagedResponse[domain.Category]
}

func (m *MockCategoryService) Create(_ context.Context, req domain.CreateCategoryRequest) *domain.Response[domain.Category] {
	m.CreateReq = req
	return m.Response
}

func (m *MockCategoryService) Update(_ context.Context, req domain.UpdateCategoryRequest) *domain.Response[domain.Category] {
	m.UpdateReq = req
	return m.Response
}

func (m *MockCategoryService) Delete(_ context.Context, req domain.DeleteCategoryRequest) *domain.Response[domain.Category] {
	m.DeleteReq = req
	return m.Response
}

func (m *MockCategoryService) GetByID(_ context.Context, req domain.GetCategoryByIDRequest) *domain.Response[domain.Category] {
	m.GetByIDReq = req
	return m.Response
}

func (m *MockCategoryService) GetAll(_ context.Context, req domain.GetAllCategoriesRequest) *domain.PagedResponse[domain.Category] {
	m.GetAllReq = req
	return m.PagedResult
}
