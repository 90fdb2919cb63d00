package interfaces

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sebuszqo/FinanceTracker/internal/finance/domain"
	"github.com/sebuszqo/FinanceTracker/internal/validation"
)

func newCategoryRouter(service *MockCategoryService) http.Handler {
	handler, err := NewCategoryHandler(service, validation.NewValidator(), respondJSON, respondError)
	if err != nil {
		panic(err)
	}
	r := chi.NewRouter()
	r.Get("/v1/categories", handler.GetCategories)
	r.Post("/v1/categories", handler.CreateCategory)
	r.Get("/v1/categories/{id}", handler.GetCategory)
	r.Put("/v1/categories/{id}", handler.UpdateCategory)
	r.Delete("/v1/categories/{id}", handler.DeleteCategory)
	return r
}

func TestGetCategories(t *testing.T) {
	categories := []domain.Category{{ID: 1, UserID: testUserID, Title: "Bills"}}
	service := &MockCategoryService{PagedResult: domain.NewPagedResponse(categories, 1, 1, 25)}
	router := newCategoryRouter(service)

	req := withUser(httptest.NewRequest(http.MethodGet, "/v1/categories?pageSize=5", nil))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 5, service.GetAllReq.PageSize)
	assert.Equal(t, testUserID, service.GetAllReq.UserID)
	assert.JSONEq(t, `{
		"data":[{"id":1,"user_id":"`+testUserID+`","title":"Bills","description":""}],
		"total_count":1,"current_page":1,"page_size":25,"total_pages":1,"status_code":200
	}`, w.Body.String())
}

func TestCreateCategory(t *testing.T) {
	created := &domain.Category{ID: 4, UserID: testUserID, Title: "Travel"}
	service := &MockCategoryService{Response: domain.NewResponse(created, http.StatusCreated, "Category created successfully!")}
	router := newCategoryRouter(service)

	req := withUser(httptest.NewRequest(http.MethodPost, "/v1/categories", bytes.NewBufferString(`{"title":"Travel","description":"trips"}`)))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, domain.CreateCategoryRequest{UserID: testUserID, Title: "Travel", Description: "trips"}, service.CreateReq)
}

func TestCreateCategory_TitleTooLong(t *testing.T) {
	router := newCategoryRouter(&MockCategoryService{})

	title := string(bytes.Repeat([]byte("a"), 81))
	req := withUser(httptest.NewRequest(http.MethodPost, "/v1/categories", bytes.NewBufferString(`{"title":"`+title+`"}`)))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "title: must be at most 80 characters long")
}

func TestUpdateAndDeleteCategory(t *testing.T) {
	service := &MockCategoryService{Response: domain.NewResponse[domain.Category](nil, http.StatusNotFound, "Category not found!")}
	router := newCategoryRouter(service)

	req := withUser(httptest.NewRequest(http.MethodPut, "/v1/categories/9", bytes.NewBufferString(`{"title":"Food"}`)))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, int64(9), service.UpdateReq.ID)

	req = withUser(httptest.NewRequest(http.MethodDelete, "/v1/categories/9", nil))
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, domain.DeleteCategoryRequest{ID: 9, UserID: testUserID}, service.DeleteReq)
}

func TestGetCategory(t *testing.T) {
	found := &domain.Category{ID: 2, UserID: testUserID, Title: "Food"}
	service := &MockCategoryService{Response: domain.NewResponse(found, http.StatusOK, "")}
	router := newCategoryRouter(service)

	req := withUser(httptest.NewRequest(http.MethodGet, "/v1/categories/2", nil))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(2), service.GetByIDReq.ID)

	req = withUser(httptest.NewRequest(http.MethodGet, "/v1/categories/0", nil))
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetCategories_PagingLimits(t *testing.T) {
	service := &MockCategoryService{}
	router := newCategoryRouter(service)

	req := withUser(httptest.NewRequest(http.MethodGet, "/v1/categories?pageNumber=4611686018427387905&pageSize=2", nil))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "pageNumber: must be at most")
	assert.Empty(t, service.GetAllReq.UserID)

	req = withUser(httptest.NewRequest(http.MethodGet, "/v1/categories?pageSize=500", nil))
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "pageSize: must be at most 100")
}
