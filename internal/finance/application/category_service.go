package application

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/sebuszqo/FinanceTracker/internal/finance/domain"
	financeErrors "github.com/sebuszqo/FinanceTracker/internal/finance/errors"
)

const (
	msgCategoryCreated  = "Category created successfully!"
	msgCategoryUpdated  = "Category updated successfully!"
	msgCategoryDeleted  = "Category deleted successfully!"
	msgCategoryNotFound = "Category not found!"
)

type CategoryService struct {
	repo   domain.CategoryRepository
	logger *zap.Logger
}

func NewCategoryService(repo domain.CategoryRepository, logger *zap.Logger) *CategoryService {
	return &CategoryService{repo: repo, logger: logger}
}

func (s *CategoryService) Create(ctx context.Context, req domain.CreateCategoryRequest) *domain.Response[domain.Category] {
	category := &domain.Category{
		UserID:      req.UserID,
		Title:       req.Title,
		Description: req.Description,
	}

	if err := s.repo.Create(ctx, category); err != nil {
		s.logger.Error("failed to create category", zap.String("user_id", req.UserID), zap.Error(err))
		return domain.NewResponse[domain.Category](nil, http.StatusInternalServerError,
			fmt.Sprintf("Could not create category: %v", err))
	}

	return domain.NewResponse(category, http.StatusCreated, msgCategoryCreated)
}

func (s *CategoryService) Update(ctx context.Context, req domain.UpdateCategoryRequest) *domain.Response[domain.Category] {
	category, err := s.repo.FindByID(ctx, req.ID, req.UserID)
	if err != nil {
		return s.failure(err, "Could not update category", req.ID, req.UserID)
	}

	category.Title = req.Title
	category.Description = req.Description

	if err := s.repo.Update(ctx, category); err != nil {
		return s.failure(err, "Could not update category", req.ID, req.UserID)
	}

	return domain.NewResponse(category, http.StatusOK, msgCategoryUpdated)
}

func (s *CategoryService) Delete(ctx context.Context, req domain.DeleteCategoryRequest) *domain.Response[domain.Category] {
	category, err := s.repo.FindByID(ctx, req.ID, req.UserID)
	if err != nil {
		return s.failure(err, "Could not delete category", req.ID, req.UserID)
	}

	if err := s.repo.Delete(ctx, req.ID, req.UserID); err != nil {
		return s.failure(err, "Could not delete category", req.ID, req.UserID)
	}

	return domain.NewResponse(category, http.StatusOK, msgCategoryDeleted)
}

func (s *CategoryService) GetByID(ctx context.Context, req domain.GetCategoryByIDRequest) *domain.Response[domain.Category] {
	category, err := s.repo.FindByID(ctx, req.ID, req.UserID)
	if err != nil {
		return s.failure(err, "Could not retrieve category", req.ID, req.UserID)
	}
	return domain.NewResponse(category, http.StatusOK, "")
}

func (s *CategoryService) GetAll(ctx context.Context, req domain.GetAllCategoriesRequest) *domain.PagedResponse[domain.Category] {
	page, size, offset := domain.Pagination(req.PageNumber, req.PageSize)

	categories, err := s.repo.FindAll(ctx, req.UserID, offset, size)
	if err != nil {
		return s.pagedFailure(err, req.UserID)
	}
	total, err := s.repo.CountAll(ctx, req.UserID)
	if err != nil {
		return s.pagedFailure(err, req.UserID)
	}

	return domain.NewPagedResponse(categories, total, page, size)
}

func (s *CategoryService) failure(err error, prefix string, id int64, userID string) *domain.Response[domain.Category] {
	if errors.Is(err, financeErrors.ErrCategoryNotFound) {
		return domain.NewResponse[domain.Category](nil, http.StatusNotFound, msgCategoryNotFound)
	}
	s.logger.Error(prefix, zap.Int64("category_id", id), zap.String("user_id", userID), zap.Error(err))
	return domain.NewResponse[domain.Category](nil, http.StatusInternalServerError, fmt.Sprintf("%s: %v", prefix, err))
}

func (s *CategoryService) pagedFailure(err error, userID string) *domain.PagedResponse[domain.Category] {
	s.logger.Error("failed to retrieve categories", zap.String("user_id", userID), zap.Error(err))
	return domain.NewPagedErrorResponse[domain.Category](http.StatusInternalServerError,
		fmt.Sprintf("Could not retrieve categories: %v", err))
}
