package application

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/sebuszqo/FinanceTracker/internal/finance/domain"
	financeErrors "github.com/sebuszqo/FinanceTracker/internal/finance/errors"
)

const (
	msgTransactionCreated  = "Transaction created successfully!"
	msgTransactionUpdated  = "Transaction updated successfully!"
	msgTransactionDeleted  = "Transaction deleted successfully!"
	msgTransactionNotFound = "Transaction not found!"
)

type TransactionService struct {
	repo   domain.TransactionRepository
	logger *zap.Logger
	now    func() time.Time
}

func NewTransactionService(repo domain.TransactionRepository, logger *zap.Logger) *TransactionService {
	return &TransactionService{repo: repo, logger: logger, now: time.Now}
}

// WithClock replaces the clock used for created_at stamps and default periods.
func (s *TransactionService) WithClock(now func() time.Time) *TransactionService {
	s.now = now
	return s
}

func (s *TransactionService) Create(ctx context.Context, req domain.CreateTransactionRequest) *domain.Response[domain.Transaction] {
	transaction := &domain.Transaction{
		UserID:           req.UserID,
		CategoryID:       req.CategoryID,
		Amount:           req.Amount,
		CreatedAt:        s.now(),
		PaidOrReceivedAt: req.PaidOrReceivedAt,
		Title:            req.Title,
		Type:             req.Type,
	}

	if err := s.repo.Create(ctx, transaction); err != nil {
		s.logger.Error("failed to create transaction", zap.String("user_id", req.UserID), zap.Error(err))
		return domain.NewResponse[domain.Transaction](nil, http.StatusInternalServerError,
			fmt.Sprintf("Could not create transaction: %v", err))
	}

	return domain.NewResponse(transaction, http.StatusCreated, msgTransactionCreated)
}

func (s *TransactionService) Update(ctx context.Context, req domain.UpdateTransactionRequest) *domain.Response[domain.Transaction] {
	transaction, err := s.repo.FindByID(ctx, req.ID, req.UserID)
	if err != nil {
		return s.failure(err, "Could not update transaction", req.ID, req.UserID)
	}

	transaction.Title = req.Title
	transaction.Amount = req.Amount
	transaction.PaidOrReceivedAt = req.PaidOrReceivedAt
	transaction.Type = req.Type
	transaction.CategoryID = req.CategoryID

	if err := s.repo.Update(ctx, transaction); err != nil {
		return s.failure(err, "Could not update transaction", req.ID, req.UserID)
	}

	return domain.NewResponse(transaction, http.StatusOK, msgTransactionUpdated)
}

func (s *TransactionService) Delete(ctx context.Context, req domain.DeleteTransactionRequest) *domain.Response[domain.Transaction] {
	transaction, err := s.repo.FindByID(ctx, req.ID, req.UserID)
	if err != nil {
		return s.failure(err, "Could not delete transaction", req.ID, req.UserID)
	}

	if err := s.repo.Delete(ctx, req.ID, req.UserID); err != nil {
		return s.failure(err, "Could not delete transaction", req.ID, req.UserID)
	}

	return domain.NewResponse(transaction, http.StatusOK, msgTransactionDeleted)
}

func (s *TransactionService) GetByID(ctx context.Context, req domain.GetTransactionByIDRequest) *domain.Response[domain.Transaction] {
	transaction, err := s.repo.FindByID(ctx, req.ID, req.UserID)
	if err != nil {
		return s.failure(err, "Could not retrieve transaction", req.ID, req.UserID)
	}
	return domain.NewResponse(transaction, http.StatusOK, "")
}

func (s *TransactionService) GetByPeriod(ctx context.Context, req domain.GetTransactionsByPeriodRequest) *domain.PagedResponse[domain.Transaction] {
	now := s.now()
	start := domain.FirstDayOfMonth(now)
	if req.StartDate != nil {
		start = *req.StartDate
	}
	end := domain.LastInstantOfMonth(now)
	if req.EndDate != nil {
		end = *req.EndDate
	}

	page, size, offset := domain.Pagination(req.PageNumber, req.PageSize)
	filter := domain.PeriodFilter{
		UserID: req.UserID,
		Start:  start,
		End:    end,
		Offset: offset,
		Limit:  size,
	}

	transactions, err := s.repo.FindByPeriod(ctx, filter)
	if err != nil {
		return s.pagedFailure(err, req.UserID)
	}
	total, err := s.repo.CountByPeriod(ctx, filter)
	if err != nil {
		return s.pagedFailure(err, req.UserID)
	}

	return domain.NewPagedResponse(transactions, total, page, size)
}

func (s *TransactionService) failure(err error, prefix string, id int64, userID string) *domain.Response[domain.Transaction] {
	if errors.Is(err, financeErrors.ErrTransactionNotFound) {
		return domain.NewResponse[domain.Transaction](nil, http.StatusNotFound, msgTransactionNotFound)
	}
	s.logger.Error(prefix, zap.Int64("transaction_id", id), zap.String("user_id", userID), zap.Error(err))
	return domain.NewResponse[domain.Transaction](nil, http.StatusInternalServerError, fmt.Sprintf("%s: %v", prefix, err))
}

func (s *TransactionService) pagedFailure(err error, userID string) *domain.PagedResponse[domain.Transaction] {
	s.logger.Error("failed to retrieve transactions", zap.String("user_id", userID), zap.Error(err))
	return domain.NewPagedErrorResponse[domain.Transaction](http.StatusInternalServerError,
		fmt.Sprintf("Could not retrieve transactions: %v", err))
}
