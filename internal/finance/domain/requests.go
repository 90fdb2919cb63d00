package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreateTransactionRequest struct {
	UserID           string          `json:"-"`
	CategoryID       int64           `json:"category_id" validate:"required,gt=0"`
	Amount           decimal.Decimal `json:"amount" validate:"decimal_nonzero,decimal_scale=2"`
	PaidOrReceivedAt *time.Time      `json:"paid_or_received_at"`
	Title            string          `json:"title" validate:"required,max=80"`
	Type             TransactionType `json:"type" validate:"required,oneof=income expense"`
}

type UpdateTransactionRequest struct {
	ID               int64           `json:"-"`
	UserID           string          `json:"-"`
	CategoryID       int64           `json:"category_id" validate:"required,gt=0"`
	Amount           decimal.Decimal `json:"amount" validate:"decimal_nonzero,decimal_scale=2"`
	PaidOrReceivedAt *time.Time      `json:"paid_or_received_at"`
	Title            string          `json:"title" validate:"required,max=80"`
	Type             TransactionType `json:"type" validate:"required,oneof=income expense"`
}

type DeleteTransactionRequest struct {
	ID     int64
	UserID string
}

type GetTransactionByIDRequest struct {
	ID     int64
	UserID string
}

// GetTransactionsByPeriodRequest leaves StartDate/EndDate nil to default to the current month.
type GetTransactionsByPeriodRequest struct {
	UserID     string
	StartDate  *time.Time
	EndDate    *time.Time
	PageNumber int
	PageSize   int
}

type CreateCategoryRequest struct {
	UserID      string `json:"-"`
	Title       string `json:"title" validate:"required,max=80"`
	Description string `json:"description" validate:"max=255"`
}

type UpdateCategoryRequest struct {
	ID          int64  `json:"-"`
	UserID      string `json:"-"`
	Title       string `json:"title" validate:"required,max=80"`
	Description string `json:"description" validate:"max=255"`
}

type DeleteCategoryRequest struct {
	ID     int64
	UserID string
}

type GetCategoryByIDRequest struct {
	ID     int64
	UserID string
}

type GetAllCategoriesRequest struct {
	UserID     string
	PageNumber int
	PageSize   int
}
