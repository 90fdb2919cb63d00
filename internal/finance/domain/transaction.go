package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

func (t TransactionType) IsValid() bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

type Transaction struct {
	ID               int64           `json:"id"`
	UserID           string          `json:"user_id"`
	CategoryID       int64           `json:"category_id"`
	Amount           decimal.Decimal `json:"amount"`
	CreatedAt        time.Time       `json:"created_at"`
	PaidOrReceivedAt *time.Time      `json:"paid_or_received_at"`
	Title            string          `json:"title"`
	Type             TransactionType `json:"type"`
}

// PeriodFilter selects the owner's transactions created inside [Start, End].
type PeriodFilter struct {
	UserID string
	Start  time.Time
	End    time.Time
	Offset int
	Limit  int
}

type TransactionRepository interface {
	Create(ctx context.Context, transaction *Transaction) error
	FindByID(ctx context.Context, id int64, userID string) (*Transaction, error)
	Update(ctx context.Context, transaction *Transaction) error
	Delete(ctx context.Context, id int64, userID string) error
	FindByPeriod(ctx context.Context, filter PeriodFilter) ([]Transaction, error)
	CountByPeriod(ctx context.Context, filter PeriodFilter) (int, error)
}
