package infrastructure

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/sebuszqo/FinanceTracker/internal/finance/domain"
	financeErrors "github.com/sebuszqo/FinanceTracker/internal/finance/errors"
)

const transactionColumns = `id, user_id, category_id, amount, created_at, paid_or_received_at, title, type`

type TransactionRepository struct {
	db *sql.DB
}

func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (*domain.Transaction, error) {
	var (
		transaction    domain.Transaction
		paidOrReceived sql.NullTime
	)
	if err := row.Scan(&transaction.ID, &transaction.UserID, &transaction.CategoryID, &transaction.Amount,
		&transaction.CreatedAt, &paidOrReceived, &transaction.Title, &transaction.Type); err != nil {
		return nil, err
	}
	transaction.PaidOrReceivedAt = timePtr(paidOrReceived)
	return &transaction, nil
}

func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	return &t.Time
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

// Create stores the transaction and reads back the id together with the amount
// and timestamps as the column types stored them.
func (r *TransactionRepository) Create(ctx context.Context, transaction *domain.Transaction) error {
	var paidOrReceived sql.NullTime
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO transactions (user_id, category_id, amount, created_at, paid_or_received_at, title, type)
        VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id, amount, created_at, paid_or_received_at`,
		transaction.UserID, transaction.CategoryID, transaction.Amount, transaction.CreatedAt,
		nullTime(transaction.PaidOrReceivedAt), transaction.Title, string(transaction.Type),
	).Scan(&transaction.ID, &transaction.Amount, &transaction.CreatedAt, &paidOrReceived)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	transaction.PaidOrReceivedAt = timePtr(paidOrReceived)
	return nil
}

func (r *TransactionRepository) FindByID(ctx context.Context, id int64, userID string) (*domain.Transaction, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE id = $1 AND user_id = $2`, id, userID)
	transaction, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, financeErrors.ErrTransactionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select transaction %d: %w", id, err)
	}
	return transaction, nil
}

func (r *TransactionRepository) Update(ctx context.Context, transaction *domain.Transaction) error {
	var paidOrReceived sql.NullTime
	err := r.db.QueryRowContext(ctx,
		`UPDATE transactions
        SET category_id = $1, amount = $2, paid_or_received_at = $3, title = $4, type = $5
        WHERE id = $6 AND user_id = $7
        RETURNING amount, created_at, paid_or_received_at`,
		transaction.CategoryID, transaction.Amount, nullTime(transaction.PaidOrReceivedAt),
		transaction.Title, string(transaction.Type), transaction.ID, transaction.UserID,
	).Scan(&transaction.Amount, &transaction.CreatedAt, &paidOrReceived)
	if errors.Is(err, sql.ErrNoRows) {
		return financeErrors.ErrTransactionNotFound
	}
	if err != nil {
		return fmt.Errorf("update transaction %d: %w", transaction.ID, err)
	}
	transaction.PaidOrReceivedAt = timePtr(paidOrReceived)
	return nil
}

func (r *TransactionRepository) Delete(ctx context.Context, id int64, userID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete transaction %d: %w", id, err)
	}
	return requireAffected(result, financeErrors.ErrTransactionNotFound)
}

func (r *TransactionRepository) FindByPeriod(ctx context.Context, filter domain.PeriodFilter) ([]domain.Transaction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+transactionColumns+` FROM transactions
        WHERE user_id = $1 AND created_at >= $2 AND created_at <= $3
        ORDER BY created_at ASC, id ASC
        OFFSET $4 LIMIT $5`,
		filter.UserID, filter.Start, filter.End, filter.Offset, filter.Limit)
	if err != nil {
		return nil, fmt.Errorf("select transactions by period: %w", err)
	}
	defer rows.Close()

	transactions := []domain.Transaction{}
	for rows.Next() {
		transaction, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		transactions = append(transactions, *transaction)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return transactions, nil
}

func (r *TransactionRepository) CountByPeriod(ctx context.Context, filter domain.PeriodFilter) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM transactions WHERE user_id = $1 AND created_at >= $2 AND created_at <= $3`,
		filter.UserID, filter.Start, filter.End,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count transactions by period: %w", err)
	}
	return count, nil
}

func requireAffected(result sql.Result, notFound error) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return notFound
	}
	return nil
}
