package application

import (
	"context"
	"sort"
	"sync"

	"github.com/sebuszqo/FinanceTracker/internal/finance/domain"
	financeErrors "github.com/sebuszqo/FinanceTracker/internal/finance/errors"
)

type MockTransactionRepository struct {
	mu           sync.Mutex
	nextID       int64
	Transactions map[int64]domain.Transaction
	Err          error
}

func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{Transactions: make(map[int64]domain.Transaction)}
}

func (m *MockTransactionRepository) Create(_ context.Context, transaction *domain.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.nextID++
	transaction.ID = m.nextID
	m.Transactions[transaction.ID] = *transaction
	return nil
}

func (m *MockTransactionRepository) FindByID(_ context.Context, id int64, userID string) (*domain.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	transaction, ok := m.Transactions[id]
	if !ok || transaction.UserID != userID {
		return nil, financeErrors.ErrTransactionNotFound
	}
	return &transaction, nil
}

func (m *MockTransactionRepository) Update(_ context.Context, transaction *domain.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	stored, ok := m.Transactions[transaction.ID]
	if !ok || stored.UserID != transaction.UserID {
		return financeErrors.ErrTransactionNotFound
	}
	m.Transactions[transaction.ID] = *transaction
	return nil
}

func (m *MockTransactionRepository) Delete(_ context.Context, id int64, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	stored, ok := m.Transactions[id]
	if !ok || stored.UserID != userID {
		return financeErrors.ErrTransactionNotFound
	}
	delete(m.Transactions, id)
	return nil
}

func (m *MockTransactionRepository) matching(filter domain.PeriodFilter) []domain.Transaction {
	var result []domain.Transaction
	for _, transaction := range m.Transactions {
		if transaction.UserID != filter.UserID {
			continue
		}
		if transaction.CreatedAt.Before(filter.Start) || transaction.CreatedAt.After(filter.End) {
			continue
		}
		result = append(result, transaction)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID < result[j].ID
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result
}

func (m *MockTransactionRepository) FindByPeriod(_ context.Context, filter domain.PeriodFilter) ([]domain.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	all := m.matching(filter)
	if filter.Offset >= len(all) {
		return []domain.Transaction{}, nil
	}
	end := filter.Offset + filter.Limit
	if end > len(all) {
		end = len(all)
	}
	return all[filter.Offset:end], nil
}

func (m *MockTransactionRepository) CountByPeriod(_ context.Context, filter domain.PeriodFilter) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return 0, m.Err
	}
	return len(m.matching(filter)), nil
}

type MockCategoryRepository struct {
	mu         sync.Mutex
	nextID     int64
	Categories map[int64]domain.Category
	Err        error
}

func NewMockCategoryRepository() *MockCategoryRepository {
	return &MockCategoryRepository{Categories: make(map[int64]domain.Category)}
}

func (m *MockCategoryRepository) Create(_ context.Context, category *domain.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.nextID++
	category.ID = m.nextID
	m.Categories[category.ID] = *category
	return nil
}

func (m *MockCategoryRepository) FindByID(_ context.Context, id int64, userID string) (*domain.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	category, ok := m.Categories[id]
	if !ok || category.UserID != userID {
		return nil, financeErrors.ErrCategoryNotFound
	}
	return &category, nil
}

func (m *MockCategoryRepository) Update(_ context.Context, category *domain.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	stored, ok := m.Categories[category.ID]
	if !ok || stored.UserID != category.UserID {
		return financeErrors.ErrCategoryNotFound
	}
	m.Categories[category.ID] = *category
	return nil
}

func (m *MockCategoryRepository) Delete(_ context.Context, id int64, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	stored, ok := m.Categories[id]
	if !ok || stored.UserID != userID {
		return financeErrors.ErrCategoryNotFound
	}
	delete(m.Categories, id)
	return nil
}

func (m *MockCategoryRepository) FindAll(_ context.Context, userID string, offset, limit int) ([]domain.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	var owned []domain.Category
	for _, category := range m.Categories {
		if category.UserID == userID {
			owned = append(owned, category)
		}
	}
	sort.Slice(owned, func(i, j int) bool {
		if owned[i].Title == owned[j].Title {
			return owned[i].ID < owned[j].ID
		}
		return owned[i].Title < owned[j].Title
	})
	if offset >= len(owned) {
		return []domain.Category{}, nil
	}
	end := offset + limit
	if end > len(owned) {
		end = len(owned)
	}
	return owned[offset:end], nil
}

func (m *MockCategoryRepository) CountAll(_ context.Context, userID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return 0, m.Err
	}
	count := 0
	for _, category := range m.Categories {
		if category.UserID == userID {
			count++
		}
	}
	return count, nil
}
