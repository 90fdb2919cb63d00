package infrastructure

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sebuszqo/FinanceTracker/internal/finance/domain"
	financeErrors "github.com/sebuszqo/FinanceTracker/internal/finance/errors"
)

type CategoryRepository struct {
	db *sql.DB
}

func NewCategoryRepository(db *sql.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO categories (user_id, title, description) VALUES ($1, $2, $3) RETURNING id`,
		category.UserID, category.Title, category.Description,
	).Scan(&category.ID)
	if err != nil {
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

func (r *CategoryRepository) FindByID(ctx context.Context, id int64, userID string) (*domain.Category, error) {
	var category domain.Category
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, title, description FROM categories WHERE id = $1 AND user_id = $2`, id, userID,
	).Scan(&category.ID, &category.UserID, &category.Title, &category.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, financeErrors.ErrCategoryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select category %d: %w", id, err)
	}
	return &category, nil
}

func (r *CategoryRepository) Update(ctx context.Context, category *domain.Category) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE categories SET title = $1, description = $2 WHERE id = $3 AND user_id = $4`,
		category.Title, category.Description, category.ID, category.UserID)
	if err != nil {
		return fmt.Errorf("update category %d: %w", category.ID, err)
	}
	return requireAffected(result, financeErrors.ErrCategoryNotFound)
}

func (r *CategoryRepository) Delete(ctx context.Context, id int64, userID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete category %d: %w", id, err)
	}
	return requireAffected(result, financeErrors.ErrCategoryNotFound)
}

func (r *CategoryRepository) FindAll(ctx context.Context, userID string, offset, limit int) ([]domain.Category, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, title, description FROM categories
        WHERE user_id = $1
        ORDER BY title ASC, id ASC
        OFFSET $2 LIMIT $3`, userID, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("select categories: %w", err)
	}
	defer rows.Close()

	categories := []domain.Category{}
	for rows.Next() {
		var category domain.Category
		if err := rows.Scan(&category.ID, &category.UserID, &category.Title, &category.Description); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, category)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}
	return categories, nil
}

func (r *CategoryRepository) CountAll(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM categories WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count categories: %w", err)
	}
	return count, nil
}
