package domain

import "context"

type Category struct {
	ID          int64  `json:"id"`
	UserID      string `json:"user_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type CategoryRepository interface {
	Create(ctx context.Context, category *Category) error
	FindByID(ctx context.Context, id int64, userID string) (*Category, error)
	Update(ctx context.Context, category *Category) error
	Delete(ctx context.Context, id int64, userID string) error
	FindAll(ctx context.Context, userID string, offset, limit int) ([]Category, error)
	CountAll(ctx context.Context, userID string) (int, error)
}
