package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

type TwoFactorRepository interface {
	SaveTwoFactorSecret(ctx context.Context, userID, secret string) error
	GetTwoFactorSecret(ctx context.Context, userID string) (string, error)
	EnableTwoFactor(ctx context.Context, userID, method string) error
}

type twoFactorRepository struct {
	db *sql.DB
}

func NewTwoFactorRepository(db *sql.DB) TwoFactorRepository {
	return &twoFactorRepository{
		db: db,
	}
}

func (r *twoFactorRepository) SaveTwoFactorSecret(ctx context.Context, userID, secret string) error {
	query := `
        INSERT INTO user_two_factor_secrets (user_id, encrypted_secret, created_at)
        VALUES ($1, $2, NOW())
        ON CONFLICT (user_id) DO UPDATE
        SET encrypted_secret = EXCLUDED.encrypted_secret,
            created_at = NOW()
    `
	if _, err := r.db.ExecContext(ctx, query, userID, secret); err != nil {
		return fmt.Errorf("could not save two-factor secret: %w", err)
	}
	return nil
}

func (r *twoFactorRepository) GetTwoFactorSecret(ctx context.Context, userID string) (string, error) {
	var secret string
	query := `SELECT encrypted_secret FROM user_two_factor_secrets WHERE user_id = $1`
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&secret)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrUser2FANotEnabled
		}
		return "", fmt.Errorf("could not get two-factor secret: %w", err)
	}
	return secret, nil
}

func (r *twoFactorRepository) EnableTwoFactor(ctx context.Context, userID, method string) error {
	query := `
		UPDATE users
		SET two_factor_enabled = TRUE,
			two_factor_method = $1,
			updated_at = NOW()
		WHERE id = $2
	`
	if _, err := r.db.ExecContext(ctx, query, method, userID); err != nil {
		return fmt.Errorf("could not enable two-factor authentication: %w", err)
	}
	return nil
}
