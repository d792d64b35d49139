package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tanmay-mevada/DStrA-sub001/pkg/xerrors"

	"github.com/jackc/pgx/v5"
)

// SetResetToken records a pending reset credential against the account.
// A repeated request simply rotates the token.
func (r *UserRepository) SetResetToken(ctx context.Context, email, token string, expiresAt time.Time) error {
	result, err := r.db.Exec(ctx, `
		UPDATE users
		SET reset_token = $2, reset_expires_at = $3, updated_at = NOW()
		WHERE email = $1
	`, email, token, expiresAt)
	if err != nil {
		return fmt.Errorf("failed to set reset token: %w", err)
	}
	if result.RowsAffected() == 0 {
		return xerrors.ErrUserNotFound
	}
	return nil
}

// GetEmailByResetToken is the read-only probe behind the reset form prefill.
// It does not consume the token.
func (r *UserRepository) GetEmailByResetToken(ctx context.Context, token string) (string, error) {
	var email string
	err := r.db.QueryRow(ctx, `
		SELECT email FROM users
		WHERE reset_token = $1 AND reset_expires_at > NOW()
	`, token).Scan(&email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", xerrors.ErrInvalidOrExpiredToken
		}
		return "", fmt.Errorf("failed to look up reset token: %w", err)
	}
	return email, nil
}

// RedeemResetToken swaps in the new hash and clears the token in one
// conditional UPDATE keyed on the token itself, so a token can be redeemed at
// most once even under concurrent submissions. Works for unverified accounts
// too; resetting a password does not verify an email.
func (r *UserRepository) RedeemResetToken(ctx context.Context, token, newHash string) (string, error) {
	var email string
	err := r.db.QueryRow(ctx, `
		UPDATE users
		SET password_hash = $2, reset_token = NULL, reset_expires_at = NULL, updated_at = NOW()
		WHERE reset_token = $1 AND reset_expires_at > NOW()
		RETURNING email
	`, token, newHash).Scan(&email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", xerrors.ErrInvalidOrExpiredToken
		}
		return "", fmt.Errorf("failed to redeem reset token: %w", err)
	}
	return email, nil
}
