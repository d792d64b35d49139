package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tanmay-mevada/DStrA-sub001/pkg/xerrors"

	"github.com/jackc/pgx/v5"
)

// UpsertSignupOTP records a signup attempt: it creates the account unverified
// or, when an unverified row already exists, overwrites its hash and OTP
// fields so a user who mistyped their password can simply sign up again.
// A verified account is never touched; that surfaces as ErrUserAlreadyExists.
func (r *UserRepository) UpsertSignupOTP(ctx context.Context, id, email, passwordHash, otpCode string, expiresAt time.Time) error {
	query := `
		INSERT INTO users (id, email, password_hash, role, is_verified, otp_code, otp_expires_at)
		VALUES ($1, $2, $3, 'student', FALSE, $4, $5)
		ON CONFLICT (email) DO UPDATE SET
			password_hash  = EXCLUDED.password_hash,
			otp_code       = EXCLUDED.otp_code,
			otp_expires_at = EXCLUDED.otp_expires_at,
			updated_at     = NOW()
		WHERE users.is_verified = FALSE
		RETURNING id
	`

	var savedID string
	err := r.db.QueryRow(ctx, query, id, email, passwordHash, otpCode, expiresAt).Scan(&savedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Conflict row exists but the DO UPDATE predicate rejected it,
			// i.e. the account is already verified.
			return xerrors.ErrUserAlreadyExists
		}
		return fmt.Errorf("failed to upsert signup otp: %w", err)
	}
	return nil
}

// RedeemSignupOTP flips is_verified and clears the OTP fields in one
// conditional UPDATE. The match on code and expiry lives inside the statement,
// so two concurrent verifications with the same code cannot both win.
//
// On failure the account is re-read only to classify the error; the
// classification read never grants anything.
func (r *UserRepository) RedeemSignupOTP(ctx context.Context, email, code string) error {
	result, err := r.db.Exec(ctx, `
		UPDATE users
		SET is_verified = TRUE, otp_code = NULL, otp_expires_at = NULL, updated_at = NOW()
		WHERE email = $1
		  AND is_verified = FALSE
		  AND otp_code = $2
		  AND otp_expires_at > NOW()
	`, email, code)
	if err != nil {
		return fmt.Errorf("failed to redeem signup otp: %w", err)
	}
	if result.RowsAffected() == 1 {
		return nil
	}

	var verified bool
	err = r.db.QueryRow(ctx, `SELECT is_verified FROM users WHERE email = $1`, email).Scan(&verified)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return xerrors.ErrUserNotFound
		}
		return fmt.Errorf("failed to classify otp failure: %w", err)
	}
	if verified {
		return xerrors.ErrAlreadyVerified
	}
	// Wrong code and expired code are deliberately indistinguishable.
	return xerrors.ErrInvalidOrExpiredOTP
}
