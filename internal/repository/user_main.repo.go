package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/tanmay-mevada/DStrA-sub001/internal/domain"
	"github.com/tanmay-mevada/DStrA-sub001/pkg/xerrors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `
	id, email, password_hash, role, is_verified,
	otp_code, otp_expires_at, reset_token, reset_expires_at,
	provider, provider_id, last_seen_at, recent_paths, created_at, updated_at
`

func scanUser(row pgx.Row) (*domain.User, error) {
	u := new(domain.User)
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.IsVerified,
		&u.OTPCode, &u.OTPExpiresAt, &u.ResetToken, &u.ResetExpiresAt,
		&u.Provider, &u.ProviderID, &u.LastSeenAt, &u.RecentPaths,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, xerrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	return u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(r.db.QueryRow(ctx, query, email))
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.db.QueryRow(ctx, query, id))
}

// GetRole reads the role column alone. Session issuance uses this so a role
// change by an admin is picked up on the very next login, never a stale claim.
func (r *UserRepository) GetRole(ctx context.Context, userID string) (string, error) {
	var role string
	err := r.db.QueryRow(ctx, `SELECT role FROM users WHERE id = $1`, userID).Scan(&role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", xerrors.ErrUserNotFound
		}
		return "", fmt.Errorf("failed to fetch role for user %s: %w", userID, err)
	}
	return role, nil
}

// CreateFederated provisions an account on first federated sign-in:
// implicitly verified, empty credential hash, default role student.
// If the email already exists the existing row wins and only the provider
// linkage is filled in when missing.
func (r *UserRepository) CreateFederated(ctx context.Context, id, email, provider, providerID string) (*domain.User, error) {
	query := `
		INSERT INTO users (id, email, password_hash, role, is_verified, provider, provider_id)
		VALUES ($1, $2, '', $3, TRUE, $4, $5)
		ON CONFLICT (email) DO UPDATE SET
			provider    = COALESCE(users.provider, EXCLUDED.provider),
			provider_id = COALESCE(users.provider_id, EXCLUDED.provider_id),
			is_verified = TRUE,
			updated_at  = NOW()
		RETURNING ` + userColumns
	return scanUser(r.db.QueryRow(ctx, query, id, email, domain.RoleStudent, provider, providerID))
}

// ListUsers returns accounts for the admin user list, newest first.
func (r *UserRepository) ListUsers(ctx context.Context, limit, offset int) ([]*domain.User, error) {
	query := `
		SELECT id, email, '', role, is_verified,
		       NULL, NULL, NULL, NULL,
		       provider, provider_id, last_seen_at, recent_paths, created_at, updated_at
		FROM users
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *UserRepository) UpdateRole(ctx context.Context, userID, role string) error {
	result, err := r.db.Exec(ctx, `
		UPDATE users SET role = $1, updated_at = NOW() WHERE id = $2
	`, role, userID)
	if err != nil {
		return fmt.Errorf("failed to update role: %w", err)
	}
	if result.RowsAffected() == 0 {
		return xerrors.ErrUserNotFound
	}
	return nil
}

// TouchActivity stamps last_seen_at and prepends the request path to the
// bounded activity trail. Advisory only; callers fire-and-forget.
func (r *UserRepository) TouchActivity(ctx context.Context, userID, path string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE users
		SET last_seen_at = NOW(),
		    recent_paths = (array_prepend($2::text, recent_paths))[1:50]
		WHERE id = $1
	`, userID, path)
	return err
}
