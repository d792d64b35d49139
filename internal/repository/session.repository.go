package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tanmay-mevada/DStrA-sub001/internal/domain"
	"github.com/tanmay-mevada/DStrA-sub001/pkg/xerrors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const maxSessionsPerUser = 5

type SessionRepository struct {
	db *pgxpool.Pool
}

func NewSessionRepository(db *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{db: db}
}

// CreateSession inserts a session row, evicting the least recently seen one
// when the account already holds maxSessionsPerUser active sessions.
func (r *SessionRepository) CreateSession(ctx context.Context, s *domain.Session) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		DELETE FROM sessions WHERE user_id = $1 AND expires_at <= NOW()
	`, s.UserID)
	if err != nil {
		return err
	}

	var count int
	err = tx.QueryRow(ctx, `
		SELECT COUNT(*) FROM sessions WHERE user_id = $1 AND is_active = TRUE
	`, s.UserID).Scan(&count)
	if err != nil {
		return err
	}

	if count >= maxSessionsPerUser {
		_, err = tx.Exec(ctx, `
			DELETE FROM sessions
			WHERE id = (
				SELECT id FROM sessions
				WHERE user_id = $1 AND is_active = TRUE
				ORDER BY last_seen_at ASC NULLS FIRST
				LIMIT 1
			)
		`, s.UserID)
		if err != nil {
			return err
		}
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO sessions (id, user_id, auth_token, device_id, ip_address, user_agent,
			is_active, last_seen_at, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, s.ID, s.UserID, s.AuthToken, s.DeviceID, s.IPAddress, s.UserAgent,
		s.IsActive, s.LastSeenAt, s.CreatedAt, s.ExpiresAt)
	if err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}

	return tx.Commit(ctx)
}

func (r *SessionRepository) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	s := new(domain.Session)
	err := r.db.QueryRow(ctx, `
		SELECT id, user_id, auth_token, device_id, ip_address, user_agent,
		       is_active, last_seen_at, created_at, expires_at
		FROM sessions
		WHERE auth_token = $1 AND is_active = TRUE AND expires_at > NOW()
	`, token).Scan(&s.ID, &s.UserID, &s.AuthToken, &s.DeviceID, &s.IPAddress,
		&s.UserAgent, &s.IsActive, &s.LastSeenAt, &s.CreatedAt, &s.ExpiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, xerrors.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to fetch session: %w", err)
	}
	return s, nil
}

func (r *SessionRepository) GetSessionsByUserID(ctx context.Context, userID string) ([]*domain.Session, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, auth_token, device_id, ip_address, user_agent,
		       is_active, last_seen_at, created_at, expires_at
		FROM sessions
		WHERE user_id = $1 AND is_active = TRUE AND expires_at > NOW()
		ORDER BY last_seen_at DESC NULLS LAST
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*domain.Session
	for rows.Next() {
		s := new(domain.Session)
		if err := rows.Scan(&s.ID, &s.UserID, &s.AuthToken, &s.DeviceID, &s.IPAddress,
			&s.UserAgent, &s.IsActive, &s.LastSeenAt, &s.CreatedAt, &s.ExpiresAt); err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

func (r *SessionRepository) TouchSession(ctx context.Context, token string, at time.Time) error {
	_, err := r.db.Exec(ctx, `
		UPDATE sessions SET last_seen_at = $2 WHERE auth_token = $1
	`, token, at)
	return err
}

func (r *SessionRepository) DeleteByToken(ctx context.Context, token string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM sessions WHERE auth_token = $1`, token)
	return err
}

func (r *SessionRepository) DeleteAllByUser(ctx context.Context, userID string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM sessions WHERE user_id = $1`, userID)
	return err
}
