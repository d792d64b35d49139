package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EmailLog is an audit row for every dispatch attempt, sent or failed.
type EmailLog struct {
	ID           string
	Recipient    string
	Subject      string
	Category     string
	Status       string // sent | failed
	ErrorMessage *string
	SentAt       time.Time
}

type EmailLogRepo struct {
	db *pgxpool.Pool
}

func NewEmailLogRepo(db *pgxpool.Pool) *EmailLogRepo {
	return &EmailLogRepo{db: db}
}

func (r *EmailLogRepo) Create(ctx context.Context, l *EmailLog) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO email_logs (id, recipient, subject, category, status, error_message, sent_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, l.ID, l.Recipient, l.Subject, l.Category, l.Status, l.ErrorMessage, l.SentAt)
	return err
}
