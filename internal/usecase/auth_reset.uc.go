package usecase

import (
	"context"
	"errors"
	"log"
	"net/url"
	"time"

	"github.com/tanmay-mevada/DStrA-sub001/internal/service/mailer"
	"github.com/tanmay-mevada/DStrA-sub001/pkg/xerrors"
)

// ResetStore is the slice of the user repository the reset flow needs.
type ResetStore interface {
	SetResetToken(ctx context.Context, email, token string, expiresAt time.Time) error
	GetEmailByResetToken(ctx context.Context, token string) (string, error)
	RedeemResetToken(ctx context.Context, token, newHash string) (string, error)
}

type ResetUsecase struct {
	users       ResetStore
	mail        mailer.Sender
	baseURL     string
	tokenTTL    time.Duration
	mailTimeout time.Duration
}

func NewResetUsecase(users ResetStore, mail mailer.Sender, baseURL string, tokenTTL, mailTimeout time.Duration) *ResetUsecase {
	return &ResetUsecase{
		users:       users,
		mail:        mail,
		baseURL:     baseURL,
		tokenTTL:    tokenTTL,
		mailTimeout: mailTimeout,
	}
}

// RequestReset stores a fresh reset token and emails the link. An unknown
// email returns nil all the same: the response must not reveal whether an
// account exists. Delivery failure for a known account is still surfaced,
// since the user is waiting for a mail that will never come.
func (uc *ResetUsecase) RequestReset(ctx context.Context, email string) error {
	if err := validateEmail(email); err != nil {
		return err
	}

	token, err := GenerateResetToken()
	if err != nil {
		return err
	}

	err = uc.users.SetResetToken(ctx, email, token, time.Now().Add(uc.tokenTTL))
	if err != nil {
		if errors.Is(err, xerrors.ErrUserNotFound) {
			log.Printf("[RESET] request for unknown email, suppressed")
			return nil
		}
		return err
	}

	link := uc.baseURL + "/auth/reset-password?token=" + url.QueryEscape(token)

	mailCtx, cancel := context.WithTimeout(ctx, uc.mailTimeout)
	defer cancel()

	msgID, err := uc.mail.Send(mailCtx, mailer.ResetLinkMessage(email, link, uc.tokenTTL))
	if err != nil {
		return err
	}
	log.Printf("[RESET] reset link dispatched email=%s message_id=%s", email, msgID)
	return nil
}

// ValidateResetToken is the read-only probe the reset form calls on load.
// It never consumes the token.
func (uc *ResetUsecase) ValidateResetToken(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", xerrors.ErrInvalidOrExpiredToken
	}
	return uc.users.GetEmailByResetToken(ctx, token)
}

// CompleteReset redeems the token against the new password. The store's
// conditional update guarantees single use.
func (uc *ResetUsecase) CompleteReset(ctx context.Context, token, newPassword string) error {
	if token == "" {
		return xerrors.ErrInvalidOrExpiredToken
	}
	if err := validatePassword(newPassword); err != nil {
		return err
	}

	hash, err := HashPassword(newPassword)
	if err != nil {
		return err
	}

	email, err := uc.users.RedeemResetToken(ctx, token, hash)
	if err != nil {
		return err
	}
	log.Printf("[RESET] password reset completed email=%s", email)
	return nil
}
