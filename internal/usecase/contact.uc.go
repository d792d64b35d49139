package usecase

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/tanmay-mevada/DStrA-sub001/internal/service/mailer"
	"github.com/tanmay-mevada/DStrA-sub001/pkg/xerrors"
)

type ContactUsecase struct {
	mail        mailer.Sender
	inbox       string
	mailTimeout time.Duration
}

func NewContactUsecase(mail mailer.Sender, inbox string, mailTimeout time.Duration) *ContactUsecase {
	return &ContactUsecase{mail: mail, inbox: inbox, mailTimeout: mailTimeout}
}

// Send forwards a contact-form submission to the site inbox.
func (uc *ContactUsecase) Send(ctx context.Context, name, email, message string) error {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(message) == "" {
		return xerrors.ErrInvalidRequest
	}
	if err := validateEmail(email); err != nil {
		return err
	}
	if len(message) > 5000 {
		return xerrors.ErrInvalidRequest
	}

	mailCtx, cancel := context.WithTimeout(ctx, uc.mailTimeout)
	defer cancel()

	msgID, err := uc.mail.Send(mailCtx, mailer.ContactMessage(uc.inbox, name, email, message))
	if err != nil {
		return err
	}
	log.Printf("[CONTACT] message forwarded from=%s message_id=%s", email, msgID)
	return nil
}
