package mailer

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"time"

	"github.com/tanmay-mevada/DStrA-sub001/internal/config"
	"github.com/tanmay-mevada/DStrA-sub001/internal/repository"
	"github.com/tanmay-mevada/DStrA-sub001/pkg/id"
	"github.com/tanmay-mevada/DStrA-sub001/pkg/xerrors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Message struct {
	To       string
	Subject  string
	HTMLBody string
	Category string // otp | password_reset | contact
}

// Sender dispatches a message and returns a message id. Implementations must
// respect the context deadline; a slow SMTP peer must not hold the caller.
type Sender interface {
	Send(ctx context.Context, msg Message) (string, error)
}

// SMTPSender sends over implicit-TLS SMTP (port 465) and records every
// attempt in the email_logs audit table.
type SMTPSender struct {
	cfg    config.SMTPConfig
	logs   *repository.EmailLogRepo
	logger *zap.Logger
}

func NewSMTPSender(cfg config.SMTPConfig, logs *repository.EmailLogRepo, logger *zap.Logger) *SMTPSender {
	return &SMTPSender{cfg: cfg, logs: logs, logger: logger}
}

func (s *SMTPSender) Send(ctx context.Context, msg Message) (string, error) {
	msgID := uuid.New().String()
	start := time.Now()

	s.logger.Info("sending email",
		zap.String("message_id", msgID),
		zap.String("recipient", msg.To),
		zap.String("subject", msg.Subject),
		zap.String("category", msg.Category))

	err := s.send(ctx, msg)
	duration := time.Since(start)

	status := "sent"
	var errMsg *string
	if err != nil {
		status = "failed"
		e := err.Error()
		errMsg = &e
		s.logger.Error("email send failed",
			zap.String("message_id", msgID),
			zap.String("recipient", msg.To),
			zap.Duration("duration", duration),
			zap.Error(err))
	} else {
		s.logger.Info("email sent",
			zap.String("message_id", msgID),
			zap.String("recipient", msg.To),
			zap.Duration("duration", duration))
	}

	if s.logs != nil {
		logCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		logErr := s.logs.Create(logCtx, &repository.EmailLog{
			ID:           id.GenerateULID("eml"),
			Recipient:    msg.To,
			Subject:      msg.Subject,
			Category:     msg.Category,
			Status:       status,
			ErrorMessage: errMsg,
			SentAt:       time.Now(),
		})
		if logErr != nil {
			s.logger.Warn("failed to write email log", zap.Error(logErr))
		}
	}

	if err != nil {
		return "", fmt.Errorf("%w: %v", xerrors.ErrNotificationFailed, err)
	}
	return msgID, nil
}

func (s *SMTPSender) send(ctx context.Context, msg Message) error {
	from := s.cfg.From
	if from == "" {
		from = s.cfg.Username
	}

	raw := []byte(
		fmt.Sprintf("From: %s\r\n", from) +
			fmt.Sprintf("To: %s\r\n", msg.To) +
			fmt.Sprintf("Subject: %s\r\n", msg.Subject) +
			"MIME-Version: 1.0\r\n" +
			"Content-Type: text/html; charset=\"utf-8\"\r\n" +
			"\r\n" +
			msg.HTMLBody,
	)

	serverAddr := s.cfg.Host + ":" + s.cfg.Port

	dialer := &net.Dialer{}
	if deadline, ok := ctx.Deadline(); ok {
		dialer.Deadline = deadline
	}

	// Implicit TLS for port 465
	conn, err := tls.DialWithDialer(dialer, "tcp", serverAddr, &tls.Config{ServerName: s.cfg.Host})
	if err != nil {
		return err
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	client, err := smtp.NewClient(conn, s.cfg.Host)
	if err != nil {
		return err
	}
	defer client.Quit()

	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	if err := client.Auth(auth); err != nil {
		return err
	}

	if err := client.Mail(from); err != nil {
		return err
	}
	if err := client.Rcpt(msg.To); err != nil {
		return err
	}

	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(raw); err != nil {
		return err
	}
	return w.Close()
}
