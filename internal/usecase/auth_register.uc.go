package usecase

import (
	"context"
	"log"
	"time"

	"github.com/tanmay-mevada/DStrA-sub001/internal/service/mailer"
	"github.com/tanmay-mevada/DStrA-sub001/pkg/xerrors"
)

// SignupStore is the slice of the user repository the registration flow needs.
type SignupStore interface {
	UpsertSignupOTP(ctx context.Context, id, email, passwordHash, otpCode string, expiresAt time.Time) error
	RedeemSignupOTP(ctx context.Context, email, code string) error
}

// OTPLimiter gates how often a single email may be sent a code.
type OTPLimiter interface {
	CanRequest(ctx context.Context, email, purpose string) error
}

// IDGen issues row ids. Satisfied by id.Snowflake.
type IDGen interface {
	Generate() string
}

type RegisterUsecase struct {
	users       SignupStore
	limiter     OTPLimiter
	mail        mailer.Sender
	ids         IDGen
	otpTTL      time.Duration
	mailTimeout time.Duration
}

func NewRegisterUsecase(users SignupStore, limiter OTPLimiter, mail mailer.Sender, ids IDGen, otpTTL, mailTimeout time.Duration) *RegisterUsecase {
	return &RegisterUsecase{
		users:       users,
		limiter:     limiter,
		mail:        mail,
		ids:         ids,
		otpTTL:      otpTTL,
		mailTimeout: mailTimeout,
	}
}

// IssueSignupOTP starts (or restarts) a signup: it stores the hashed password
// with a fresh 6-digit code and emails the code. The email is sent
// synchronously so the caller learns about delivery failure; the timeout keeps
// a wedged SMTP peer from holding the request forever.
func (uc *RegisterUsecase) IssueSignupOTP(ctx context.Context, email, password string) error {
	if err := validateEmail(email); err != nil {
		return err
	}
	if err := validatePassword(password); err != nil {
		return err
	}

	if uc.limiter != nil {
		if err := uc.limiter.CanRequest(ctx, email, "signup"); err != nil {
			return err
		}
	}

	hash, err := HashPassword(password)
	if err != nil {
		return err
	}

	code := randomOTPCode()
	expiresAt := time.Now().Add(uc.otpTTL)

	if err := uc.users.UpsertSignupOTP(ctx, uc.ids.Generate(), email, hash, code, expiresAt); err != nil {
		return err
	}

	mailCtx, cancel := context.WithTimeout(ctx, uc.mailTimeout)
	defer cancel()

	msgID, err := uc.mail.Send(mailCtx, mailer.SignupOTPMessage(email, code, uc.otpTTL))
	if err != nil {
		return err
	}
	log.Printf("[REGISTER] signup otp dispatched email=%s message_id=%s", email, msgID)
	return nil
}

// VerifySignupOTP redeems the code. All matching happens in one conditional
// update inside the store, so a code is consumed at most once.
func (uc *RegisterUsecase) VerifySignupOTP(ctx context.Context, email, code string) error {
	if err := validateEmail(email); err != nil {
		return err
	}
	if len(code) != 6 {
		// Malformed codes can never match; fail the same way a wrong code does.
		return xerrors.ErrInvalidOrExpiredOTP
	}
	return uc.users.RedeemSignupOTP(ctx, email, code)
}
