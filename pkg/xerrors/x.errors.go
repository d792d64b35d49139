package xerrors

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

func ParsePGErrorCode(err error) string {
	if pgErr, ok := err.(*pgconn.PgError); ok {
		return pgErr.Code // e.g. 23505 for unique_violation
	}
	return "unknown"
}

// Generic
var (
	ErrInvalidRequest = errors.New("invalid request")
	ErrInternalServer = errors.New("internal server error")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrNotFound       = errors.New("not found")
)

// Registration / Login
var (
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailAlreadyInUse  = errors.New("email already in use")

	ErrEmailRequired    = errors.New("email required")
	ErrPasswordRequired = errors.New("password required")

	ErrInvalidEmailFormat = errors.New("invalid email format")
)

// Verification / OTP
var (
	ErrEmailNotVerified    = errors.New("email not verified")
	ErrAlreadyVerified     = errors.New("email already verified")
	ErrInvalidOrExpiredOTP = errors.New("invalid or expired otp")
	ErrTooManyOTPRequests  = errors.New("too many otp requests")
	ErrNotificationFailed  = errors.New("failed to send notification")
)

// Password reset
var (
	ErrInvalidOrExpiredToken = errors.New("invalid or expired token")
)

// Social auth
var (
	ErrSocialAccountOnly = errors.New("social account only")
	ErrInvalidIDToken    = errors.New("invalid id token")
)

// Password rules
var (
	ErrPasswordTooShort = errors.New("password must be at least 8 characters long")
	ErrPasswordTooLong  = errors.New("password must not exceed 100 characters")
)

// Session
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrInvalidToken    = errors.New("invalid token")
	ErrExpiredToken    = errors.New("expired token")
)

// Code execution
var (
	ErrJudgeUnavailable    = errors.New("code execution service unavailable")
	ErrUnsupportedLanguage = errors.New("unsupported language")
)
