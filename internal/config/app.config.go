package config

import (
	"os"
	"strconv"
	"time"
)

type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

type AppConfig struct {
	HTTPAddr  string
	RedisAddr string
	RedisPass string

	GoogleClientID string

	JWTPrivateKeyPath string
	JWTPublicKeyPath  string
	JWTIssuer         string
	JWTAudience       string
	SessionTTL        time.Duration

	OTPTTL          time.Duration
	OTPWindow       time.Duration
	OTPMaxPerWindow int
	OTPCooldown     time.Duration

	ResetTokenTTL time.Duration
	MailTimeout   time.Duration

	SMTP         SMTPConfig
	ContactInbox string

	JudgeURL     string
	JudgeAPIKey  string
	JudgeTimeout time.Duration

	BaseURL string
}

func Load() AppConfig {
	return AppConfig{
		HTTPAddr:  getEnv("HTTP_ADDR", ":8080"),
		RedisAddr: getEnv("REDIS_ADDR", "redis:6379"),
		RedisPass: getEnv("REDIS_PASS", ""),

		GoogleClientID: getEnv("GOOGLE_CLIENT_ID", ""),

		JWTPrivateKeyPath: getEnv("JWT_PRIVATE_KEY_PATH", "secrets/jwt_private.pem"),
		JWTPublicKeyPath:  getEnv("JWT_PUBLIC_KEY_PATH", "secrets/jwt_public.pem"),
		JWTIssuer:         getEnv("JWT_ISSUER", "dstra"),
		JWTAudience:       getEnv("JWT_AUDIENCE", "dstra-web"),
		SessionTTL:        getDuration("SESSION_TTL", 24*time.Hour),

		OTPTTL:          getDuration("OTP_TTL", 10*time.Minute),
		OTPWindow:       getDuration("OTP_WINDOW", 10*time.Minute),
		OTPMaxPerWindow: getInt("OTP_MAX_PER_WINDOW", 5),
		OTPCooldown:     getDuration("OTP_COOLDOWN", 45*time.Second),

		ResetTokenTTL: getDuration("RESET_TOKEN_TTL", 15*time.Minute),
		MailTimeout:   getDuration("MAIL_TIMEOUT", 8*time.Second),

		SMTP: SMTPConfig{
			Host:     getEnv("SMTP_HOST", ""),
			Port:     getEnv("SMTP_PORT", "465"),
			Username: getEnv("SMTP_USER", ""),
			Password: getEnv("SMTP_PASS", ""),
			From:     getEnv("SMTP_FROM", "no-reply@dstra.app"),
		},
		ContactInbox: getEnv("CONTACT_INBOX", "support@dstra.app"),

		JudgeURL:     getEnv("JUDGE_URL", "https://judge0-ce.p.rapidapi.com"),
		JudgeAPIKey:  getEnv("JUDGE_API_KEY", ""),
		JudgeTimeout: getDuration("JUDGE_TIMEOUT", 20*time.Second),

		BaseURL: getEnv("BASE_URL", "http://localhost:3000"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil && i > 0 {
			return i
		}
	}
	return fallback
}
