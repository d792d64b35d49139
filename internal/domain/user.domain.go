package domain

import "time"

const (
	RoleAdmin   = "admin"
	RoleStudent = "student"
)

// User is the single account record per email. OTP and reset-token fields
// are populated only while the corresponding flow is pending.
type User struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"` // empty for federated-only accounts
	Role         string     `json:"role"`
	IsVerified   bool       `json:"is_verified"`

	OTPCode      *string    `json:"-"`
	OTPExpiresAt *time.Time `json:"-"`

	ResetToken     *string    `json:"-"`
	ResetExpiresAt *time.Time `json:"-"`

	Provider   *string `json:"provider,omitempty"`
	ProviderID *string `json:"-"`

	LastSeenAt  *time.Time `json:"last_seen_at,omitempty"`
	RecentPaths []string   `json:"recent_paths,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasPassword reports whether password login is possible at all for this
// account. Federated-only accounts carry an empty hash.
func (u *User) HasPassword() bool {
	return u.PasswordHash != ""
}
