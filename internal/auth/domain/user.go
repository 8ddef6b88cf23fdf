package domain

import "time"

type User struct {
	ID                  string
	Username            string
	Email               string
	FullName            string
	PasswordHash        string // argon2 encoded
	Enabled             bool
	AccountLocked       bool
	FailedLoginAttempts int
	LastLoginAt         *time.Time // nullable, stamped on successful login
	TwoFAEnabled        bool
	TwoFASecret         *string // TOTP secret (nullable, base32 encoded)
	Roles               []string
	CurrentRefreshJTI   *string // jti of the most recently issued refresh token
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// Sanitized returns a copy safe to hand past the service boundary: the
// password hash and TOTP secret are stripped.
func (u User) Sanitized() User {
	u.PasswordHash = ""
	u.TwoFASecret = nil
	u.CurrentRefreshJTI = nil
	return u
}
