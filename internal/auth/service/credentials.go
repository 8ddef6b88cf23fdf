package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/vedakart/vedakart/internal/auth/domain"
	"github.com/vedakart/vedakart/internal/auth/store"
	"github.com/vedakart/vedakart/pkg/cryptox"
	"github.com/vedakart/vedakart/pkg/slogx"
)

// DefaultLockoutThreshold is the number of consecutive password failures
// after which an account locks.
const DefaultLockoutThreshold = 5

// Internal credential outcomes. The HTTP layer collapses all of these into
// one externally visible "invalid credentials" so callers cannot enumerate
// accounts or probe account state.
var (
	ErrUserNotFound    = errors.New("user_not_found")
	ErrAccountDisabled = errors.New("account_disabled")
	ErrAccountLocked   = errors.New("account_locked")
	ErrInvalidPassword = errors.New("invalid_password")
)

// CredentialService checks a username/password pair against the store and
// maintains the failure counter and lockout state.
type CredentialService struct {
	Store store.Store

	// LockoutThreshold is the failure count at which the account locks.
	// Zero means DefaultLockoutThreshold.
	LockoutThreshold int
}

func (s *CredentialService) threshold() int {
	if s.LockoutThreshold > 0 {
		return s.LockoutThreshold
	}
	return DefaultLockoutThreshold
}

// VerifyCredentials authenticates the username/password pair. Locked and
// disabled accounts are rejected before the password is compared, so a
// failure on them never advances the counter. A wrong password records an
// atomic failure; a correct one resets the counter and stamps the login
// time. The returned user has the password hash stripped but keeps the 2FA
// fields the caller needs next.
func (s *CredentialService) VerifyCredentials(ctx context.Context, username, password string) (domain.User, error) {
	l := slogx.FromContext(ctx)

	user, err := s.Store.Users().GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, fmt.Errorf("failed to load user: %w", err)
	}

	// State checks come before the password comparison: a locked or
	// disabled account rejects even the correct password, and never
	// advances the failure counter.
	if !user.Enabled {
		return domain.User{}, ErrAccountDisabled
	}
	if user.AccountLocked {
		return domain.User{}, ErrAccountLocked
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		attempts, locked, ferr := s.Store.Users().RecordLoginFailure(ctx, user.ID, s.threshold())
		if ferr != nil {
			return domain.User{}, fmt.Errorf("failed to record login failure: %w", ferr)
		}

		l.Info("password check failed",
			slog.String("user_id", user.ID),
			slog.Int("failed_attempts", attempts),
			slog.Bool("locked", locked),
		)
		return domain.User{}, ErrInvalidPassword
	}

	if err := s.Store.Users().RecordLoginSuccess(ctx, user.ID); err != nil {
		return domain.User{}, fmt.Errorf("failed to record login success: %w", err)
	}

	user.FailedLoginAttempts = 0
	user.PasswordHash = ""
	return user, nil
}
