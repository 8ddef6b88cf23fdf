package store

import (
	"context"
	"errors"

	"github.com/vedakart/vedakart/internal/auth/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite today,
// postgres later) implement this. Sub-repositories keep concerns tidy and
// testable.
type Store interface {
	Users() Users

	ApplyMigrations() error

	// Close releases any underlying resources (optional for sqlite).
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByUsername is used during login.
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by app via ULID).
	CreateUser(ctx context.Context, u domain.User) error

	// RecordLoginFailure increments the failure counter and, when the
	// counter reaches threshold, flips account_locked in the same
	// statement. Returns the new counter and lock state. Concurrent
	// callers never lose an increment.
	RecordLoginFailure(ctx context.Context, userID string, threshold int) (attempts int, locked bool, err error)

	// RecordLoginSuccess resets the failure counter and stamps last_login_at.
	RecordLoginSuccess(ctx context.Context, userID string) error

	// SetTwoFASecret stores a pending TOTP secret without enabling 2FA.
	SetTwoFASecret(ctx context.Context, userID string, secret string) error

	// EnableTwoFA marks 2FA as enabled once enrollment is confirmed.
	EnableTwoFA(ctx context.Context, userID string) error

	// DisableTwoFA disables 2FA and clears the secret.
	DisableTwoFA(ctx context.Context, userID string) error

	// SetCurrentRefreshJTI records the jti of the most recently issued
	// refresh token, superseding any earlier one.
	SetCurrentRefreshJTI(ctx context.Context, userID string, jti string) error
}
