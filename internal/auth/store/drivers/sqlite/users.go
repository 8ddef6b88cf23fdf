package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/vedakart/vedakart/internal/auth/domain"
	"github.com/vedakart/vedakart/internal/auth/store"
)

type usersRepo struct {
	db *sql.DB
}

const userColumns = `id, username, email, full_name, password_hash, enabled,
	account_locked, failed_login_attempts, last_login_at, twofa_enabled,
	twofa_secret, roles, current_refresh_jti, created_at, updated_at`

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return scanUser(row)
}

func (r *usersRepo) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = ?`, username)
	return scanUser(row)
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (
			id, username, email, full_name, password_hash, enabled,
			account_locked, failed_login_attempts, twofa_enabled,
			twofa_secret, roles, current_refresh_jti
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Username, u.Email, u.FullName, u.PasswordHash, u.Enabled,
		u.AccountLocked, u.FailedLoginAttempts, u.TwoFAEnabled,
		mapOptionalString(u.TwoFASecret), joinRoles(u.Roles),
		mapOptionalString(u.CurrentRefreshJTI),
	)
	if err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return store.ErrAlreadyExists
	}
	return err
}

// RecordLoginFailure increments the failure counter and flips account_locked
// in the same statement once the counter reaches the threshold. A single
// UPDATE means concurrent failures cannot lose increments or race past the
// threshold without locking.
func (r *usersRepo) RecordLoginFailure(ctx context.Context, userID string, threshold int) (int, bool, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE users
		SET failed_login_attempts = failed_login_attempts + 1,
		    account_locked = CASE
		        WHEN failed_login_attempts + 1 >= ? THEN 1
		        ELSE account_locked
		    END,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
		RETURNING failed_login_attempts, account_locked`,
		threshold, userID,
	)

	var attempts int
	var locked bool
	if err := row.Scan(&attempts, &locked); err != nil {
		return 0, false, mapNotFound(err)
	}
	return attempts, locked, nil
}

func (r *usersRepo) RecordLoginSuccess(ctx context.Context, userID string) error {
	return r.exec(ctx, `
		UPDATE users
		SET failed_login_attempts = 0,
		    last_login_at = CURRENT_TIMESTAMP,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`, userID)
}

func (r *usersRepo) SetTwoFASecret(ctx context.Context, userID string, secret string) error {
	return r.exec(ctx, `
		UPDATE users
		SET twofa_secret = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`, secret, userID)
}

func (r *usersRepo) EnableTwoFA(ctx context.Context, userID string) error {
	return r.exec(ctx, `
		UPDATE users
		SET twofa_enabled = 1, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`, userID)
}

func (r *usersRepo) DisableTwoFA(ctx context.Context, userID string) error {
	return r.exec(ctx, `
		UPDATE users
		SET twofa_enabled = 0, twofa_secret = NULL, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`, userID)
}

func (r *usersRepo) SetCurrentRefreshJTI(ctx context.Context, userID string, jti string) error {
	return r.exec(ctx, `
		UPDATE users
		SET current_refresh_jti = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`, jti, userID)
}

// exec runs an UPDATE keyed by user id and maps a zero-row result to
// store.ErrNotFound.
func (r *usersRepo) exec(ctx context.Context, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func scanUser(row *sql.Row) (domain.User, error) {
	var (
		u           domain.User
		lastLoginAt sql.NullTime
		twofaSecret sql.NullString
		refreshJTI  sql.NullString
		roles       string
	)

	err := row.Scan(
		&u.ID, &u.Username, &u.Email, &u.FullName, &u.PasswordHash,
		&u.Enabled, &u.AccountLocked, &u.FailedLoginAttempts, &lastLoginAt,
		&u.TwoFAEnabled, &twofaSecret, &roles, &refreshJTI,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}

	u.LastLoginAt = mapNullTimePtr(lastLoginAt)
	u.TwoFASecret = mapNullStringPtr(twofaSecret)
	u.CurrentRefreshJTI = mapNullStringPtr(refreshJTI)
	u.Roles = splitRoles(roles)
	return u, nil
}
