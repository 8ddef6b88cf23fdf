package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/vedakart/vedakart/internal/auth/domain"
	"github.com/vedakart/vedakart/internal/auth/store"
	"github.com/vedakart/vedakart/pkg/cryptox"
	"github.com/vedakart/vedakart/pkg/slogx"
)

var (
	// ErrInvalidCredentials is the collapsed outcome for unknown user,
	// wrong password, disabled account, and locked account.
	ErrInvalidCredentials = errors.New("invalid_credentials")

	// ErrTwoFARequired means the password checked out but the account
	// requires a TOTP code that was not supplied.
	ErrTwoFARequired = errors.New("twofa_required")

	// ErrTwoFAInvalid means a wrong or expired TOTP code.
	ErrTwoFAInvalid = errors.New("twofa_invalid")

	// ErrTwoFANotSetUp means verification was attempted before enrollment.
	ErrTwoFANotSetUp = errors.New("twofa_not_set_up")

	// ErrInvalidRefresh covers every refresh failure: malformed, expired,
	// wrong purpose, unknown user, disabled or locked account, and a
	// superseded token.
	ErrInvalidRefresh = errors.New("invalid_refresh_token")
)

// SessionService orchestrates the session lifecycle: login, refresh
// rotation, and two-factor enrollment. It re-reads the store on every
// operation and never caches user records across calls.
type SessionService struct {
	Credentials *CredentialService
	TOTP        *TOTPService
	Tokens      *TokenService
	Store       store.Store
}

// Login authenticates the user and issues a token pair. All credential
// failures collapse into ErrInvalidCredentials; only the two 2FA outcomes
// are distinguishable, and both presuppose a correct password.
func (s *SessionService) Login(ctx context.Context, username, password, twoFACode string) (domain.LoginResult, error) {
	l := slogx.FromContext(ctx)

	user, err := s.Credentials.VerifyCredentials(ctx, username, password)
	if err != nil {
		switch {
		case errors.Is(err, ErrUserNotFound),
			errors.Is(err, ErrAccountDisabled),
			errors.Is(err, ErrAccountLocked),
			errors.Is(err, ErrInvalidPassword):
			l.Info("login rejected", slog.String("username", username), slog.String("reason", err.Error()))
			return domain.LoginResult{}, ErrInvalidCredentials
		default:
			return domain.LoginResult{}, err
		}
	}

	if user.TwoFAEnabled {
		if twoFACode == "" {
			l.Info("login needs 2FA code", slog.String("user_id", user.ID))
			return domain.LoginResult{}, ErrTwoFARequired
		}
		if user.TwoFASecret == nil || !s.TOTP.VerifyCode(twoFACode, *user.TwoFASecret) {
			l.Info("login 2FA code rejected", slog.String("user_id", user.ID))
			return domain.LoginResult{}, ErrTwoFAInvalid
		}
	}

	result, err := s.issuePair(ctx, user)
	if err != nil {
		return domain.LoginResult{}, err
	}

	l.Info("login succeeded",
		slog.String("user_id", user.ID),
		slog.Bool("twofa", user.TwoFAEnabled),
		slog.String("refresh_fp", cryptox.FingerprintToken(result.Tokens.RefreshToken)),
	)
	return result, nil
}

// Refresh rotates a refresh token into a fresh pair. The presented token
// must carry the refresh purpose and must be the most recently issued one
// for the account: issuing a new pair supersedes it, so a replayed older
// token fails even though its signature is still valid.
func (s *SessionService) Refresh(ctx context.Context, refreshToken string) (domain.LoginResult, error) {
	l := slogx.FromContext(ctx)

	claims, err := s.Tokens.VerifyRefresh(refreshToken)
	if err != nil {
		l.Info("refresh token rejected",
			slog.String("reason", err.Error()),
			slog.String("token_fp", cryptox.FingerprintToken(refreshToken)),
		)
		return domain.LoginResult{}, ErrInvalidRefresh
	}

	user, err := s.Store.Users().GetUserByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.LoginResult{}, ErrInvalidRefresh
		}
		return domain.LoginResult{}, fmt.Errorf("failed to load user: %w", err)
	}

	// Account state is re-checked on every rotation, so disabling or
	// locking an account also cuts its refresh chain.
	if !user.Enabled || user.AccountLocked {
		l.Info("refresh rejected for inactive account", slog.String("user_id", user.ID))
		return domain.LoginResult{}, ErrInvalidRefresh
	}

	if user.CurrentRefreshJTI == nil || *user.CurrentRefreshJTI != claims.ID {
		l.Warn("superseded refresh token replayed",
			slog.String("user_id", user.ID),
			slog.String("token_fp", cryptox.FingerprintToken(refreshToken)),
		)
		return domain.LoginResult{}, ErrInvalidRefresh
	}

	user.PasswordHash = ""
	result, err := s.issuePair(ctx, user)
	if err != nil {
		return domain.LoginResult{}, err
	}

	l.Info("refresh succeeded",
		slog.String("user_id", user.ID),
		slog.String("refresh_fp", cryptox.FingerprintToken(result.Tokens.RefreshToken)),
	)
	return result, nil
}

// issuePair mints a token pair and records its refresh jti as the user's
// current one, superseding any earlier refresh token.
func (s *SessionService) issuePair(ctx context.Context, user domain.User) (domain.LoginResult, error) {
	pair, refreshJTI, err := s.Tokens.MintPair(user, time.Now())
	if err != nil {
		return domain.LoginResult{}, err
	}

	if err := s.Store.Users().SetCurrentRefreshJTI(ctx, user.ID, refreshJTI); err != nil {
		return domain.LoginResult{}, fmt.Errorf("failed to record refresh jti: %w", err)
	}

	return domain.LoginResult{
		Tokens: pair,
		User:   user.Sanitized(),
	}, nil
}

// EnableTwoFA starts enrollment: it generates a secret, persists it on the
// user row, and returns the provisioning material. TwoFAEnabled stays
// false until VerifyTwoFA confirms a code, so a half-finished enrollment
// never locks anyone out.
func (s *SessionService) EnableTwoFA(ctx context.Context, userID string) (domain.TwoFASetup, error) {
	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.TwoFASetup{}, ErrUserNotFound
		}
		return domain.TwoFASetup{}, fmt.Errorf("failed to load user: %w", err)
	}

	setup, err := s.TOTP.Enroll(user.Email)
	if err != nil {
		return domain.TwoFASetup{}, err
	}

	if err := s.Store.Users().SetTwoFASecret(ctx, user.ID, setup.Secret); err != nil {
		return domain.TwoFASetup{}, fmt.Errorf("failed to store 2FA secret: %w", err)
	}

	slogx.FromContext(ctx).Info("2FA enrollment started", slog.String("user_id", user.ID))
	return setup, nil
}

// VerifyTwoFA confirms enrollment with a code from the authenticator app.
// A valid code flips TwoFAEnabled on; a wrong one returns false without
// mutating anything, so the user can retry until they get it right.
func (s *SessionService) VerifyTwoFA(ctx context.Context, userID, code string) (bool, error) {
	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return false, ErrUserNotFound
		}
		return false, fmt.Errorf("failed to load user: %w", err)
	}

	if user.TwoFASecret == nil || *user.TwoFASecret == "" {
		return false, ErrTwoFANotSetUp
	}

	if !s.TOTP.VerifyCode(code, *user.TwoFASecret) {
		return false, nil
	}

	if err := s.Store.Users().EnableTwoFA(ctx, user.ID); err != nil {
		return false, fmt.Errorf("failed to enable 2FA: %w", err)
	}

	slogx.FromContext(ctx).Info("2FA enabled", slog.String("user_id", user.ID))
	return true, nil
}

// DisableTwoFA unconditionally turns 2FA off and discards the secret. It
// also cancels a pending enrollment.
func (s *SessionService) DisableTwoFA(ctx context.Context, userID string) error {
	if err := s.Store.Users().DisableTwoFA(ctx, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to disable 2FA: %w", err)
	}

	slogx.FromContext(ctx).Info("2FA disabled", slog.String("user_id", userID))
	return nil
}

// Logout records the end of a session for the audit trail. Tokens are not
// revoked server-side; they simply age out, and the client discards its
// stored pair.
func (s *SessionService) Logout(ctx context.Context, userID string) {
	slogx.FromContext(ctx).Info("logout", slog.String("user_id", userID))
}
