package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/vedakart/vedakart/internal/auth/domain"
	"github.com/vedakart/vedakart/pkg/jwtx"
)

var (
	// ErrTokenInvalid covers malformed tokens, bad signatures, wrong
	// issuer, and wrong purpose.
	ErrTokenInvalid = errors.New("token_invalid")

	// ErrTokenExpired is distinct so callers can tell a stale-but-genuine
	// token from a forged one.
	ErrTokenExpired = errors.New("token_expired")
)

// TokenService mints and verifies the signed token pairs for the session
// lifecycle. Both halves of the pair are JWTs from the same signer; they
// differ in TTL and in the purpose claim.
type TokenService struct {
	Signer     jwtx.Signer
	Verifier   jwtx.Verifier
	Issuer     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

func (s *TokenService) accessTTL() time.Duration {
	if s.AccessTTL > 0 {
		return s.AccessTTL
	}
	return jwtx.DefaultAccessTokenTTL
}

func (s *TokenService) refreshTTL() time.Duration {
	if s.RefreshTTL > 0 {
		return s.RefreshTTL
	}
	return jwtx.DefaultRefreshTokenTTL
}

// MintPair issues a fresh access/refresh pair for the user. The returned
// refreshJTI identifies the refresh token so the caller can record it as
// the user's current one.
func (s *TokenService) MintPair(user domain.User, now time.Time) (domain.TokenPair, string, error) {
	access := jwtx.NewClaims(
		user.ID, jwtx.PurposeAccess,
		user.Username, user.Email, user.Roles,
		s.accessTTL(), s.Issuer, now,
	)
	accessToken, err := s.Signer.Sign(access)
	if err != nil {
		return domain.TokenPair{}, "", fmt.Errorf("failed to sign access token: %w", err)
	}

	refresh := jwtx.NewClaims(
		user.ID, jwtx.PurposeRefresh,
		user.Username, user.Email, user.Roles,
		s.refreshTTL(), s.Issuer, now,
	)
	refreshToken, err := s.Signer.Sign(refresh)
	if err != nil {
		return domain.TokenPair{}, "", fmt.Errorf("failed to sign refresh token: %w", err)
	}

	return domain.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    s.accessTTL(),
	}, refresh.ID, nil
}

// VerifyAccess validates an access token and returns its claims.
func (s *TokenService) VerifyAccess(token string) (jwtx.Claims, error) {
	return s.verify(token, jwtx.PurposeAccess)
}

// VerifyRefresh validates a refresh token and returns its claims. An
// access token presented here fails with ErrTokenInvalid: the purpose
// claim discriminates the two even though both carry valid signatures.
func (s *TokenService) VerifyRefresh(token string) (jwtx.Claims, error) {
	return s.verify(token, jwtx.PurposeRefresh)
}

func (s *TokenService) verify(token, purpose string) (jwtx.Claims, error) {
	claims, err := s.Verifier.Verify(token)
	if err != nil {
		if errors.Is(err, jwtx.ErrExpired) {
			return jwtx.Claims{}, ErrTokenExpired
		}
		return jwtx.Claims{}, ErrTokenInvalid
	}

	if err := claims.ValidatePurpose(purpose); err != nil {
		return jwtx.Claims{}, ErrTokenInvalid
	}

	return claims, nil
}
