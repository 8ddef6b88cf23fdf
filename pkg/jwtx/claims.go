package jwtx

import (
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Default token TTLs for the session lifecycle. Short access tokens keep
// the blast radius of a leak small; refresh tokens trade that off for
// user convenience.
const (
	// DefaultAccessTokenTTL is the default lifetime for access tokens.
	DefaultAccessTokenTTL = 15 * time.Minute

	// DefaultRefreshTokenTTL is the default lifetime for refresh tokens.
	DefaultRefreshTokenTTL = 7 * 24 * time.Hour
)

// Token purposes. Every token is bound to exactly one purpose and a
// verifier must assert the purpose it expects, so an access token can
// never be replayed against the refresh endpoint.
const (
	PurposeAccess  = "access"
	PurposeRefresh = "refresh"
)

// Claims is the fixed claim record embedded in every token. Keeping it an
// explicit struct (rather than a map) means mint and verify can never
// drift apart on claim names.
type Claims struct {
	jwt.RegisteredClaims

	// Purpose binds the token to its intended use: "access" or "refresh".
	Purpose string `json:"purpose"`

	// Username of the authenticated user.
	Username string `json:"username,omitempty"`

	// Email of the authenticated user.
	Email string `json:"email,omitempty"`

	// Roles assigned to the user at mint time, e.g. ["customer"] or
	// ["admin", "support"].
	Roles []string `json:"roles,omitempty"`
}

// NewClaims builds minimally-correct claims for the given subject and
// purpose.
func NewClaims(
	subject, purpose string,
	username, email string,
	roles []string,
	ttl time.Duration,
	issuer string,
	now time.Time,
) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
		Purpose:  purpose,
		Username: username,
		Email:    email,
		Roles:    roles,
	}
}

// NewJTI returns a URL-safe random identifier for the "jti" claim.
func NewJTI() string {
	var b [20]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}

// ValidateIssuer checks if the issuer matches the expected value.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil // nothing to enforce
	}

	if c.Issuer != expected {
		return ErrIssuer
	}

	return nil
}

// ValidatePurpose checks that the token was minted for the expected use.
func (c *Claims) ValidatePurpose(expected string) error {
	if expected == "" {
		return nil // nothing to enforce
	}

	if c.Purpose != expected {
		return ErrPurpose
	}

	return nil
}

// ValidateExpiry ensures the token hasn't expired (exp) and isn't used
// before it is valid (nbf).
func (c *Claims) ValidateExpiry() error {
	now := time.Now().UTC()

	if c.ExpiresAt != nil && now.After(c.ExpiresAt.Time) {
		return ErrExpired
	}

	if c.NotBefore != nil && now.Before(c.NotBefore.Time) {
		return ErrNotYetValid
	}

	return nil
}

// ValidateExpiryWithLeeway adds a small grace period for clock skew.
func (c *Claims) ValidateExpiryWithLeeway(leeway time.Duration) error {
	now := time.Now().UTC()

	if c.ExpiresAt != nil && now.After(c.ExpiresAt.Add(leeway)) {
		return ErrExpired
	}

	if c.NotBefore != nil && now.Before(c.NotBefore.Add(-leeway)) {
		return ErrNotYetValid
	}

	return nil
}
