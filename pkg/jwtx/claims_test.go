package jwtx_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"github.com/vedakart/vedakart/pkg/jwtx"
)

func TestNewClaims(t *testing.T) {
	now := time.Now().UTC()

	c := jwtx.NewClaims(
		"user-123",
		jwtx.PurposeAccess,
		"anika",
		"anika@example.com",
		[]string{"customer"},
		15*time.Minute,
		"vedakart-auth",
		now,
	)

	require.Equal(t, "user-123", c.Subject)
	require.Equal(t, jwtx.PurposeAccess, c.Purpose)
	require.Equal(t, "anika", c.Username)
	require.Equal(t, "anika@example.com", c.Email)
	require.Equal(t, []string{"customer"}, c.Roles)
	require.Equal(t, "vedakart-auth", c.Issuer)
	require.NotEmpty(t, c.ID, "jti should be populated")
	require.WithinDuration(t, now.Add(15*time.Minute), c.ExpiresAt.Time, time.Second)
}

func TestNewJTIUnique(t *testing.T) {
	seen := make(map[string]struct{})
	for range 50 {
		jti := jwtx.NewJTI()
		require.NotEmpty(t, jti)
		_, dup := seen[jti]
		require.False(t, dup)
		seen[jti] = struct{}{}
	}
}

func TestValidateIssuer(t *testing.T) {
	c := &jwtx.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer: "vedakart-auth",
		},
	}

	t.Run("matching issuer", func(t *testing.T) {
		require.NoError(t, c.ValidateIssuer("vedakart-auth"))
	})

	t.Run("empty expected issuer", func(t *testing.T) {
		require.NoError(t, c.ValidateIssuer(""))
	})

	t.Run("mismatched issuer", func(t *testing.T) {
		err := c.ValidateIssuer("catalog-service")
		require.ErrorIs(t, err, jwtx.ErrIssuer)
	})
}

func TestValidatePurpose(t *testing.T) {
	c := &jwtx.Claims{Purpose: jwtx.PurposeRefresh}

	t.Run("matching purpose", func(t *testing.T) {
		require.NoError(t, c.ValidatePurpose(jwtx.PurposeRefresh))
	})

	t.Run("empty expected purpose", func(t *testing.T) {
		require.NoError(t, c.ValidatePurpose(""))
	})

	t.Run("access token presented as refresh", func(t *testing.T) {
		access := &jwtx.Claims{Purpose: jwtx.PurposeAccess}
		require.ErrorIs(t, access.ValidatePurpose(jwtx.PurposeRefresh), jwtx.ErrPurpose)
	})
}

func TestValidateExpiry(t *testing.T) {
	now := time.Now().UTC()

	t.Run("valid token", func(t *testing.T) {
		claims := &jwtx.Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(now.Add(1 * time.Minute)),
			},
		}
		require.NoError(t, claims.ValidateExpiry())
	})

	t.Run("expired token", func(t *testing.T) {
		claims := &jwtx.Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(now.Add(-1 * time.Minute)),
			},
		}
		require.ErrorIs(t, claims.ValidateExpiry(), jwtx.ErrExpired)
	})

	t.Run("not yet valid", func(t *testing.T) {
		claims := &jwtx.Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				NotBefore: jwt.NewNumericDate(now.Add(1 * time.Minute)),
			},
		}
		require.ErrorIs(t, claims.ValidateExpiry(), jwtx.ErrNotYetValid)
	})

	t.Run("no exp or nbf", func(t *testing.T) {
		claims := &jwtx.Claims{}
		require.NoError(t, claims.ValidateExpiry())
	})
}

func TestValidateExpiryWithLeeway(t *testing.T) {
	now := time.Now().UTC()

	t.Run("valid with leeway", func(t *testing.T) {
		claims := &jwtx.Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(now.Add(-10 * time.Second)),
			},
		}
		require.NoError(t, claims.ValidateExpiryWithLeeway(30*time.Second))
	})

	t.Run("expired beyond leeway", func(t *testing.T) {
		claims := &jwtx.Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(now.Add(-1 * time.Minute)),
			},
		}
		require.ErrorIs(t, claims.ValidateExpiryWithLeeway(30*time.Second), jwtx.ErrExpired)
	})
}
