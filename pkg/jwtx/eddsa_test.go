package jwtx_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/vedakart/vedakart/pkg/cryptox"
	"github.com/vedakart/vedakart/pkg/jwtx"
)

const exampleIssuer = "vedakart-auth"

func newTestSigner(t *testing.T, kid string) jwtx.Signer {
	t.Helper()

	pemKey, err := cryptox.GenerateEd25519Key()
	require.NoError(t, err)

	signer, err := jwtx.NewSignerEdDSA(kid, pemKey)
	require.NoError(t, err)
	require.NoError(t, signer.Validate())

	return signer
}

func TestEdDSASignAndVerify(t *testing.T) {
	signer := newTestSigner(t, "test-key-eddsa")
	require.Equal(t, "EdDSA", signer.Alg())
	require.Equal(t, "test-key-eddsa", signer.KID())

	now := time.Now().UTC()
	claims := jwtx.NewClaims(
		"user-456",
		jwtx.PurposeAccess,
		"ravi",
		"ravi@example.com",
		[]string{"customer", "wholesale"},
		5*time.Minute,
		exampleIssuer,
		now,
	)

	token, err := signer.Sign(claims)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	keyset := jwtx.NewKeySet()
	require.NoError(t, keyset.AddSigner(signer))

	jwks := keyset.PublicJWKS()
	require.Len(t, jwks.Keys, 1)
	require.Equal(t, "OKP", jwks.Keys[0].Kty)
	require.Equal(t, "Ed25519", jwks.Keys[0].Crv)
	require.NotEmpty(t, jwks.Keys[0].X)

	verifier := jwtx.NewVerifierEdDSA(keyset, exampleIssuer)

	parsed, err := verifier.Verify(token)
	require.NoError(t, err)
	require.Equal(t, claims.Subject, parsed.Subject)
	require.Equal(t, claims.Purpose, parsed.Purpose)
	require.Equal(t, claims.Username, parsed.Username)
	require.Equal(t, claims.Email, parsed.Email)
	require.ElementsMatch(t, claims.Roles, parsed.Roles)
	require.Equal(t, claims.ID, parsed.ID)
}

func TestEdDSAVerifyRejectsTamperedSignature(t *testing.T) {
	signer := newTestSigner(t, "tamper-key")

	claims := jwtx.NewClaims(
		"user-789", jwtx.PurposeAccess, "meera", "meera@example.com", nil,
		5*time.Minute, exampleIssuer, time.Now().UTC(),
	)
	token, err := signer.Sign(claims)
	require.NoError(t, err)

	keyset := jwtx.NewKeySet()
	require.NoError(t, keyset.AddSigner(signer))
	verifier := jwtx.NewVerifierEdDSA(keyset, exampleIssuer)

	// Flip one byte in the signature segment.
	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	_, err = verifier.Verify(tampered)
	require.Error(t, err)
	require.NotErrorIs(t, err, jwtx.ErrExpired)
}

func TestEdDSAVerifyRejectsExpired(t *testing.T) {
	signer := newTestSigner(t, "expired-key")

	claims := jwtx.NewClaims(
		"user-1", jwtx.PurposeAccess, "dev", "dev@example.com", nil,
		-1*time.Minute, exampleIssuer, time.Now().UTC(),
	)
	token, err := signer.Sign(claims)
	require.NoError(t, err)

	keyset := jwtx.NewKeySet()
	require.NoError(t, keyset.AddSigner(signer))
	verifier := jwtx.NewVerifierEdDSA(keyset, exampleIssuer)

	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, jwtx.ErrExpired)
}

func TestEdDSAVerifyRejectsUnknownKID(t *testing.T) {
	signer := newTestSigner(t, "known-key")
	other := newTestSigner(t, "other-key")

	claims := jwtx.NewClaims(
		"user-2", jwtx.PurposeAccess, "dev", "dev@example.com", nil,
		5*time.Minute, exampleIssuer, time.Now().UTC(),
	)
	token, err := other.Sign(claims)
	require.NoError(t, err)

	keyset := jwtx.NewKeySet()
	require.NoError(t, keyset.AddSigner(signer))
	verifier := jwtx.NewVerifierEdDSA(keyset, exampleIssuer)

	_, err = verifier.Verify(token)
	require.Error(t, err)
}

func TestEdDSAVerifyRejectsWrongIssuer(t *testing.T) {
	signer := newTestSigner(t, "issuer-key")

	claims := jwtx.NewClaims(
		"user-3", jwtx.PurposeAccess, "dev", "dev@example.com", nil,
		5*time.Minute, "someone-else", time.Now().UTC(),
	)
	token, err := signer.Sign(claims)
	require.NoError(t, err)

	keyset := jwtx.NewKeySet()
	require.NoError(t, keyset.AddSigner(signer))
	verifier := jwtx.NewVerifierEdDSA(keyset, exampleIssuer)

	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, jwtx.ErrIssuer)
}

func TestEdDSAVerifyRejectsGarbage(t *testing.T) {
	keyset := jwtx.NewKeySet()
	require.NoError(t, keyset.AddSigner(newTestSigner(t, "garbage-key")))
	verifier := jwtx.NewVerifierEdDSA(keyset, exampleIssuer)

	for _, tok := range []string{"", "not-a-jwt", "a.b.c"} {
		_, err := verifier.Verify(tok)
		require.Error(t, err, "token %q should not verify", tok)
	}
}

func TestKeySetResetFromJWKS(t *testing.T) {
	a := newTestSigner(t, "key-a")
	b := newTestSigner(t, "key-b")

	keyset := jwtx.NewKeySet()
	require.NoError(t, keyset.AddSigner(a))
	require.True(t, keyset.IsReady())

	fresh := jwtx.JWKS{Keys: []jwtx.JWK{b.PublicJWK()}}
	require.NoError(t, keyset.ResetFromJWKS(fresh))

	_, err := keyset.Get("key-a")
	require.ErrorIs(t, err, jwtx.ErrNoKey)
	_, err = keyset.Get("key-b")
	require.NoError(t, err)
}
