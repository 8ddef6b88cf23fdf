package service

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image/png"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
	"github.com/vedakart/vedakart/internal/auth/domain"
)

// TOTP parameters. These match what every mainstream authenticator app
// expects; changing them breaks already-enrolled accounts.
const (
	totpPeriod     = 30 // seconds per step
	totpSecretSize = 20 // bytes, yields a 32-char base32 secret
	totpSkew       = 2  // accepted steps either side of now

	totpQRSize = 256 // provisioning QR image edge, pixels
)

// TOTPService generates shared secrets and checks codes. It holds no state;
// the secret lives on the user row.
type TOTPService struct {
	Issuer string // Issuer label shown in authenticator apps (e.g., "VedaKart")
}

// Enroll generates a fresh TOTP secret labelled with the account (the
// user's email) and renders the provisioning QR code as a PNG data URI.
func (s *TOTPService) Enroll(account string) (domain.TwoFASetup, error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      s.Issuer,
		AccountName: account,
		Period:      totpPeriod,
		SecretSize:  totpSecretSize,
		Digits:      otp.DigitsSix,
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		return domain.TwoFASetup{}, fmt.Errorf("failed to generate TOTP key: %w", err)
	}

	img, err := key.Image(totpQRSize, totpQRSize)
	if err != nil {
		return domain.TwoFASetup{}, fmt.Errorf("failed to render QR code: %w", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return domain.TwoFASetup{}, fmt.Errorf("failed to encode QR code: %w", err)
	}

	return domain.TwoFASetup{
		Secret:     key.Secret(),
		QRCode:     "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()),
		OTPAuthURL: key.URL(),
		Issuer:     s.Issuer,
		Account:    account,
	}, nil
}

// VerifyCode reports whether the code is valid for the secret right now.
func (s *TOTPService) VerifyCode(code, secret string) bool {
	return s.VerifyCodeAt(code, secret, time.Now().UTC())
}

// VerifyCodeAt is VerifyCode at an explicit instant. Validation accepts
// codes from up to totpSkew steps either side of t, so slightly desynced
// device clocks still authenticate.
func (s *TOTPService) VerifyCodeAt(code, secret string, t time.Time) bool {
	ok, err := totp.ValidateCustom(code, secret, t, totp.ValidateOpts{
		Period:    totpPeriod,
		Skew:      totpSkew,
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	})
	return err == nil && ok
}
