package domain

// TwoFASetup is returned when enrollment starts. The account stays
// unprotected until the first code is confirmed.
type TwoFASetup struct {
	Secret     string // Base32 encoded secret for TOTP
	QRCode     string // data URI with a PNG of the provisioning QR code
	OTPAuthURL string // otpauth:// provisioning URI
	Issuer     string // Issuer name shown in the authenticator app
	Account    string // Account label (the user's email)
}
