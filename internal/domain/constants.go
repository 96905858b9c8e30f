package domain

// Membership directory constants
const (
	// Filter2FADisabled selects members without two-factor authentication.
	Filter2FADisabled = "2fa_disabled"
)
