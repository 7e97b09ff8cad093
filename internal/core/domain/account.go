package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Platform identifies the social network a command arrived from.
type Platform string

const (
	PlatformTwitter  Platform = "twitter"
	PlatformTelegram Platform = "telegram"
)

// Valid reports whether p is a supported platform.
func (p Platform) Valid() bool {
	return p == PlatformTwitter || p == PlatformTelegram
}

// Account maps a platform identity to a custodial wallet account.
// WalletAccount is assigned once at creation and never changes.
type Account struct {
	Platform        Platform  `json:"platform"`
	UserID          string    `json:"user_id"`
	UserName        string    `json:"user_name"`
	WalletAccount   string    `json:"-"`
	Address         string    `json:"address"`
	Registered      bool      `json:"registered"`
	Muted           bool      `json:"muted"`
	DonationPercent int       `json:"donation_percent"`
	Language        string    `json:"language,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// NewAccountParams carries the defaults for a lazily created account.
type NewAccountParams struct {
	Platform      Platform
	UserID        string
	UserName      string
	WalletAccount string
	Address       string
	Registered    bool
	Muted         bool
	Language      string
}

// WalletAccountInfo is what the wallet daemon hands back when provisioning.
type WalletAccountInfo struct {
	Account string
	Address string
}

// AccountFilter is the predicate half of a directory update.
type AccountFilter struct {
	Platform     Platform
	UserID       string
	RegisteredIs *bool
}

// AccountUpdate is the set half of a directory update. Nil fields are left untouched.
type AccountUpdate struct {
	Registered      *bool
	Muted           *bool
	DonationPercent *int
	Language        *string
}

// Empty reports whether the update would change nothing.
func (u AccountUpdate) Empty() bool {
	return u.Registered == nil && u.Muted == nil && u.DonationPercent == nil && u.Language == nil
}

// BoolPtr is a small helper for building filters and updates.
func BoolPtr(b bool) *bool { return &b }

// Balance is always fetched fresh from the wallet daemon. Pending is the
// unconfirmed surplus over the confirmed amount.
type Balance struct {
	Confirmed decimal.Decimal `json:"confirmed"`
	Pending   decimal.Decimal `json:"pending"`
}
