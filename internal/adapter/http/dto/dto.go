package dto

import (
	"time"

	"tipbot/internal/core/domain"
)

// AdminLoginRequest is the request body for operator login.
type AdminLoginRequest struct {
	Username string `json:"username" binding:"required,max=64"`
	Password string `json:"password" binding:"required,max=128"`
}

// LoginResponse is the response body for successful login.
type LoginResponse struct {
	Token  string `json:"token"`
	Expiry int64  `json:"expiry"` // Unix timestamp
}

// ModeRequest switches the bot between normal and maintenance.
type ModeRequest struct {
	Status string `json:"status" binding:"required,oneof=normal maintenance"`
}

// ModeResponse reports the live bot mode.
type ModeResponse struct {
	Status domain.BotMode `json:"status"`
}

// UserURI is the path of a name lookup.
type UserURI struct {
	Platform string `uri:"platform" binding:"required,oneof=twitter telegram"`
	Name     string `uri:"name" binding:"required,max=64,safe_id"`
}

// PlatformURI is the path of a per-platform listing.
type PlatformURI struct {
	Platform string `uri:"platform" binding:"required,oneof=twitter telegram"`
}

// AddressURI is the path of an address lookup.
type AddressURI struct {
	Address string `uri:"address" binding:"required,max=128,safe_id"`
}

// TipListQuery filters the admin tip listing.
type TipListQuery struct {
	Status string `form:"status" binding:"omitempty,oneof=TRANSFERRED NOTIFIED TRANSFER_FAILED"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=500"`
}

// LimitQuery bounds the public stats listings.
type LimitQuery struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=100"`
}

// AccountResponse is the public view of an account. The wallet account
// handle is never exposed.
type AccountResponse struct {
	UserID   string          `json:"user_id"`
	Platform domain.Platform `json:"platform"`
	UserName string          `json:"user_name"`
	Address  string          `json:"address"`
}

// NewAccountResponse maps a domain account to its public view.
func NewAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		UserID:   a.UserID,
		Platform: a.Platform,
		UserName: a.UserName,
		Address:  a.Address,
	}
}

// TipResponse is the operator view of one tip record.
type TipResponse struct {
	TipID           string `json:"tip_id"`
	Platform        string `json:"platform"`
	ChatID          string `json:"chat_id,omitempty"`
	MessageID       string `json:"message_id"`
	SenderID        string `json:"sender_id"`
	ReceiverID      string `json:"receiver_id"`
	SenderAccount   string `json:"sender_account"`
	ReceiverAccount string `json:"receiver_account"`
	Amount          string `json:"amount"`
	Status          string `json:"status"`
	CreatedAt       string `json:"created_at"`
	UpdatedAt       string `json:"updated_at"`
}

// NewTipResponse maps a tip record for the admin API.
func NewTipResponse(t domain.Tip) TipResponse {
	return TipResponse{
		TipID:           t.TipID,
		Platform:        string(t.Platform),
		ChatID:          t.ChatID,
		MessageID:       t.MessageID,
		SenderID:        t.SenderID,
		ReceiverID:      t.ReceiverID,
		SenderAccount:   t.SenderAccount,
		ReceiverAccount: t.ReceiverAccount,
		Amount:          t.Amount.String(),
		Status:          string(t.Status),
		CreatedAt:       t.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       t.UpdatedAt.Format(time.RFC3339),
	}
}

// PublicTipResponse is a recent tip as shown on the public board. Wallet
// handles stay internal.
type PublicTipResponse struct {
	Platform   string `json:"platform"`
	SenderID   string `json:"sender_id"`
	ReceiverID string `json:"receiver_id"`
	Amount     string `json:"amount"`
	CreatedAt  string `json:"created_at"`
}

// NewPublicTipResponse maps a tip record for the stats API.
func NewPublicTipResponse(t domain.Tip) PublicTipResponse {
	return PublicTipResponse{
		Platform:   string(t.Platform),
		SenderID:   t.SenderID,
		ReceiverID: t.ReceiverID,
		Amount:     t.Amount.String(),
		CreatedAt:  t.CreatedAt.Format(time.RFC3339),
	}
}

// CRCResponse answers the Twitter webhook challenge.
type CRCResponse struct {
	ResponseToken string `json:"response_token"`
}
