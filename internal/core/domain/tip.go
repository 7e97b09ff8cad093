package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TipStatus is the durable status of a tip record.
type TipStatus string

const (
	TipStatusTransferred    TipStatus = "TRANSFERRED"
	TipStatusNotified       TipStatus = "NOTIFIED"
	TipStatusTransferFailed TipStatus = "TRANSFER_FAILED"
)

// Tip is the durable per-recipient record used for reconciliation against
// the wallet's own transaction log.
type Tip struct {
	TipID           string          `json:"tip_id"`
	Platform        Platform        `json:"platform"`
	ChatID          string          `json:"chat_id,omitempty"`
	MessageID       string          `json:"message_id"`
	SenderID        string          `json:"sender_id"`
	ReceiverID      string          `json:"receiver_id"`
	SenderAccount   string          `json:"sender_account"`
	ReceiverAccount string          `json:"receiver_account"`
	Amount          decimal.Decimal `json:"amount"`
	Status          TipStatus       `json:"status"`
	Text            string          `json:"text"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// BuildTipID builds the operator-traceable identifier for one settlement
// attempt: platform, chat (Telegram only), message id and recipient index.
func BuildTipID(platform Platform, chatID, messageID string, index int) string {
	if platform == PlatformTelegram && chatID != "" {
		return fmt.Sprintf("%s-%s-%s-%d", platform, chatID, messageID, index)
	}
	return fmt.Sprintf("%s-%s-%d", platform, messageID, index)
}

// TipperStat is one row of the top tippers board.
type TipperStat struct {
	UserName  string          `json:"user_name"`
	Platform  Platform        `json:"platform"`
	Address   string          `json:"address"`
	TotalTips decimal.Decimal `json:"total_tips"`
	TipCount  int64           `json:"tip_count"`
}

// PlatformTotals aggregates settled tips per platform.
type PlatformTotals struct {
	Platform Platform        `json:"platform"`
	Amount   decimal.Decimal `json:"amount"`
	Count    int64           `json:"count"`
}
