package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Intent is the classified meaning of a command.
type Intent string

const (
	IntentHelp           Intent = "help"
	IntentMute           Intent = "mute"
	IntentUnmute         Intent = "unmute"
	IntentBalance        Intent = "balance"
	IntentRegister       Intent = "register"
	IntentAccount        Intent = "account"
	IntentTip            Intent = "tip"
	IntentPrivateTipHint Intent = "private_tip"
	IntentWithdraw       Intent = "withdraw"
	IntentDonate         Intent = "donate"
	IntentSetLanguage    Intent = "language"
	IntentListLanguages  Intent = "languages"
	IntentSetAutoDonate  Intent = "auto_donate"
	IntentUnrecognized   Intent = "unrecognized"
)

// Gated reports whether the intent touches balances or accounts and so must
// be refused while the bot is in maintenance.
func (i Intent) Gated() bool {
	switch i {
	case IntentTip, IntentWithdraw, IntentDonate, IntentMute, IntentUnmute,
		IntentBalance, IntentRegister, IntentAccount, IntentSetAutoDonate, IntentSetLanguage:
		return true
	}
	return false
}

// RegistersSender reports whether the intent counts as deliberate registration.
func (i Intent) RegistersSender() bool {
	switch i {
	case IntentBalance, IntentAccount, IntentWithdraw, IntentRegister:
		return true
	}
	return false
}

// Recipient is one target of a tip as parsed from the inbound message.
type Recipient struct {
	UserID   string
	UserName string
}

// MessageContext is one inbound command. It is owned by exactly one worker
// and discarded once the outcome has been delivered.
type MessageContext struct {
	Platform   Platform
	SenderID   string
	SenderName string
	ChatID     string
	MessageID  string
	Locale     string
	Text       string
	Tokens     []string
	Public     bool
	Recipients []Recipient

	// Set by the engine while settling.
	Intent Intent
	Sender *Account
	Amount decimal.Decimal
}

// Tokenize splits command text on whitespace, newlines included.
func Tokenize(text string) []string {
	return strings.Fields(text)
}

// UpdateKey identifies the update for redelivery checks. Telegram message
// ids are only unique within a chat.
func (m *MessageContext) UpdateKey() string {
	if m.ChatID != "" {
		return m.ChatID + ":" + m.MessageID
	}
	return m.MessageID
}

// Action returns the lowercased first token, or "" when there is none.
func (m *MessageContext) Action() string {
	if len(m.Tokens) == 0 {
		return ""
	}
	return strings.ToLower(m.Tokens[0])
}
