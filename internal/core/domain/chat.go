package domain

import "time"

// ChatMember is a Telegram group member, kept so @username mentions can be
// resolved to user ids.
type ChatMember struct {
	ChatID     string
	ChatName   string
	MemberID   string
	MemberName string
}

// InboundMessage is the durable log entry used to drop redelivered updates.
type InboundMessage struct {
	Platform  Platform
	MessageID string
	SenderID  string
	Text      string
	CreatedAt time.Time
}
