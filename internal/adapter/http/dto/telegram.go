package dto

import "strings"

// TelegramUpdate is the subset of a Bot API update the bot consumes.
type TelegramUpdate struct {
	UpdateID int64            `json:"update_id"`
	Message  *TelegramMessage `json:"message,omitempty"`
}

type TelegramMessage struct {
	MessageID        int64            `json:"message_id"`
	From             *TelegramUser    `json:"from,omitempty"`
	Chat             TelegramChat     `json:"chat"`
	Text             string           `json:"text,omitempty"`
	Entities         []TelegramEntity `json:"entities,omitempty"`
	ReplyToMessage   *TelegramMessage `json:"reply_to_message,omitempty"`
	ForwardFrom      *TelegramUser    `json:"forward_from,omitempty"`
	ForwardDate      int64            `json:"forward_date,omitempty"`
	NewChatMember    *TelegramUser    `json:"new_chat_member,omitempty"`
	NewChatMembers   []TelegramUser   `json:"new_chat_members,omitempty"`
	LeftChatMember   *TelegramUser    `json:"left_chat_member,omitempty"`
	GroupChatCreated bool             `json:"group_chat_created,omitempty"`
}

// Forwarded reports whether the message was forwarded from elsewhere.
func (m *TelegramMessage) Forwarded() bool {
	return m.ForwardFrom != nil || m.ForwardDate != 0
}

type TelegramUser struct {
	ID           int64  `json:"id"`
	IsBot        bool   `json:"is_bot"`
	FirstName    string `json:"first_name,omitempty"`
	LastName     string `json:"last_name,omitempty"`
	Username     string `json:"username,omitempty"`
	LanguageCode string `json:"language_code,omitempty"`
}

// DisplayName is the username, or the full name for users without one.
func (u *TelegramUser) DisplayName() string {
	if u.Username != "" {
		return u.Username
	}
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

type TelegramChat struct {
	ID    int64  `json:"id"`
	Type  string `json:"type"` // private, group, supergroup, channel
	Title string `json:"title,omitempty"`
}

// Group reports whether the chat is a group or supergroup.
func (c TelegramChat) Group() bool {
	return c.Type == "group" || c.Type == "supergroup"
}

// TelegramEntity marks a span of message text. Offsets count UTF-16 units.
type TelegramEntity struct {
	Type   string        `json:"type"` // mention, text_mention, bot_command, ...
	Offset int           `json:"offset"`
	Length int           `json:"length"`
	User   *TelegramUser `json:"user,omitempty"`
}
