package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// HTTPClient is satisfied by *http.Client.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// TelegramSender delivers messages through the Bot API sendMessage method.
type TelegramSender struct {
	apiBase string
	token   string
	http    HTTPClient
}

// NewTelegramSender creates a Telegram Bot API sender.
func NewTelegramSender(apiBase, token string, httpClient HTTPClient) *TelegramSender {
	return &TelegramSender{apiBase: strings.TrimRight(apiBase, "/"), token: token, http: httpClient}
}

type telegramSendMessage struct {
	ChatID           string `json:"chat_id"`
	Text             string `json:"text"`
	ReplyToMessageID int64  `json:"reply_to_message_id,omitempty"`
}

type telegramResult struct {
	OK          bool   `json:"ok"`
	ErrorCode   int    `json:"error_code"`
	Description string `json:"description"`
}

// SendDM messages a user directly. A private chat id equals the user id.
func (s *TelegramSender) SendDM(ctx context.Context, userID, text string) error {
	return s.send(ctx, telegramSendMessage{ChatID: userID, Text: text})
}

// SendReply answers a group message.
func (s *TelegramSender) SendReply(ctx context.Context, chatID, replyTo, text string) error {
	msg := telegramSendMessage{ChatID: chatID, Text: text}
	if replyTo != "" {
		id, err := strconv.ParseInt(replyTo, 10, 64)
		if err != nil {
			return fmt.Errorf("telegram reply_to %q: %w", replyTo, err)
		}
		msg.ReplyToMessageID = id
	}
	return s.send(ctx, msg)
}

func (s *TelegramSender) send(ctx context.Context, msg telegramSendMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encoding telegram message: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", s.apiBase, s.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building telegram request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.http.Do(req)
	if err != nil {
		return fmt.Errorf("telegram sendMessage: %w", err)
	}
	defer resp.Body.Close()

	var res telegramResult
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return fmt.Errorf("telegram sendMessage: status %d: %w", resp.StatusCode, err)
	}
	if !res.OK {
		return fmt.Errorf("telegram sendMessage: %d %s", res.ErrorCode, res.Description)
	}
	return nil
}
