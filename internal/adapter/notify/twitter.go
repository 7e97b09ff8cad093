package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// TwitterSender delivers DMs and reply tweets through the v2 API.
type TwitterSender struct {
	apiBase     string
	bearerToken string
	http        HTTPClient
}

// NewTwitterSender creates a Twitter v2 API sender.
func NewTwitterSender(apiBase, bearerToken string, httpClient HTTPClient) *TwitterSender {
	return &TwitterSender{apiBase: strings.TrimRight(apiBase, "/"), bearerToken: bearerToken, http: httpClient}
}

type tweetReply struct {
	InReplyToTweetID string `json:"in_reply_to_tweet_id"`
}

type tweetCreate struct {
	Text  string      `json:"text"`
	Reply *tweetReply `json:"reply,omitempty"`
}

// SendDM opens (or reuses) a one-to-one conversation with userID.
func (s *TwitterSender) SendDM(ctx context.Context, userID, text string) error {
	path := "/2/dm_conversations/with/" + url.PathEscape(userID) + "/messages"
	return s.post(ctx, path, map[string]string{"text": text})
}

// SendReply posts a tweet in reply to replyTo. Twitter has no chat id.
func (s *TwitterSender) SendReply(ctx context.Context, _ string, replyTo, text string) error {
	body := tweetCreate{Text: text}
	if replyTo != "" {
		body.Reply = &tweetReply{InReplyToTweetID: replyTo}
	}
	return s.post(ctx, "/2/tweets", body)
}

func (s *TwitterSender) post(ctx context.Context, path string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding twitter request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiBase+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building twitter request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.bearerToken)

	resp, err := s.http.Do(req)
	if err != nil {
		return fmt.Errorf("twitter %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("twitter %s: status %d: %s", path, resp.StatusCode, strings.TrimSpace(string(detail)))
	}
	return nil
}
