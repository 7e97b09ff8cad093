package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"tipbot/internal/core/domain"
	"tipbot/internal/core/ports/mocks"
	"tipbot/internal/lexicon"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const telegramBotID = "777"

func setupTelegram(t *testing.T) (*gin.Engine, *mocks.MockCommandIngress) {
	ctrl := gomock.NewController(t)
	ingress := mocks.NewMockCommandIngress(ctrl)
	h := NewTelegramHandler(ingress, lexicon.Default(), telegramBotID, "@tipbot", zerolog.Nop())

	r := gin.New()
	r.POST("/webhooks/telegram", h.Webhook)
	return r, ingress
}

func postJSON(r http.Handler, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

// captureSubmit records the submitted command and accepts it.
func captureSubmit(ingress *mocks.MockCommandIngress) *domain.MessageContext {
	got := &domain.MessageContext{}
	ingress.EXPECT().Submit(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, msg *domain.MessageContext) (bool, error) {
			*got = *msg
			return true, nil
		})
	return got
}

func TestTelegram_PrivateCommand(t *testing.T) {
	r, ingress := setupTelegram(t)
	got := captureSubmit(ingress)

	w := postJSON(r, "/webhooks/telegram", `{
		"update_id": 9001,
		"message": {
			"message_id": 5,
			"from": {"id": 11, "first_name": "Alice", "last_name": "L"},
			"chat": {"id": 11, "type": "private"},
			"text": "!withdraw 1.5\nnano_1abc"
		}
	}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, domain.PlatformTelegram, got.Platform)
	assert.Equal(t, "11", got.SenderID)
	assert.Equal(t, "Alice L", got.SenderName)
	assert.Equal(t, "9001", got.MessageID)
	assert.Empty(t, got.ChatID)
	assert.False(t, got.Public)
	assert.Empty(t, got.Intent)
	assert.Equal(t, []string{"!withdraw", "1.5", "nano_1abc"}, got.Tokens)
}

func TestTelegram_IgnoredUpdates(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"no message", `{"update_id": 1, "edited_message": {"message_id": 2}}`},
		{"private without text", `{"update_id": 1, "message": {"message_id": 2, "from": {"id": 11}, "chat": {"id": 11, "type": "private"}}}`},
		{"private from the bot", `{"update_id": 1, "message": {"message_id": 2, "from": {"id": 777}, "chat": {"id": 777, "type": "private"}, "text": "!help"}}`},
		{"channel post", `{"update_id": 1, "message": {"message_id": 2, "chat": {"id": -5, "type": "channel"}, "text": "!tip 1 @bob"}}`},
		{"forwarded tip", `{"update_id": 1, "message": {"message_id": 2, "from": {"id": 11, "username": "alice"}, "forward_from": {"id": 12}, "chat": {"id": -100, "type": "group", "title": "g"}, "text": "!tip 1 @bob"}}`},
		{"group message from the bot", `{"update_id": 1, "message": {"message_id": 2, "from": {"id": 777, "username": "tipbot"}, "chat": {"id": -100, "type": "group", "title": "g"}, "text": "!tip 1 @bob"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := setupTelegram(t)
			w := postJSON(r, "/webhooks/telegram", tt.body)
			assert.Equal(t, http.StatusOK, w.Code)
		})
	}
}

func TestTelegram_GroupTip(t *testing.T) {
	r, ingress := setupTelegram(t)
	ingress.EXPECT().TrackMember(gomock.Any(), domain.ChatMember{
		ChatID: "-100", ChatName: "nano tippers", MemberID: "11", MemberName: "alice",
	}).Return(nil)
	got := captureSubmit(ingress)

	w := postJSON(r, "/webhooks/telegram", `{
		"update_id": 9002,
		"message": {
			"message_id": 42,
			"from": {"id": 11, "username": "alice"},
			"chat": {"id": -100, "type": "supergroup", "title": "nano tippers"},
			"text": "great post! !tip 1 @bob, @TipBot and @carol",
			"entities": [{"type": "text_mention", "offset": 0, "length": 5, "user": {"id": 14, "first_name": "Dave"}}]
		}
	}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "-100", got.ChatID)
	assert.Equal(t, "42", got.MessageID)
	assert.True(t, got.Public)
	assert.Equal(t, domain.IntentTip, got.Intent)
	assert.Equal(t, []string{"!tip", "1", "@bob,", "@TipBot", "and", "@carol"}, got.Tokens)
	assert.Equal(t, []domain.Recipient{
		{UserName: "bob"},
		{UserName: "carol"},
		{UserID: "14", UserName: "Dave"},
	}, got.Recipients)
}

func TestTelegram_ReplyTip(t *testing.T) {
	r, ingress := setupTelegram(t)
	ingress.EXPECT().TrackMember(gomock.Any(), gomock.Any()).Return(nil)
	got := captureSubmit(ingress)

	w := postJSON(r, "/webhooks/telegram", `{
		"update_id": 9003,
		"message": {
			"message_id": 43,
			"from": {"id": 11, "username": "alice"},
			"chat": {"id": -100, "type": "group", "title": "g"},
			"text": "/tip 2",
			"reply_to_message": {"message_id": 40, "from": {"id": 12, "username": "bob"}, "chat": {"id": -100, "type": "group"}}
		}
	}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []domain.Recipient{{UserID: "12", UserName: "bob"}}, got.Recipients)
}

func TestTelegram_GroupChatterIsTracked(t *testing.T) {
	r, ingress := setupTelegram(t)
	ingress.EXPECT().TrackMember(gomock.Any(), gomock.Any()).Return(nil)

	w := postJSON(r, "/webhooks/telegram", `{
		"update_id": 9004,
		"message": {"message_id": 44, "from": {"id": 11, "username": "alice"}, "chat": {"id": -100, "type": "group", "title": "g"}, "text": "gm everyone"}
	}`)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestTelegram_MemberEvents(t *testing.T) {
	t.Run("members joined", func(t *testing.T) {
		r, ingress := setupTelegram(t)
		gomock.InOrder(
			ingress.EXPECT().TrackMember(gomock.Any(), domain.ChatMember{ChatID: "-100", ChatName: "g", MemberID: "12", MemberName: "bob"}).Return(nil),
			ingress.EXPECT().TrackMember(gomock.Any(), domain.ChatMember{ChatID: "-100", ChatName: "g", MemberID: "13"}).Return(nil),
		)

		w := postJSON(r, "/webhooks/telegram", `{
			"update_id": 1,
			"message": {
				"message_id": 2,
				"from": {"id": 11},
				"chat": {"id": -100, "type": "group", "title": "g"},
				"new_chat_member": {"id": 12, "username": "bob"},
				"new_chat_members": [{"id": 12, "username": "bob"}, {"id": 13, "first_name": "Carol"}]
			}
		}`)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("member left", func(t *testing.T) {
		r, ingress := setupTelegram(t)
		ingress.EXPECT().ForgetMember(gomock.Any(), "-100", "12").Return(nil)

		w := postJSON(r, "/webhooks/telegram", `{
			"update_id": 1,
			"message": {"message_id": 2, "chat": {"id": -100, "type": "group", "title": "g"}, "left_chat_member": {"id": 12, "username": "bob"}}
		}`)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("group created", func(t *testing.T) {
		r, ingress := setupTelegram(t)
		ingress.EXPECT().TrackMember(gomock.Any(), domain.ChatMember{ChatID: "-100", ChatName: "g", MemberID: "11", MemberName: "alice"}).Return(nil)

		w := postJSON(r, "/webhooks/telegram", `{
			"update_id": 1,
			"message": {"message_id": 2, "from": {"id": 11, "username": "alice"}, "chat": {"id": -100, "type": "group", "title": "g"}, "group_chat_created": true}
		}`)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestTelegram_StoreFaultAsksForRedelivery(t *testing.T) {
	r, ingress := setupTelegram(t)
	ingress.EXPECT().Submit(gomock.Any(), gomock.Any()).Return(false, errors.New("record inbound message: pool closed"))

	w := postJSON(r, "/webhooks/telegram", `{
		"update_id": 9005,
		"message": {"message_id": 5, "from": {"id": 11}, "chat": {"id": 11, "type": "private"}, "text": "!balance"}
	}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "SYS_001")
}

func TestTelegram_MalformedPayload(t *testing.T) {
	r, _ := setupTelegram(t)
	w := postJSON(r, "/webhooks/telegram", `{"update_id": "nope"`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "REQ_001")
}
