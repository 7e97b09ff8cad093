package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
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

const twitterBotID = "99"

type twitterTestDeps struct {
	router  *gin.Engine
	ingress *mocks.MockCommandIngress
	sig     *mocks.MockSignatureService
}

func setupTwitter(t *testing.T) *twitterTestDeps {
	ctrl := gomock.NewController(t)
	d := &twitterTestDeps{
		ingress: mocks.NewMockCommandIngress(ctrl),
		sig:     mocks.NewMockSignatureService(ctrl),
	}
	h := NewTwitterHandler(d.ingress, d.sig, lexicon.Default(), "consumer", twitterBotID, "tipbot", zerolog.Nop())

	d.router = gin.New()
	d.router.GET("/webhooks/twitter", h.CRC)
	d.router.POST("/webhooks/twitter", h.Webhook)
	return d
}

func TestTwitter_CRC(t *testing.T) {
	d := setupTwitter(t)
	d.sig.EXPECT().Sign("consumer", []byte("challenge-1")).Return("sha256=abc=")

	w := httptest.NewRecorder()
	d.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/webhooks/twitter?crc_token=challenge-1", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "sha256=abc=", resp["response_token"])
}

func TestTwitter_CRCMissingToken(t *testing.T) {
	d := setupTwitter(t)

	w := httptest.NewRecorder()
	d.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/webhooks/twitter", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "SEC_003")
}

func TestTwitter_DirectMessage(t *testing.T) {
	d := setupTwitter(t)
	got := captureSubmit(d.ingress)

	w := postJSON(d.router, "/webhooks/twitter", `{
		"for_user_id": "99",
		"direct_message_events": [{
			"type": "message_create",
			"id": "dm-1",
			"created_timestamp": "1700000000000",
			"message_create": {
				"target": {"recipient_id": "99"},
				"sender_id": "u1",
				"message_data": {"text": "!donate 2"}
			}
		}],
		"users": {"u1": {"id": "u1", "screen_name": "alice"}, "99": {"id": "99", "screen_name": "tipbot"}}
	}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, domain.PlatformTwitter, got.Platform)
	assert.Equal(t, "u1", got.SenderID)
	assert.Equal(t, "alice", got.SenderName)
	assert.Equal(t, "dm-1", got.MessageID)
	assert.Equal(t, []string{"!donate", "2"}, got.Tokens)
	assert.False(t, got.Public)
}

func TestTwitter_OwnDirectMessageIgnored(t *testing.T) {
	d := setupTwitter(t)

	w := postJSON(d.router, "/webhooks/twitter", `{
		"for_user_id": "99",
		"direct_message_events": [{
			"type": "message_create",
			"id": "dm-2",
			"message_create": {"target": {"recipient_id": "u1"}, "sender_id": "99", "message_data": {"text": "Your balance is 1 NANO"}}
		}]
	}`)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestTwitter_TweetTip(t *testing.T) {
	d := setupTwitter(t)
	got := captureSubmit(d.ingress)

	w := postJSON(d.router, "/webhooks/twitter", `{
		"for_user_id": "99",
		"tweet_create_events": [{
			"id_str": "1001",
			"text": "@tipbot !tip 0.5 @Bob @ghost @tipbot @carol!",
			"user": {"id_str": "u1", "screen_name": "alice"},
			"entities": {"user_mentions": [
				{"id_str": "99", "screen_name": "tipbot"},
				{"id_str": "u2", "screen_name": "bob"},
				{"id_str": "u3", "screen_name": "carol"}
			]}
		}]
	}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1001", got.MessageID)
	assert.True(t, got.Public)
	assert.Equal(t, domain.IntentTip, got.Intent)
	assert.Equal(t, "!tip", got.Tokens[0])
	assert.Equal(t, "0.5", got.Tokens[1])
	assert.Equal(t, []domain.Recipient{
		{UserID: "u2", UserName: "bob"},
		{UserID: "u3", UserName: "carol"},
	}, got.Recipients)
}

func TestTwitter_IgnoredTweets(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"mention without tip", `{"tweet_create_events": [{"id_str": "1", "text": "@tipbot hello", "user": {"id_str": "u1"}}]}`},
		{"bot's own tweet", `{"tweet_create_events": [{"id_str": "2", "text": "!tip 1 @bob", "user": {"id_str": "99"}}]}`},
		{"retweet", `{"tweet_create_events": [{"id_str": "3", "text": "RT @alice: !tip 1 @bob", "user": {"id_str": "u4"}, "retweeted_status": {"id_str": "1"}}]}`},
		{"unfollow", `{"follow_events": [{"type": "unfollow", "source": {"id": "u1"}}]}`},
		{"unknown event", `{"favorite_events": [{"id": "x"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := setupTwitter(t)
			w := postJSON(d.router, "/webhooks/twitter", tt.body)
			assert.Equal(t, http.StatusOK, w.Code)
		})
	}
}

func TestTwitter_FollowSendsHelp(t *testing.T) {
	d := setupTwitter(t)
	got := captureSubmit(d.ingress)

	w := postJSON(d.router, "/webhooks/twitter", `{
		"for_user_id": "99",
		"follow_events": [{
			"type": "follow",
			"created_timestamp": "1517588749178",
			"target": {"id": "99", "screen_name": "tipbot"},
			"source": {"id": "u7", "screen_name": "newfan"}
		}]
	}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, domain.IntentHelp, got.Intent)
	assert.Equal(t, "u7", got.SenderID)
	assert.Equal(t, "follow-u7-1517588749178", got.MessageID)
	assert.False(t, got.Public)
}
