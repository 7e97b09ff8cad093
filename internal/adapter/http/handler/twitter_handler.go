package handler

import (
	"context"
	"net/http"
	"strings"

	"tipbot/internal/adapter/http/dto"
	"tipbot/internal/core/domain"
	"tipbot/internal/core/ports"
	"tipbot/internal/lexicon"
	"tipbot/pkg/apperror"
	"tipbot/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// TwitterHandler serves the Account Activity webhook.
type TwitterHandler struct {
	ingress        ports.CommandIngress
	sigSvc         ports.SignatureService
	lx             *lexicon.Lexicon
	consumerSecret string
	botID          string
	botName        string
	log            zerolog.Logger
}

// NewTwitterHandler creates a new TwitterHandler.
func NewTwitterHandler(
	ingress ports.CommandIngress,
	sigSvc ports.SignatureService,
	lx *lexicon.Lexicon,
	consumerSecret, botID, botName string,
	log zerolog.Logger,
) *TwitterHandler {
	return &TwitterHandler{
		ingress:        ingress,
		sigSvc:         sigSvc,
		lx:             lx,
		consumerSecret: consumerSecret,
		botID:          botID,
		botName:        strings.TrimPrefix(botName, "@"),
		log:            log,
	}
}

// CRC handles GET /webhooks/twitter, the challenge-response check Twitter
// runs when the webhook is registered and hourly after that.
func (h *TwitterHandler) CRC(c *gin.Context) {
	token := c.Query("crc_token")
	if token == "" {
		response.Error(c, apperror.ErrMissingCRCToken())
		return
	}
	c.JSON(http.StatusOK, dto.CRCResponse{
		ResponseToken: h.sigSvc.Sign(h.consumerSecret, []byte(token)),
	})
}

// Webhook handles POST /webhooks/twitter. The signature has already been
// checked by middleware.
func (h *TwitterHandler) Webhook(c *gin.Context) {
	var ev dto.TwitterEvent
	if err := c.ShouldBindJSON(&ev); err != nil {
		response.Error(c, apperror.ErrMalformedPayload(err))
		return
	}

	ctx := c.Request.Context()
	var err error
	switch {
	case len(ev.DirectMessageEvents) > 0:
		err = h.directMessages(ctx, &ev)
	case len(ev.TweetCreateEvents) > 0:
		err = h.tweets(ctx, ev.TweetCreateEvents)
	case len(ev.FollowEvents) > 0:
		err = h.follows(ctx, ev.FollowEvents)
	}
	if err != nil {
		h.log.Error().Err(err).Msg("twitter event failed")
		response.Error(c, apperror.ErrDatabaseError(err))
		return
	}
	c.Status(http.StatusOK)
}

func (h *TwitterHandler) directMessages(ctx context.Context, ev *dto.TwitterEvent) error {
	for _, dm := range ev.DirectMessageEvents {
		sender := dm.MessageCreate.SenderID
		text := dm.MessageCreate.MessageData.Text
		// The bot's own outgoing DMs are echoed back to it.
		if dm.Type != "message_create" || sender == "" || sender == h.botID || strings.TrimSpace(text) == "" {
			continue
		}
		if _, err := h.ingress.Submit(ctx, &domain.MessageContext{
			Platform:   domain.PlatformTwitter,
			SenderID:   sender,
			SenderName: ev.Users[sender].ScreenName,
			MessageID:  dm.ID,
			Text:       text,
			Tokens:     domain.Tokenize(text),
		}); err != nil {
			return err
		}
	}
	return nil
}

func (h *TwitterHandler) tweets(ctx context.Context, tweets []dto.TwitterTweet) error {
	for i := range tweets {
		tw := &tweets[i]
		if tw.User.IDStr == h.botID || tw.RetweetedStatus != nil {
			continue
		}
		text, entities := tw.FullText()
		tokens := domain.Tokenize(text)
		idx := h.lx.TipIndex(tokens)
		if idx < 0 {
			h.log.Debug().Str("tweet_id", tw.IDStr).Msg("mention without a tip command")
			continue
		}
		tokens = tokens[idx:]

		if _, err := h.ingress.Submit(ctx, &domain.MessageContext{
			Platform:   domain.PlatformTwitter,
			SenderID:   tw.User.IDStr,
			SenderName: tw.User.ScreenName,
			MessageID:  tw.IDStr,
			Text:       text,
			Tokens:     tokens,
			Public:     true,
			Intent:     domain.IntentTip,
			Recipients: h.recipients(tokens, entities.UserMentions),
		}); err != nil {
			return err
		}
	}
	return nil
}

// recipients keeps the @names written after the amount, in order, using the
// ids Twitter resolved in the mention entities. Names Twitter did not resolve
// are not accounts and are dropped.
func (h *TwitterHandler) recipients(tokens []string, mentions []dto.TwitterMention) []domain.Recipient {
	byName := make(map[string]dto.TwitterMention, len(mentions))
	for _, m := range mentions {
		byName[strings.ToLower(m.ScreenName)] = m
	}

	var out []domain.Recipient
	for _, name := range mentionNames(tokens) {
		m, ok := byName[strings.ToLower(name)]
		if !ok || m.IDStr == h.botID || strings.EqualFold(m.ScreenName, h.botName) {
			continue
		}
		out = append(out, domain.Recipient{UserID: m.IDStr, UserName: m.ScreenName})
	}
	return out
}

// follows greets new followers with the help text.
func (h *TwitterHandler) follows(ctx context.Context, follows []dto.TwitterFollowEvent) error {
	for _, f := range follows {
		if f.Type != "follow" || f.Source.ID == "" || f.Source.ID == h.botID {
			continue
		}
		h.log.Info().Str("user_id", f.Source.ID).Msg("new follower, sending help")
		if _, err := h.ingress.Submit(ctx, &domain.MessageContext{
			Platform:   domain.PlatformTwitter,
			SenderID:   f.Source.ID,
			SenderName: f.Source.ScreenName,
			MessageID:  "follow-" + f.Source.ID + "-" + f.CreatedTimestamp,
			Intent:     domain.IntentHelp,
		}); err != nil {
			return err
		}
	}
	return nil
}
