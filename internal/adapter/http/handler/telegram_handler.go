package handler

import (
	"context"
	"net/http"
	"strconv"
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

// TelegramHandler turns Bot API updates into commands and membership changes.
type TelegramHandler struct {
	ingress ports.CommandIngress
	lx      *lexicon.Lexicon
	botID   string
	botName string
	log     zerolog.Logger
}

// NewTelegramHandler creates a new TelegramHandler.
func NewTelegramHandler(ingress ports.CommandIngress, lx *lexicon.Lexicon, botID, botName string, log zerolog.Logger) *TelegramHandler {
	return &TelegramHandler{
		ingress: ingress,
		lx:      lx,
		botID:   botID,
		botName: strings.TrimPrefix(botName, "@"),
		log:     log,
	}
}

// Webhook handles POST /webhooks/telegram. It answers as soon as the update
// is queued; settlement outcomes go out as bot messages.
func (h *TelegramHandler) Webhook(c *gin.Context) {
	var upd dto.TelegramUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		response.Error(c, apperror.ErrMalformedPayload(err))
		return
	}

	// Edited messages, callbacks and channel posts carry no message.
	if upd.Message == nil {
		c.Status(http.StatusOK)
		return
	}

	var err error
	msg := upd.Message
	switch {
	case msg.Chat.Type == "private":
		err = h.private(c.Request.Context(), upd.UpdateID, msg)
	case msg.Chat.Group():
		err = h.group(c.Request.Context(), msg)
	default:
		h.log.Debug().Str("chat_type", msg.Chat.Type).Msg("ignoring telegram update")
	}
	if err != nil {
		h.log.Error().Err(err).Int64("update_id", upd.UpdateID).Msg("telegram update failed")
		response.Error(c, apperror.ErrDatabaseError(err))
		return
	}
	c.Status(http.StatusOK)
}

func (h *TelegramHandler) private(ctx context.Context, updateID int64, msg *dto.TelegramMessage) error {
	if msg.From == nil || h.isBot(msg.From) || strings.TrimSpace(msg.Text) == "" {
		return nil
	}

	// Private message ids repeat across users; the update id does not.
	_, err := h.ingress.Submit(ctx, &domain.MessageContext{
		Platform:   domain.PlatformTelegram,
		SenderID:   userID(msg.From),
		SenderName: msg.From.DisplayName(),
		MessageID:  strconv.FormatInt(updateID, 10),
		Text:       msg.Text,
		Tokens:     domain.Tokenize(msg.Text),
	})
	return err
}

func (h *TelegramHandler) group(ctx context.Context, msg *dto.TelegramMessage) error {
	if msg.Forwarded() {
		return nil
	}
	chatID := strconv.FormatInt(msg.Chat.ID, 10)

	switch {
	case msg.NewChatMember != nil || len(msg.NewChatMembers) > 0:
		joined := msg.NewChatMembers
		if len(joined) == 0 {
			joined = []dto.TelegramUser{*msg.NewChatMember}
		}
		for i := range joined {
			if err := h.track(ctx, msg.Chat, &joined[i]); err != nil {
				return err
			}
		}
		return nil

	case msg.LeftChatMember != nil:
		h.log.Info().Str("chat_id", chatID).Int64("member_id", msg.LeftChatMember.ID).Msg("member left chat")
		return h.ingress.ForgetMember(ctx, chatID, userID(msg.LeftChatMember))

	case msg.GroupChatCreated:
		if msg.From == nil {
			return nil
		}
		return h.track(ctx, msg.Chat, msg.From)
	}

	if msg.Text == "" || msg.From == nil || h.isBot(msg.From) {
		return nil
	}

	// Every speaker is a member whose @name can be tipped later.
	if err := h.track(ctx, msg.Chat, msg.From); err != nil {
		return err
	}

	tokens := domain.Tokenize(msg.Text)
	idx := h.lx.TipIndex(tokens)
	if idx < 0 {
		return nil
	}
	tokens = tokens[idx:]

	_, err := h.ingress.Submit(ctx, &domain.MessageContext{
		Platform:   domain.PlatformTelegram,
		SenderID:   userID(msg.From),
		SenderName: msg.From.DisplayName(),
		ChatID:     chatID,
		MessageID:  strconv.FormatInt(msg.MessageID, 10),
		Text:       msg.Text,
		Tokens:     tokens,
		Public:     true,
		Intent:     domain.IntentTip,
		Recipients: h.recipients(msg, tokens),
	})
	return err
}

// recipients collects @username mentions (resolved later against chat
// members), then text mentions of users without a username. With neither, a
// tip sent as a reply goes to the replied-to author.
func (h *TelegramHandler) recipients(msg *dto.TelegramMessage, tokens []string) []domain.Recipient {
	var out []domain.Recipient
	for _, name := range mentionNames(tokens) {
		if strings.EqualFold(name, h.botName) {
			continue
		}
		out = append(out, domain.Recipient{UserName: name})
	}
	for _, e := range msg.Entities {
		if e.Type == "text_mention" && e.User != nil && !h.isBot(e.User) {
			out = append(out, domain.Recipient{UserID: userID(e.User), UserName: e.User.DisplayName()})
		}
	}
	if len(out) == 0 && msg.ReplyToMessage != nil && msg.ReplyToMessage.From != nil && !h.isBot(msg.ReplyToMessage.From) {
		from := msg.ReplyToMessage.From
		out = append(out, domain.Recipient{UserID: userID(from), UserName: from.DisplayName()})
	}
	return out
}

func (h *TelegramHandler) track(ctx context.Context, chat dto.TelegramChat, u *dto.TelegramUser) error {
	return h.ingress.TrackMember(ctx, domain.ChatMember{
		ChatID:     strconv.FormatInt(chat.ID, 10),
		ChatName:   chat.Title,
		MemberID:   userID(u),
		MemberName: u.Username,
	})
}

func (h *TelegramHandler) isBot(u *dto.TelegramUser) bool {
	return userID(u) == h.botID || (h.botName != "" && strings.EqualFold(u.Username, h.botName))
}

func userID(u *dto.TelegramUser) string {
	return strconv.FormatInt(u.ID, 10)
}
