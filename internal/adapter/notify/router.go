package notify

import (
	"context"
	"fmt"

	"tipbot/internal/core/domain"

	"github.com/rs/zerolog"
)

// Sender is one platform's delivery channel.
type Sender interface {
	SendDM(ctx context.Context, userID, text string) error
	SendReply(ctx context.Context, chatID, replyTo, text string) error
}

// Router implements ports.Notifier: it renders the request through the
// catalog and hands the text to the sender of the originating platform.
type Router struct {
	catalog *Catalog
	senders map[domain.Platform]Sender
	log     zerolog.Logger
}

// NewRouter creates a notifier routing by platform.
func NewRouter(catalog *Catalog, senders map[domain.Platform]Sender, log zerolog.Logger) *Router {
	return &Router{catalog: catalog, senders: senders, log: log}
}

func (r *Router) Notify(ctx context.Context, req domain.RenderRequest) error {
	sender, ok := r.senders[req.Platform]
	if !ok {
		return fmt.Errorf("no sender for platform %q", req.Platform)
	}

	text, err := r.catalog.Render(req.Locale, req.TemplateKey, req.Args...)
	if err != nil {
		return err
	}

	switch req.Kind {
	case domain.DeliveryReply:
		err = sender.SendReply(ctx, req.ChatID, req.ReplyTo, text)
	default:
		err = sender.SendDM(ctx, req.RecipientID, text)
	}
	if err != nil {
		return fmt.Errorf("deliver %s %s: %w", req.Kind, req.TemplateKey, err)
	}

	r.log.Debug().
		Str("platform", string(req.Platform)).
		Str("kind", string(req.Kind)).
		Str("template", req.TemplateKey).
		Str("recipient_id", req.RecipientID).
		Msg("notification delivered")
	return nil
}
