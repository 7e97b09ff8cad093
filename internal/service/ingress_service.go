package service

import (
	"context"
	"fmt"
	"time"

	"tipbot/internal/core/domain"
	"tipbot/internal/core/ports"

	"github.com/rs/zerolog"
)

// IngressServiceImpl implements ports.CommandIngress.
type IngressServiceImpl struct {
	dedupe     ports.UpdateDeduper
	inbound    ports.InboundRepository
	accounts   ports.AccountDirectory
	members    ports.ChatMemberRepository
	dispatcher *Dispatcher
	dedupTTL   time.Duration
	log        zerolog.Logger
}

// NewIngressService creates the ingress service. dedupe may be nil, in which
// case the durable inbound log alone drops redeliveries.
func NewIngressService(
	dedupe ports.UpdateDeduper,
	inbound ports.InboundRepository,
	accounts ports.AccountDirectory,
	members ports.ChatMemberRepository,
	dispatcher *Dispatcher,
	dedupTTL time.Duration,
	log zerolog.Logger,
) *IngressServiceImpl {
	return &IngressServiceImpl{
		dedupe:     dedupe,
		inbound:    inbound,
		accounts:   accounts,
		members:    members,
		dispatcher: dispatcher,
		dedupTTL:   dedupTTL,
		log:        log,
	}
}

// Submit drops redeliveries, resolves group mentions and dispatches the
// command. It returns false when the message was a duplicate. On error the
// update is left unclaimed so the platform's redelivery is processed.
func (s *IngressServiceImpl) Submit(ctx context.Context, msg *domain.MessageContext) (bool, error) {
	key := msg.UpdateKey()

	// Step 1: Redis fast path. An unavailable cache falls through to the log.
	claimed := false
	if s.dedupe != nil {
		switch fresh, err := s.dedupe.CheckAndSet(ctx, msg.Platform, key, s.dedupTTL); {
		case err != nil:
			s.log.Warn().Err(err).Str("update_key", key).Msg("dedupe cache unavailable")
		case !fresh:
			s.log.Debug().Str("platform", string(msg.Platform)).Str("update_key", key).Msg("duplicate update dropped")
			return false, nil
		default:
			claimed = true
		}
	}

	fresh, err := s.admit(ctx, msg, key)
	if err != nil {
		if claimed {
			s.release(ctx, msg.Platform, key)
		}
		return false, err
	}
	if !fresh {
		s.log.Debug().Str("platform", string(msg.Platform)).Str("update_key", key).Msg("duplicate update dropped")
		return false, nil
	}

	// Step 4: commands are classified in the sender's stored language
	if msg.Locale == "" {
		s.resolveLocale(ctx, msg)
	}

	// Step 5: hand off
	s.dispatcher.Dispatch(msg)
	return true, nil
}

// admit resolves mentions and then writes the durable record, so a fault in
// either leaves no trace that would drop the redelivery.
func (s *IngressServiceImpl) admit(ctx context.Context, msg *domain.MessageContext, key string) (bool, error) {
	// Step 2: Telegram mentions carry only a username
	if msg.Platform == domain.PlatformTelegram && msg.ChatID != "" && len(msg.Recipients) > 0 {
		if err := s.resolveMentions(ctx, msg); err != nil {
			return false, err
		}
	}

	// Step 3: durable record
	fresh, err := s.inbound.Record(ctx, &domain.InboundMessage{
		Platform:  msg.Platform,
		MessageID: key,
		SenderID:  msg.SenderID,
		Text:      msg.Text,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return false, fmt.Errorf("record inbound message: %w", err)
	}
	return fresh, nil
}

func (s *IngressServiceImpl) release(ctx context.Context, platform domain.Platform, key string) {
	if err := s.dedupe.Release(ctx, platform, key); err != nil {
		s.log.Error().Err(err).Str("update_key", key).Msg("failed to release dedupe key, redelivery will be dropped")
	}
}

func (s *IngressServiceImpl) resolveMentions(ctx context.Context, msg *domain.MessageContext) error {
	resolved := msg.Recipients[:0]
	for _, r := range msg.Recipients {
		if r.UserID != "" {
			resolved = append(resolved, r)
			continue
		}
		m, err := s.members.FindByName(ctx, msg.ChatID, r.UserName)
		if err != nil {
			return fmt.Errorf("resolve mention: %w", err)
		}
		if m == nil {
			s.log.Debug().Str("chat_id", msg.ChatID).Str("user_name", r.UserName).Msg("mention not a known chat member")
			continue
		}
		resolved = append(resolved, domain.Recipient{UserID: m.MemberID, UserName: m.MemberName})
	}
	msg.Recipients = resolved
	return nil
}

func (s *IngressServiceImpl) resolveLocale(ctx context.Context, msg *domain.MessageContext) {
	acct, err := s.accounts.Find(ctx, msg.Platform, msg.SenderID)
	if err != nil {
		// The engine will fault on the same lookup; classify in the default locale.
		s.log.Warn().Err(err).Str("sender_id", msg.SenderID).Msg("sender language unavailable")
		return
	}
	if acct != nil {
		msg.Locale = acct.Language
	}
}

// TrackMember records a group member so later mentions can be resolved.
func (s *IngressServiceImpl) TrackMember(ctx context.Context, member domain.ChatMember) error {
	if err := s.members.Upsert(ctx, member); err != nil {
		return fmt.Errorf("track chat member: %w", err)
	}
	return nil
}

// ForgetMember removes a member who left the group.
func (s *IngressServiceImpl) ForgetMember(ctx context.Context, chatID, memberID string) error {
	if err := s.members.Remove(ctx, chatID, memberID); err != nil {
		return fmt.Errorf("forget chat member: %w", err)
	}
	return nil
}
