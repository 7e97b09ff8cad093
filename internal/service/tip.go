package service

import (
	"context"
	"strings"
	"time"

	"tipbot/internal/core/domain"

	"github.com/shopspring/decimal"
)

// tip settles "<tip word> <amount> @a @b ...". Recipients are handled one at
// a time in order; a failed transfer to one does not stop the next.
func (c *command) tip(ctx context.Context) (*domain.Result, error) {
	res := c.result(domain.OutcomeSuccess)
	res.Recipients = c.entries()

	if len(res.Recipients) == 0 {
		res.Kind = domain.OutcomeNoRecipients
		c.reject(ctx, domain.OutcomeNoRecipients, tplNoRecipients, c.e.lexicon.TipWord(c.msg.Locale))
		return res, nil
	}

	var eligible []*domain.RecipientEntry
	selfTip := false
	for _, entry := range res.Recipients {
		if entry.UserID == c.msg.SenderID {
			entry.Advance(domain.RecipientRejected)
			entry.Reason = domain.OutcomeSelfTransfer
			selfTip = true
			continue
		}
		eligible = append(eligible, entry)
	}
	if selfTip {
		c.respond(ctx, tplSelfTip, c.e.cfg.CurrencySymbol)
	}
	if len(eligible) == 0 {
		res.Kind = domain.OutcomeSelfTransfer
		return res, nil
	}

	sender, err := c.sender(ctx)
	if err != nil {
		return res, err
	}
	if sender == nil {
		res.Kind = domain.OutcomeNoAccount
		c.reject(ctx, domain.OutcomeNoAccount, tplNoAccount)
		return res, nil
	}

	var amountToken string
	if len(c.msg.Tokens) > 1 {
		amountToken = c.msg.Tokens[1]
	}
	amount, err := parseAmount(amountToken, c.e.cfg.AmountDecimals)
	if err != nil {
		res.Kind = domain.OutcomeInvalidAmount
		c.reject(ctx, domain.OutcomeInvalidAmount, tplInvalidAmount)
		return res, nil
	}
	res.Amount = amount
	c.msg.Amount = amount

	if amount.LessThan(c.e.cfg.MinTip) {
		res.Kind = domain.OutcomeBelowMinimum
		c.reject(ctx, domain.OutcomeBelowMinimum, tplBelowMinimum, c.e.cfg.MinTip.String(), c.e.cfg.CurrencySymbol)
		return res, nil
	}

	balance, err := c.confirmedBalance(ctx, sender.WalletAccount)
	if err != nil {
		return res, err
	}
	total := amount.Mul(decimal.NewFromInt(int64(len(eligible))))
	if total.GreaterThan(balance) {
		res.Kind = domain.OutcomeInsufficientBalance
		c.reject(ctx, domain.OutcomeInsufficientBalance, tplInsufficientBalance, balance.String(), c.e.cfg.CurrencySymbol)
		return res, nil
	}

	for _, entry := range eligible {
		if err := c.settle(ctx, sender, entry, amount); err != nil {
			return res, err
		}
	}

	c.summarize(ctx, res, amount)
	return res, nil
}

// entries turns the parsed recipients into PENDING entries, dropping repeats.
func (c *command) entries() []*domain.RecipientEntry {
	seen := make(map[string]bool, len(c.msg.Recipients))
	var out []*domain.RecipientEntry
	for _, r := range c.msg.Recipients {
		if r.UserID == "" || seen[r.UserID] {
			continue
		}
		seen[r.UserID] = true
		out = append(out, &domain.RecipientEntry{
			Index:    len(out),
			UserID:   r.UserID,
			UserName: r.UserName,
			State:    domain.RecipientPending,
		})
	}
	return out
}

// settle drives one entry through RESOLVED, then TRANSFERRED or
// TRANSFER_FAILED, then (best effort) NOTIFIED. Only a directory or
// provisioning fault is returned.
func (c *command) settle(ctx context.Context, sender *domain.Account, entry *domain.RecipientEntry, amount decimal.Decimal) error {
	entry.TipID = domain.BuildTipID(c.msg.Platform, c.msg.ChatID, c.msg.MessageID, entry.Index)
	log := c.log.With().Str("tip_id", entry.TipID).Str("receiver_id", entry.UserID).Logger()

	receiver, _, err := c.e.accounts.ResolveOrCreate(ctx, c.msg.Platform, entry.UserID, entry.UserName,
		AccountDefaults{Registered: false, Muted: false})
	if err != nil {
		return err
	}
	entry.Account = receiver
	entry.Advance(domain.RecipientResolved)

	if err := c.e.wallet.Move(ctx, sender.WalletAccount, receiver.WalletAccount, amount); err != nil {
		entry.Advance(domain.RecipientTransferFailed)
		entry.Reason = domain.OutcomeTransferFailed
		log.Error().Err(err).Str("amount", amount.String()).Msg("tip transfer failed")
		c.record(ctx, entry.TipID, sender, entry.UserID, receiver.WalletAccount, amount, domain.TipStatusTransferFailed)
		c.respond(ctx, tplTipFailed, entry.TipID)
		return nil
	}
	entry.Advance(domain.RecipientTransferred)
	log.Info().Str("amount", amount.String()).Msg("tip transferred")
	c.record(ctx, entry.TipID, sender, entry.UserID, receiver.WalletAccount, amount, domain.TipStatusTransferred)

	if receiver.Muted {
		return nil
	}
	bal, err := c.confirmedBalance(ctx, receiver.WalletAccount)
	if err != nil {
		log.Warn().Err(err).Msg("skipping receiver notification: balance unavailable")
		return nil
	}
	entry.Balance = bal

	locale := receiver.Language
	if locale == "" {
		locale = c.e.cfg.DefaultLocale
	}
	senderName := c.msg.SenderName
	if senderName == "" {
		senderName = sender.UserName
	}
	if !c.dm(ctx, receiver.UserID, locale, tplReceiverTip,
		senderName, amount.String(), c.e.cfg.CurrencySymbol, bal.String()) {
		return nil
	}

	entry.Advance(domain.RecipientNotified)
	if err := c.e.tips.UpdateStatus(ctx, entry.TipID, domain.TipStatusNotified); err != nil {
		log.Warn().Err(err).Msg("failed to mark tip notified")
	}
	return nil
}

// record persists a transfer attempt for reconciliation. Failures are
// logged: the money state is already final.
func (c *command) record(ctx context.Context, tipID string, sender *domain.Account, receiverID, receiverAccount string, amount decimal.Decimal, status domain.TipStatus) {
	now := time.Now().UTC()
	err := c.e.tips.Save(ctx, &domain.Tip{
		TipID:           tipID,
		Platform:        c.msg.Platform,
		ChatID:          c.msg.ChatID,
		MessageID:       c.msg.MessageID,
		SenderID:        c.msg.SenderID,
		ReceiverID:      receiverID,
		SenderAccount:   sender.WalletAccount,
		ReceiverAccount: receiverAccount,
		Amount:          amount,
		Status:          status,
		Text:            c.msg.Text,
		CreatedAt:       now,
		UpdatedAt:       now,
	})
	if err != nil {
		c.log.Error().Err(err).Str("tip_id", tipID).Str("status", string(status)).Msg("failed to record tip")
	}
}

// transferFailed records a withdraw or donation whose wallet call errored.
// The daemon may still have executed it, so the sender gets the identifier
// and no promise about their funds.
func (c *command) transferFailed(ctx context.Context, sender *domain.Account, receiverAccount string, amount decimal.Decimal) *domain.Result {
	tipID := domain.BuildTipID(c.msg.Platform, c.msg.ChatID, c.msg.MessageID, 0)
	c.record(ctx, tipID, sender, "", receiverAccount, amount, domain.TipStatusTransferFailed)
	res := c.reject(ctx, domain.OutcomeTransferFailed, tplTransferFailed, tipID, amount.String(), c.e.cfg.CurrencySymbol)
	res.Amount = amount
	res.TipID = tipID
	return res
}

// summarize tells the sender what went through.
func (c *command) summarize(ctx context.Context, res *domain.Result, amount decimal.Decimal) {
	var names []string
	for _, e := range res.Recipients {
		if e.State.Settled() {
			names = append(names, mention(e))
		}
	}

	switch {
	case len(names) == 0:
		res.Kind = domain.OutcomeTransferFailed
	case len(names) == 1:
		args := []any{amount.String(), c.e.cfg.CurrencySymbol, names[0]}
		c.respond(ctx, tplTipSuccess, args...)
		if c.msg.Platform != domain.PlatformTwitter {
			c.dm(ctx, c.msg.SenderID, c.msg.Locale, tplTipSuccess, args...)
		}
	default:
		args := []any{amount.String(), c.e.cfg.CurrencySymbol, strings.Join(names, ", "), len(names)}
		c.respond(ctx, tplMultiTipSuccess, args...)
		c.dm(ctx, c.msg.SenderID, c.msg.Locale, tplMultiTipSuccess, args...)
	}
}

func mention(e *domain.RecipientEntry) string {
	if e.UserName == "" {
		return e.UserID
	}
	if strings.HasPrefix(e.UserName, "@") {
		return e.UserName
	}
	return "@" + e.UserName
}
