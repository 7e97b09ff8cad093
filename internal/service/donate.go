package service

import (
	"context"

	"tipbot/internal/core/domain"
)

// donate moves funds to the bot's own account. Amounts slightly above the
// balance (within the epsilon) are clamped down to the balance.
func (c *command) donate(ctx context.Context) (*domain.Result, error) {
	if len(c.msg.Tokens) < 2 {
		return c.reject(ctx, domain.OutcomeInvalidSyntax, tplDonateSyntax), nil
	}

	sender, err := c.sender(ctx)
	if err != nil {
		return nil, err
	}
	if sender == nil {
		return c.reject(ctx, domain.OutcomeNoAccount, tplNoAccount), nil
	}

	amount, err := parseAmount(c.msg.Tokens[1], c.e.cfg.AmountDecimals)
	if err != nil {
		return c.reject(ctx, domain.OutcomeInvalidAmount, tplInvalidAmount), nil
	}

	balance, err := c.confirmedBalance(ctx, sender.WalletAccount)
	if err != nil {
		return nil, err
	}
	if balance.LessThan(amount.Sub(c.e.cfg.DonationEpsilon)) {
		return c.reject(ctx, domain.OutcomeInsufficientBalance, tplInsufficientBalance,
			balance.String(), c.e.cfg.CurrencySymbol), nil
	}
	if amount.LessThan(c.e.cfg.MinTip) {
		return c.reject(ctx, domain.OutcomeBelowMinimum, tplBelowMinimum,
			c.e.cfg.MinTip.String(), c.e.cfg.CurrencySymbol), nil
	}
	if amount.GreaterThan(balance) {
		amount = balance.Truncate(c.e.cfg.AmountDecimals)
	}
	if !amount.IsPositive() {
		return c.reject(ctx, domain.OutcomeInsufficientBalance, tplInsufficientBalance,
			balance.String(), c.e.cfg.CurrencySymbol), nil
	}
	c.msg.Amount = amount

	if err := c.e.wallet.Move(ctx, sender.WalletAccount, c.e.cfg.BotAccount, amount); err != nil {
		c.log.Error().Err(err).Str("amount", amount.String()).Msg("donation transfer failed")
		return c.transferFailed(ctx, sender, c.e.cfg.BotAccount, amount), nil
	}

	c.log.Info().Str("amount", amount.String()).Msg("donation received")
	res := c.reply(ctx, domain.OutcomeSuccess, tplDonateSuccess, amount.String(), c.e.cfg.CurrencySymbol)
	res.Amount = amount
	return res, nil
}
