package service

import (
	"context"

	"tipbot/internal/core/domain"

	"github.com/shopspring/decimal"
)

// withdraw handles "!withdraw <address>" (everything) and
// "!withdraw <amount> <address>".
func (c *command) withdraw(ctx context.Context) (*domain.Result, error) {
	tokens := c.msg.Tokens
	if len(tokens) != 2 && len(tokens) != 3 {
		return c.reject(ctx, domain.OutcomeInvalidSyntax, tplWithdrawSyntax), nil
	}

	sender, err := c.sender(ctx)
	if err != nil {
		return nil, err
	}
	if sender == nil {
		return c.reject(ctx, domain.OutcomeNoAccount, tplNoAccount), nil
	}

	var (
		amount   decimal.Decimal
		explicit bool
		address  = tokens[len(tokens)-1]
	)
	if len(tokens) == 3 {
		amount, err = parseAmount(tokens[1], c.e.cfg.AmountDecimals)
		if err != nil {
			return c.reject(ctx, domain.OutcomeInvalidAmount, tplInvalidAmount), nil
		}
		explicit = true
	}

	valid, err := c.e.wallet.ValidateAddress(ctx, address)
	if err != nil {
		return nil, err
	}
	if !valid {
		return c.reject(ctx, domain.OutcomeInvalidAddress, tplInvalidAddress, address), nil
	}

	balance, err := c.confirmedBalance(ctx, sender.WalletAccount)
	if err != nil {
		return nil, err
	}
	if !balance.IsPositive() {
		return c.reject(ctx, domain.OutcomeNoBalance, tplNoBalance), nil
	}
	if !explicit {
		amount = balance
	} else if amount.GreaterThan(balance) {
		return c.reject(ctx, domain.OutcomeInsufficientBalance, tplInsufficientBalance,
			balance.String(), c.e.cfg.CurrencySymbol), nil
	}
	c.msg.Amount = amount

	txHash, err := c.e.wallet.Send(ctx, sender.WalletAccount, address, amount)
	if err != nil {
		c.log.Error().Err(err).Str("amount", amount.String()).Str("address", address).Msg("withdrawal failed")
		return c.transferFailed(ctx, sender, address, amount), nil
	}

	c.log.Info().Str("amount", amount.String()).Str("tx_hash", txHash).Msg("withdrawal sent")
	res := c.reply(ctx, domain.OutcomeSuccess, tplWithdrawSuccess,
		amount.String(), c.e.cfg.CurrencySymbol, address, txHash, c.e.cfg.ExplorerURL)
	res.Amount = amount
	res.TxHash = txHash
	return res, nil
}
