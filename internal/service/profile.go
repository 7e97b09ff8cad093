package service

import (
	"context"
	"strings"

	"tipbot/internal/core/domain"

	"github.com/shopspring/decimal"
)

func (c *command) setMute(ctx context.Context, muted bool) (*domain.Result, error) {
	acct, err := c.e.accounts.SetMute(ctx, c.msg.Platform, c.msg.SenderID, c.msg.SenderName, muted)
	if err != nil {
		return nil, err
	}
	c.adopt(acct)

	key := tplUnmute
	if muted {
		key = tplMute
	}
	return c.reply(ctx, domain.OutcomeSuccess, key), nil
}

func (c *command) balance(ctx context.Context) (*domain.Result, error) {
	acct, err := c.sender(ctx)
	if err != nil {
		return nil, err
	}
	if acct == nil {
		return c.reject(ctx, domain.OutcomeNoAccount, tplNoAccount), nil
	}

	bal, err := c.fullBalance(ctx, acct.WalletAccount)
	if err != nil {
		return nil, err
	}

	res := c.reply(ctx, domain.OutcomeSuccess, tplBalance,
		bal.Confirmed.String(), bal.Pending.String(), c.e.cfg.CurrencySymbol)
	res.Amount = bal.Confirmed
	return res, nil
}

func (c *command) register(ctx context.Context) (*domain.Result, error) {
	acct, err := c.sender(ctx)
	if err != nil {
		return nil, err
	}

	switch {
	case acct == nil:
		acct, _, err = c.e.accounts.ResolveOrCreate(ctx, c.msg.Platform, c.msg.SenderID, c.msg.SenderName,
			AccountDefaults{Registered: true, Language: c.msg.Locale})
		if err != nil {
			return nil, err
		}
		return c.reply(ctx, domain.OutcomeSuccess, tplAccountRegister, acct.Address), nil
	case c.registered:
		return c.reply(ctx, domain.OutcomeSuccess, tplAccountRegister, acct.Address), nil
	default:
		return c.reply(ctx, domain.OutcomeSuccess, tplAccountAlreadyRegistered, acct.Address), nil
	}
}

func (c *command) account(ctx context.Context) (*domain.Result, error) {
	acct, err := c.sender(ctx)
	if err != nil {
		return nil, err
	}

	if acct == nil {
		acct, _, err = c.e.accounts.ResolveOrCreate(ctx, c.msg.Platform, c.msg.SenderID, c.msg.SenderName,
			AccountDefaults{Registered: true, Language: c.msg.Locale})
		if err != nil {
			return nil, err
		}
		return c.reply(ctx, domain.OutcomeSuccess, tplAccountCreate, acct.Address), nil
	}
	return c.reply(ctx, domain.OutcomeSuccess, tplAccount, acct.Address), nil
}

// setLanguage handles "!language <name>". Chinese variants take two words.
func (c *command) setLanguage(ctx context.Context) (*domain.Result, error) {
	tokens := c.msg.Tokens
	if len(tokens) < 2 {
		return c.reject(ctx, domain.OutcomeInvalidSyntax, tplLanguageMissing), nil
	}

	name := strings.ToLower(tokens[1])
	if name == "chinese" && len(tokens) > 2 {
		name += " " + strings.ToLower(tokens[2])
	}

	code, ok := c.e.lexicon.LanguageCode(name)
	if !ok {
		return c.reject(ctx, domain.OutcomeUnknownLanguage, tplUnknownLanguage, name), nil
	}

	acct, err := c.e.accounts.SetLanguage(ctx, c.msg.Platform, c.msg.SenderID, c.msg.SenderName, code)
	if err != nil {
		return nil, err
	}
	c.adopt(acct)
	c.msg.Locale = code

	return c.reply(ctx, domain.OutcomeSuccess, tplLanguageSuccess, name), nil
}

// setAutoDonate handles "!autodonate <percent>", stored as a whole percentage.
func (c *command) setAutoDonate(ctx context.Context) (*domain.Result, error) {
	tokens := c.msg.Tokens
	if len(tokens) < 2 {
		return c.reject(ctx, domain.OutcomeInvalidSyntax, tplAutoDonateMissing), nil
	}

	pct, err := parsePercent(tokens[1])
	if err != nil {
		return c.reject(ctx, domain.OutcomeInvalidAmount, tplAutoDonateNotANumber), nil
	}
	if pct.IsNegative() || pct.GreaterThan(decimal.NewFromInt(100)) {
		return c.reject(ctx, domain.OutcomeOutOfRange, tplAutoDonateOutOfRange), nil
	}

	acct, err := c.sender(ctx)
	if err != nil {
		return nil, err
	}
	if acct == nil {
		return c.reject(ctx, domain.OutcomeNoAccount, tplNoAccount), nil
	}

	percent := int(pct.IntPart())
	if err := c.e.accounts.SetDonationPercent(ctx, acct, percent); err != nil {
		return nil, err
	}

	return c.reply(ctx, domain.OutcomeSuccess, tplAutoDonateSuccess, percent), nil
}
