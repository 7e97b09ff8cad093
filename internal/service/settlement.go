package service

import (
	"context"
	"fmt"
	"strings"

	"tipbot/internal/core/domain"
	"tipbot/internal/core/ports"
	"tipbot/internal/lexicon"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// SettlementConfig is the fixed configuration of the engine. The maintenance
// flag is not part of it: that is read live from a ports.ModeSource.
type SettlementConfig struct {
	CurrencyName      string
	CurrencySymbol    string
	MinTip            decimal.Decimal
	BotAccount        string
	MinTxConfirmation int
	// DonationEpsilon absorbs decimal drift in the donation balance check only.
	DonationEpsilon decimal.Decimal
	ExplorerURL     string
	HelpURL         string
	DefaultLocale   string
	// AmountDecimals is the wallet precision; user amounts are truncated to it.
	AmountDecimals int32
}

// SettlementEngine implements ports.CommandHandler. It is stateless between
// commands and safe to run from many workers at once; per-account
// consistency is left to the directory and the wallet daemon.
type SettlementEngine struct {
	classifier *Classifier
	lexicon    *lexicon.Lexicon
	accounts   *Accounts
	wallet     ports.WalletGateway
	tips       ports.TipRepository
	notifier   ports.Notifier
	mode       ports.ModeSource
	cfg        SettlementConfig
	log        zerolog.Logger
}

// NewSettlementEngine creates the settlement engine.
func NewSettlementEngine(
	lx *lexicon.Lexicon,
	dir ports.AccountDirectory,
	wallet ports.WalletGateway,
	tips ports.TipRepository,
	notifier ports.Notifier,
	mode ports.ModeSource,
	cfg SettlementConfig,
	log zerolog.Logger,
) *SettlementEngine {
	if cfg.DefaultLocale == "" {
		cfg.DefaultLocale = lexicon.DefaultLocale
	}
	if cfg.AmountDecimals <= 0 {
		cfg.AmountDecimals = DefaultAmountDecimals
	}
	return &SettlementEngine{
		classifier: NewClassifier(lx),
		lexicon:    lx,
		accounts:   NewAccounts(dir, wallet, log),
		wallet:     wallet,
		tips:       tips,
		notifier:   notifier,
		mode:       mode,
		cfg:        cfg,
		log:        log,
	}
}

// command is the per-message working state of one worker.
type command struct {
	e   *SettlementEngine
	msg *domain.MessageContext
	log zerolog.Logger

	// registered is set when this command registered the sender.
	registered bool
}

// Handle classifies and settles one command. Expected user-level conditions
// come back as the Result kind; a non-nil error means a fault (store or
// wallet unreachable) and the command was abandoned.
func (e *SettlementEngine) Handle(ctx context.Context, msg *domain.MessageContext) (*domain.Result, error) {
	if msg.Locale == "" {
		msg.Locale = e.cfg.DefaultLocale
	}
	if len(msg.Tokens) == 0 {
		msg.Tokens = domain.Tokenize(msg.Text)
	}
	if msg.Intent == "" {
		msg.Intent = e.classifier.Classify(msg.Locale, msg.Action())
	}

	c := &command{
		e:   e,
		msg: msg,
		log: e.log.With().
			Str("platform", string(msg.Platform)).
			Str("sender_id", msg.SenderID).
			Str("message_id", msg.MessageID).
			Str("intent", string(msg.Intent)).
			Logger(),
	}

	// Checked before any lookup so maintenance means zero wallet traffic.
	if msg.Intent.Gated() && e.mode.Mode() == domain.ModeMaintenance {
		c.log.Info().Msg("command refused: maintenance")
		return c.reject(ctx, domain.OutcomeMaintenance, tplMaintenance), nil
	}

	switch msg.Intent {
	case domain.IntentHelp:
		return c.help(ctx), nil
	case domain.IntentListLanguages:
		return c.reply(ctx, domain.OutcomeSuccess, tplLanguageList, strings.Join(e.lexicon.Languages(), ", ")), nil
	case domain.IntentPrivateTipHint:
		return c.reply(ctx, domain.OutcomeSuccess, tplPrivateTip, e.lexicon.TipWord(msg.Locale)), nil
	case domain.IntentMute:
		return c.setMute(ctx, true)
	case domain.IntentUnmute:
		return c.setMute(ctx, false)
	case domain.IntentBalance:
		return c.balance(ctx)
	case domain.IntentRegister:
		return c.register(ctx)
	case domain.IntentAccount:
		return c.account(ctx)
	case domain.IntentTip:
		if !msg.Public {
			return c.reject(ctx, domain.OutcomeInvalidSyntax, tplRedirectTip, e.lexicon.TipWord(msg.Locale)), nil
		}
		return c.tip(ctx)
	case domain.IntentWithdraw:
		return c.withdraw(ctx)
	case domain.IntentDonate:
		return c.donate(ctx)
	case domain.IntentSetLanguage:
		return c.setLanguage(ctx)
	case domain.IntentSetAutoDonate:
		return c.setAutoDonate(ctx)
	default:
		c.log.Debug().Str("action", msg.Action()).Msg("unrecognized command")
		return c.reject(ctx, domain.OutcomeUnrecognized, tplWrongFormat), nil
	}
}

func (c *command) help(ctx context.Context) *domain.Result {
	cfg := c.e.cfg
	return c.reply(ctx, domain.OutcomeSuccess, tplHelp,
		cfg.CurrencyName, c.e.lexicon.TipWord(c.msg.Locale), cfg.MinTip.String(), cfg.CurrencySymbol, cfg.HelpURL)
}

// sender looks up the sender's account and adopts its language. Intents
// that count as deliberate use register the account on the way.
func (c *command) sender(ctx context.Context) (*domain.Account, error) {
	acct, err := c.e.accounts.Find(ctx, c.msg.Platform, c.msg.SenderID)
	if err != nil || acct == nil {
		return nil, err
	}
	c.adopt(acct)
	if c.msg.Intent.RegistersSender() && !acct.Registered {
		if err := c.e.accounts.MarkRegistered(ctx, acct); err != nil {
			return nil, err
		}
		c.registered = true
	}
	return acct, nil
}

func (c *command) adopt(acct *domain.Account) {
	if acct == nil {
		return
	}
	c.msg.Sender = acct
	if acct.Language != "" {
		c.msg.Locale = acct.Language
	}
}

func (c *command) confirmedBalance(ctx context.Context, account string) (decimal.Decimal, error) {
	bal, err := c.e.wallet.Balance(ctx, account, c.e.cfg.MinTxConfirmation)
	if err != nil {
		return decimal.Zero, fmt.Errorf("fetch balance: %w", err)
	}
	return bal, nil
}

// fullBalance queries the wallet twice: once counting a single confirmation,
// once at the configured minimum. The difference is pending.
func (c *command) fullBalance(ctx context.Context, account string) (domain.Balance, error) {
	unconfirmed, err := c.e.wallet.Balance(ctx, account, 1)
	if err != nil {
		return domain.Balance{}, fmt.Errorf("fetch unconfirmed balance: %w", err)
	}
	confirmed, err := c.confirmedBalance(ctx, account)
	if err != nil {
		return domain.Balance{}, err
	}
	return domain.Balance{Confirmed: confirmed, Pending: unconfirmed.Sub(confirmed)}, nil
}

func (c *command) result(kind domain.OutcomeKind) *domain.Result {
	return &domain.Result{Intent: c.msg.Intent, Kind: kind}
}

// reply answers the sender and returns a result of kind.
func (c *command) reply(ctx context.Context, kind domain.OutcomeKind, key string, args ...any) *domain.Result {
	c.respond(ctx, key, args...)
	return c.result(kind)
}

// reject is reply for non-success outcomes, logged for tracing.
func (c *command) reject(ctx context.Context, kind domain.OutcomeKind, key string, args ...any) *domain.Result {
	c.log.Debug().Str("outcome", string(kind)).Msg("command rejected")
	return c.reply(ctx, kind, key, args...)
}

// respond answers where the command came from: a reply in public, a DM in private.
func (c *command) respond(ctx context.Context, key string, args ...any) {
	req := domain.RenderRequest{
		Platform:    c.msg.Platform,
		Kind:        domain.DeliveryDM,
		RecipientID: c.msg.SenderID,
		Locale:      c.msg.Locale,
		TemplateKey: key,
		Args:        args,
	}
	if c.msg.Public {
		req.Kind = domain.DeliveryReply
		req.ChatID = c.msg.ChatID
		req.ReplyTo = c.msg.MessageID
	}
	c.notify(ctx, req)
}

// dm messages a user privately in their own locale.
func (c *command) dm(ctx context.Context, userID, locale, key string, args ...any) bool {
	return c.notify(ctx, domain.RenderRequest{
		Platform:    c.msg.Platform,
		Kind:        domain.DeliveryDM,
		RecipientID: userID,
		Locale:      locale,
		TemplateKey: key,
		Args:        args,
	})
}

// notify is best effort: delivery problems never change a settlement.
func (c *command) notify(ctx context.Context, req domain.RenderRequest) bool {
	if err := c.e.notifier.Notify(ctx, req); err != nil {
		c.log.Warn().Err(err).
			Str("template", req.TemplateKey).
			Str("recipient_id", req.RecipientID).
			Msg("notification failed")
		return false
	}
	return true
}
