package service

import (
	"context"
	"fmt"

	"tipbot/internal/core/domain"
	"tipbot/internal/core/ports"

	"github.com/rs/zerolog"
)

// AccountDefaults are the flags a lazily created account starts with.
type AccountDefaults struct {
	Registered bool
	Muted      bool
	Language   string
}

// Accounts owns the account lifecycle: lazy creation, registration and mute.
type Accounts struct {
	dir    ports.AccountDirectory
	wallet ports.WalletGateway
	log    zerolog.Logger
}

// NewAccounts creates the account lifecycle helper.
func NewAccounts(dir ports.AccountDirectory, wallet ports.WalletGateway, log zerolog.Logger) *Accounts {
	return &Accounts{dir: dir, wallet: wallet, log: log}
}

// Find returns the account for an identity, or nil.
func (a *Accounts) Find(ctx context.Context, platform domain.Platform, userID string) (*domain.Account, error) {
	acct, err := a.dir.Find(ctx, platform, userID)
	if err != nil {
		return nil, fmt.Errorf("find account: %w", err)
	}
	return acct, nil
}

// ResolveOrCreate returns the existing account or provisions a wallet account
// and records a new one. It reports whether it created the account.
// Repeated calls for the same identity always yield the same wallet handle.
func (a *Accounts) ResolveOrCreate(ctx context.Context, platform domain.Platform, userID, userName string, def AccountDefaults) (*domain.Account, bool, error) {
	acct, err := a.Find(ctx, platform, userID)
	if err != nil {
		return nil, false, err
	}
	if acct != nil {
		return acct, false, nil
	}

	info, err := a.wallet.CreateAccount(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("provision wallet account: %w", err)
	}

	acct, err = a.dir.Create(ctx, domain.NewAccountParams{
		Platform:      platform,
		UserID:        userID,
		UserName:      userName,
		WalletAccount: info.Account,
		Address:       info.Address,
		Registered:    def.Registered,
		Muted:         def.Muted,
		Language:      def.Language,
	})
	if err != nil {
		return nil, false, fmt.Errorf("create account: %w", err)
	}

	// A concurrent creator may have won; its handle is the one that sticks.
	created := acct.WalletAccount == info.Account
	if !created {
		a.log.Warn().
			Str("platform", string(platform)).
			Str("user_id", userID).
			Str("orphaned_account", info.Account).
			Msg("account created concurrently, provisioned wallet account unused")
	} else {
		a.log.Info().
			Str("platform", string(platform)).
			Str("user_id", userID).
			Bool("registered", def.Registered).
			Msg("account created")
	}
	return acct, created, nil
}

// MarkRegistered flips registered on an unregistered account. It is a no-op
// for registered ones.
func (a *Accounts) MarkRegistered(ctx context.Context, acct *domain.Account) error {
	if acct.Registered {
		return nil
	}
	_, err := a.dir.Update(ctx,
		domain.AccountFilter{Platform: acct.Platform, UserID: acct.UserID, RegisteredIs: domain.BoolPtr(false)},
		domain.AccountUpdate{Registered: domain.BoolPtr(true)},
	)
	if err != nil {
		return fmt.Errorf("mark registered: %w", err)
	}
	acct.Registered = true
	return nil
}

// SetMute creates the account if absent, otherwise updates its mute flag.
func (a *Accounts) SetMute(ctx context.Context, platform domain.Platform, userID, userName string, muted bool) (*domain.Account, error) {
	return a.upsert(ctx, platform, userID, userName,
		AccountDefaults{Registered: true, Muted: muted},
		func(acct *domain.Account) domain.AccountUpdate {
			if acct.Muted == muted {
				return domain.AccountUpdate{}
			}
			acct.Muted = muted
			return domain.AccountUpdate{Muted: domain.BoolPtr(muted)}
		})
}

// SetLanguage creates the account if absent, otherwise updates its language.
func (a *Accounts) SetLanguage(ctx context.Context, platform domain.Platform, userID, userName, language string) (*domain.Account, error) {
	return a.upsert(ctx, platform, userID, userName,
		AccountDefaults{Registered: true, Language: language},
		func(acct *domain.Account) domain.AccountUpdate {
			if acct.Language == language {
				return domain.AccountUpdate{}
			}
			acct.Language = language
			return domain.AccountUpdate{Language: &language}
		})
}

// SetDonationPercent stores the auto-donate share of an existing account.
func (a *Accounts) SetDonationPercent(ctx context.Context, acct *domain.Account, percent int) error {
	_, err := a.dir.Update(ctx,
		domain.AccountFilter{Platform: acct.Platform, UserID: acct.UserID},
		domain.AccountUpdate{DonationPercent: &percent},
	)
	if err != nil {
		return fmt.Errorf("set donation percent: %w", err)
	}
	acct.DonationPercent = percent
	return nil
}

func (a *Accounts) upsert(
	ctx context.Context,
	platform domain.Platform,
	userID, userName string,
	def AccountDefaults,
	patch func(*domain.Account) domain.AccountUpdate,
) (*domain.Account, error) {
	acct, created, err := a.ResolveOrCreate(ctx, platform, userID, userName, def)
	if err != nil {
		return nil, err
	}
	if created {
		return acct, nil
	}

	update := patch(acct)
	if update.Empty() {
		return acct, nil
	}
	if _, err := a.dir.Update(ctx, domain.AccountFilter{Platform: platform, UserID: userID}, update); err != nil {
		return nil, fmt.Errorf("update account: %w", err)
	}
	return acct, nil
}
