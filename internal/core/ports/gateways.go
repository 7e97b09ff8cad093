package ports

import (
	"context"

	"tipbot/internal/core/domain"

	"github.com/shopspring/decimal"
)

// WalletGateway is the custodial wallet daemon. Amounts are exact decimals.
type WalletGateway interface {
	Balance(ctx context.Context, account string, minConf int) (decimal.Decimal, error)
	ValidateAddress(ctx context.Context, address string) (bool, error)
	// CreateAccount provisions a fresh, unused account handle with a deposit address.
	CreateAccount(ctx context.Context) (*domain.WalletAccountInfo, error)
	Move(ctx context.Context, from, to string, amount decimal.Decimal) error
	Send(ctx context.Context, from, toAddress string, amount decimal.Decimal) (string, error)
}

// Notifier renders and delivers a user-facing message.
type Notifier interface {
	Notify(ctx context.Context, req domain.RenderRequest) error
}
