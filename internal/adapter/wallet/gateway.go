package wallet

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"tipbot/internal/core/domain"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Gateway implements ports.WalletGateway on top of the JSON-RPC client.
type Gateway struct {
	rpc      *Client
	decimals int32
	log      zerolog.Logger
}

// NewGateway creates a wallet gateway. Outgoing amounts are truncated to
// decimals places so a transfer never exceeds what was validated.
func NewGateway(rpc *Client, decimals int32, log zerolog.Logger) *Gateway {
	return &Gateway{rpc: rpc, decimals: decimals, log: log}
}

func (g *Gateway) amount(d decimal.Decimal) json.Number {
	return json.Number(d.Truncate(g.decimals).String())
}

// Balance returns the balance of account counting only transactions with at
// least minConf confirmations.
func (g *Gateway) Balance(ctx context.Context, account string, minConf int) (decimal.Decimal, error) {
	var bal decimal.Decimal
	if err := g.rpc.Call(ctx, "getbalance", &bal, account, minConf); err != nil {
		return decimal.Zero, err
	}
	return bal, nil
}

func (g *Gateway) ValidateAddress(ctx context.Context, address string) (bool, error) {
	var res struct {
		IsValid bool `json:"isvalid"`
	}
	if err := g.rpc.Call(ctx, "validateaddress", &res, address); err != nil {
		return false, err
	}
	return res.IsValid, nil
}

// CreateAccount picks random handles until it finds one the daemon has never
// issued an address for, then asks for that handle's first address.
func (g *Gateway) CreateAccount(ctx context.Context) (*domain.WalletAccountInfo, error) {
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		handle := strings.ReplaceAll(uuid.NewString(), "-", "")

		var existing []string
		if err := g.rpc.Call(ctx, "getaddressesbyaccount", &existing, handle); err != nil {
			return nil, fmt.Errorf("checking account handle: %w", err)
		}
		if len(existing) > 0 {
			g.log.Debug().Str("account", handle).Msg("wallet account handle in use, retrying")
			continue
		}

		var address string
		if err := g.rpc.Call(ctx, "getnewaddress", &address, handle); err != nil {
			return nil, fmt.Errorf("creating deposit address: %w", err)
		}

		g.log.Info().Str("account", handle).Msg("wallet account created")
		return &domain.WalletAccountInfo{Account: handle, Address: address}, nil
	}
}

// Move transfers between two accounts inside the wallet.
func (g *Gateway) Move(ctx context.Context, from, to string, amount decimal.Decimal) error {
	var ok bool
	if err := g.rpc.Call(ctx, "move", &ok, from, to, g.amount(amount)); err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("move %s -> %s refused by wallet", from, to)
	}
	return nil
}

// Send withdraws to an external address and returns the transaction hash.
func (g *Gateway) Send(ctx context.Context, from, toAddress string, amount decimal.Decimal) (string, error) {
	var txid string
	if err := g.rpc.Call(ctx, "sendfrom", &txid, from, toAddress, g.amount(amount)); err != nil {
		return "", err
	}
	return txid, nil
}
