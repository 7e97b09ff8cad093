package wallet

import "context"

// HealthCheck implements ports.HealthChecker for the wallet daemon.
type HealthCheck struct {
	rpc *Client
}

// NewHealthCheck creates a wallet daemon health checker.
func NewHealthCheck(rpc *Client) *HealthCheck {
	return &HealthCheck{rpc: rpc}
}

// Ping asks the daemon for its block height.
func (h *HealthCheck) Ping(ctx context.Context) error {
	var height int64
	return h.rpc.Call(ctx, "getblockcount", &height)
}

// Name returns the dependency name.
func (h *HealthCheck) Name() string {
	return "wallet"
}
