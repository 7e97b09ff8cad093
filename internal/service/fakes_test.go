package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"tipbot/internal/core/domain"

	"github.com/shopspring/decimal"
)

// memDirectory is an in-memory ports.AccountDirectory.
type memDirectory struct {
	mu       sync.Mutex
	accounts map[string]*domain.Account
	creates  int
	updates  int
}

func newMemDirectory(accts ...*domain.Account) *memDirectory {
	d := &memDirectory{accounts: make(map[string]*domain.Account)}
	for _, a := range accts {
		d.accounts[dirKey(a.Platform, a.UserID)] = a
	}
	return d
}

func dirKey(p domain.Platform, userID string) string { return string(p) + "/" + userID }

func (d *memDirectory) get(p domain.Platform, userID string) *domain.Account {
	d.mu.Lock()
	defer d.mu.Unlock()
	a, ok := d.accounts[dirKey(p, userID)]
	if !ok {
		return nil
	}
	cp := *a
	return &cp
}

func (d *memDirectory) Find(_ context.Context, p domain.Platform, userID string) (*domain.Account, error) {
	return d.get(p, userID), nil
}

func (d *memDirectory) Create(_ context.Context, params domain.NewAccountParams) (*domain.Account, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	k := dirKey(params.Platform, params.UserID)
	if a, ok := d.accounts[k]; ok {
		cp := *a
		return &cp, nil
	}
	d.creates++
	a := &domain.Account{
		Platform:      params.Platform,
		UserID:        params.UserID,
		UserName:      params.UserName,
		WalletAccount: params.WalletAccount,
		Address:       params.Address,
		Registered:    params.Registered,
		Muted:         params.Muted,
		Language:      params.Language,
	}
	d.accounts[k] = a
	cp := *a
	return &cp, nil
}

func (d *memDirectory) Update(_ context.Context, f domain.AccountFilter, u domain.AccountUpdate) (int64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	a, ok := d.accounts[dirKey(f.Platform, f.UserID)]
	if !ok || (f.RegisteredIs != nil && a.Registered != *f.RegisteredIs) {
		return 0, nil
	}
	d.updates++
	if u.Registered != nil {
		a.Registered = *u.Registered
	}
	if u.Muted != nil {
		a.Muted = *u.Muted
	}
	if u.DonationPercent != nil {
		a.DonationPercent = *u.DonationPercent
	}
	if u.Language != nil {
		a.Language = *u.Language
	}
	return 1, nil
}

func (d *memDirectory) FindByName(_ context.Context, p domain.Platform, name string) (*domain.Account, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, a := range d.accounts {
		if a.Platform == p && strings.EqualFold(a.UserName, name) {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (d *memDirectory) FindByAddress(_ context.Context, address string) (*domain.Account, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, a := range d.accounts {
		if strings.EqualFold(a.Address, address) {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (d *memDirectory) ListByPlatform(_ context.Context, p domain.Platform, limit int) ([]domain.Account, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	var out []domain.Account
	for _, a := range d.accounts {
		if a.Platform == p && a.Registered {
			out = append(out, *a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// ledger backs a mocked wallet gateway with real balances.
type ledger struct {
	mu        sync.Mutex
	confirmed map[string]decimal.Decimal
	pending   map[string]decimal.Decimal
	failMove  map[string]bool // by destination account
	failSend  bool
	created   int
	moves     int
	sends     int
}

func newLedger() *ledger {
	return &ledger{
		confirmed: make(map[string]decimal.Decimal),
		pending:   make(map[string]decimal.Decimal),
		failMove:  make(map[string]bool),
	}
}

func (l *ledger) fund(account, amount string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.confirmed[account] = decimal.RequireFromString(amount)
}

func (l *ledger) get(account string) decimal.Decimal {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.confirmed[account]
}

func (l *ledger) balance(_ context.Context, account string, minConf int) (decimal.Decimal, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	b := l.confirmed[account]
	if minConf <= 1 {
		b = b.Add(l.pending[account])
	}
	return b, nil
}

func (l *ledger) createAccount(_ context.Context) (*domain.WalletAccountInfo, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.created++
	return &domain.WalletAccountInfo{
		Account: fmt.Sprintf("wallet-new-%d", l.created),
		Address: fmt.Sprintf("nano_new%d", l.created),
	}, nil
}

func (l *ledger) move(_ context.Context, from, to string, amount decimal.Decimal) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.failMove[to] {
		return errors.New("rpc error -6: insufficient funds")
	}
	l.moves++
	l.confirmed[from] = l.confirmed[from].Sub(amount)
	l.confirmed[to] = l.confirmed[to].Add(amount)
	return nil
}

func (l *ledger) send(_ context.Context, from, _ string, amount decimal.Decimal) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.failSend {
		return "", errors.New("rpc error -4: transaction rejected")
	}
	l.sends++
	l.confirmed[from] = l.confirmed[from].Sub(amount)
	return fmt.Sprintf("txhash-%d", l.sends), nil
}
