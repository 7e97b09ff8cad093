package handler_test

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"tipbot/internal/core/domain"

	"github.com/shopspring/decimal"
)

// --- In-Memory Account Directory ---

type inMemoryDirectory struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account
}

func newInMemoryDirectory() *inMemoryDirectory {
	return &inMemoryDirectory{accounts: make(map[string]*domain.Account)}
}

func accountKey(p domain.Platform, userID string) string { return string(p) + "/" + userID }

func (r *inMemoryDirectory) put(a domain.Account) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.accounts[accountKey(a.Platform, a.UserID)] = &a
}

func (r *inMemoryDirectory) Find(_ context.Context, p domain.Platform, userID string) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.accounts[accountKey(p, userID)]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (r *inMemoryDirectory) Create(_ context.Context, params domain.NewAccountParams) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := accountKey(params.Platform, params.UserID)
	if a, ok := r.accounts[k]; ok {
		cp := *a
		return &cp, nil
	}
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
	r.accounts[k] = a
	cp := *a
	return &cp, nil
}

func (r *inMemoryDirectory) Update(_ context.Context, f domain.AccountFilter, u domain.AccountUpdate) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[accountKey(f.Platform, f.UserID)]
	if !ok || (f.RegisteredIs != nil && a.Registered != *f.RegisteredIs) {
		return 0, nil
	}
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

func (r *inMemoryDirectory) FindByName(_ context.Context, p domain.Platform, name string) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, a := range r.accounts {
		if a.Platform == p && strings.EqualFold(a.UserName, name) {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *inMemoryDirectory) FindByAddress(_ context.Context, address string) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, a := range r.accounts {
		if a.Address == address {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *inMemoryDirectory) ListByPlatform(_ context.Context, p domain.Platform, limit int) ([]domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.Account
	for _, a := range r.accounts {
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

// --- In-Memory Tip Repo ---

type inMemoryTipRepo struct {
	mu   sync.RWMutex
	tips map[string]*domain.Tip
}

func newInMemoryTipRepo() *inMemoryTipRepo {
	return &inMemoryTipRepo{tips: make(map[string]*domain.Tip)}
}

func (r *inMemoryTipRepo) Save(_ context.Context, tip *domain.Tip) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *tip
	r.tips[tip.TipID] = &cp
	return nil
}

func (r *inMemoryTipRepo) UpdateStatus(_ context.Context, tipID string, status domain.TipStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tips[tipID]
	if !ok {
		return fmt.Errorf("tip %s not found", tipID)
	}
	t.Status = status
	return nil
}

func (r *inMemoryTipRepo) all() []domain.Tip {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Tip, 0, len(r.tips))
	for _, t := range r.tips {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TipID < out[j].TipID })
	return out
}

func (r *inMemoryTipRepo) ListByStatus(_ context.Context, status domain.TipStatus, limit int) ([]domain.Tip, error) {
	var out []domain.Tip
	for _, t := range r.all() {
		if t.Status == status && len(out) < limit {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *inMemoryTipRepo) Recent(_ context.Context, limit int) ([]domain.Tip, error) {
	out := r.all()
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *inMemoryTipRepo) TopTippers(_ context.Context, limit int) ([]domain.TipperStat, error) {
	bySender := make(map[string]*domain.TipperStat)
	for _, t := range r.all() {
		if t.Status == domain.TipStatusTransferFailed {
			continue
		}
		s, ok := bySender[t.SenderID]
		if !ok {
			s = &domain.TipperStat{UserName: t.SenderID, Platform: t.Platform}
			bySender[t.SenderID] = s
		}
		s.TotalTips = s.TotalTips.Add(t.Amount)
		s.TipCount++
	}
	out := make([]domain.TipperStat, 0, len(bySender))
	for _, s := range bySender {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TotalTips.GreaterThan(out[j].TotalTips) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *inMemoryTipRepo) Totals(_ context.Context) ([]domain.PlatformTotals, error) {
	byPlatform := make(map[domain.Platform]*domain.PlatformTotals)
	for _, t := range r.all() {
		if t.Status == domain.TipStatusTransferFailed {
			continue
		}
		p, ok := byPlatform[t.Platform]
		if !ok {
			p = &domain.PlatformTotals{Platform: t.Platform}
			byPlatform[t.Platform] = p
		}
		p.Amount = p.Amount.Add(t.Amount)
		p.Count++
	}
	var out []domain.PlatformTotals
	for _, p := range byPlatform {
		out = append(out, *p)
	}
	return out, nil
}

// --- In-Memory Inbound Log ---

type inMemoryInboundRepo struct {
	mu   sync.Mutex
	seen map[string]bool
}

func newInMemoryInboundRepo() *inMemoryInboundRepo {
	return &inMemoryInboundRepo{seen: make(map[string]bool)}
}

func (r *inMemoryInboundRepo) Record(_ context.Context, msg *domain.InboundMessage) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := string(msg.Platform) + ":" + msg.MessageID
	if r.seen[k] {
		return false, nil
	}
	r.seen[k] = true
	return true, nil
}

// --- In-Memory Chat Members ---

type inMemoryMemberRepo struct {
	mu      sync.RWMutex
	members map[string]domain.ChatMember
}

func newInMemoryMemberRepo() *inMemoryMemberRepo {
	return &inMemoryMemberRepo{members: make(map[string]domain.ChatMember)}
}

func (r *inMemoryMemberRepo) Upsert(_ context.Context, m domain.ChatMember) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.members[m.ChatID+"/"+m.MemberID] = m
	return nil
}

func (r *inMemoryMemberRepo) Remove(_ context.Context, chatID, memberID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.members, chatID+"/"+memberID)
	return nil
}

func (r *inMemoryMemberRepo) FindByName(_ context.Context, chatID, name string) (*domain.ChatMember, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, m := range r.members {
		if m.ChatID == chatID && strings.EqualFold(m.MemberName, name) {
			cp := m
			return &cp, nil
		}
	}
	return nil, nil
}

// --- In-Memory Audit Repo ---

type inMemoryAuditRepo struct {
	mu   sync.Mutex
	logs []domain.AuditLog
}

func (r *inMemoryAuditRepo) Create(_ context.Context, log *domain.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logs = append(r.logs, *log)
	return nil
}

func (r *inMemoryAuditRepo) actions() []domain.AuditAction {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.AuditAction
	for _, l := range r.logs {
		out = append(out, l.Action)
	}
	return out
}

// --- Fake Wallet Daemon ---

type fakeWallet struct {
	mu       sync.Mutex
	balances map[string]decimal.Decimal
	created  int
}

func newFakeWallet() *fakeWallet {
	return &fakeWallet{balances: make(map[string]decimal.Decimal)}
}

func (w *fakeWallet) fund(account, amount string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.balances[account] = decimal.RequireFromString(amount)
}

func (w *fakeWallet) balanceOf(account string) decimal.Decimal {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.balances[account]
}

func (w *fakeWallet) Balance(_ context.Context, account string, _ int) (decimal.Decimal, error) {
	return w.balanceOf(account), nil
}

func (w *fakeWallet) ValidateAddress(_ context.Context, address string) (bool, error) {
	return strings.HasPrefix(address, "nano_"), nil
}

func (w *fakeWallet) CreateAccount(_ context.Context) (*domain.WalletAccountInfo, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.created++
	return &domain.WalletAccountInfo{
		Account: fmt.Sprintf("acct-%d", w.created),
		Address: fmt.Sprintf("nano_%d", w.created),
	}, nil
}

func (w *fakeWallet) Move(_ context.Context, from, to string, amount decimal.Decimal) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.balances[from].LessThan(amount) {
		return fmt.Errorf("insufficient funds in %s", from)
	}
	w.balances[from] = w.balances[from].Sub(amount)
	w.balances[to] = w.balances[to].Add(amount)
	return nil
}

func (w *fakeWallet) Send(_ context.Context, from, _ string, amount decimal.Decimal) (string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.balances[from] = w.balances[from].Sub(amount)
	return "tx-" + from, nil
}

// --- Recording Platform Sender ---

type delivery struct {
	Kind    string
	To      string
	ChatID  string
	ReplyTo string
	Text    string
}

type recordingSender struct {
	mu  sync.Mutex
	out []delivery
}

func (s *recordingSender) SendDM(_ context.Context, userID, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.out = append(s.out, delivery{Kind: "dm", To: userID, Text: text})
	return nil
}

func (s *recordingSender) SendReply(_ context.Context, chatID, replyTo, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.out = append(s.out, delivery{Kind: "reply", ChatID: chatID, ReplyTo: replyTo, Text: text})
	return nil
}

// take returns and clears what was sent so far.
func (s *recordingSender) take() []delivery {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.out
	s.out = nil
	return out
}

// to filters deliveries by DM recipient or reply chat.
func to(ds []delivery, target string) []delivery {
	var out []delivery
	for _, d := range ds {
		if d.To == target || (d.Kind == "reply" && d.ChatID == target) {
			out = append(out, d)
		}
	}
	return out
}
