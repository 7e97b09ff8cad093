package ports

import (
	"context"
	"time"

	"tipbot/internal/core/domain"
)

// SignatureService handles the platform webhook HMAC scheme.
type SignatureService interface {
	// Sign returns "sha256=" + base64(HMAC-SHA256(secret, payload)).
	Sign(secret string, payload []byte) string
	Verify(secret string, payload []byte, signature string) bool
}

// HashService handles password hashing (Argon2id).
type HashService interface {
	Hash(password string) (string, error)
	Verify(password string, hash string) (bool, error)
}

// TokenService handles admin JWT operations.
type TokenService interface {
	Generate(subject string) (string, time.Time, error)
	Validate(tokenString string) (*TokenClaims, error)
}

// TokenClaims holds the parsed JWT claims.
type TokenClaims struct {
	Subject string
}

// UpdateDeduper is the Redis-layer redelivery check (fast path).
type UpdateDeduper interface {
	// CheckAndSet returns true the first time a (platform, message id) pair is seen.
	CheckAndSet(ctx context.Context, platform domain.Platform, messageID string, ttl time.Duration) (bool, error)
	// Release forgets a pair so a redelivery is processed again.
	Release(ctx context.Context, platform domain.Platform, messageID string) error
}

// ModeSource exposes the live bot mode. It is consulted on every command.
type ModeSource interface {
	Mode() domain.BotMode
}

// --- Service Ports (Business Logic) ---

// CommandHandler settles one classified command.
type CommandHandler interface {
	Handle(ctx context.Context, msg *domain.MessageContext) (*domain.Result, error)
}

// CommandIngress accepts parsed platform updates and hands them to workers.
type CommandIngress interface {
	// Submit drops redelivered commands and dispatches the rest. It never waits
	// for settlement.
	Submit(ctx context.Context, msg *domain.MessageContext) (bool, error)
	TrackMember(ctx context.Context, member domain.ChatMember) error
	ForgetMember(ctx context.Context, chatID, memberID string) error
}

// LookupService answers public account lookups.
type LookupService interface {
	ByName(ctx context.Context, platform domain.Platform, userName string) (*domain.Account, error)
	ByAddress(ctx context.Context, address string) (*domain.Account, error)
	List(ctx context.Context, platform domain.Platform) ([]domain.Account, error)
}

// StatsService defines the public tip statistics.
type StatsService interface {
	TopTippers(ctx context.Context, limit int) ([]domain.TipperStat, error)
	RecentTips(ctx context.Context, limit int) ([]domain.Tip, error)
	Totals(ctx context.Context) ([]domain.PlatformTotals, error)
}

// AdminService defines operator actions.
type AdminService interface {
	Login(ctx context.Context, username, password string) (string, time.Time, error)
	ListTips(ctx context.Context, status domain.TipStatus, limit int) ([]domain.Tip, error)
	Mode() domain.BotMode
	SetMode(ctx context.Context, mode domain.BotMode) error
}

// AuditService records admin actions.
type AuditService interface {
	Log(ctx context.Context, entry *domain.AuditLog)
}
