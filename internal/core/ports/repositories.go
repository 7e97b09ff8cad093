package ports

import (
	"context"

	"tipbot/internal/core/domain"
)

// AccountDirectory is the durable (platform, user id) -> wallet account map.
// It is the sole writer of account records; callers issue updates through it.
type AccountDirectory interface {
	Find(ctx context.Context, platform domain.Platform, userID string) (*domain.Account, error)
	// Create inserts the account unless one already exists for the identity,
	// in which case the existing record is returned unchanged.
	Create(ctx context.Context, params domain.NewAccountParams) (*domain.Account, error)
	// Update applies patch to rows matching filter and returns the affected row count.
	Update(ctx context.Context, filter domain.AccountFilter, patch domain.AccountUpdate) (int64, error)
	FindByName(ctx context.Context, platform domain.Platform, userName string) (*domain.Account, error)
	FindByAddress(ctx context.Context, address string) (*domain.Account, error)
	ListByPlatform(ctx context.Context, platform domain.Platform, limit int) ([]domain.Account, error)
}

// TipRepository persists per-recipient tip records.
type TipRepository interface {
	// Save upserts by tip id.
	Save(ctx context.Context, tip *domain.Tip) error
	UpdateStatus(ctx context.Context, tipID string, status domain.TipStatus) error
	ListByStatus(ctx context.Context, status domain.TipStatus, limit int) ([]domain.Tip, error)
	Recent(ctx context.Context, limit int) ([]domain.Tip, error)
	TopTippers(ctx context.Context, limit int) ([]domain.TipperStat, error)
	Totals(ctx context.Context) ([]domain.PlatformTotals, error)
}

// InboundRepository is the durable log of inbound commands.
type InboundRepository interface {
	// Record stores msg and returns false if it was already recorded.
	Record(ctx context.Context, msg *domain.InboundMessage) (bool, error)
}

// ChatMemberRepository tracks Telegram group membership.
type ChatMemberRepository interface {
	Upsert(ctx context.Context, member domain.ChatMember) error
	Remove(ctx context.Context, chatID, memberID string) error
	FindByName(ctx context.Context, chatID, memberName string) (*domain.ChatMember, error)
}

// AuditRepository persists admin audit entries.
type AuditRepository interface {
	Create(ctx context.Context, log *domain.AuditLog) error
}
