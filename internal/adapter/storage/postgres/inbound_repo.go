package postgres

import (
	"context"
	"fmt"

	"tipbot/internal/core/domain"
)

// InboundRepo implements ports.InboundRepository.
type InboundRepo struct {
	pool Pool
}

// NewInboundRepo creates a new InboundRepo.
func NewInboundRepo(pool Pool) *InboundRepo {
	return &InboundRepo{pool: pool}
}

// Record stores an inbound message. It returns false when the platform has
// already delivered this message id.
func (r *InboundRepo) Record(ctx context.Context, m *domain.InboundMessage) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`INSERT INTO inbound_messages (platform, message_id, sender_id, text, created_at)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (platform, message_id) DO NOTHING`,
		string(m.Platform), m.MessageID, m.SenderID, m.Text, m.CreatedAt,
	)
	if err != nil {
		return false, fmt.Errorf("record inbound message: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}
