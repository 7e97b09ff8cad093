package postgres

import (
	"context"
	"fmt"

	"tipbot/internal/core/domain"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const tipColumns = `tip_id, platform, chat_id, message_id, sender_id, receiver_id,
	sender_account, receiver_account, amount::text, status, text, created_at, updated_at`

// TipRepo implements ports.TipRepository.
type TipRepo struct {
	pool Pool
}

// NewTipRepo creates a new TipRepo.
func NewTipRepo(pool Pool) *TipRepo {
	return &TipRepo{pool: pool}
}

// Save upserts a tip record by its identifier. A re-save only moves status forward.
func (r *TipRepo) Save(ctx context.Context, t *domain.Tip) error {
	query := `INSERT INTO tips (tip_id, platform, chat_id, message_id, sender_id, receiver_id,
		sender_account, receiver_account, amount, status, text, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9::numeric, $10, $11, $12, $13)
		ON CONFLICT (tip_id) DO UPDATE SET status = EXCLUDED.status, updated_at = EXCLUDED.updated_at`

	_, err := r.pool.Exec(ctx, query,
		t.TipID, string(t.Platform), t.ChatID, t.MessageID, t.SenderID, t.ReceiverID,
		t.SenderAccount, t.ReceiverAccount, t.Amount.String(), string(t.Status), t.Text,
		t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("save tip: %w", err)
	}
	return nil
}

// UpdateStatus sets the status of an existing tip.
func (r *TipRepo) UpdateStatus(ctx context.Context, tipID string, status domain.TipStatus) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE tips SET status = $1, updated_at = NOW() WHERE tip_id = $2`,
		string(status), tipID,
	)
	if err != nil {
		return fmt.Errorf("update tip status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("tip not found: %s", tipID)
	}
	return nil
}

// ListByStatus lists tips in a given status, newest first.
func (r *TipRepo) ListByStatus(ctx context.Context, status domain.TipStatus, limit int) ([]domain.Tip, error) {
	query := `SELECT ` + tipColumns + ` FROM tips WHERE status = $1 ORDER BY created_at DESC LIMIT $2`

	rows, err := r.pool.Query(ctx, query, string(status), limit)
	if err != nil {
		return nil, fmt.Errorf("list tips by status: %w", err)
	}
	return collectTips(rows)
}

// Recent lists the latest settled tips.
func (r *TipRepo) Recent(ctx context.Context, limit int) ([]domain.Tip, error) {
	query := `SELECT ` + tipColumns + ` FROM tips WHERE status <> $1 ORDER BY created_at DESC LIMIT $2`

	rows, err := r.pool.Query(ctx, query, string(domain.TipStatusTransferFailed), limit)
	if err != nil {
		return nil, fmt.Errorf("list recent tips: %w", err)
	}
	return collectTips(rows)
}

// TopTippers ranks senders by the total they have tipped.
func (r *TipRepo) TopTippers(ctx context.Context, limit int) ([]domain.TipperStat, error) {
	query := `SELECT u.user_name, t.platform, u.address, SUM(t.amount)::text, COUNT(*)
		FROM tips t
		JOIN users u ON u.platform = t.platform AND u.user_id = t.sender_id
		WHERE t.status <> $1
		GROUP BY u.user_name, t.platform, u.address
		ORDER BY SUM(t.amount) DESC
		LIMIT $2`

	rows, err := r.pool.Query(ctx, query, string(domain.TipStatusTransferFailed), limit)
	if err != nil {
		return nil, fmt.Errorf("top tippers: %w", err)
	}
	defer rows.Close()

	var stats []domain.TipperStat
	for rows.Next() {
		var (
			s        domain.TipperStat
			platform string
			total    string
		)
		if err := rows.Scan(&s.UserName, &platform, &s.Address, &total, &s.TipCount); err != nil {
			return nil, fmt.Errorf("scan tipper: %w", err)
		}
		s.Platform = domain.Platform(platform)
		if s.TotalTips, err = decimal.NewFromString(total); err != nil {
			return nil, fmt.Errorf("parse tipper total: %w", err)
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

// Totals aggregates settled tips per platform.
func (r *TipRepo) Totals(ctx context.Context) ([]domain.PlatformTotals, error) {
	query := `SELECT platform, COALESCE(SUM(amount), 0)::text, COUNT(*)
		FROM tips WHERE status <> $1
		GROUP BY platform ORDER BY platform`

	rows, err := r.pool.Query(ctx, query, string(domain.TipStatusTransferFailed))
	if err != nil {
		return nil, fmt.Errorf("tip totals: %w", err)
	}
	defer rows.Close()

	var totals []domain.PlatformTotals
	for rows.Next() {
		var (
			pt       domain.PlatformTotals
			platform string
			amount   string
		)
		if err := rows.Scan(&platform, &amount, &pt.Count); err != nil {
			return nil, fmt.Errorf("scan totals: %w", err)
		}
		pt.Platform = domain.Platform(platform)
		if pt.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("parse total amount: %w", err)
		}
		totals = append(totals, pt)
	}
	return totals, rows.Err()
}

func collectTips(rows pgx.Rows) ([]domain.Tip, error) {
	defer rows.Close()

	var tips []domain.Tip
	for rows.Next() {
		var (
			t        domain.Tip
			platform string
			amount   string
			status   string
		)
		err := rows.Scan(
			&t.TipID, &platform, &t.ChatID, &t.MessageID, &t.SenderID, &t.ReceiverID,
			&t.SenderAccount, &t.ReceiverAccount, &amount, &status, &t.Text,
			&t.CreatedAt, &t.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan tip: %w", err)
		}
		t.Platform = domain.Platform(platform)
		t.Status = domain.TipStatus(status)
		if t.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("parse tip amount: %w", err)
		}
		tips = append(tips, t)
	}
	return tips, rows.Err()
}
