package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tipbot/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

const accountColumns = `platform, user_id, user_name, account, address, registered, muted, donation_percent, language, created_at, updated_at`

// AccountRepo implements ports.AccountDirectory.
type AccountRepo struct {
	pool Pool
}

// NewAccountRepo creates a new AccountRepo.
func NewAccountRepo(pool Pool) *AccountRepo {
	return &AccountRepo{pool: pool}
}

// Find fetches an account by platform identity. Returns nil, nil when absent.
func (r *AccountRepo) Find(ctx context.Context, platform domain.Platform, userID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM users WHERE platform = $1 AND user_id = $2`

	a, err := scanAccount(r.pool.QueryRow(ctx, query, string(platform), userID))
	if err != nil {
		return nil, fmt.Errorf("find account: %w", err)
	}
	return a, nil
}

// Create inserts an account. Concurrent creators for the same identity
// converge on whichever row landed first.
func (r *AccountRepo) Create(ctx context.Context, p domain.NewAccountParams) (*domain.Account, error) {
	language := p.Language
	if language == "" {
		language = "en"
	}

	query := `INSERT INTO users (platform, user_id, user_name, account, address, registered, muted, language)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (platform, user_id) DO NOTHING`

	_, err := r.pool.Exec(ctx, query,
		string(p.Platform), p.UserID, p.UserName, p.WalletAccount, p.Address,
		p.Registered, p.Muted, language,
	)
	if err != nil {
		return nil, fmt.Errorf("insert account: %w", err)
	}

	a, err := r.Find(ctx, p.Platform, p.UserID)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, fmt.Errorf("account %s/%s missing after insert", p.Platform, p.UserID)
	}
	return a, nil
}

// Update applies the non-nil fields of patch to rows matching filter.
func (r *AccountRepo) Update(ctx context.Context, filter domain.AccountFilter, patch domain.AccountUpdate) (int64, error) {
	if patch.Empty() {
		return 0, nil
	}

	var (
		sets []string
		args []any
	)
	add := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if patch.Registered != nil {
		add("registered", *patch.Registered)
	}
	if patch.Muted != nil {
		add("muted", *patch.Muted)
	}
	if patch.DonationPercent != nil {
		add("donation_percent", *patch.DonationPercent)
	}
	if patch.Language != nil {
		add("language", *patch.Language)
	}
	sets = append(sets, "updated_at = NOW()")

	args = append(args, string(filter.Platform), filter.UserID)
	where := fmt.Sprintf("platform = $%d AND user_id = $%d", len(args)-1, len(args))
	if filter.RegisteredIs != nil {
		args = append(args, *filter.RegisteredIs)
		where += fmt.Sprintf(" AND registered = $%d", len(args))
	}

	query := "UPDATE users SET " + strings.Join(sets, ", ") + " WHERE " + where
	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("update account: %w", err)
	}
	return tag.RowsAffected(), nil
}

// FindByName fetches an account by case-insensitive display name.
func (r *AccountRepo) FindByName(ctx context.Context, platform domain.Platform, userName string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM users WHERE platform = $1 AND lower(user_name) = lower($2) LIMIT 1`

	a, err := scanAccount(r.pool.QueryRow(ctx, query, string(platform), userName))
	if err != nil {
		return nil, fmt.Errorf("find account by name: %w", err)
	}
	return a, nil
}

// FindByAddress fetches the account owning a deposit address.
func (r *AccountRepo) FindByAddress(ctx context.Context, address string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM users WHERE address = $1 LIMIT 1`

	a, err := scanAccount(r.pool.QueryRow(ctx, query, address))
	if err != nil {
		return nil, fmt.Errorf("find account by address: %w", err)
	}
	return a, nil
}

// ListByPlatform lists registered accounts, newest first.
func (r *AccountRepo) ListByPlatform(ctx context.Context, platform domain.Platform, limit int) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM users
		WHERE platform = $1 AND registered = TRUE
		ORDER BY created_at DESC LIMIT $2`

	rows, err := r.pool.Query(ctx, query, string(platform), limit)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		accounts = append(accounts, *a)
	}
	return accounts, rows.Err()
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	a := &domain.Account{}
	var platform string
	err := row.Scan(
		&platform, &a.UserID, &a.UserName, &a.WalletAccount, &a.Address,
		&a.Registered, &a.Muted, &a.DonationPercent, &a.Language,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	a.Platform = domain.Platform(platform)
	return a, nil
}
