package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tipbot/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

// ChatMemberRepo implements ports.ChatMemberRepository.
type ChatMemberRepo struct {
	pool Pool
}

// NewChatMemberRepo creates a new ChatMemberRepo.
func NewChatMemberRepo(pool Pool) *ChatMemberRepo {
	return &ChatMemberRepo{pool: pool}
}

func (r *ChatMemberRepo) Upsert(ctx context.Context, m domain.ChatMember) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO chat_members (chat_id, chat_name, member_id, member_name)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (chat_id, member_id) DO UPDATE
		 SET chat_name = EXCLUDED.chat_name, member_name = EXCLUDED.member_name`,
		m.ChatID, m.ChatName, m.MemberID, m.MemberName,
	)
	if err != nil {
		return fmt.Errorf("upsert chat member: %w", err)
	}
	return nil
}

func (r *ChatMemberRepo) Remove(ctx context.Context, chatID, memberID string) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM chat_members WHERE chat_id = $1 AND member_id = $2`,
		chatID, memberID,
	)
	if err != nil {
		return fmt.Errorf("remove chat member: %w", err)
	}
	return nil
}

// FindByName resolves a mention (with or without the leading @) inside one chat.
func (r *ChatMemberRepo) FindByName(ctx context.Context, chatID, memberName string) (*domain.ChatMember, error) {
	name := strings.TrimPrefix(memberName, "@")

	m := &domain.ChatMember{}
	err := r.pool.QueryRow(ctx,
		`SELECT chat_id, chat_name, member_id, member_name FROM chat_members
		 WHERE chat_id = $1 AND lower(member_name) = lower($2)`,
		chatID, name,
	).Scan(&m.ChatID, &m.ChatName, &m.MemberID, &m.MemberName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find chat member: %w", err)
	}
	return m, nil
}
