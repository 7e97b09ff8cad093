package service

import (
	"context"

	"tipbot/internal/core/domain"
	"tipbot/internal/core/ports"
	"tipbot/pkg/apperror"
)

const (
	defaultStatsLimit = 10
	maxStatsLimit     = 100
)

// statsService implements ports.StatsService.
type statsService struct {
	tips ports.TipRepository
}

// NewStatsService creates a new stats service.
func NewStatsService(tips ports.TipRepository) ports.StatsService {
	return &statsService{tips: tips}
}

// TopTippers ranks senders by the total they have tipped.
func (s *statsService) TopTippers(ctx context.Context, limit int) ([]domain.TipperStat, error) {
	stats, err := s.tips.TopTippers(ctx, clampLimit(limit, defaultStatsLimit, maxStatsLimit))
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	return stats, nil
}

// RecentTips returns the latest settled tips.
func (s *statsService) RecentTips(ctx context.Context, limit int) ([]domain.Tip, error) {
	tips, err := s.tips.Recent(ctx, clampLimit(limit, defaultStatsLimit, maxStatsLimit))
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	return tips, nil
}

// Totals sums settled tips per platform.
func (s *statsService) Totals(ctx context.Context) ([]domain.PlatformTotals, error) {
	totals, err := s.tips.Totals(ctx)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	return totals, nil
}
