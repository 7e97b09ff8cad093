package service

import (
	"context"
	"crypto/subtle"
	"fmt"
	"time"

	"tipbot/internal/core/domain"
	"tipbot/internal/core/ports"
	"tipbot/pkg/apperror"

	"github.com/rs/zerolog"
)

const (
	defaultTipListLimit = 50
	maxTipListLimit     = 500
)

// AdminCredentials is the single operator login. An empty PasswordHash
// disables the admin API.
type AdminCredentials struct {
	Username     string
	PasswordHash string
}

// AdminServiceImpl implements ports.AdminService.
type AdminServiceImpl struct {
	creds    AdminCredentials
	tips     ports.TipRepository
	mode     *ModeSwitch
	hashSvc  ports.HashService
	tokenSvc ports.TokenService
	log      zerolog.Logger
}

// NewAdminService creates a new AdminServiceImpl.
func NewAdminService(
	creds AdminCredentials,
	tips ports.TipRepository,
	mode *ModeSwitch,
	hashSvc ports.HashService,
	tokenSvc ports.TokenService,
	log zerolog.Logger,
) *AdminServiceImpl {
	return &AdminServiceImpl{
		creds:    creds,
		tips:     tips,
		mode:     mode,
		hashSvc:  hashSvc,
		tokenSvc: tokenSvc,
		log:      log,
	}
}

// Login validates the operator credentials and returns a JWT.
func (s *AdminServiceImpl) Login(_ context.Context, username, password string) (string, time.Time, error) {
	if s.creds.PasswordHash == "" {
		return "", time.Time{}, apperror.ErrAdminDisabled()
	}
	if subtle.ConstantTimeCompare([]byte(username), []byte(s.creds.Username)) != 1 {
		return "", time.Time{}, apperror.ErrInvalidCredentials()
	}

	valid, err := s.hashSvc.Verify(password, s.creds.PasswordHash)
	if err != nil {
		return "", time.Time{}, apperror.InternalError(fmt.Errorf("verify password: %w", err))
	}
	if !valid {
		return "", time.Time{}, apperror.ErrInvalidCredentials()
	}

	token, expiry, err := s.tokenSvc.Generate(username)
	if err != nil {
		return "", time.Time{}, apperror.InternalError(fmt.Errorf("generate token: %w", err))
	}
	return token, expiry, nil
}

// ListTips lists tip records by status, newest first. TRANSFER_FAILED is the
// manual reconciliation queue.
func (s *AdminServiceImpl) ListTips(ctx context.Context, status domain.TipStatus, limit int) ([]domain.Tip, error) {
	switch status {
	case domain.TipStatusTransferred, domain.TipStatusNotified, domain.TipStatusTransferFailed:
	default:
		return nil, apperror.Validation("status must be TRANSFERRED, NOTIFIED or TRANSFER_FAILED")
	}
	limit = clampLimit(limit, defaultTipListLimit, maxTipListLimit)

	tips, err := s.tips.ListByStatus(ctx, status, limit)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	return tips, nil
}

// Mode returns the live bot mode.
func (s *AdminServiceImpl) Mode() domain.BotMode {
	return s.mode.Mode()
}

// SetMode flips the bot between normal and maintenance.
func (s *AdminServiceImpl) SetMode(_ context.Context, mode domain.BotMode) error {
	if mode != domain.ModeNormal && mode != domain.ModeMaintenance {
		return apperror.Validation("mode must be normal or maintenance")
	}
	prev := s.mode.Set(mode)
	if prev != mode {
		s.log.Warn().Str("from", string(prev)).Str("to", string(mode)).Msg("bot mode changed")
	}
	return nil
}

func clampLimit(limit, def, hi int) int {
	if limit <= 0 {
		return def
	}
	if limit > hi {
		return hi
	}
	return limit
}
