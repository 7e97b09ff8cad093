package service

import (
	"context"
	"strings"

	"tipbot/internal/core/domain"
	"tipbot/internal/core/ports"
	"tipbot/pkg/apperror"
)

const accountListLimit = 100

// LookupServiceImpl implements ports.LookupService over the account directory.
type LookupServiceImpl struct {
	dir ports.AccountDirectory
}

// NewLookupService creates a new LookupServiceImpl.
func NewLookupService(dir ports.AccountDirectory) *LookupServiceImpl {
	return &LookupServiceImpl{dir: dir}
}

// ByName finds an account by platform and user name. A leading "@" is ignored.
func (s *LookupServiceImpl) ByName(ctx context.Context, platform domain.Platform, userName string) (*domain.Account, error) {
	if !platform.Valid() {
		return nil, apperror.ErrUnknownPlatform(string(platform))
	}
	userName = strings.TrimPrefix(strings.TrimSpace(userName), "@")
	if userName == "" {
		return nil, apperror.Validation("user name is required")
	}

	acct, err := s.dir.FindByName(ctx, platform, userName)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if acct == nil {
		return nil, apperror.ErrNotFound("Account")
	}
	return acct, nil
}

// ByAddress finds the account owning a deposit address.
func (s *LookupServiceImpl) ByAddress(ctx context.Context, address string) (*domain.Account, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return nil, apperror.Validation("address is required")
	}

	acct, err := s.dir.FindByAddress(ctx, address)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if acct == nil {
		return nil, apperror.ErrNotFound("Account")
	}
	return acct, nil
}

// List returns the most recently registered accounts of a platform.
func (s *LookupServiceImpl) List(ctx context.Context, platform domain.Platform) ([]domain.Account, error) {
	if !platform.Valid() {
		return nil, apperror.ErrUnknownPlatform(string(platform))
	}
	accts, err := s.dir.ListByPlatform(ctx, platform, accountListLimit)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	return accts, nil
}
