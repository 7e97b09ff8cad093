package service

import (
	"errors"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var errInvalidAmount = errors.New("invalid amount")

// DefaultAmountDecimals is used when the wallet precision is not configured.
const DefaultAmountDecimals int32 = 8

// maxNumberLen bounds user-supplied numbers; no balance needs more digits.
const maxNumberLen = 40

var (
	amountPattern  = regexp.MustCompile(`^\d+(\.\d+)?$`)
	percentPattern = regexp.MustCompile(`^[+-]?\d+(\.\d+)?$`)
)

// parseAmount reads a user-supplied amount as an exact decimal truncated to
// places fractional digits. Exponents and signs are refused, and only
// strictly positive results are accepted.
func parseAmount(token string, places int32) (decimal.Decimal, error) {
	token = strings.TrimSpace(token)
	if len(token) > maxNumberLen || !amountPattern.MatchString(token) {
		return decimal.Zero, errInvalidAmount
	}
	d, err := decimal.NewFromString(token)
	if err != nil {
		return decimal.Zero, errInvalidAmount
	}
	d = d.Truncate(places)
	if !d.IsPositive() {
		return decimal.Zero, errInvalidAmount
	}
	return d, nil
}

// parsePercent reads a signed plain decimal. Range checks are the caller's.
func parsePercent(token string) (decimal.Decimal, error) {
	if len(token) > maxNumberLen || !percentPattern.MatchString(token) {
		return decimal.Zero, errInvalidAmount
	}
	d, err := decimal.NewFromString(token)
	if err != nil {
		return decimal.Zero, errInvalidAmount
	}
	return d, nil
}
