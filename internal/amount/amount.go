// Package amount converts between whole-unit token amounts and their
// 18-decimal minor-unit (wei) representation, plus the display rounding used
// for leaderboard totals. Parsing goes through arbitrary-precision decimals so
// an amount string never takes a float64 detour on its way to the digest.
package amount

import (
	"errors"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	// TokenDecimals is the fixed-point scale of the on-chain token.
	TokenDecimals = 18
	// TotalPlaces is the rounding applied to leaderboard totals.
	TotalPlaces = 5
)

var (
	ErrInvalid     = errors.New("invalid amount")
	ErrNotPositive = errors.New("amount must be greater than zero")
	ErrTooPrecise  = errors.New("amount has more than 18 decimal places")
)

// Parse parses a whole-unit decimal amount string. The amount must be strictly
// positive and representable in the token's 18-decimal fixed point.
func Parse(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Decimal{}, ErrInvalid
	}
	if d.Sign() <= 0 {
		return decimal.Decimal{}, ErrNotPositive
	}
	if !d.Shift(TokenDecimals).IsInteger() {
		return decimal.Decimal{}, ErrTooPrecise
	}
	return d, nil
}

// ToWei converts a whole-unit amount to its minor-unit integer. The conversion
// is exact; amounts that do not fit the 18-decimal grid are rejected rather
// than truncated.
func ToWei(d decimal.Decimal) (*big.Int, error) {
	shifted := d.Shift(TokenDecimals)
	if !shifted.IsInteger() {
		return nil, ErrTooPrecise
	}
	return shifted.BigInt(), nil
}

// FromWei is the exact inverse of ToWei.
func FromWei(w *big.Int) decimal.Decimal {
	return decimal.NewFromBigInt(w, -TokenDecimals)
}

// RoundTotal rounds a leaderboard total to 5 decimal places, half away from
// zero.
func RoundTotal(d decimal.Decimal) decimal.Decimal {
	return d.Round(TotalPlaces)
}
