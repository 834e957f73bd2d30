// Package fixedpoint holds the integer multiply-divide primitives the pool
// math is built on. All intermediates are 128 bits wide and every division
// floors toward zero, so rounding always favors the pool over the caller.
package fixedpoint

import (
	"errors"
	"math/big"
	"math/bits"

	"github.com/swapnode/swapd/internal/core/token"
)

// FeePrecision scales fee rates: RateOf divides by FeePrecision and then by a
// further 100, so a rate of 10_000 equals one basis point.
const FeePrecision int64 = 1_000_000

// ErrAmountTooLarge is returned when a product cannot be narrowed back to the
// platform's 64-bit amount range.
var ErrAmountTooLarge = errors.New("amount too large")

var errNegativeInput = errors.New("negative input")

// RateOf applies a fee rate to a value: value * rate / FeePrecision / 100,
// floor-divided. Inputs must be non-negative.
func RateOf(value, rate int64) (int64, error) {
	if value < 0 || rate < 0 {
		return 0, errNegativeInput
	}
	hi, lo := bits.Mul64(uint64(value), uint64(rate))
	div := uint64(FeePrecision * 100)
	if hi >= div {
		return 0, ErrAmountTooLarge
	}
	q, _ := bits.Div64(hi, lo, div)
	if q > uint64(token.MaxAmount) {
		return 0, ErrAmountTooLarge
	}
	return int64(q), nil
}

// Proportional computes amount * numerator / denominator with a 128-bit
// intermediate, floor-divided. It fails with ErrAmountTooLarge when the exact
// quotient does not fit the platform amount range; truncation is never silent.
func Proportional(amount, numerator, denominator int64) (int64, error) {
	if amount < 0 || numerator < 0 {
		return 0, errNegativeInput
	}
	if denominator <= 0 {
		return 0, errors.New("division by zero")
	}
	hi, lo := bits.Mul64(uint64(amount), uint64(numerator))
	if hi >= uint64(denominator) {
		return 0, ErrAmountTooLarge
	}
	q, _ := bits.Div64(hi, lo, uint64(denominator))
	if q > uint64(token.MaxAmount) {
		return 0, ErrAmountTooLarge
	}
	return int64(q), nil
}

// SqrtProduct returns floor(sqrt(a*b)). The product is taken at 128-bit width
// before the square root so 64-bit inputs never overflow.
func SqrtProduct(a, b int64) (int64, error) {
	if a < 0 || b < 0 {
		return 0, errNegativeInput
	}
	product := new(big.Int).Mul(big.NewInt(a), big.NewInt(b))
	root := new(big.Int).Sqrt(product)
	if !root.IsInt64() || root.Int64() > token.MaxAmount {
		return 0, ErrAmountTooLarge
	}
	return root.Int64(), nil
}
