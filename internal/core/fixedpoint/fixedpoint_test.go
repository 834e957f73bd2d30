package fixedpoint

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swapnode/swapd/internal/core/token"
)

func TestProportional(t *testing.T) {
	tests := []struct {
		name                          string
		amount, numerator, denominator int64
		want                          int64
		wantErr                       bool
	}{
		{name: "exact", amount: 100_000, numerator: 2_000_000, denominator: 1_000_000, want: 200_000},
		{name: "floors toward zero", amount: 7, numerator: 3, denominator: 2, want: 10},
		{name: "floors sub-unit to zero", amount: 1, numerator: 1, denominator: 3, want: 0},
		{name: "zero amount", amount: 0, numerator: 5, denominator: 7, want: 0},
		{
			// 128-bit intermediate: the raw product overflows int64 but the
			// quotient fits.
			name:        "large intermediate",
			amount:      token.MaxAmount,
			numerator:   1_000_000,
			denominator: 2_000_000,
			want:        token.MaxAmount / 2,
		},
		{name: "quotient too large", amount: token.MaxAmount, numerator: 3, denominator: 2, wantErr: true},
		{name: "division by zero", amount: 1, numerator: 1, denominator: 0, wantErr: true},
		{name: "negative amount", amount: -1, numerator: 1, denominator: 1, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Proportional(tt.amount, tt.numerator, tt.denominator)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRateOf(t *testing.T) {
	tests := []struct {
		name        string
		value, rate int64
		want        int64
		wantErr     bool
	}{
		// rate 10_000 is one basis point.
		{name: "one basis point", value: 1_000_000, rate: 10_000, want: 100},
		{name: "full precision", value: 12_345, rate: FeePrecision * 100, want: 12_345},
		{name: "rounds down to zero", value: 9_999, rate: 10_000, want: 0},
		{name: "ten percent", value: 50_000, rate: 10_000_000, want: 5_000},
		{name: "zero rate", value: 1_000_000, rate: 0, want: 0},
		{name: "negative value", value: -1, rate: 10_000, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RateOf(tt.value, tt.rate)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRateOfLargeIntermediate(t *testing.T) {
	// value*rate overflows int64 but the scaled result is in range.
	got, err := RateOf(token.MaxAmount, FeePrecision*100)
	require.NoError(t, err)
	assert.Equal(t, token.MaxAmount, got)
}

func TestSqrtProduct(t *testing.T) {
	tests := []struct {
		name    string
		a, b    int64
		want    int64
		wantErr bool
	}{
		{name: "perfect square", a: 1_000_000, b: 4_000_000, want: 2_000_000},
		{name: "floors", a: 2, b: 4, want: 2}, // sqrt(8) = 2.82..
		{name: "zero", a: 0, b: 1_000_000, want: 0},
		{name: "max amount round trips", a: token.MaxAmount, b: token.MaxAmount, want: token.MaxAmount},
		{name: "root above max amount", a: math.MaxInt64, b: math.MaxInt64, wantErr: true},
		{name: "negative", a: -4, b: 4, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SqrtProduct(tt.a, tt.b)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
