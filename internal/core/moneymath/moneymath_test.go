package moneymath_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goldvault/goldvault/internal/apperrors"
	"github.com/goldvault/goldvault/internal/core/moneymath"
)

func TestAdd_ExactRepeatedAddition(t *testing.T) {
	// 0.1 added ten times must be exactly 1, never 0.9999999999999999.
	tenth := moneymath.MustFromString("0.1")
	sum := decimal.Zero
	for i := 0; i < 10; i++ {
		sum = moneymath.Add(sum, tenth)
	}
	assert.True(t, sum.Equal(decimal.NewFromInt(1)), "got %s", sum)
}

func TestSub_RoundTripIsIdentity(t *testing.T) {
	tests := []struct {
		name  string
		start string
		delta string
	}{
		{"small weight", "12.34", "0.01"},
		{"large balance", "1000000.00", "0.07"},
		{"negative balance", "-9.16", "3.333"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start := moneymath.MustFromString(tt.start)
			delta := moneymath.MustFromString(tt.delta)
			got := moneymath.Sub(moneymath.Add(start, delta), delta)
			assert.True(t, got.Equal(start), "got %s, want %s", got, start)
		})
	}
}

func TestGoldEquivalent(t *testing.T) {
	tests := []struct {
		name   string
		mass   string
		purity string
		want   string
	}{
		{"22k sale weight", "10", "0.916", "9.16"},
		{"24k full purity", "5.5", "1", "5.5"},
		{"18k", "4", "0.75", "3"},
		{"zero mass", "0", "0.916", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := moneymath.GoldEquivalent(moneymath.MustFromString(tt.mass), moneymath.MustFromString(tt.purity))
			assert.True(t, got.Equal(moneymath.MustFromString(tt.want)), "got %s, want %s", got, tt.want)
		})
	}
}

func TestGoldEquivalent_MatchesMul(t *testing.T) {
	mass := moneymath.MustFromString("7.77")
	purity := moneymath.MustFromString("0.585")
	assert.True(t, moneymath.GoldEquivalent(mass, purity).Equal(moneymath.Mul(mass, purity)))
}

func TestDiv(t *testing.T) {
	got, err := moneymath.Div(moneymath.MustFromString("10"), moneymath.MustFromString("4"))
	require.NoError(t, err)
	assert.True(t, got.Equal(moneymath.MustFromString("2.5")))
}

func TestDiv_ByZero(t *testing.T) {
	_, err := moneymath.Div(moneymath.MustFromString("10"), decimal.Zero)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrDivisionByZero)
}

func TestDiv_NonTerminatingKeepsPrecision(t *testing.T) {
	got, err := moneymath.Div(decimal.NewFromInt(1), decimal.NewFromInt(3))
	require.NoError(t, err)
	// At least 20 significant digits of 0.333...
	assert.True(t, got.Sub(moneymath.MustFromString("0.33333333333333333333")).Abs().
		LessThan(moneymath.MustFromString("0.00000000000000000001")), "got %s", got)
}

func TestToFixed(t *testing.T) {
	tests := []struct {
		name   string
		value  string
		places int32
		want   string
	}{
		{"pads zeros", "5", 2, "5.00"},
		{"rounds half away from zero", "2.345", 2, "2.35"},
		{"rounds negative half away from zero", "-2.345", 2, "-2.35"},
		{"truncates precisely", "9.1600", 2, "9.16"},
		{"zero places", "12.7", 0, "13"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, moneymath.ToFixed(moneymath.MustFromString(tt.value), tt.places))
		})
	}
}

func TestToFixed_DoesNotMutateValue(t *testing.T) {
	v := moneymath.MustFromString("2.345")
	_ = moneymath.ToFixed(v, 2)
	assert.True(t, v.Equal(moneymath.MustFromString("2.345")))
}

func TestFromString_Invalid(t *testing.T) {
	_, err := moneymath.FromString("12,34")
	assert.Error(t, err)
}
