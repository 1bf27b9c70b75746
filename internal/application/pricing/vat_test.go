package pricing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRound2(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"plain value", 12.345, 12.35},
		{"rounds down", 12.344, 12.34},
		{"already rounded", 12.34, 12.34},
		{"zero", 0, 0},
		{"negative", -0.645, -0.65},
		{"NaN maps to zero", math.NaN(), 0},
		{"positive infinity maps to zero", math.Inf(1), 0},
		{"negative infinity maps to zero", math.Inf(-1), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Round2(tt.in), 1e-9)
		})
	}
}

func TestCeilVATRoundsUpToTheCent(t *testing.T) {
	tests := []struct {
		name string
		base float64
		want float64
	}{
		{"fractional cent rounds up", 49.17, 4.43},  // 4.4253
		{"exact cent stays", 100.00, 9.00},          // float noise must not push to 9.01
		{"small base", 0.10, 0.01},                  // 0.009 -> 0.01
		{"just above cent boundary", 11.12, 1.01},   // 1.0008
		{"zero base", 0, 0},
		{"negative base guarded", -10, 0},
		{"NaN guarded", math.NaN(), 0},
		{"infinity guarded", math.Inf(1), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, CeilVAT(tt.base), 1e-9)
		})
	}
}

func TestStandardVATUsesHalfUpRounding(t *testing.T) {
	// 11.12 * 0.09 = 1.0008: the ledger rounds down where the storefront
	// rounds up.
	assert.InDelta(t, 1.00, StandardVAT(11.12), 1e-9)
	assert.InDelta(t, 4.43, StandardVAT(49.17), 1e-9)
	assert.Zero(t, StandardVAT(-5))
	assert.Zero(t, StandardVAT(math.NaN()))
}

func TestVATRegimesNeverDivergeByMoreThanOneCent(t *testing.T) {
	for cents := 0; cents <= 2000000; cents += 13 {
		base := float64(cents) / 100
		diff := math.Abs(CeilVAT(base) - StandardVAT(base))
		if diff > 0.01+1e-9 {
			t.Fatalf("regimes diverged by %.4f at base %.2f", diff, base)
		}
	}
}

func TestVATConversions(t *testing.T) {
	assert.InDelta(t, 34.17, ToVATExclusive(37.25), 1e-9)
	assert.InDelta(t, 6.83, ToVATExclusive(7.45), 1e-9)
	assert.InDelta(t, 10.90, ToVATInclusive(10.00), 1e-9)
	assert.Zero(t, ToVATExclusive(math.NaN()))
	assert.Zero(t, ToVATInclusive(math.Inf(1)))
}

func TestConversionRoundTripStaysWithinOneCent(t *testing.T) {
	for cents := 0; cents <= 10000000; cents += 7 {
		x := float64(cents) / 100
		back := ToVATInclusive(ToVATExclusive(x))
		if math.Abs(back-x) > 0.01+1e-6 {
			t.Fatalf("round trip drifted: %.2f -> %.4f", x, back)
		}
	}
}
