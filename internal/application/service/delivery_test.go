package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlatRateQuoter(t *testing.T) {
	quoter := &FlatRateQuoter{Fee: 15.00, FreeAbove: 250.00, Prefixes: []string{"10", "11"}}

	tests := []struct {
		name       string
		postalCode string
		amount     float64
		wantFee    float64
		wantErr    bool
	}{
		{"serviced prefix pays fee", "1015 CN", 100.00, 15.00, false},
		{"lowercase and spacing normalized", "  1101ab ", 100.00, 15.00, false},
		{"free above threshold", "1015 CN", 250.00, 0, false},
		{"just under threshold", "1015 CN", 249.99, 15.00, false},
		{"outside service area", "9700 AB", 100.00, 0, true},
		{"empty postal code", "", 100.00, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fee, err := quoter.QuoteDelivery(tt.postalCode, tt.amount)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.wantFee, fee, 1e-9)
		})
	}
}

func TestFlatRateQuoter_NoPrefixRestriction(t *testing.T) {
	quoter := &FlatRateQuoter{Fee: 7.50}

	fee, err := quoter.QuoteDelivery("9700 AB", 50.00)
	require.NoError(t, err)
	assert.InDelta(t, 7.50, fee, 1e-9)
}
