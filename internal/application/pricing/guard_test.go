package pricing

import (
	"math"
	"testing"

	"github.com/lunchlokaal/catering-api/internal/domain/entity"
	"github.com/lunchlokaal/catering-api/internal/domain/enum"
	"github.com/lunchlokaal/catering-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSafeAmount(t *testing.T) {
	assert.Equal(t, 12.5, SafeAmount(12.5))
	assert.Zero(t, SafeAmount(-3))
	assert.Zero(t, SafeAmount(math.NaN()))
	assert.Zero(t, SafeAmount(math.Inf(1)))
	assert.Zero(t, SafeAmount(math.Inf(-1)))
}

func TestSafeQuantity(t *testing.T) {
	assert.Equal(t, 4, SafeQuantity(4))
	assert.Zero(t, SafeQuantity(0))
	assert.Zero(t, SafeQuantity(-2))
}

func TestValidateOrderAcceptsWellFormedOrder(t *testing.T) {
	order := &entity.Order{
		SelectionType: enum.SelectionTypeCustom,
		CustomSelection: map[string][]entity.LineSelection{
			"club-sandwich": {{BreadType: "bruin", Quantity: 5, SubTotal: 37.25}},
		},
		DeliveryCost: 15,
	}
	assert.NoError(t, ValidateOrder(order))
}

func TestValidateOrderRejectsNilOrder(t *testing.T) {
	assert.Error(t, ValidateOrder(nil))
}

func TestValidateOrderRejectsMalformedAmounts(t *testing.T) {
	tests := []struct {
		name  string
		order *entity.Order
		field string
	}{
		{
			name:  "NaN delivery cost",
			order: &entity.Order{DeliveryCost: math.NaN()},
			field: "delivery_cost",
		},
		{
			name:  "negative delivery cost",
			order: &entity.Order{DeliveryCost: -5},
			field: "delivery_cost",
		},
		{
			name: "infinite selection subtotal",
			order: &entity.Order{
				CustomSelection: map[string][]entity.LineSelection{
					"club": {{Quantity: 1, SubTotal: math.Inf(1)}},
				},
			},
			field: "custom_selection.club[0].sub_total",
		},
		{
			name: "negative variety count",
			order: &entity.Order{
				SelectionType: enum.SelectionTypeVariety,
				Variety:       entity.VarietySelection{NonVega: -1},
			},
			field: "variety_selection.non_vega",
		},
		{
			name: "NaN addon subtotal",
			order: &entity.Order{
				UpsellAddons: []entity.UpsellAddon{
					{Name: "Brownie box", Quantity: 2, SubTotalInclVAT: math.NaN()},
				},
			},
			field: "upsell_addons[0].sub_total_incl_vat",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOrder(tt.order)
			require.Error(t, err)

			appErr := apperror.GetAppError(err)
			require.NotEmpty(t, appErr.Errors)
			assert.Equal(t, tt.field, appErr.Errors[0].Field)
		})
	}
}

func TestValidateOrderToleratesZeroAndNegativeLineQuantities(t *testing.T) {
	// Quantity guards live downstream: lines are skipped, not rejected.
	order := &entity.Order{
		CustomSelection: map[string][]entity.LineSelection{
			"club": {{Quantity: 0, SubTotal: 10}, {Quantity: -2, SubTotal: 5}},
		},
		Drinks:       map[string]int{"cola": -3},
		UpsellAddons: []entity.UpsellAddon{{Name: "Brownie box", Quantity: 0, SubTotalInclVAT: 7.5}},
	}
	assert.NoError(t, ValidateOrder(order))
}
