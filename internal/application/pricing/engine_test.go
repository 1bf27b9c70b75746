package pricing

import (
	"math"
	"testing"

	"github.com/lunchlokaal/catering-api/internal/domain/entity"
	"github.com/lunchlokaal/catering-api/internal/domain/enum"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func testCatalog() *entity.Catalog {
	products := []entity.Product{
		{ID: "club-sandwich", Name: "Club Sandwich", Kind: enum.ProductKindSandwich, PriceInclVAT: 7.45},
		{ID: "smoothie", Name: "Smoothie", Kind: enum.ProductKindDrink, PriceInclVAT: 4.36},
	}
	drinks := []entity.Drink{
		{ID: "d1", Name: "Fresh Orange Juice", Slug: "fresh-orange-juice", PriceExclVAT: 3.62},
		{ID: "d2", Name: "Soda", Slug: "soda", PriceExclVAT: 2.71},
	}
	return entity.NewCatalog(products, drinks)
}

func newTestEngine() *Engine {
	return NewEngine(zap.NewNop())
}

func TestPriceOrderEmptyOrderIsAllZeros(t *testing.T) {
	got := newTestEngine().PriceOrder(&entity.Order{}, testCatalog())
	assert.Equal(t, Breakdown{}, got)
}

func TestPriceOrderNilOrderIsAllZeros(t *testing.T) {
	got := newTestEngine().PriceOrder(nil, testCatalog())
	assert.Equal(t, Breakdown{}, got)
}

func TestPriceOrderCustomSelectionWithDelivery(t *testing.T) {
	// One product, five units configured as a single selection: subtotal
	// 37.25 VAT-inclusive, 15.00 delivery.
	order := &entity.Order{
		SelectionType: enum.SelectionTypeCustom,
		CustomSelection: map[string][]entity.LineSelection{
			"club-sandwich": {{BreadType: "bruin", Quantity: 5, SubTotal: 37.25}},
		},
		DeliveryCost: 15.00,
	}

	got := newTestEngine().PriceOrder(order, testCatalog())

	assert.InDelta(t, 34.17, got.Subtotal, 1e-9) // 37.25 / 1.09
	assert.InDelta(t, 15.00, got.Delivery, 1e-9)
	assert.InDelta(t, 4.43, got.VAT, 1e-9) // ceil(49.17 * 0.09)
	assert.InDelta(t, 53.60, got.Total, 1e-9)
}

func TestPriceOrderVarietyWithDrinksAndDelivery(t *testing.T) {
	order := &entity.Order{
		SelectionType: enum.SelectionTypeVariety,
		Variety:       entity.VarietySelection{NonVega: 10, Vega: 5, Vegan: 3, GlutenFree: 2},
		Drinks:        map[string]int{"fresh-orange-juice": 5, "soda": 8},
		DeliveryCost:  10.00,
	}

	got := newTestEngine().PriceOrder(order, testCatalog())

	// 18 x 6.83 + 2 x 7.73 + 5 x 3.62 + 8 x 2.71 = 178.18
	assert.InDelta(t, 178.18, got.Subtotal, 1e-9)
	assert.InDelta(t, 16.94, got.VAT, 1e-9) // ceil(188.18 * 0.09)
	assert.InDelta(t, 205.12, got.Total, 1e-9)
}

func TestPriceOrderSkipsZeroAndNegativeQuantities(t *testing.T) {
	order := &entity.Order{
		SelectionType: enum.SelectionTypeCustom,
		CustomSelection: map[string][]entity.LineSelection{
			"club-sandwich": {
				{Quantity: 0, SubTotal: 37.25},
				{Quantity: -1, SubTotal: 10.00},
			},
		},
		Drinks: map[string]int{"soda": 0, "fresh-orange-juice": -4},
	}

	got := newTestEngine().PriceOrder(order, testCatalog())
	assert.Equal(t, Breakdown{}, got)
}

func TestPriceOrderUpsellAddonsConvertedToVATExclusive(t *testing.T) {
	order := &entity.Order{
		SelectionType: enum.SelectionTypeCustom,
		UpsellAddons: []entity.UpsellAddon{
			{Name: "Brownie box", UnitPriceInclVAT: 10.90, Quantity: 2, SubTotalInclVAT: 21.80},
			{Name: "Skipped", UnitPriceInclVAT: 5.00, Quantity: 0, SubTotalInclVAT: 0},
		},
	}

	got := newTestEngine().PriceOrder(order, testCatalog())

	assert.InDelta(t, 20.00, got.Subtotal, 1e-9) // 21.80 / 1.09
	assert.InDelta(t, 1.80, got.VAT, 1e-9)
	assert.InDelta(t, 21.80, got.Total, 1e-9)
}

func TestPriceOrderUnknownDrinkContributesNothing(t *testing.T) {
	order := &entity.Order{
		SelectionType: enum.SelectionTypeVariety,
		Variety:       entity.VarietySelection{NonVega: 1},
		Drinks:        map[string]int{"no-such-drink": 3},
	}

	got := newTestEngine().PriceOrder(order, testCatalog())
	assert.InDelta(t, 6.83, got.Subtotal, 1e-9)
}

func TestPriceOrderGuardsNonFiniteSubtotals(t *testing.T) {
	order := &entity.Order{
		SelectionType: enum.SelectionTypeCustom,
		CustomSelection: map[string][]entity.LineSelection{
			"club-sandwich": {{Quantity: 2, SubTotal: math.NaN()}},
		},
	}

	got := newTestEngine().PriceOrder(order, testCatalog())

	assert.False(t, math.IsNaN(got.Subtotal))
	assert.False(t, math.IsNaN(got.Total))
	assert.Equal(t, Breakdown{}, got)
}

func TestPriceOrderNilCatalogStillPricesSandwiches(t *testing.T) {
	order := &entity.Order{
		SelectionType: enum.SelectionTypeVariety,
		Variety:       entity.VarietySelection{Vega: 2},
		Drinks:        map[string]int{"soda": 2},
	}

	got := newTestEngine().PriceOrder(order, nil)
	assert.InDelta(t, 13.66, got.Subtotal, 1e-9)
}
