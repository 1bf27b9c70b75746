package pricing

import (
	"github.com/lunchlokaal/catering-api/internal/domain/entity"
	"github.com/lunchlokaal/catering-api/internal/domain/enum"
	"go.uber.org/zap"
)

// Breakdown holds the storefront-regime totals for an order. Subtotal and
// Delivery are VAT-exclusive; VAT is ceiling-rounded over their sum.
type Breakdown struct {
	Subtotal float64 `json:"subtotal"`
	Delivery float64 `json:"delivery"`
	VAT      float64 `json:"vat"`
	Total    float64 `json:"total"`
}

// Engine prices orders. It is a pure calculator over an Order and a Catalog
// snapshot; the logger only records catalog anomalies.
type Engine struct {
	log *zap.Logger
}

// NewEngine creates a new pricing engine
func NewEngine(log *zap.Logger) *Engine {
	return &Engine{log: log}
}

// PriceOrder computes the storefront totals for an order. All monetary
// amounts are normalized to VAT-exclusive the moment they enter the sum, and
// every intermediate is rounded to the cent before it is combined with the
// next, so drift cannot compound across line items.
func (e *Engine) PriceOrder(order *entity.Order, catalog *entity.Catalog) Breakdown {
	if order == nil {
		return Breakdown{}
	}

	var subtotal float64
	switch order.SelectionType {
	case enum.SelectionTypeVariety:
		subtotal = varietySubtotal(order.Variety)
	default:
		subtotal = customSubtotal(order.CustomSelection)
	}

	subtotal = Round2(subtotal + e.drinksSubtotal(order.Drinks, catalog))
	subtotal = Round2(subtotal + upsellSubtotal(order.UpsellAddons))

	delivery := Round2(SafeAmount(order.DeliveryCost))
	vat := CeilVAT(Round2(subtotal + delivery))
	total := Round2(subtotal + delivery + vat)

	return Breakdown{
		Subtotal: subtotal,
		Delivery: delivery,
		VAT:      vat,
		Total:    total,
	}
}

// customSubtotal sums custom selections. Stored subtotals are VAT-inclusive;
// each is converted individually so the same figure is used everywhere it is
// displayed or invoiced.
func customSubtotal(selection map[string][]entity.LineSelection) float64 {
	var sum float64
	for _, selections := range selection {
		for _, sel := range selections {
			if sel.Quantity <= 0 {
				continue
			}
			sum = Round2(sum + ToVATExclusive(SafeAmount(sel.SubTotal)))
		}
	}
	return sum
}

// varietySubtotal prices bulk counts against the fixed VAT-exclusive unit
// prices. Gluten-free sandwiches carry a surcharge on top of the base price.
func varietySubtotal(v entity.VarietySelection) float64 {
	regular := SafeQuantity(v.NonVega) + SafeQuantity(v.Vega) + SafeQuantity(v.Vegan)
	sum := Round2(float64(regular) * SandwichPriceExclVAT)
	glutenFreeUnit := Round2(SandwichPriceExclVAT + GlutenFreeSurchargeExclVAT)
	return Round2(sum + Round2(float64(SafeQuantity(v.GlutenFree))*glutenFreeUnit))
}

// drinksSubtotal resolves drink slugs against the catalog. Unknown slugs
// contribute nothing; quantities of zero or less are silently skipped.
func (e *Engine) drinksSubtotal(drinks map[string]int, catalog *entity.Catalog) float64 {
	var sum float64
	for slug, quantity := range drinks {
		if quantity <= 0 {
			continue
		}
		price, ok := drinkPrice(catalog, slug)
		if !ok {
			e.log.Warn("drink not found in catalog, priced at zero", zap.String("slug", slug))
			continue
		}
		sum = Round2(sum + Round2(float64(quantity)*price))
	}
	return sum
}

// upsellSubtotal sums accepted upsell addons. Addon subtotals are captured
// VAT-inclusive and converted before joining the VAT-exclusive sum.
func upsellSubtotal(addons []entity.UpsellAddon) float64 {
	var sum float64
	for _, addon := range addons {
		if addon.Quantity <= 0 {
			continue
		}
		sum = Round2(sum + ToVATExclusive(SafeAmount(addon.SubTotalInclVAT)))
	}
	return sum
}

func drinkPrice(catalog *entity.Catalog, slug string) (float64, bool) {
	if catalog == nil {
		return 0, false
	}
	return catalog.DrinkPrice(slug)
}
