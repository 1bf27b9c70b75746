package invoice

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/lunchlokaal/catering-api/internal/application/pricing"
	"github.com/lunchlokaal/catering-api/internal/domain/entity"
	"github.com/lunchlokaal/catering-api/internal/domain/enum"
	"go.uber.org/zap"
)

// Ledger account codes for exported invoice lines.
const (
	AccountSales    = "8000"
	AccountDelivery = "8040"
)

// ReconcileTolerance is the maximum drift between the stored order total and
// the total recomputed from the emitted lines before a rounding-adjustment
// line is synthesized. Strictly greater-than: a drift of exactly two cents is
// still absorbed.
const ReconcileTolerance = 0.02

const unknownProductLabel = "Unknown product"

// Fixed descriptions for variety (bulk) lines, emitted in this order.
var varietyLabels = [...]string{
	"Sandwiches non-vegetarian",
	"Sandwiches vegetarian",
	"Sandwiches vegan",
	"Sandwiches gluten-free",
}

// Builder turns a frozen order into the ordered invoice lines sent to the
// bookkeeping system.
type Builder struct {
	log *zap.Logger
}

// NewBuilder creates a new invoice line builder
func NewBuilder(log *zap.Logger) *Builder {
	return &Builder{log: log}
}

// BuildLines converts an order into VAT-exclusive invoice lines and
// reconciles them against the independently stored order total. Line order is
// fixed for auditability: selection lines, then drinks, then upsell addons,
// then delivery, then (at most one) rounding adjustment.
func (b *Builder) BuildLines(order *entity.Order, catalog *entity.Catalog, storedTotal float64) ([]entity.InvoiceLine, error) {
	if err := pricing.ValidateOrder(order); err != nil {
		return nil, err
	}

	var lines []entity.InvoiceLine
	switch order.SelectionType {
	case enum.SelectionTypeVariety:
		lines = append(lines, b.varietyLines(order.Variety)...)
	default:
		lines = append(lines, b.customLines(order, catalog)...)
	}
	lines = append(lines, b.drinkLines(order.Drinks, catalog)...)
	lines = append(lines, b.upsellLines(order.UpsellAddons)...)
	lines = append(lines, b.deliveryLine(order.DeliveryCost)...)

	return b.reconcile(lines, storedTotal), nil
}

// customLines emits one line per configured unit, walking products in catalog
// order so the output is deterministic. Selections whose product is missing
// from the catalog still get a line under a fallback label.
func (b *Builder) customLines(order *entity.Order, catalog *entity.Catalog) []entity.InvoiceLine {
	var lines []entity.InvoiceLine

	seen := make(map[string]bool, len(order.CustomSelection))
	if catalog != nil {
		for _, product := range catalog.Products() {
			selections, ok := order.CustomSelection[product.ID]
			if !ok {
				continue
			}
			seen[product.ID] = true
			for _, sel := range selections {
				if line, ok := b.selectionLine(product.Name, product.Kind, sel); ok {
					lines = append(lines, line)
				}
			}
		}
	}

	// Orphaned product IDs, in a stable order.
	var orphans []string
	for productID := range order.CustomSelection {
		if !seen[productID] {
			orphans = append(orphans, productID)
		}
	}
	sort.Strings(orphans)
	for _, productID := range orphans {
		b.log.Warn("product not found in catalog, using fallback label",
			zap.String("product_id", productID))
		for _, sel := range order.CustomSelection[productID] {
			if line, ok := b.selectionLine(unknownProductLabel, enum.ProductKindSandwich, sel); ok {
				lines = append(lines, line)
			}
		}
	}

	return lines
}

// selectionLine builds a single custom-selection line. A quantity of zero or
// less, or a broken subtotal, yields no line at all: the unit price is
// derived by division and must never divide by zero.
func (b *Builder) selectionLine(name string, kind enum.ProductKind, sel entity.LineSelection) (entity.InvoiceLine, bool) {
	if sel.Quantity <= 0 {
		return entity.InvoiceLine{}, false
	}
	if !finite(sel.SubTotal) || sel.SubTotal < 0 {
		b.log.Warn("selection subtotal is not a valid amount, line skipped",
			zap.String("product", name), zap.Float64("sub_total", sel.SubTotal))
		return entity.InvoiceLine{}, false
	}
	return entity.InvoiceLine{
		Description: describeSelection(name, kind, sel),
		Quantity:    sel.Quantity,
		UnitPrice:   pricing.ToVATExclusive(sel.SubTotal / float64(sel.Quantity)),
		AccountCode: AccountSales,
	}, true
}

// describeSelection renders "name (bread, sauce)". Bread is omitted for
// drink-kind products, sauce when the customer picked none.
func describeSelection(name string, kind enum.ProductKind, sel entity.LineSelection) string {
	var extras []string
	if kind != enum.ProductKindDrink && sel.BreadType != "" {
		extras = append(extras, sel.BreadType)
	}
	if sel.Sauce != "" && !isNoSauce(sel.Sauce) {
		extras = append(extras, sel.Sauce)
	}
	if len(extras) == 0 {
		return name
	}
	return fmt.Sprintf("%s (%s)", name, strings.Join(extras, ", "))
}

func isNoSauce(sauce string) bool {
	switch strings.ToLower(strings.TrimSpace(sauce)) {
	case "none", "geen":
		return true
	}
	return false
}

// varietyLines emits the bulk categories in fixed order, only for positive
// counts. Unit prices are the VAT-exclusive constants.
func (b *Builder) varietyLines(v entity.VarietySelection) []entity.InvoiceLine {
	glutenFreeUnit := pricing.Round2(pricing.SandwichPriceExclVAT + pricing.GlutenFreeSurchargeExclVAT)
	categories := [...]struct {
		count int
		price float64
	}{
		{v.NonVega, pricing.SandwichPriceExclVAT},
		{v.Vega, pricing.SandwichPriceExclVAT},
		{v.Vegan, pricing.SandwichPriceExclVAT},
		{v.GlutenFree, glutenFreeUnit},
	}

	var lines []entity.InvoiceLine
	for i, category := range categories {
		if category.count <= 0 {
			continue
		}
		lines = append(lines, entity.InvoiceLine{
			Description: varietyLabels[i],
			Quantity:    category.count,
			UnitPrice:   category.price,
			AccountCode: AccountSales,
		})
	}
	return lines
}

// drinkLines walks the drink catalog in order and emits a line for every
// positive quantity. Slugs missing from the catalog still get a zero-priced
// fallback line so the order content stays visible on the invoice.
func (b *Builder) drinkLines(drinks map[string]int, catalog *entity.Catalog) []entity.InvoiceLine {
	var lines []entity.InvoiceLine

	seen := make(map[string]bool, len(drinks))
	if catalog != nil {
		for _, drink := range catalog.Drinks() {
			quantity, ok := drinks[drink.Slug]
			if !ok {
				continue
			}
			seen[drink.Slug] = true
			if quantity <= 0 {
				continue
			}
			lines = append(lines, entity.InvoiceLine{
				Description: drink.Name,
				Quantity:    quantity,
				UnitPrice:   drink.PriceExclVAT,
				AccountCode: AccountSales,
			})
		}
	}

	var orphans []string
	for slug, quantity := range drinks {
		if !seen[slug] && quantity > 0 {
			orphans = append(orphans, slug)
		}
	}
	sort.Strings(orphans)
	for _, slug := range orphans {
		b.log.Warn("drink not found in catalog, using fallback label", zap.String("slug", slug))
		lines = append(lines, entity.InvoiceLine{
			Description: unknownProductLabel,
			Quantity:    drinks[slug],
			UnitPrice:   0,
			AccountCode: AccountSales,
		})
	}

	return lines
}

// upsellLines emits addon lines, guarded against zero quantities the same way
// as custom selections.
func (b *Builder) upsellLines(addons []entity.UpsellAddon) []entity.InvoiceLine {
	var lines []entity.InvoiceLine
	for _, addon := range addons {
		if addon.Quantity <= 0 {
			continue
		}
		if !finite(addon.SubTotalInclVAT) || addon.SubTotalInclVAT < 0 {
			b.log.Warn("addon subtotal is not a valid amount, line skipped",
				zap.String("name", addon.Name), zap.Float64("sub_total", addon.SubTotalInclVAT))
			continue
		}
		name := addon.Name
		if name == "" {
			name = unknownProductLabel
		}
		lines = append(lines, entity.InvoiceLine{
			Description: name,
			Quantity:    addon.Quantity,
			UnitPrice:   pricing.ToVATExclusive(addon.SubTotalInclVAT / float64(addon.Quantity)),
			AccountCode: AccountSales,
		})
	}
	return lines
}

// deliveryLine emits the delivery fee only when strictly positive. Negative
// or broken values are dropped, never exported.
func (b *Builder) deliveryLine(deliveryCost float64) []entity.InvoiceLine {
	cost := pricing.Round2(pricing.SafeAmount(deliveryCost))
	if cost <= 0 {
		return nil
	}
	return []entity.InvoiceLine{{
		Description: "Delivery Cost",
		Quantity:    1,
		UnitPrice:   cost,
		AccountCode: AccountDelivery,
	}}
}

// reconcile compares the total recomputed from the emitted lines against the
// stored order total and appends a single adjustment line when they drift
// apart by more than the tolerance. Re-running ComputedTotal over the result
// then reproduces the stored total to the cent.
func (b *Builder) reconcile(lines []entity.InvoiceLine, storedTotal float64) []entity.InvoiceLine {
	computed := ComputedTotal(lines)
	diff := storedTotal - computed
	if math.Abs(diff) <= ReconcileTolerance+1e-9 {
		return lines
	}

	b.log.Info("invoice total drifted from stored total, adding rounding adjustment",
		zap.Float64("stored", storedTotal),
		zap.Float64("computed", computed),
		zap.Float64("difference", pricing.Round2(diff)))

	return append(lines, entity.InvoiceLine{
		Description: "Rounding difference",
		Quantity:    1,
		UnitPrice:   pricing.ToVATExclusive(diff),
		AccountCode: AccountSales,
	})
}

// ComputedTotal recomputes the VAT-inclusive order total from invoice lines
// under the storefront regime, cent-rounding every intermediate.
func ComputedTotal(lines []entity.InvoiceLine) float64 {
	var base float64
	for _, line := range lines {
		base = pricing.Round2(base + pricing.Round2(float64(line.Quantity)*line.UnitPrice))
	}
	return pricing.Round2(base + pricing.CeilVAT(base))
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
