package pricing

import (
	"fmt"
	"math"

	"github.com/lunchlokaal/catering-api/internal/domain/entity"
	"github.com/lunchlokaal/catering-api/pkg/apperror"
)

// SafeAmount clamps a monetary amount to a usable value: NaN, infinities and
// negative amounts all become zero.
func SafeAmount(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) || x < 0 {
		return 0
	}
	return x
}

// SafeQuantity clamps a negative count to zero.
func SafeQuantity(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// ValidateOrder rejects structurally malformed orders before they reach the
// pricing engine or the invoice line builder. Zero or negative line
// quantities are not an error here; those lines are simply skipped
// downstream. What is rejected is anything that could turn into a
// wrong-looking but valid total: non-finite amounts, negative stored
// subtotals, negative bulk counts, negative delivery cost.
func ValidateOrder(order *entity.Order) error {
	if order == nil {
		return apperror.NewBadRequestError("Order is required")
	}

	var fieldErrors []apperror.FieldError

	if !isFinite(order.DeliveryCost) || order.DeliveryCost < 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{
			Field:   "delivery_cost",
			Message: "must be a non-negative amount",
		})
	}

	for productID, selections := range order.CustomSelection {
		for i, sel := range selections {
			if !isFinite(sel.SubTotal) || sel.SubTotal < 0 {
				fieldErrors = append(fieldErrors, apperror.FieldError{
					Field:   fmt.Sprintf("custom_selection.%s[%d].sub_total", productID, i),
					Message: "must be a non-negative amount",
				})
			}
		}
	}

	v := order.Variety
	for _, c := range []struct {
		name  string
		count int
	}{
		{"non_vega", v.NonVega},
		{"vega", v.Vega},
		{"vegan", v.Vegan},
		{"gluten_free", v.GlutenFree},
	} {
		if c.count < 0 {
			fieldErrors = append(fieldErrors, apperror.FieldError{
				Field:   "variety_selection." + c.name,
				Message: "must not be negative",
			})
		}
	}

	for i, addon := range order.UpsellAddons {
		if !isFinite(addon.SubTotalInclVAT) || addon.SubTotalInclVAT < 0 {
			fieldErrors = append(fieldErrors, apperror.FieldError{
				Field:   fmt.Sprintf("upsell_addons[%d].sub_total_incl_vat", i),
				Message: "must be a non-negative amount",
			})
		}
		if !isFinite(addon.UnitPriceInclVAT) || addon.UnitPriceInclVAT < 0 {
			fieldErrors = append(fieldErrors, apperror.FieldError{
				Field:   fmt.Sprintf("upsell_addons[%d].unit_price_incl_vat", i),
				Message: "must be a non-negative amount",
			})
		}
	}

	if len(fieldErrors) > 0 {
		return apperror.NewValidationError(fieldErrors)
	}
	return nil
}
