package request

import (
	"github.com/lunchlokaal/catering-api/internal/domain/entity"
	"github.com/lunchlokaal/catering-api/internal/domain/enum"
)

// OrderRequest is the order payload the storefront wizard sends, both for
// price previews and for quote creation. Amounts arrive exactly as the wizard
// computed them; the pricing code re-derives everything it can from the
// catalog and only trusts captured subtotals where it has to.
type OrderRequest struct {
	SelectionType   string                            `json:"selection_type" binding:"required,oneof=custom variety"`
	CustomSelection map[string][]LineSelectionRequest `json:"custom_selection"`
	Variety         VarietyRequest                    `json:"variety_selection"`
	UpsellAddons    []UpsellAddonRequest              `json:"upsell_addons"`
	Drinks          map[string]int                    `json:"drinks"`
	DeliveryCost    float64                           `json:"delivery_cost"`
	Allergies       string                            `json:"allergies"`
	Contact         ContactRequest                    `json:"contact"`
	Delivery        DeliveryRequest                   `json:"delivery"`
	Company         CompanyRequest                    `json:"company"`
}

// LineSelectionRequest is one configured unit within a custom selection.
type LineSelectionRequest struct {
	BreadType string   `json:"bread_type"`
	Sauce     string   `json:"sauce"`
	Toppings  []string `json:"toppings"`
	Quantity  int      `json:"quantity"`
	SubTotal  float64  `json:"sub_total"`
}

// VarietyRequest holds per-dietary-category sandwich counts.
type VarietyRequest struct {
	NonVega    int `json:"non_vega"`
	Vega       int `json:"vega"`
	Vegan      int `json:"vegan"`
	GlutenFree int `json:"gluten_free"`
}

// UpsellAddonRequest is an extra accepted through the upsell prompt.
type UpsellAddonRequest struct {
	ProductID        string  `json:"product_id"`
	Name             string  `json:"name"`
	UnitPriceInclVAT float64 `json:"unit_price_incl_vat"`
	Quantity         int     `json:"quantity"`
	SubTotalInclVAT  float64 `json:"sub_total_incl_vat"`
}

// ContactRequest holds who placed the order.
type ContactRequest struct {
	Name  string `json:"name"`
	Email string `json:"email" binding:"omitempty,email"`
	Phone string `json:"phone"`
}

// DeliveryRequest holds where and when to deliver.
type DeliveryRequest struct {
	Street     string `json:"street"`
	PostalCode string `json:"postal_code"`
	City       string `json:"city"`
	Date       string `json:"date" binding:"omitempty,datetime=2006-01-02"`
	TimeSlot   string `json:"time_slot"`
}

// CompanyRequest holds optional business invoicing details.
type CompanyRequest struct {
	Name      string `json:"name"`
	VATNumber string `json:"vat_number"`
	Reference string `json:"reference"`
}

// ToEntity converts the request into the domain order value.
func (r *OrderRequest) ToEntity() *entity.Order {
	selectionType := enum.SelectionTypeCustom
	if r.SelectionType == "variety" {
		selectionType = enum.SelectionTypeVariety
	}

	order := &entity.Order{
		SelectionType: selectionType,
		Variety: entity.VarietySelection{
			NonVega:    r.Variety.NonVega,
			Vega:       r.Variety.Vega,
			Vegan:      r.Variety.Vegan,
			GlutenFree: r.Variety.GlutenFree,
		},
		Drinks:       r.Drinks,
		DeliveryCost: r.DeliveryCost,
		Allergies:    r.Allergies,
		Contact: entity.ContactDetails{
			Name:  r.Contact.Name,
			Email: r.Contact.Email,
			Phone: r.Contact.Phone,
		},
		Delivery: entity.DeliveryDetails{
			Street:     r.Delivery.Street,
			PostalCode: r.Delivery.PostalCode,
			City:       r.Delivery.City,
			Date:       r.Delivery.Date,
			TimeSlot:   r.Delivery.TimeSlot,
		},
		Company: entity.CompanyDetails{
			Name:      r.Company.Name,
			VATNumber: r.Company.VATNumber,
			Reference: r.Company.Reference,
		},
	}

	if len(r.CustomSelection) > 0 {
		order.CustomSelection = make(map[string][]entity.LineSelection, len(r.CustomSelection))
		for productID, selections := range r.CustomSelection {
			lines := make([]entity.LineSelection, len(selections))
			for i, sel := range selections {
				lines[i] = entity.LineSelection{
					BreadType: sel.BreadType,
					Sauce:     sel.Sauce,
					Toppings:  sel.Toppings,
					Quantity:  sel.Quantity,
					SubTotal:  sel.SubTotal,
				}
			}
			order.CustomSelection[productID] = lines
		}
	}

	if len(r.UpsellAddons) > 0 {
		order.UpsellAddons = make([]entity.UpsellAddon, len(r.UpsellAddons))
		for i, addon := range r.UpsellAddons {
			order.UpsellAddons[i] = entity.UpsellAddon{
				ProductID:        addon.ProductID,
				Name:             addon.Name,
				UnitPriceInclVAT: addon.UnitPriceInclVAT,
				Quantity:         addon.Quantity,
				SubTotalInclVAT:  addon.SubTotalInclVAT,
			}
		}
	}

	return order
}
