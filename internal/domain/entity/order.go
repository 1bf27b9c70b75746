package entity

import (
	"github.com/lunchlokaal/catering-api/internal/domain/enum"
)

// Order is the order as composed by the storefront wizard. It is a plain
// value object: built up field by field on the client, then frozen inside a
// Quote once the customer requests a quote or pays. The pricing and invoice
// code only ever reads it.
type Order struct {
	SelectionType enum.SelectionType `json:"selection_type"`

	// CustomSelection maps a catalog product ID to the units the customer
	// configured for it. Only meaningful for SelectionTypeCustom.
	CustomSelection map[string][]LineSelection `json:"custom_selection,omitempty"`

	// Variety holds per-dietary-category counts. Only meaningful for
	// SelectionTypeVariety.
	Variety VarietySelection `json:"variety_selection"`

	// UpsellAddons are extras accepted through the upsell prompt, orthogonal
	// to the selection type.
	UpsellAddons []UpsellAddon `json:"upsell_addons,omitempty"`

	// Drinks maps a drink slug to its quantity. Unit prices come from the
	// drink catalog and are VAT-exclusive.
	Drinks map[string]int `json:"drinks,omitempty"`

	// DeliveryCost is VAT-exclusive. Zero means free delivery.
	DeliveryCost float64 `json:"delivery_cost"`

	Allergies string          `json:"allergies,omitempty"`
	Contact   ContactDetails  `json:"contact"`
	Delivery  DeliveryDetails `json:"delivery"`
	Company   CompanyDetails  `json:"company"`
}

// LineSelection is one configured unit within a custom selection.
// SubTotal is VAT-inclusive and equals quantity x (base price + surcharges)
// as captured by the wizard.
type LineSelection struct {
	BreadType string   `json:"bread_type"`
	Sauce     string   `json:"sauce"`
	Toppings  []string `json:"toppings,omitempty"`
	Quantity  int      `json:"quantity"`
	SubTotal  float64  `json:"sub_total"`
}

// VarietySelection holds the bulk counts per dietary category.
type VarietySelection struct {
	NonVega    int `json:"non_vega"`
	Vega       int `json:"vega"`
	Vegan      int `json:"vegan"`
	GlutenFree int `json:"gluten_free"`
}

// Total returns the number of sandwiches across all categories.
func (v VarietySelection) Total() int {
	return v.NonVega + v.Vega + v.Vegan + v.GlutenFree
}

// IsEmpty reports whether no category has a positive count.
func (v VarietySelection) IsEmpty() bool {
	return v.NonVega <= 0 && v.Vega <= 0 && v.Vegan <= 0 && v.GlutenFree <= 0
}

// UpsellAddon is an extra product accepted via the upsell prompt. Prices are
// VAT-inclusive as captured at prompt time.
type UpsellAddon struct {
	ProductID        string  `json:"product_id"`
	Name             string  `json:"name"`
	UnitPriceInclVAT float64 `json:"unit_price_incl_vat"`
	Quantity         int     `json:"quantity"`
	SubTotalInclVAT  float64 `json:"sub_total_incl_vat"`
}

// ContactDetails holds who placed the order. Opaque to pricing.
type ContactDetails struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// DeliveryDetails holds where and when the order should be delivered.
type DeliveryDetails struct {
	Street     string `json:"street"`
	PostalCode string `json:"postal_code"`
	City       string `json:"city"`
	Date       string `json:"date,omitempty"` // YYYY-MM-DD
	TimeSlot   string `json:"time_slot,omitempty"`
}

// CompanyDetails holds optional invoicing details for business customers.
type CompanyDetails struct {
	Name      string `json:"name,omitempty"`
	VATNumber string `json:"vat_number,omitempty"`
	Reference string `json:"reference,omitempty"`
}
