package entity

import "time"

// InvoiceContact identifies the debtor on an exported invoice.
type InvoiceContact struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Address   string `json:"address"`
	VATNumber string `json:"vat_number,omitempty"`
}

// InvoiceDocument is the structured invoice handed to the external
// bookkeeping system. All amounts on its lines are VAT-exclusive; the ledger
// applies its own standard-rounded VAT on top.
type InvoiceDocument struct {
	Contact     InvoiceContact `json:"contact"`
	Reference   string         `json:"reference"`
	Lines       []InvoiceLine  `json:"lines"`
	InvoiceDate time.Time      `json:"invoice_date"`
	DueDate     time.Time      `json:"due_date"`
}

// InvoiceLine is one row of an exported invoice. UnitPrice is VAT-exclusive
// and always finite; only the rounding-difference line may be negative.
// Quantity is always positive.
type InvoiceLine struct {
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	AccountCode string  `json:"account_code"`
}
