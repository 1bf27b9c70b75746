package entity

import (
	"time"

	"github.com/lunchlokaal/catering-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Product is a catalog product as cached from the CMS. Price is VAT-inclusive
// in euros, matching how the storefront displays it.
type Product struct {
	ID              string           `gorm:"primary_key;size:100" json:"id"`
	Name            string           `gorm:"size:255;not null" json:"name"`
	Kind            enum.ProductKind `gorm:"default:0" json:"kind"`
	Category        string           `gorm:"size:100" json:"category"`
	PriceInclVAT    float64          `gorm:"type:decimal(15,2);not null" json:"price_incl_vat"`
	Position        int              `gorm:"default:0" json:"position"`
	HasSauceOptions bool             `gorm:"default:false" json:"has_sauce_options"`
	SauceOptions    []PriceOption    `gorm:"serializer:json" json:"sauce_options,omitempty"`
	HasToppings     bool             `gorm:"default:false" json:"has_toppings"`
	ToppingOptions  []PriceOption    `gorm:"serializer:json" json:"topping_options,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
	DeletedAt       gorm.DeletedAt   `gorm:"index" json:"-"`
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// PriceOption is a named surcharge for a sauce or topping.
type PriceOption struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// Drink is a catalog drink. Price is VAT-exclusive in euros.
type Drink struct {
	ID           string         `gorm:"primary_key;size:100" json:"id"`
	Name         string         `gorm:"size:255;not null" json:"name"`
	Slug         string         `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	PriceExclVAT float64        `gorm:"type:decimal(15,2);not null" json:"price_excl_vat"`
	Description  string         `gorm:"type:text" json:"description,omitempty"`
	Position     int            `gorm:"default:0" json:"position"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName returns the table name for the Drink model
func (Drink) TableName() string {
	return "drinks"
}

// Catalog is an immutable snapshot of the product and drink catalogs, in
// catalog display order. Pricing and invoice building resolve everything
// against one snapshot so a mid-request refresh cannot skew an order.
type Catalog struct {
	products    []Product
	productByID map[string]int
	drinks      []Drink
	drinkBySlug map[string]int
}

// NewCatalog builds a snapshot preserving the given slice order.
func NewCatalog(products []Product, drinks []Drink) *Catalog {
	c := &Catalog{
		products:    products,
		productByID: make(map[string]int, len(products)),
		drinks:      drinks,
		drinkBySlug: make(map[string]int, len(drinks)),
	}
	for i := range products {
		c.productByID[products[i].ID] = i
	}
	for i := range drinks {
		c.drinkBySlug[drinks[i].Slug] = i
	}
	return c
}

// Products returns all products in catalog order.
func (c *Catalog) Products() []Product {
	return c.products
}

// Drinks returns all drinks in catalog order.
func (c *Catalog) Drinks() []Drink {
	return c.drinks
}

// Product looks up a product by its catalog ID.
func (c *Catalog) Product(id string) (Product, bool) {
	i, ok := c.productByID[id]
	if !ok {
		return Product{}, false
	}
	return c.products[i], true
}

// Drink looks up a drink by its slug.
func (c *Catalog) Drink(slug string) (Drink, bool) {
	i, ok := c.drinkBySlug[slug]
	if !ok {
		return Drink{}, false
	}
	return c.drinks[i], true
}

// DrinkPrice returns the VAT-exclusive unit price for a drink slug.
func (c *Catalog) DrinkPrice(slug string) (float64, bool) {
	d, ok := c.Drink(slug)
	if !ok {
		return 0, false
	}
	return d.PriceExclVAT, true
}
