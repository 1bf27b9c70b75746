package repository

import (
	"context"

	"github.com/lunchlokaal/catering-api/internal/domain/entity"
)

// CatalogRepository defines the local catalog cache operations. The CMS is
// the source of truth; this cache keeps the storefront serving when the CMS
// is unreachable.
type CatalogRepository interface {
	ListProducts(ctx context.Context) ([]entity.Product, error)
	ListDrinks(ctx context.Context) ([]entity.Drink, error)
	ReplaceProducts(ctx context.Context, products []entity.Product) error
	ReplaceDrinks(ctx context.Context, drinks []entity.Drink) error
}
