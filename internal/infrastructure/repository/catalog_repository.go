package repository

import (
	"context"

	"github.com/lunchlokaal/catering-api/internal/domain/entity"
	domainRepo "github.com/lunchlokaal/catering-api/internal/domain/repository"
	"gorm.io/gorm"
)

type catalogRepository struct {
	db *gorm.DB
}

// NewCatalogRepository creates a new catalog cache repository
func NewCatalogRepository(db *gorm.DB) domainRepo.CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) ListProducts(ctx context.Context) ([]entity.Product, error) {
	var products []entity.Product
	err := r.db.WithContext(ctx).Order("position ASC, name ASC").Find(&products).Error
	return products, err
}

func (r *catalogRepository) ListDrinks(ctx context.Context) ([]entity.Drink, error) {
	var drinks []entity.Drink
	err := r.db.WithContext(ctx).Order("position ASC, name ASC").Find(&drinks).Error
	return drinks, err
}

// ReplaceProducts swaps the cached product set for a fresh CMS snapshot in
// one transaction so readers never observe a half-synced catalog.
func (r *catalogRepository) ReplaceProducts(ctx context.Context, products []entity.Product) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("1 = 1").Delete(&entity.Product{}).Error; err != nil {
			return err
		}
		if len(products) == 0 {
			return nil
		}
		return tx.Create(&products).Error
	})
}

func (r *catalogRepository) ReplaceDrinks(ctx context.Context, drinks []entity.Drink) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("1 = 1").Delete(&entity.Drink{}).Error; err != nil {
			return err
		}
		if len(drinks) == 0 {
			return nil
		}
		return tx.Create(&drinks).Error
	})
}
