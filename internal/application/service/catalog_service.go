package service

import (
	"context"
	"sync"

	"github.com/lunchlokaal/catering-api/internal/domain/entity"
	"github.com/lunchlokaal/catering-api/internal/domain/repository"
	"github.com/lunchlokaal/catering-api/pkg/apperror"
	"go.uber.org/zap"
)

// CMSClient reads the catalogs from the headless CMS.
type CMSClient interface {
	FetchProducts(ctx context.Context) ([]entity.Product, error)
	FetchDrinks(ctx context.Context) ([]entity.Drink, error)
}

// CatalogService serves an immutable catalog snapshot to the pricing and
// invoicing code, backed by the Postgres cache and refreshed from the CMS.
type CatalogService struct {
	catalogRepo repository.CatalogRepository
	cms         CMSClient
	log         *zap.Logger

	mu       sync.RWMutex
	snapshot *entity.Catalog
}

// NewCatalogService creates a new catalog service
func NewCatalogService(catalogRepo repository.CatalogRepository, cms CMSClient, log *zap.Logger) *CatalogService {
	return &CatalogService{
		catalogRepo: catalogRepo,
		cms:         cms,
		log:         log,
	}
}

// Snapshot returns the current catalog snapshot, loading it from the cache on
// first use. Every caller inside one request sees the same snapshot.
func (s *CatalogService) Snapshot(ctx context.Context) (*entity.Catalog, error) {
	s.mu.RLock()
	snapshot := s.snapshot
	s.mu.RUnlock()
	if snapshot != nil {
		return snapshot, nil
	}
	return s.reload(ctx)
}

// Refresh pulls the catalogs from the CMS, replaces the cache and swaps in a
// new snapshot. On CMS failure the previous snapshot keeps serving.
func (s *CatalogService) Refresh(ctx context.Context) (*entity.Catalog, error) {
	products, err := s.cms.FetchProducts(ctx)
	if err != nil {
		s.log.Error("cms product fetch failed, keeping cached catalog", zap.Error(err))
		return nil, apperror.NewAppError(502, "Catalog refresh failed")
	}
	drinks, err := s.cms.FetchDrinks(ctx)
	if err != nil {
		s.log.Error("cms drink fetch failed, keeping cached catalog", zap.Error(err))
		return nil, apperror.NewAppError(502, "Catalog refresh failed")
	}

	if err := s.catalogRepo.ReplaceProducts(ctx, products); err != nil {
		return nil, err
	}
	if err := s.catalogRepo.ReplaceDrinks(ctx, drinks); err != nil {
		return nil, err
	}

	snapshot := entity.NewCatalog(products, drinks)
	s.mu.Lock()
	s.snapshot = snapshot
	s.mu.Unlock()

	s.log.Info("catalog refreshed from cms",
		zap.Int("products", len(products)), zap.Int("drinks", len(drinks)))
	return snapshot, nil
}

func (s *CatalogService) reload(ctx context.Context) (*entity.Catalog, error) {
	products, err := s.catalogRepo.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	drinks, err := s.catalogRepo.ListDrinks(ctx)
	if err != nil {
		return nil, err
	}

	snapshot := entity.NewCatalog(products, drinks)
	s.mu.Lock()
	s.snapshot = snapshot
	s.mu.Unlock()
	return snapshot, nil
}
