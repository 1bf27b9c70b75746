package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/lunchlokaal/catering-api/internal/application/service"
	"github.com/lunchlokaal/catering-api/internal/presentation/http/dto/response"
)

// CatalogHandler handles catalog-related HTTP requests
type CatalogHandler struct {
	catalogService *service.CatalogService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// ListProducts handles listing the product catalog
// @Summary List Products
// @Description Get the product catalog in display order
// @Tags catalog
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /catalog/products [get]
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	catalog, err := h.catalogService.Snapshot(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Products retrieved successfully", catalog.Products())
}

// ListDrinks handles listing the drink catalog
// @Summary List Drinks
// @Description Get the drink catalog in display order
// @Tags catalog
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /catalog/drinks [get]
func (h *CatalogHandler) ListDrinks(c *gin.Context) {
	catalog, err := h.catalogService.Snapshot(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Drinks retrieved successfully", catalog.Drinks())
}

// Refresh handles re-syncing the catalog from the CMS
// @Summary Refresh Catalog
// @Description Pull the product and drink catalogs from the CMS into the cache
// @Tags catalog
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /catalog/refresh [post]
func (h *CatalogHandler) Refresh(c *gin.Context) {
	catalog, err := h.catalogService.Refresh(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Catalog refreshed successfully", gin.H{
		"products": len(catalog.Products()),
		"drinks":   len(catalog.Drinks()),
	})
}
