package handler

import (
	"github.com/gin-gonic/gin"

	registryapp "github.com/nestline/backend/internal/application/registry"
)

// CatalogHandler handles product browsing endpoints. Browsing is
// read-only; nothing a member sees here is added to their registry
// until they act on it.
type CatalogHandler struct {
	BaseHandler
	catalogService *registryapp.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(catalogService *registryapp.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
	}
}

// Browse returns the curated catalog
func (h *CatalogHandler) Browse(c *gin.Context) {
	memberID, err := getMemberID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	products, err := h.catalogService.Browse(c.Request.Context(), memberID, "")
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, products)
}

// BrowseSource returns the product listing for a named source
func (h *CatalogHandler) BrowseSource(c *gin.Context) {
	memberID, err := getMemberID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	products, err := h.catalogService.Browse(c.Request.Context(), memberID, c.Param("source"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, products)
}

// RegisterRoutes registers catalog routes
func (h *CatalogHandler) RegisterRoutes(rg *gin.RouterGroup) {
	catalog := rg.Group("/catalog")
	{
		catalog.GET("/products", h.Browse)
		catalog.GET("/products/:source", h.BrowseSource)
	}
}
