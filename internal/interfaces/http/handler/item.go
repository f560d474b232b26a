package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	registryapp "github.com/nestline/backend/internal/application/registry"
	"github.com/nestline/backend/internal/interfaces/http/middleware"
)

// ItemHandler handles registry item API endpoints
type ItemHandler struct {
	BaseHandler
	itemService *registryapp.ItemService
}

// NewItemHandler creates a new ItemHandler
func NewItemHandler(itemService *registryapp.ItemService) *ItemHandler {
	return &ItemHandler{
		itemService: itemService,
	}
}

// List returns the member's registry items with optional category and
// source filters
func (h *ItemHandler) List(c *gin.Context) {
	memberID, err := getMemberID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var filter registryapp.ListItemsFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	items, total, err := h.itemService.List(c.Request.Context(), memberID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	h.SuccessWithMeta(c, items, total, filter.Page, filter.PageSize)
}

// GetByID returns a single registry item owned by the member
func (h *ItemHandler) GetByID(c *gin.Context) {
	memberID, err := getMemberID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid item ID format")
		return
	}

	item, err := h.itemService.GetByID(c.Request.Context(), memberID, itemID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, item)
}

// Create adds a member-entered item to the registry
func (h *ItemHandler) Create(c *gin.Context) {
	memberID, err := getMemberID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req registryapp.AddManualItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	item, err := h.itemService.AddManual(c.Request.Context(), memberID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, item)
}

// Update modifies an existing registry item
func (h *ItemHandler) Update(c *gin.Context) {
	memberID, err := getMemberID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid item ID format")
		return
	}

	var req registryapp.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	item, err := h.itemService.Update(c.Request.Context(), memberID, itemID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, item)
}

// Delete removes a registry item
func (h *ItemHandler) Delete(c *gin.Context) {
	memberID, err := getMemberID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid item ID format")
		return
	}

	if err := h.itemService.Delete(c.Request.Context(), memberID, itemID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// RegisterRoutes registers item routes
func (h *ItemHandler) RegisterRoutes(rg *gin.RouterGroup) {
	items := rg.Group("/registry/items")
	{
		items.GET("", h.List)
		items.POST("", h.Create)
		items.GET("/:id", h.GetByID)
		items.PUT("/:id", h.Update)
		items.DELETE("/:id", h.Delete)
	}
}
