package handler

import (
	"github.com/gin-gonic/gin"

	registryapp "github.com/nestline/backend/internal/application/registry"
	"github.com/nestline/backend/internal/interfaces/http/middleware"
)

// SyncHandler handles linked account and feed sync endpoints
type SyncHandler struct {
	BaseHandler
	syncService *registryapp.SyncService
}

// NewSyncHandler creates a new SyncHandler
func NewSyncHandler(syncService *registryapp.SyncService) *SyncHandler {
	return &SyncHandler{
		syncService: syncService,
	}
}

// Connect links an external registry account for the member
func (h *SyncHandler) Connect(c *gin.Context) {
	memberID, err := getMemberID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req registryapp.ConnectAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	conn, err := h.syncService.ConnectAccount(c.Request.Context(), memberID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, conn)
}

// Statuses reports the connection state of every linkable service
func (h *SyncHandler) Statuses(c *gin.Context) {
	memberID, err := getMemberID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	statuses, err := h.syncService.ConnectionStatuses(c.Request.Context(), memberID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, statuses)
}

// Disconnect removes a linked account connection. Items already synced
// from the service stay in the registry.
func (h *SyncHandler) Disconnect(c *gin.Context) {
	memberID, err := getMemberID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	if err := h.syncService.Disconnect(c.Request.Context(), memberID, c.Param("service")); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// Sync pulls the named source and reconciles it into the registry
func (h *SyncHandler) Sync(c *gin.Context) {
	memberID, err := getMemberID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	result, err := h.syncService.Sync(c.Request.Context(), memberID, c.Param("source"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// RegisterRoutes registers account and sync routes
func (h *SyncHandler) RegisterRoutes(rg *gin.RouterGroup) {
	accounts := rg.Group("/accounts")
	{
		accounts.GET("", h.Statuses)
		accounts.POST("", h.Connect)
		accounts.DELETE("/:service", h.Disconnect)
	}
	rg.POST("/registry/sync/:source", h.Sync)
}
