package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	registryapp "github.com/nestline/backend/internal/application/registry"
	"github.com/nestline/backend/internal/interfaces/http/middleware"
)

// NoteHandler handles registry note API endpoints. Notes are private
// to the member and live beside items, not on them, so they survive
// feed resyncs untouched.
type NoteHandler struct {
	BaseHandler
	noteService *registryapp.NoteService
}

// NewNoteHandler creates a new NoteHandler
func NewNoteHandler(noteService *registryapp.NoteService) *NoteHandler {
	return &NoteHandler{
		noteService: noteService,
	}
}

// Get returns the member's note on an item
func (h *NoteHandler) Get(c *gin.Context) {
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

	note, err := h.noteService.Get(c.Request.Context(), memberID, itemID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, note)
}

// List returns all of the member's notes
func (h *NoteHandler) List(c *gin.Context) {
	memberID, err := getMemberID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	notes, err := h.noteService.List(c.Request.Context(), memberID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, notes)
}

// Upsert writes the member's note on an item, creating or replacing it
func (h *NoteHandler) Upsert(c *gin.Context) {
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

	var req registryapp.UpsertNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	note, err := h.noteService.Upsert(c.Request.Context(), memberID, itemID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, note)
}

// Delete removes the member's note on an item
func (h *NoteHandler) Delete(c *gin.Context) {
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

	if err := h.noteService.Delete(c.Request.Context(), memberID, itemID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// RegisterRoutes registers note routes
func (h *NoteHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/registry/notes", h.List)
	note := rg.Group("/registry/items/:id/note")
	{
		note.GET("", h.Get)
		note.PUT("", h.Upsert)
		note.DELETE("", h.Delete)
	}
}
